// Command volt is the global Volt framework CLI.
//
// Install once:
//
//	go install github.com/voltframework/volt/cmd/volt@latest
//
// Scaffold a project, then work inside it:
//
//	volt new blog
//	cd blog
//	volt generate scaffold Post
//	volt db migrate
//	volt server
//
// File-producing commands (new, generate, destroy) run entirely in the
// CLI. Runtime commands (server, console, routes, db) delegate to the
// project itself via `go run . <command>`, because only the project binary
// has its routes, models, migrations and seeders registered.
package main
