// Package app provides the Volt application runner.
//
// A generated project's main.go is a single builder chain:
//
//	package main
//
//	import (
//	    "github.com/voltframework/volt/pkg/app"
//	    "myapp/app/models"
//	    "myapp/app/routes"
//	    _ "myapp/database/migrations"
//	    _ "myapp/database/seeders"
//	)
//
//	func main() {
//	    app.New().
//	        Routes(routes.Register).
//	        AutoMigrate(&models.User{}).
//	        Run()
//	}
//
// Run dispatches on os.Args, so the project binary answers the same verbs
// the volt CLI delegates:
//
//	go run . server
//	go run . routes
//	go run . console
//	go run . db migrate
package app

import (
	"fmt"
	"os"

	"github.com/voltframework/volt/pkg/router"
)

// SeederFunc populates the database with development or demo data.
type SeederFunc func()

// Seeders registered from init() in generated seeder files.
var globalSeeders []SeederFunc

// RegisterSeeder registers a seeder to be run by `volt db seed`. Call it
// from an init() in your seeder files; the name is used in output only.
func RegisterSeeder(name string, fn SeederFunc) {
	globalSeeders = append(globalSeeders, namedSeeder{name, fn}.run)
}

type namedSeeder struct {
	name string
	fn   SeederFunc
}

func (s namedSeeder) run() {
	fmt.Printf("  seeding %s\n", s.name)
	s.fn()
}

// Application is the configuration a project hands to the framework.
// Build one with New, chain the With-style methods, then call Run.
type Application struct {
	routesFns  []func(*router.Router)
	models     []any
	seeders    []SeederFunc
	middleware []router.Middleware
}

// New creates an empty Application.
func New() *Application {
	return &Application{}
}

// Routes registers a route-registration callback. Callbacks run in order
// when the HTTP kernel is built.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// AutoMigrate adds GORM models migrated on server start. Pass pointers:
// app.New().AutoMigrate(&models.User{}, &models.Post{})
func (a *Application) AutoMigrate(models ...any) *Application {
	a.models = append(a.models, models...)
	return a
}

// Use appends middleware applied after the standard pipeline and before
// route handlers.
func (a *Application) Use(mws ...router.Middleware) *Application {
	a.middleware = append(a.middleware, mws...)
	return a
}

// Seeders registers seeders inline, an alternative to RegisterSeeder.
func (a *Application) Seeders(fns ...SeederFunc) *Application {
	a.seeders = append(a.seeders, fns...)
	return a
}

// Run reads os.Args and dispatches. It is the only call a generated
// main() makes.
func (a *Application) Run() {
	if err := a.run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var errUnknownCommand = fmt.Errorf("unknown command")

func (a *Application) run(args []string) error {
	cmd := "server"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "server", "start", "s":
		return cmdServer(a)
	case "routes":
		return cmdRoutes(a)
	case "console":
		return cmdConsole(a)
	case "db":
		return cmdDB(a, args[1:])
	case "help", "--help", "-h":
		printHelp()
		return nil
	default:
		return fmt.Errorf("%w: %q (run with help for usage)", errUnknownCommand, cmd)
	}
}

func printHelp() {
	fmt.Print(`Volt project commands

Usage:
  go run . <command>     (or via the volt CLI: volt <command>)

Commands:
  server        Start the HTTP server  (aliases: start, s)
  routes        List registered routes
  console       Open an interactive database console
  db migrate    Run pending migrations
  db rollback   Roll back the last migration batch
  db status     Show migration status
  db seed       Run registered seeders
  db reset      Roll back everything, then migrate again
`)
}
