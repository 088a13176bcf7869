package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var newModule string

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new Volt project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newProject(args[0], newModule)
	},
}

func init() {
	newCmd.Flags().StringVar(&newModule, "module", "", "Go module path (default: project name)")
}

// projectFiles maps stub name to path inside the new project.
var projectFiles = []stubSpec{
	{"project_gomod", "go.mod"},
	{"project_main", "main.go"},
	{"project_env", ".env"},
	{"project_gitignore", ".gitignore"},
	{"project_appjson", "config/app.json"},
	{"project_routes", "app/routes/routes.go"},
	{"project_controllers", "app/controllers/controllers.go"},
	{"project_models", "app/models/models.go"},
	{"project_migrations", "database/migrations/migrations.go"},
	{"project_seeders", "database/seeders/seeders.go"},
}

func newProject(name, module string) error {
	if module == "" {
		module = name
	}
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("directory already exists: %s", name)
	}

	data := stubData{Project: name, Module: module}
	for _, s := range projectFiles {
		content, err := renderStub(s.stub, data)
		if err != nil {
			return err
		}
		if err := writeStub(filepath.Join(name, s.path), content); err != nil {
			return err
		}
	}

	fmt.Printf("\nProject %s is ready.\n\n", name)
	fmt.Printf("    cd %s\n", name)
	fmt.Printf("    go mod tidy\n")
	fmt.Printf("    volt server\n\n")
	return nil
}
