package main

// Runtime commands delegate to the project's own binary via
// `go run . <args>` so the project's main.go (which calls app.Run with its
// routes and models) handles them.

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// runInProject executes `go run <entrypoint> <args...>` in dir with the
// process's stdio attached. The child's exit code propagates through the
// returned *exec.ExitError.
func runInProject(dir string, args ...string) error {
	goArgs := append([]string{"run", findEntrypoint(dir)}, args...)
	c := exec.Command("go", goArgs...)
	c.Dir = dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Env = os.Environ()
	return c.Run()
}

// findEntrypoint returns the package path to hand to `go run`. The
// standard layout keeps main.go at the project root; older layouts hide
// it under cmd/.
func findEntrypoint(dir string) string {
	if hasGoFiles(dir) {
		return "."
	}
	for _, sub := range []string{"cmd/server", "cmd/app", "cmd/main", "cmd"} {
		if hasGoFiles(filepath.Join(dir, sub)) {
			return "./" + sub
		}
	}
	// Let `go run .` produce its own error message.
	return "."
}

func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".go") {
			return true
		}
	}
	return false
}

// delegateCmd builds a cobra command that forwards itself, plus any extra
// arguments, to the project in the current directory.
func delegateCmd(use, short string, forward ...string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return runInProject(cwd, append(forward, args...)...)
		},
	}
}
