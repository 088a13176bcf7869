package main

import (
	"os"

	"github.com/spf13/cobra"
)

var serverCmd = delegateCmd("server", "Start the project's HTTP server", "server")

var consoleCmd = delegateCmd("console", "Open the project's interactive database console", "console")

var routesCmd = delegateCmd("routes", "List the project's registered routes", "routes")

var dbCmd = &cobra.Command{
	Use:       "db <migrate|rollback|status|seed|reset>",
	Short:     "Run database commands against the project",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"migrate", "rollback", "status", "seed", "reset"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		return runInProject(cwd, "db", args[0])
	},
}
