package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// A delegated project command already wrote its own output;
		// mirror its exit code instead of reprinting the error.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "volt",
	Short: "Volt — Go web framework CLI",
	Long:  "Volt scaffolds and manages web projects built on the Volt framework.",

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(dbCmd)
}
