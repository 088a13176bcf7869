package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var destroyCmd = &cobra.Command{
	Use:   "destroy <kind> <Name>",
	Short: "Remove files a generator created",
	Args:  cobra.MatchAll(cobra.ExactArgs(2), validKind),
	RunE: func(cmd *cobra.Command, args []string) error {
		return destroy(args[0], args[1])
	},
}

// destroy removes the files generate produced for the same kind and name.
// Migration files carry a timestamp prefix, so those are matched by glob.
func destroy(kind, rawName string) error {
	lower := snake(rawName)
	table := tableName(rawName)

	var patterns []string
	switch kind {
	case "model":
		patterns = []string{fmt.Sprintf("app/models/%s.go", lower)}
	case "controller":
		patterns = []string{fmt.Sprintf("app/controllers/%s_controller.go", lower)}
	case "seeder":
		patterns = []string{fmt.Sprintf("database/seeders/%s_seeder.go", lower)}
	case "channel":
		patterns = []string{fmt.Sprintf("app/channels/%s_channel.go", lower)}
	case "migration":
		patterns = []string{fmt.Sprintf("database/migrations/*_%s.go", lower)}
	case "scaffold":
		patterns = []string{
			fmt.Sprintf("app/models/%s.go", lower),
			fmt.Sprintf("app/controllers/%s_controller.go", lower),
			fmt.Sprintf("database/migrations/*_create_%s_table.go", table),
			fmt.Sprintf("database/seeders/%s_seeder.go", lower),
		}
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}

	removed := 0
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return err
		}
		for _, path := range matches {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("remove %s: %w", path, err)
			}
			fmt.Printf("removed  %s\n", path)
			removed++
		}
	}
	if removed == 0 {
		fmt.Println("nothing to remove")
	}
	return nil
}
