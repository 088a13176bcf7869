package main

import "testing"

func TestRootRegistersExactlySevenSubcommands(t *testing.T) {
	want := map[string]bool{
		"new":      false,
		"generate": false,
		"server":   false,
		"console":  false,
		"routes":   false,
		"db":       false,
		"destroy":  false,
	}

	cmds := rootCmd.Commands()
	named := 0
	for _, c := range cmds {
		name := c.Name()
		// cobra adds completion and help automatically.
		if name == "completion" || name == "help" {
			continue
		}
		named++
		if _, ok := want[name]; !ok {
			t.Errorf("unexpected subcommand %q", name)
			continue
		}
		want[name] = true
	}

	if named != len(want) {
		t.Errorf("registered %d subcommands, want %d", named, len(want))
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestGenerateHasAlias(t *testing.T) {
	if !generateCmd.HasAlias("g") {
		t.Error("generate should answer to g")
	}
}
