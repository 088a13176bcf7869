package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var generateKinds = []string{"model", "controller", "migration", "seeder", "channel", "scaffold"}

var generateCmd = &cobra.Command{
	Use:     "generate <kind> <Name>",
	Aliases: []string{"g"},
	Short:   "Generate project files (model, controller, migration, seeder, channel, scaffold)",
	Args:    cobra.MatchAll(cobra.ExactArgs(2), validKind),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, name := args[0], args[1]
		files, err := generateFiles(kind, name, time.Now())
		if err != nil {
			return err
		}
		for _, f := range files {
			if err := writeStub(f.path, f.content); err != nil {
				return err
			}
		}
		if kind == "scaffold" {
			printRoutesHint(name)
		}
		return nil
	},
}

func validKind(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	for _, k := range generateKinds {
		if args[0] == k {
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q (want one of %s)", args[0], strings.Join(generateKinds, ", "))
}

type genFile struct {
	path    string
	content string
}

// generateFiles renders every file a kind produces. The timestamp feeds
// migration file names; destroy recomputes paths without it.
func generateFiles(kind, rawName string, now time.Time) ([]genFile, error) {
	name := pascal(rawName)
	data := stubData{
		Name:   name,
		Lower:  snake(rawName),
		Plural: tableName(rawName),
		Table:  tableName(rawName),
		Module: projectModule(),
	}

	switch kind {
	case "model":
		return renderAll([]stubSpec{{"model", fmt.Sprintf("app/models/%s.go", data.Lower)}}, data)
	case "controller":
		return renderAll([]stubSpec{{"controller", fmt.Sprintf("app/controllers/%s_controller.go", data.Lower)}}, data)
	case "seeder":
		return renderAll([]stubSpec{{"seeder", fmt.Sprintf("database/seeders/%s_seeder.go", data.Lower)}}, data)
	case "channel":
		return renderAll([]stubSpec{{"channel", fmt.Sprintf("app/channels/%s_channel.go", data.Lower)}}, data)
	case "migration":
		mig := migrationName(rawName, now)
		data.Struct = "M_" + mig
		return renderAll([]stubSpec{{"migration", fmt.Sprintf("database/migrations/%s.go", mig)}}, data)
	case "scaffold":
		mig := fmt.Sprintf("%s_create_%s_table", now.Format("20060102150405"), data.Table)
		data.Struct = "M_" + mig
		return renderAll([]stubSpec{
			{"model", fmt.Sprintf("app/models/%s.go", data.Lower)},
			{"controller", fmt.Sprintf("app/controllers/%s_controller.go", data.Lower)},
			{"migration", fmt.Sprintf("database/migrations/%s.go", mig)},
			{"seeder", fmt.Sprintf("database/seeders/%s_seeder.go", data.Lower)},
		}, data)
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}

type stubSpec struct {
	stub string
	path string
}

func renderAll(specs []stubSpec, data stubData) ([]genFile, error) {
	files := make([]genFile, 0, len(specs))
	for _, s := range specs {
		content, err := renderStub(s.stub, data)
		if err != nil {
			return nil, err
		}
		files = append(files, genFile{path: s.path, content: content})
	}
	return files, nil
}

// projectModule reads the module path from go.mod in the current
// directory. Generated files import the project's own packages by it.
func projectModule() string {
	data, err := os.ReadFile("go.mod")
	if err != nil {
		return "app"
	}
	for _, line := range strings.Split(string(data), "\n") {
		if mod, ok := strings.CutPrefix(strings.TrimSpace(line), "module "); ok {
			return strings.TrimSpace(mod)
		}
	}
	return "app"
}

// migrationName slugs a free-form migration description and prefixes the
// timestamp: "add email to users" → "20260831120000_add_email_to_users".
func migrationName(raw string, now time.Time) string {
	return now.Format("20060102150405") + "_" + snake(raw)
}

func printRoutesHint(rawName string) {
	name := pascal(rawName)
	plural := tableName(rawName)
	fmt.Printf("\nAdd to app/routes/routes.go:\n\n")
	fmt.Printf("    c := controllers.New%sController()\n", name)
	fmt.Printf("    r.Resource(\"/%s\", \"%s\", router.ResourceHandlers{\n", plural, plural)
	fmt.Printf("        Index:   ctx.Wrap(c.Index),\n")
	fmt.Printf("        Store:   ctx.Wrap(c.Store),\n")
	fmt.Printf("        Show:    ctx.Wrap(c.Show),\n")
	fmt.Printf("        Update:  ctx.Wrap(c.Update),\n")
	fmt.Printf("        Destroy: ctx.Wrap(c.Destroy),\n")
	fmt.Printf("    })\n\n")
}
