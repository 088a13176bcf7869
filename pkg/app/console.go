package app

// console.go implements `volt console`, an interactive shell over the
// project database.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"gorm.io/gorm"

	"github.com/voltframework/volt/config"
	"github.com/voltframework/volt/pkg/database"
)

func cmdConsole(a *Application) error {
	if err := bootDB(); err != nil {
		return err
	}
	fmt.Printf("Volt console (%s). Type help for commands, exit to quit.\n",
		config.DatabaseDriver())
	return runConsole(a, database.DB, os.Stdin, os.Stdout)
}

// runConsole drives the REPL loop. Split from cmdConsole so tests can feed
// scripted input.
func runConsole(a *Application, db *gorm.DB, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "volt> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "exit", "quit", "q":
			return nil
		case "help":
			consoleHelp(out)
		case "tables":
			consoleTables(db, out)
		case "routes":
			consoleRoutes(a, out)
		case "sql":
			if strings.TrimSpace(rest) == "" {
				fmt.Fprintln(out, "usage: sql <query>")
				continue
			}
			consoleSQL(db, rest, out)
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", cmd)
		}
	}
}

func consoleHelp(out io.Writer) {
	fmt.Fprint(out, `Commands:
  tables        List database tables
  sql <query>   Run a raw SQL query
  routes        List registered routes
  help          Show this help
  exit          Leave the console
`)
}

func consoleTables(db *gorm.DB, out io.Writer) {
	tables, err := db.Migrator().GetTables()
	if err != nil {
		fmt.Fprintln(out, "error:", err)
		return
	}
	sort.Strings(tables)
	for _, t := range tables {
		fmt.Fprintln(out, t)
	}
	if len(tables) == 0 {
		fmt.Fprintln(out, "(no tables)")
	}
}

func consoleRoutes(a *Application, out io.Writer) {
	r := freshRouter(a)
	routes := r.Routes()
	if len(routes) == 0 {
		fmt.Fprintln(out, "(no routes)")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, ri := range routes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	w.Flush()
}

func consoleSQL(db *gorm.DB, query string, out io.Writer) {
	rows := []map[string]any{}
	if err := db.Raw(query).Scan(&rows).Error; err != nil {
		fmt.Fprintln(out, "error:", err)
		return
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "(no rows)")
		return
	}

	cols := make([]string, 0, len(rows[0]))
	for c := range rows[0] {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(cols, "\t")))
	for _, row := range rows {
		vals := make([]string, len(cols))
		for i, c := range cols {
			vals[i] = fmt.Sprintf("%v", row[c])
		}
		fmt.Fprintln(w, strings.Join(vals, "\t"))
	}
	w.Flush()
	fmt.Fprintf(out, "%d row(s)\n", len(rows))
}
