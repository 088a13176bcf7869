package app

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/voltframework/volt/config"
	"github.com/voltframework/volt/internal/server"
	"github.com/voltframework/volt/pkg/cache"
	"github.com/voltframework/volt/pkg/database"
	"github.com/voltframework/volt/pkg/logger"
	"github.com/voltframework/volt/pkg/migration"
	"github.com/voltframework/volt/pkg/router"
	"github.com/voltframework/volt/pkg/storage"
)

// boot loads config and connects the framework services the server needs.
// Cache and storage degrade gracefully when unreachable; the database does
// not, since nearly everything depends on it.
func boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := logger.Setup(); err != nil {
		logger.Warn("logger: mongo sink unavailable", "error", err)
	}
	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("cache: redis unavailable, sessions fall back to memory", "error", err)
	}
	storage.Connect()
	return nil
}

// bootDB is the lighter boot used by db subcommands: config plus database,
// no HTTP-facing services.
func bootDB() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.Connect()
}

func cmdServer(a *Application) error {
	if err := boot(); err != nil {
		return err
	}
	defer logger.Shutdown()
	return server.Start(buildHandler(a))
}

// freshRouter runs the project's route callbacks against an empty router,
// without middleware or a listening server. Used by routes and console.
func freshRouter(a *Application) *router.Router {
	r := router.New()
	for _, fn := range a.routesFns {
		fn(r)
	}
	return r
}

func cmdRoutes(a *Application) error {
	routes := freshRouter(a).Routes()
	if len(routes) == 0 {
		fmt.Println("No routes registered.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	for _, ri := range routes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}

func cmdDB(a *Application, args []string) error {
	sub := "migrate"
	if len(args) > 0 {
		sub = args[0]
	}

	if err := bootDB(); err != nil {
		return err
	}
	runner := migration.New(database.DB)

	switch sub {
	case "migrate":
		return runner.Run()
	case "rollback":
		return runner.Rollback()
	case "status":
		return runner.Status()
	case "reset":
		return runner.Reset()
	case "seed":
		return runSeeders(append(a.seeders, globalSeeders...))
	default:
		return fmt.Errorf("unknown db command: %q (want %s)", sub,
			strings.Join([]string{"migrate", "rollback", "status", "seed", "reset"}, ", "))
	}
}

func runSeeders(seeders []SeederFunc) error {
	if len(seeders) == 0 {
		fmt.Println("No seeders registered. Use app.RegisterSeeder() or .Seeders() on Application.")
		return nil
	}
	for _, fn := range seeders {
		fn()
	}
	fmt.Printf("Seeding complete, %d seeders ran.\n", len(seeders))
	return nil
}
