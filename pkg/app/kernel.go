package app

// kernel.go builds the http.Handler from an Application. Pure framework
// code: the standard middleware pipeline, auto-migration of registered
// models, then the project's route callbacks.

import (
	"net/http"
	"time"

	"github.com/voltframework/volt/pkg/database"
	"github.com/voltframework/volt/pkg/metrics"
	"github.com/voltframework/volt/pkg/middleware"
	"github.com/voltframework/volt/pkg/reqid"
	"github.com/voltframework/volt/pkg/router"
	"github.com/voltframework/volt/pkg/session"
)

func buildHandler(a *Application) http.Handler {
	if database.DB != nil && len(a.models) > 0 {
		database.DB.AutoMigrate(a.models...)
	}

	r := router.New()

	// Standard pipeline, outermost first:
	// metrics wraps everything so latency covers the full stack; recovery
	// sits before anything that could panic; request ID must exist before
	// the logger reads it; session, CORS and the rate limiter follow.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))
	r.Use(a.middleware...)

	// Prometheus scrape endpoint.
	r.HandleFunc("/metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}

	return r.Handler()
}
