// Package logger provides Volt's structured logger built on log/slog.
//
// In development it writes human-readable text at DEBUG level; in production
// it writes JSON at INFO level. When LOG_MONGO_URI is configured an
// asynchronous MongoDB sink is attached alongside stdout, so log lines end up
// both on the console and in a queryable collection.
//
// Handlers get a per-request logger pre-tagged with the request ID:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order shipped", "order_id", id)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/voltframework/volt/config"
)

// L is the base logger. Packages that have no request context log through it.
var L *slog.Logger

var mongoSink *MongoHandler

func init() {
	L = slog.New(stdoutHandler())
	slog.SetDefault(L)
}

func stdoutHandler() slog.Handler {
	if config.IsProduction() {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// Setup re-reads config and attaches the MongoDB sink if one is configured.
// Called by the application bootstrap after config.Load(); safe to skip in
// tests and one-off commands.
func Setup() error {
	uri := config.LogMongoURI()
	if uri == "" {
		return nil
	}

	h, err := NewMongoHandler(uri, config.LogMongoDB(), "logs")
	if err != nil {
		return err
	}
	mongoSink = h
	L = slog.New(NewTeeHandler(stdoutHandler(), h))
	slog.SetDefault(L)
	return nil
}

// Shutdown flushes and closes the MongoDB sink, when one is attached.
func Shutdown() {
	if mongoSink != nil {
		mongoSink.Close()
		mongoSink = nil
	}
}

// ── Per-request logger ───────────────────────────────────────────────────────

type ctxKey struct{}

// Inject stores a request-scoped logger in ctx. Called by the request-logging
// middleware; application code rarely needs it.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// WithCtx returns the request-scoped logger stored in ctx, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// ── Shorthand helpers ────────────────────────────────────────────────────────

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
