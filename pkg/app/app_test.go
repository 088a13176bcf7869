package app

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/voltframework/volt/pkg/router"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := New().run([]string{"frobnicate"})
	if !errors.Is(err, errUnknownCommand) {
		t.Fatalf("want errUnknownCommand, got %v", err)
	}
}

func TestRunHelp(t *testing.T) {
	if err := New().run([]string{"help"}); err != nil {
		t.Fatalf("help: %v", err)
	}
}

func TestRoutesCommandWithNoRoutes(t *testing.T) {
	if err := cmdRoutes(New()); err != nil {
		t.Fatalf("routes: %v", err)
	}
}

func TestKernelServesRegisteredRoutes(t *testing.T) {
	a := New().Routes(func(r *router.Router) {
		r.Get("/ping", "ping", func(w http.ResponseWriter, req *http.Request) {
			fmt.Fprint(w, "pong")
		})
	})

	h := buildHandler(a)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "pong" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("pipeline should issue a request ID")
	}
}

func TestKernelExposesMetricsEndpoint(t *testing.T) {
	a := New().Routes(func(r *router.Router) {
		r.Get("/warm", "warm", func(w http.ResponseWriter, req *http.Request) {})
	})
	h := buildHandler(a)

	// Observe one request so the labelled series exist.
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/warm", nil))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "volt_") {
		t.Error("metrics output should contain volt_ series")
	}
}

func TestKernelAppliesCustomMiddleware(t *testing.T) {
	a := New().
		Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Custom", "yes")
				next.ServeHTTP(w, r)
			})
		}).
		Routes(func(r *router.Router) {
			r.Get("/x", "x", func(w http.ResponseWriter, req *http.Request) {})
		})

	rec := httptest.NewRecorder()
	buildHandler(a).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Header().Get("X-Custom") != "yes" {
		t.Error("custom middleware should run")
	}
}

func TestSeedersRunInOrder(t *testing.T) {
	var order []string
	a := New().Seeders(
		func() { order = append(order, "first") },
		func() { order = append(order, "second") },
	)

	if err := runSeeders(a.seeders); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v", order)
	}
}

func consoleDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	return db
}

func TestConsoleScript(t *testing.T) {
	db := consoleDB(t)
	if err := db.Exec("CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT)").Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Exec("INSERT INTO widgets (name) VALUES ('anvil')").Error; err != nil {
		t.Fatal(err)
	}

	a := New().Routes(func(r *router.Router) {
		r.Get("/widgets", "widgets.index", func(w http.ResponseWriter, req *http.Request) {})
	})

	in := strings.NewReader("tables\nsql SELECT name FROM widgets\nroutes\nbogus\nexit\n")
	var out bytes.Buffer
	if err := runConsole(a, db, in, &out); err != nil {
		t.Fatalf("console: %v", err)
	}

	got := out.String()
	for _, want := range []string{"widgets", "anvil", "widgets.index", "unknown command"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestConsoleExitsOnEOF(t *testing.T) {
	var out bytes.Buffer
	if err := runConsole(New(), consoleDB(t), strings.NewReader(""), &out); err != nil {
		t.Fatalf("eof: %v", err)
	}
}
