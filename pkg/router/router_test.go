package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/voltframework/volt/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAndReversal(t *testing.T) {
	r := router.New()
	r.Get("/posts/{id}", "posts.show", ok)

	url, err := r.URL("posts.show", map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/posts/42" {
		t.Errorf("URL = %q, want /posts/42", url)
	}

	if _, err := r.URL("posts.show", nil); err == nil {
		t.Error("expected error when params are missing")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route name")
	}
}

func TestGroupPrefixAndDispatch(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	v1 := api.Group("v1")
	v1.Get("/ping", "v1.ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("pong"))
	})

	if p, ok := r.Path("v1.ping"); !ok || p != "/api/v1/ping" {
		t.Fatalf("Path(v1.ping) = %q, %v", p, ok)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Errorf("GET /api/v1/ping = %d %q", rec.Code, rec.Body.String())
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Tag", "on")
			next.ServeHTTP(w, req)
		})
	}

	r := router.New()
	r.Group("/admin", tag).Get("/users", "admin.users", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/admin/users", nil))
	if rec.Header().Get("X-Tag") != "on" {
		t.Error("group middleware did not run")
	}
}

func TestResourceRegistersConventionalSet(t *testing.T) {
	r := router.New()
	r.Resource("/widgets", "widgets", router.ResourceHandlers{
		Index:   ok,
		Store:   ok,
		Show:    ok,
		Update:  ok,
		Destroy: ok,
	})

	want := map[string]string{
		"widgets.index":   "GET /widgets",
		"widgets.store":   "POST /widgets",
		"widgets.show":    "GET /widgets/{id}",
		"widgets.update":  "PUT /widgets/{id}",
		"widgets.destroy": "DELETE /widgets/{id}",
	}

	infos := r.Routes()
	if len(infos) != len(want) {
		t.Fatalf("got %d routes, want %d", len(infos), len(want))
	}
	for _, ri := range infos {
		if want[ri.Name] != ri.Method+" "+ri.Path {
			t.Errorf("route %s = %s %s, want %s", ri.Name, ri.Method, ri.Path, want[ri.Name])
		}
	}
}

func TestRoutesSortedByPathThenMethod(t *testing.T) {
	r := router.New()
	r.Post("/b", "b.store", ok)
	r.Get("/b", "b.index", ok)
	r.Get("/a", "a.index", ok)

	infos := r.Routes()
	got := []string{}
	for _, ri := range infos {
		got = append(got, ri.Method+" "+ri.Path)
	}
	want := []string{"GET /a", "GET /b", "POST /b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestParamExtraction(t *testing.T) {
	r := router.New()
	r.Get("/users/{id}", "users.show", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(router.Param(req, "id")))
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/users/7", nil))
	if rec.Body.String() != "7" {
		t.Errorf("param id = %q, want 7", rec.Body.String())
	}
}
