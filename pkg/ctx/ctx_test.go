package ctx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voltframework/volt/pkg/ctx"
	"github.com/voltframework/volt/pkg/router"
)

func TestWrapAndParams(t *testing.T) {
	r := router.New()
	r.Get("/posts/{id}", "posts.show", ctx.Wrap(func(c *ctx.Context) {
		id, ok := c.ParamInt("id")
		if !ok {
			c.JSON(http.StatusBadRequest, map[string]any{"error": "bad id"})
			return
		}
		c.JSON(http.StatusOK, map[string]any{"id": id, "page": c.QueryInt("page", 1)})
	}))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/posts/12?page=3", nil))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body["id"] != float64(12) || body["page"] != float64(3) {
		t.Errorf("body = %v", body)
	}

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/posts/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: status = %d, want 400", rec.Code)
	}
}

type createInput struct {
	Title string `json:"title" validate:"required,min=3"`
}

func TestBindJSONValidates(t *testing.T) {
	handler := ctx.Wrap(func(c *ctx.Context) {
		var in createInput
		if !c.BindJSON(&in) {
			return
		}
		c.JSON(http.StatusCreated, in)
	})

	// Malformed body.
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("POST", "/", strings.NewReader("{nope")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed: status = %d, want 400", rec.Code)
	}

	// Fails validation.
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"ab"}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid: status = %d, want 422", rec.Code)
	}

	// Valid.
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"hello"}`)))
	if rec.Code != http.StatusCreated {
		t.Errorf("valid: status = %d, want 201", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.9:4444"
	c := &ctx.Context{R: req}
	if ip := c.ClientIP(); ip != "192.0.2.9" {
		t.Errorf("ClientIP = %q", ip)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	if ip := c.ClientIP(); ip != "203.0.113.5" {
		t.Errorf("ClientIP with XFF = %q", ip)
	}
}
