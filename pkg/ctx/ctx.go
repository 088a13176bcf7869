// Package ctx gives Volt handlers a single request context instead of the
// (w, r) pair:
//
//	func Show(c *ctx.Context) {
//	    id := c.Param("id")
//	    c.JSON(http.StatusOK, map[string]any{"id": id})
//	}
//
//	r.Get("/posts/{id}", "posts.show", ctx.Wrap(Show))
package ctx

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/voltframework/volt/pkg/response"
	"github.com/voltframework/volt/pkg/router"
	"github.com/voltframework/volt/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap adapts a HandlerFunc to net/http.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(&Context{W: w, R: r})
	}
}

// Context bundles the response writer and request with helpers.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// Param returns a URL path parameter.
func (c *Context) Param(key string) string { return router.Param(c.R, key) }

// ParamInt returns a numeric path parameter, with ok=false on junk.
func (c *Context) ParamInt(key string) (int, bool) {
	n, err := strconv.Atoi(c.Param(key))
	return n, err == nil
}

// Query returns a query-string value.
func (c *Context) Query(key string) string { return c.R.URL.Query().Get(key) }

// DefaultQuery returns a query value or def when empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// QueryInt parses a query value as an int, falling back to def.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// Body returns the raw request body. It can only be read once.
func (c *Context) Body() ([]byte, error) { return io.ReadAll(c.R.Body) }

// ClientIP returns the requester's IP, honouring X-Forwarded-For.
func (c *Context) ClientIP() string {
	if fwd := c.R.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	ip := c.R.RemoteAddr
	if i := strings.LastIndex(ip, ":"); i != -1 {
		ip = ip[:i]
	}
	return ip
}

// BindJSON decodes the body into dest and runs struct-tag validation.
// On failure it writes the error response itself and returns false, so
// handlers can bail with a bare return.
func (c *Context) BindJSON(dest any) bool {
	if err := json.NewDecoder(c.R.Body).Decode(dest); err != nil {
		response.Error(c.W, http.StatusBadRequest, "Malformed JSON body")
		return false
	}
	if errs := validate.Struct(dest); len(errs) > 0 {
		response.ValidationError(c.W, errs)
		return false
	}
	return true
}

// JSON writes a JSON body with the given status.
func (c *Context) JSON(status int, v any) {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(status)
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

// NoContent writes 204.
func (c *Context) NoContent() { c.W.WriteHeader(http.StatusNoContent) }
