// Package router wraps chi with named routes, groups and URL reversal.
//
// Routes registered with a non-empty name can be listed (volt routes) and
// reversed into concrete URLs:
//
//	r.Get("/posts/{id}", "posts.show", showPost)
//	url, _ := r.URL("posts.show", map[string]string{"id": "42"})  // /posts/42
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Middleware is the standard net/http middleware shape.
type Middleware func(http.Handler) http.Handler

// RouteInfo describes one named route for listings.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux chi.Router

	mu    sync.RWMutex
	named map[string]string // name → path
	infos []RouteInfo
}

func New() *Router {
	return &Router{
		mux:   chi.NewRouter(),
		named: make(map[string]string),
	}
}

// Handler returns the underlying http.Handler to pass to a server.
func (r *Router) Handler() http.Handler { return r.mux }

// Use appends global middleware. Must be called before any route is mounted
// (chi restriction).
func (r *Router) Use(mws ...Middleware) {
	for _, mw := range mws {
		r.mux.Use(mw)
	}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodGet, path, name, h, mws)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodPost, path, name, h, mws)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodPut, path, name, h, mws)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodPatch, path, name, h, mws)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodDelete, path, name, h, mws)
}

// HandleFunc mounts h for every method on path, unnamed. Used for endpoints
// like /metrics where the method set does not matter.
func (r *Router) HandleFunc(path string, h http.HandlerFunc) {
	r.mux.HandleFunc(normalize(path), h)
}

// Param reads a chi URL parameter from a request.
func Param(req *http.Request, key string) string {
	return chi.URLParam(req, key)
}

func (r *Router) mount(method, path, name string, h http.Handler, mws []Middleware) {
	full := normalize(path)
	r.mux.Method(method, full, wrap(h, mws))
	r.record(method, full, name)
}

func (r *Router) record(method, path, name string) {
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.named[name] = path
	r.infos = append(r.infos, RouteInfo{Method: method, Path: path, Name: name})
}

// Routes returns every named route, sorted by path then method.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	out := append([]RouteInfo(nil), r.infos...)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Path returns the registered path for a route name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.named[name]
	return p, ok
}

// URL reverses a named route, substituting {param} placeholders.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("router: route %q not found", name)
	}
	for k, v := range params {
		path = strings.ReplaceAll(path, "{"+k+"}", v)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("router: missing parameters for route %q", name)
	}
	return path, nil
}

// ── Groups ───────────────────────────────────────────────────────────────────

// Group is a path-prefixed route collection sharing a middleware stack.
type Group struct {
	router *Router
	prefix string
	mws    []Middleware
}

func (r *Router) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		router: r,
		prefix: normalize(prefix),
		mws:    append([]Middleware(nil), mws...),
	}
}

func (g *Group) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		router: g.router,
		prefix: join(g.prefix, prefix),
		mws:    append(append([]Middleware(nil), g.mws...), mws...),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodGet, path, name, h, mws)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodPost, path, name, h, mws)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodPut, path, name, h, mws)
}

func (g *Group) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodPatch, path, name, h, mws)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodDelete, path, name, h, mws)
}

func (g *Group) mount(method, path, name string, h http.Handler, mws []Middleware) {
	full := join(g.prefix, path)
	combined := append(append([]Middleware(nil), g.mws...), mws...)
	g.router.mux.Method(method, full, wrap(h, combined))
	g.router.record(method, full, name)
}

// ── Resource ─────────────────────────────────────────────────────────────────

// ResourceHandlers holds the five conventional REST handlers. Nil entries are
// skipped, so partial resources are fine.
type ResourceHandlers struct {
	Index   http.HandlerFunc // GET    /things
	Store   http.HandlerFunc // POST   /things
	Show    http.HandlerFunc // GET    /things/{id}
	Update  http.HandlerFunc // PUT    /things/{id}
	Destroy http.HandlerFunc // DELETE /things/{id}
}

// Resource mounts a conventional REST route set under path, naming each
// route "<name>.<action>".
func (r *Router) Resource(path, name string, h ResourceHandlers, mws ...Middleware) {
	base := normalize(path)
	item := join(base, "{id}")

	if h.Index != nil {
		r.mount(http.MethodGet, base, name+".index", h.Index, mws)
	}
	if h.Store != nil {
		r.mount(http.MethodPost, base, name+".store", h.Store, mws)
	}
	if h.Show != nil {
		r.mount(http.MethodGet, item, name+".show", h.Show, mws)
	}
	if h.Update != nil {
		r.mount(http.MethodPut, item, name+".update", h.Update, mws)
	}
	if h.Destroy != nil {
		r.mount(http.MethodDelete, item, name+".destroy", h.Destroy, mws)
	}
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func wrap(h http.Handler, mws []Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func join(parts ...string) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.Trim(p, "/"); t != "" {
			segs = append(segs, t)
		}
	}
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	return join(path)
}
