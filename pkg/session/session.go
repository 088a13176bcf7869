// Package session provides cookie sessions for Volt, persisted through
// pkg/cache (Redis). Without Redis, sessions are per-request only: the cookie
// is still issued but data does not survive across requests.
//
//	r.Use(session.Middleware(session.DefaultOptions()))
//
//	sess := session.FromCtx(req)
//	sess.Set("user_id", 42)
//	sess.Save(w)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/voltframework/volt/pkg/cache"
)

// Options configures cookie and lifetime behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions suits local development; set Secure in production.
func DefaultOptions() Options {
	return Options{
		CookieName: "volt_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is the per-request session handle.
type Session struct {
	id      string
	data    map[string]any
	opts    Options
	changed bool
}

func newID() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func cacheKey(id string) string { return "volt:session:" + id }

// ID returns the session identifier carried in the cookie.
func (s *Session) ID() string { return s.id }

// Set stores value under key.
func (s *Session) Set(key string, value any) {
	s.data[key] = value
	s.changed = true
}

// Get returns the stored value for key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString is a typed getter.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// GetInt is a typed getter. JSON round-trips numbers as float64.
func (s *Session) GetInt(key string) (int, bool) {
	switch n := s.data[key].(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

// Delete removes key from the session.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

// Flash stores a one-shot value removed by the next GetFlash.
func (s *Session) Flash(key string, value any) {
	s.Set("_flash_"+key, value)
}

// GetFlash retrieves and consumes a flash value.
func (s *Session) GetFlash(key string) (any, bool) {
	v, ok := s.Get("_flash_" + key)
	if ok {
		s.Delete("_flash_" + key)
	}
	return v, ok
}

// Invalidate clears all session data (logout).
func (s *Session) Invalidate() {
	s.data = map[string]any{}
	s.changed = true
}

// Save persists changed data to the cache and (re)issues the cookie.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := cache.Set(cacheKey(s.id), json.RawMessage(raw), s.opts.TTL); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
	s.changed = false
	return nil
}

// Middleware loads or creates the session for every request and stores it in
// the request context.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts, data: map[string]any{}}

			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				sess.id = cookie.Value
				var data map[string]any
				if cache.Get(cacheKey(sess.id), &data) && data != nil {
					sess.data = data
				}
			} else {
				sess.id = newID()
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx returns the request's session. When the middleware is not
// installed it returns a fresh throwaway session.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return &Session{id: newID(), data: map[string]any{}, opts: DefaultOptions()}
}
