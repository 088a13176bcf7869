package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/voltframework/volt/pkg/response"
)

// limiter tracks fixed-window request counts per client IP.
type limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	counts  map[string]int
	resetAt time.Time
}

func (l *limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.After(l.resetAt) {
		l.counts = make(map[string]int)
		l.resetAt = now.Add(l.window)
	}

	l.counts[ip]++
	return l.counts[ip] <= l.max
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the client.
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return fwd
	}
	return r.RemoteAddr
}

// RateLimit allows each client IP max requests per window and answers 429
// beyond that. The window map is discarded wholesale at each reset, so memory
// stays bounded without a janitor goroutine.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	l := &limiter{
		max:     max,
		window:  window,
		counts:  make(map[string]int),
		resetAt: time.Now().Add(window),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
