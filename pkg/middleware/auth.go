package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/voltframework/volt/pkg/auth"
	"github.com/voltframework/volt/pkg/response"
)

type claimsKey struct{}

// Auth is a bearer-token guard. Valid requests continue with the token's
// claims stored in the context; everything else gets a 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the claims set by Auth, or nil outside a guarded
// route.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}
