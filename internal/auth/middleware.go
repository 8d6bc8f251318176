package auth

import (
	"net/http"
	"strings"

	"github.com/css-society/portal/internal/platform/httpx"
	"github.com/css-society/portal/internal/rbac"
)

// Authenticator validates the bearer token and loads the current account
// into the request context. Both failure modes (bad token, vanished account)
// answer 401 so the client knows to log in again; capability failures are
// the gate's 403.
func Authenticator(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			claims, err := service.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			principal, err := service.ResolvePrincipal(r.Context(), claims)
			if err != nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			ctx := rbac.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
