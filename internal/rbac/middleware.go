package rbac

import (
	"log/slog"
	"net/http"

	"github.com/css-society/portal/internal/platform/httpx"
)

// Middleware wires authorization helpers for HTTP handlers. It assumes an
// authenticator already placed a freshly loaded Principal in the request
// context; a missing principal is an authentication failure, not an
// authorization one.
type Middleware struct {
	Logger *slog.Logger
}

// Require gates a route behind the named capability. Super administrators
// bypass the check entirely; everyone else needs both the general
// administrative flag and the specific capability flag. The denial message
// never names the missing flag.
func (m Middleware) Require(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if p == nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if p.SuperAdmin {
				next.ServeHTTP(w, r)
				return
			}
			if p.Permissions.IsAdmin && p.Permissions.Allows(capability) {
				next.ServeHTTP(w, r)
				return
			}
			if m.Logger != nil {
				m.Logger.Warn("capability denied",
					slog.String("capability", capability),
					slog.Int64("account", p.ID),
					slog.String("kind", string(p.Kind)))
			}
			httpx.RespondError(w, httpx.ErrForbidden)
		})
	}
}
