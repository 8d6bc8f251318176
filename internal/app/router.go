package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/css-society/portal/internal/announcements"
	"github.com/css-society/portal/internal/auth"
	"github.com/css-society/portal/internal/contacts"
	"github.com/css-society/portal/internal/events"
	"github.com/css-society/portal/internal/members"
	"github.com/css-society/portal/internal/observability"
	"github.com/css-society/portal/internal/rbac"
	"github.com/css-society/portal/internal/registrations"
	"github.com/css-society/portal/internal/team"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger               *slog.Logger
	Config               *Config
	AuthService          *auth.Service
	AuthHandler          *auth.Handler
	MembersHandler       *members.Handler
	EventsHandler        *events.Handler
	AnnouncementsHandler *announcements.Handler
	TeamHandler          *team.Handler
	RegistrationsHandler *registrations.Handler
	ContactsHandler      *contacts.Handler
	Metrics              *observability.Metrics
}

// NewRouter constructs the chi.Router with portal defaults. Public reads and
// form submissions share path prefixes with the protected management verbs;
// every protected group re-resolves the account before the capability gate
// runs, so no record lookup happens for unauthorized callers.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	authn := auth.Authenticator(params.AuthService)
	gate := rbac.Middleware{Logger: params.Logger}

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/events", func(r chi.Router) {
		params.EventsHandler.MountPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(authn, gate.Require(events.CapabilityName))
			params.EventsHandler.MountAdminRoutes(r)
		})
	})

	r.Route("/announcements", func(r chi.Router) {
		params.AnnouncementsHandler.MountPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(authn, gate.Require(announcements.CapabilityName))
			params.AnnouncementsHandler.MountAdminRoutes(r)
		})
	})

	r.Route("/team", func(r chi.Router) {
		params.TeamHandler.MountPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(authn, gate.Require(team.CapabilityName))
			params.TeamHandler.MountAdminRoutes(r)
		})
	})

	r.Route("/memberships", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(FormRateLimiter())
			params.MembersHandler.MountPublicRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(authn)
			params.MembersHandler.MountAdminRoutes(r)
		})
	})

	r.Route("/register", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(FormRateLimiter())
			params.RegistrationsHandler.MountPublicRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(authn, gate.Require(registrations.CapabilityName))
			params.RegistrationsHandler.MountAdminRoutes(r)
		})
	})

	r.Route("/messages", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(FormRateLimiter())
			params.ContactsHandler.MountPublicRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(authn)
			params.ContactsHandler.MountAdminRoutes(r)
		})
	})

	return r
}
