package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/css-society/portal/internal/platform/httpx"
)

// Activator sets the password on an approved membership record. Implemented
// by the members service; kept as an interface so login and activation share
// one mount point without the packages depending on each other.
type Activator interface {
	Activate(ctx context.Context, rollNo, email, password string) error
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	activator Activator
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, activator Activator) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		activator: activator,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/activate", h.handleActivate)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		// Shape errors on the credentials themselves stay generic: a missing
		// or non-email identifier can never match an account anyway.
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
		return
	}

	token, profile, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, loginResponse{Token: token, Profile: profile})
}

type activateRequest struct {
	RollNo   string `json:"rollNo" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "rollNo, email and password are required")
		return
	}

	if err := h.activator.Activate(r.Context(), req.RollNo, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, httpx.ErrNotFound):
			// The response never reveals which of roll number, email or
			// approval state failed to match.
			httpx.Problem(w, http.StatusNotFound, "Not Found", "no approved profile matches these records")
		case errors.Is(err, httpx.ErrValidation), errors.Is(err, httpx.ErrDuplicate):
			httpx.RespondError(w, err)
		default:
			h.logger.Error("activate", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "account activated, you can now sign in"})
}
