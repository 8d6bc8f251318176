package announcements

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/css-society/portal/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the news feed.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountPublicRoutes registers the open feed endpoint.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.handlePublicList)
}

// MountAdminRoutes registers the protected management endpoints.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *Handler) handlePublicList(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.PublicList(r.Context())
	if err != nil {
		h.logger.Error("list announcements", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "title and description are required")
		return
	}
	item, err := h.service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, httpx.ErrValidation) {
			httpx.RespondError(w, err)
			return
		}
		h.logger.Error("create announcement", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid announcement id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			httpx.RespondError(w, err)
			return
		}
		h.logger.Error("delete announcement", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "announcement deleted"})
}
