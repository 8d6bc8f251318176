package members

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/css-society/portal/internal/platform/httpx"
)

// Handler wires HTTP endpoints for membership management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountPublicRoutes registers the open application endpoint.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/", h.handleApply)
}

// MountAdminRoutes registers the protected review endpoints.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Patch("/{id}", h.handleApprove)
	r.Patch("/{id}/permissions", h.handleUpdatePermissions)
	r.Delete("/{id}", h.handleDelete)
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	var app Application
	if err := httpx.DecodeJSON(r, &app); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(app); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "all application fields are required")
		return
	}
	member, err := h.service.Apply(r.Context(), app)
	if err != nil {
		if errors.Is(err, httpx.ErrDuplicate) {
			httpx.Problem(w, http.StatusConflict, "Duplicate", "an application with this roll number or email already exists")
			return
		}
		h.logger.Error("apply membership", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, member)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list memberships", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if list == nil {
		list = []Member{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

type approveRequest struct {
	Approved bool `json:"approved"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid member id")
		return
	}
	req := approveRequest{Approved: true}
	if r.ContentLength > 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
			return
		}
	}
	member, err := h.service.Approve(r.Context(), id, req.Approved)
	if err != nil {
		h.respondServiceError(w, err, "approve membership")
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) handleUpdatePermissions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid member id")
		return
	}
	var update PermissionUpdate
	if err := httpx.DecodeJSON(r, &update); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	member, err := h.service.UpdatePermissions(r.Context(), id, update)
	if err != nil {
		h.respondServiceError(w, err, "update permissions")
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid member id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "delete membership")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "record deleted"})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, httpx.ErrNotFound) {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
