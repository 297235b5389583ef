package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/backend-vidria/internal/common"
)

// Handler exposes the read-side catalog endpoints the quote builder consumes.
type Handler struct {
	service *Service
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service}
}

// Models handles GET /v1/catalog/models.
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	models, err := h.service.ListModels(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	page, perPage := common.ParsePagination(r, h.service.DefaultLimit())
	perPage = h.service.ClampLimit(perPage)
	paged, total := common.Paginate(models, page, perPage)
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       paged,
		"pagination": common.Pagination{Page: page, PerPage: perPage, TotalItems: total},
	})
}

// ModelDetail handles GET /v1/catalog/models/{id}.
func (h *Handler) ModelDetail(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid model id", nil)
		return
	}
	model, err := h.service.GetModel(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": model})
}

// GlassTypes handles GET /v1/catalog/glass-types.
func (h *Handler) GlassTypes(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	rows, err := h.service.ListGlassTypes(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// Colors handles GET /v1/catalog/colors.
func (h *Handler) Colors(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	rows, err := h.service.ListColors(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// Services handles GET /v1/catalog/services.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	rows, err := h.service.ListServices(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// Adjustments handles GET /v1/catalog/adjustments.
func (h *Handler) Adjustments(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	rows, err := h.service.ListAdjustmentPresets(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		code := appErr.Code
		if code == "" {
			code = "INTERNAL"
		}
		common.JSONError(w, status, code, appErr.Message, appErr.Details)
		return
	}
	if errors.Is(err, ErrNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog lookup failed", nil)
}
