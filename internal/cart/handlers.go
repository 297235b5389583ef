package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-vidria/internal/common"
	"github.com/noah-isme/backend-vidria/internal/obs"
)

// Handler wires cart re-pricing to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	Currency string
}

// Reprice handles POST /v1/cart/items/reprice. The quote builder calls it on
// every dimension, glass, or color change.
func (h *Handler) Reprice(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var req RepriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			var fieldErrs validator.ValidationErrors
			details := any(nil)
			if errors.As(err, &fieldErrs) {
				m := make(map[string]string, len(fieldErrs))
				for _, fe := range fieldErrs {
					m[fe.Field()] = fe.Tag()
				}
				details = m
			}
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid reprice request", details)
			return
		}
	}
	result, err := h.Svc.Reprice(r.Context(), req)
	if obs.CartRepriceTotal != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		obs.CartRepriceTotal.WithLabelValues(outcome).Inc()
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": result, "currency": h.Currency})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.WriteAppError(w, appErr)
		return
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}
