package quote

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-vidria/internal/common"
	"github.com/noah-isme/backend-vidria/internal/obs"
)

// Handler wires quote pricing to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	Currency string
}

// PriceItem handles POST /v1/quotes/items/price.
func (h *Handler) PriceItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if details, ok := h.validate(req); !ok {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid item request", details)
		return
	}
	start := time.Now()
	breakdown, err := h.Svc.PriceItem(r.Context(), req)
	observeItem(time.Since(start), err)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": breakdown, "currency": h.Currency})
}

// PriceQuote handles POST /v1/quotes/price.
func (h *Handler) PriceQuote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if details, ok := h.validate(req); !ok {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid quote request", details)
		return
	}
	start := time.Now()
	breakdown, err := h.Svc.PriceQuote(r.Context(), req)
	observeQuote(time.Since(start), err)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": breakdown, "currency": h.Currency})
}

// validate runs struct validation and flattens field errors for the response.
func (h *Handler) validate(v any) (any, bool) {
	if h.Validate == nil {
		return nil, true
	}
	err := h.Validate.Struct(v)
	if err == nil {
		return nil, true
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Namespace()] = fe.Tag()
		}
		return details, false
	}
	return nil, false
}

func observeItem(d time.Duration, err error) {
	if obs.QuoteItemsPriced == nil {
		return
	}
	obs.QuoteItemsPriced.WithLabelValues(outcome(err)).Inc()
	obs.PricingDuration.WithLabelValues("item").Observe(obs.DurationMillis(d))
}

func observeQuote(d time.Duration, err error) {
	if obs.QuotePriced == nil {
		return
	}
	obs.QuotePriced.WithLabelValues(outcome(err)).Inc()
	obs.PricingDuration.WithLabelValues("quote").Observe(obs.DurationMillis(d))
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		code := appErr.Code
		if code == "" {
			code = "BAD_REQUEST"
		}
		common.JSONError(w, status, code, appErr.Message, appErr.Details)
		return
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}
