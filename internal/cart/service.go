package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-vidria/internal/catalog"
	"github.com/noah-isme/backend-vidria/internal/pricing"
)

// ErrNotFound indicates the referenced glass type or color does not exist.
var ErrNotFound = errors.New("cart reference not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Resolver supplies the catalog lookups the cart needs. The catalog service
// satisfies it.
type Resolver interface {
	GetGlassType(ctx context.Context, id uuid.UUID) (catalog.GlassType, error)
	GetColor(ctx context.Context, id uuid.UUID) (catalog.Color, error)
}

// RepriceRequest carries the quote-builder state that changes on every edit.
type RepriceRequest struct {
	GlassTypeID string   `json:"glassTypeId" validate:"required,uuid"`
	ColorID     string   `json:"colorId,omitempty" validate:"omitempty,uuid"`
	WidthMm     float64  `json:"widthMm" validate:"gte=0"`
	HeightMm    float64  `json:"heightMm" validate:"gte=0"`
	Quantity    *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
}

// RepriceResult is the fast-path price for one cart line. Total stays in
// decimal (serialized as a string); Display is the 2-decimal value the UI
// shows.
type RepriceResult struct {
	GlassTypeID   string          `json:"glassTypeId"`
	GlassTypeName string          `json:"glassTypeName"`
	ColorName     *string         `json:"colorName,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Display       float64         `json:"display"`
}

// Service re-prices cart lines using only the glass price and color
// surcharge, skipping the full service/adjustment pipeline.
type Service struct {
	Catalog Resolver
}

// Reprice resolves the glass type and optional color, then runs the fast
// calculator.
func (s *Service) Reprice(ctx context.Context, req RepriceRequest) (RepriceResult, error) {
	if s == nil || s.Catalog == nil {
		return RepriceResult{}, errors.New("cart service not configured")
	}
	glassID, err := uuid.Parse(req.GlassTypeID)
	if err != nil {
		return RepriceResult{}, fmt.Errorf("parse glass type id: %w", ErrInvalidInput)
	}
	glass, err := s.Catalog.GetGlassType(ctx, glassID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return RepriceResult{}, fmt.Errorf("glass type: %w", ErrNotFound)
		}
		return RepriceResult{}, err
	}
	if !glass.Active {
		return RepriceResult{}, fmt.Errorf("glass type unavailable: %w", ErrInvalidInput)
	}

	params := pricing.CartParams{
		WidthMm:    req.WidthMm,
		HeightMm:   req.HeightMm,
		PricePerM2: glass.PricePerM2,
		Quantity:   req.Quantity,
	}

	var colorName *string
	if req.ColorID != "" {
		colorID, err := uuid.Parse(req.ColorID)
		if err != nil {
			return RepriceResult{}, fmt.Errorf("parse color id: %w", ErrInvalidInput)
		}
		color, err := s.Catalog.GetColor(ctx, colorID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return RepriceResult{}, fmt.Errorf("color: %w", ErrNotFound)
			}
			return RepriceResult{}, err
		}
		pct := color.SurchargePercentage
		params.ColorSurchargePct = &pct
		colorName = &color.Name
	}

	total := pricing.CalculateItemPrice(params)
	return RepriceResult{
		GlassTypeID:   glass.ID.String(),
		GlassTypeName: glass.Name,
		ColorName:     colorName,
		Total:         total,
		Display:       total.Round(2).InexactFloat64(),
	}, nil
}
