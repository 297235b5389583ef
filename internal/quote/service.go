package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-vidria/internal/catalog"
	"github.com/noah-isme/backend-vidria/internal/common"
	"github.com/noah-isme/backend-vidria/internal/pricing"
)

// ErrInvalidInput is returned when a request references impossible dimensions
// or incomplete adjustment data.
var ErrInvalidInput = errors.New("invalid quote input")

// Resolver supplies the catalog lookups quote pricing depends on. The catalog
// service satisfies it; tests plug in fakes.
type Resolver interface {
	GetModel(ctx context.Context, id uuid.UUID) (catalog.Model, error)
	GetService(ctx context.Context, id uuid.UUID) (catalog.MeteredService, error)
	GetAdjustmentPreset(ctx context.Context, id uuid.UUID) (catalog.AdjustmentPreset, error)
}

// ServiceRequest references a catalog service applied to a line item.
type ServiceRequest struct {
	ServiceID        string   `json:"serviceId" validate:"required,uuid"`
	QuantityOverride *float64 `json:"quantityOverride,omitempty" validate:"omitempty,gte=0"`
}

// AdjustmentRequest either references a preset or spells the adjustment out
// inline (concept, unit, sign, value).
type AdjustmentRequest struct {
	PresetID string          `json:"presetId,omitempty" validate:"omitempty,uuid"`
	Concept  string          `json:"concept,omitempty"`
	Unit     pricing.Unit    `json:"unit,omitempty" validate:"omitempty,oneof=unit sqm ml"`
	Sign     pricing.Sign    `json:"sign,omitempty" validate:"omitempty,oneof=positive negative"`
	Value    decimal.Decimal `json:"value,omitempty"`
}

// ItemRequest is one line of a quote draft to price.
type ItemRequest struct {
	ModelID          string              `json:"modelId" validate:"required,uuid"`
	WidthMm          float64             `json:"widthMm" validate:"gte=0"`
	HeightMm         float64             `json:"heightMm" validate:"gte=0"`
	Quantity         int                 `json:"quantity" validate:"omitempty,gte=1"`
	IncludeAccessory bool                `json:"includeAccessory"`
	Services         []ServiceRequest    `json:"services" validate:"dive"`
	Adjustments      []AdjustmentRequest `json:"adjustments" validate:"dive"`
}

// QuoteRequest is a full quote draft.
type QuoteRequest struct {
	Items []ItemRequest `json:"items" validate:"min=1,dive"`
}

// ItemBreakdown is the priced outcome of one line.
type ItemBreakdown struct {
	ModelID   string         `json:"modelId"`
	ModelName string         `json:"modelName"`
	WidthMm   float64        `json:"widthMm"`
	HeightMm  float64        `json:"heightMm"`
	Quantity  int            `json:"quantity"`
	Pricing   pricing.Result `json:"pricing"`
	LineTotal float64        `json:"lineTotal"`
}

// QuoteBreakdown aggregates priced lines. Cross-item taxes are out of scope;
// Total is the plain sum of line totals.
type QuoteBreakdown struct {
	Items []ItemBreakdown `json:"items"`
	Total float64         `json:"total"`
}

// Service prices quote drafts against the catalog. It is stateless: nothing
// is persisted, every call resolves and computes from scratch.
type Service struct {
	Catalog Resolver
}

// PriceItem resolves one line's catalog references and runs the pricing
// engine on it.
func (s *Service) PriceItem(ctx context.Context, req ItemRequest) (ItemBreakdown, error) {
	if s == nil || s.Catalog == nil {
		return ItemBreakdown{}, errors.New("quote service not configured")
	}
	modelID, err := uuid.Parse(req.ModelID)
	if err != nil {
		return ItemBreakdown{}, fmt.Errorf("parse model id: %w", ErrInvalidInput)
	}
	model, err := s.Catalog.GetModel(ctx, modelID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return ItemBreakdown{}, catalog.NotFoundError("model")
		}
		return ItemBreakdown{}, err
	}
	if err := checkDimensionLimits(model, req.WidthMm, req.HeightMm); err != nil {
		return ItemBreakdown{}, err
	}

	charges, err := s.resolveServices(ctx, req.Services)
	if err != nil {
		return ItemBreakdown{}, err
	}
	adjustments, err := s.resolveAdjustments(ctx, req.Adjustments)
	if err != nil {
		return ItemBreakdown{}, err
	}

	result := pricing.CalculatePriceItem(pricing.Input{
		Dimensions:       pricing.Dimensions{WidthMm: req.WidthMm, HeightMm: req.HeightMm},
		Model:            model.PricingModel(),
		IncludeAccessory: req.IncludeAccessory,
		Services:         charges,
		Adjustments:      adjustments,
	})

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	lineTotal := decimal.NewFromFloat(result.Subtotal).Mul(decimal.NewFromInt(int64(qty)))

	return ItemBreakdown{
		ModelID:   model.ID.String(),
		ModelName: model.Name,
		WidthMm:   req.WidthMm,
		HeightMm:  req.HeightMm,
		Quantity:  qty,
		Pricing:   result,
		LineTotal: lineTotal.InexactFloat64(),
	}, nil
}

// PriceQuote prices every line of a draft and sums the totals.
func (s *Service) PriceQuote(ctx context.Context, req QuoteRequest) (QuoteBreakdown, error) {
	items := make([]ItemBreakdown, 0, len(req.Items))
	total := decimal.Zero
	for i, item := range req.Items {
		breakdown, err := s.PriceItem(ctx, item)
		if err != nil {
			return QuoteBreakdown{}, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, breakdown)
		total = total.Add(decimal.NewFromFloat(breakdown.LineTotal))
	}
	return QuoteBreakdown{Items: items, Total: total.InexactFloat64()}, nil
}

func (s *Service) resolveServices(ctx context.Context, reqs []ServiceRequest) ([]pricing.ServiceCharge, error) {
	charges := make([]pricing.ServiceCharge, 0, len(reqs))
	for _, sr := range reqs {
		id, err := uuid.Parse(sr.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("parse service id: %w", ErrInvalidInput)
		}
		svc, err := s.Catalog.GetService(ctx, id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, catalog.NotFoundError("service")
			}
			return nil, err
		}
		charges = append(charges, pricing.ServiceCharge{
			ServiceID:        svc.ID.String(),
			Type:             svc.Type,
			Unit:             svc.Unit,
			Rate:             svc.Rate,
			QuantityOverride: sr.QuantityOverride,
		})
	}
	return charges, nil
}

func (s *Service) resolveAdjustments(ctx context.Context, reqs []AdjustmentRequest) ([]pricing.Adjustment, error) {
	adjustments := make([]pricing.Adjustment, 0, len(reqs))
	for _, ar := range reqs {
		if ar.PresetID != "" {
			id, err := uuid.Parse(ar.PresetID)
			if err != nil {
				return nil, fmt.Errorf("parse adjustment preset id: %w", ErrInvalidInput)
			}
			preset, err := s.Catalog.GetAdjustmentPreset(ctx, id)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return nil, catalog.NotFoundError("adjustment preset")
				}
				return nil, err
			}
			adjustments = append(adjustments, pricing.Adjustment{
				Concept: preset.Concept,
				Unit:    preset.Unit,
				Sign:    preset.Sign,
				Value:   preset.Value,
			})
			continue
		}
		if ar.Concept == "" || ar.Unit == "" || ar.Sign == "" {
			return nil, fmt.Errorf("inline adjustment requires concept, unit, and sign: %w", ErrInvalidInput)
		}
		adjustments = append(adjustments, pricing.Adjustment{
			Concept: ar.Concept,
			Unit:    ar.Unit,
			Sign:    ar.Sign,
			Value:   ar.Value,
		})
	}
	return adjustments, nil
}

// checkDimensionLimits enforces the model's fabrication bounds when defined.
func checkDimensionLimits(m catalog.Model, widthMm, heightMm float64) error {
	outOfRange := func(axis string) error {
		return common.NewAppError("DIMENSIONS_OUT_OF_RANGE",
			fmt.Sprintf("%s outside model fabrication limits", axis),
			http.StatusUnprocessableEntity, ErrInvalidInput)
	}
	if m.MaxWidthMm > 0 && (widthMm < m.MinWidthMm || widthMm > m.MaxWidthMm) {
		return outOfRange("width")
	}
	if m.MaxHeightMm > 0 && (heightMm < m.MinHeightMm || heightMm > m.MaxHeightMm) {
		return outOfRange("height")
	}
	return nil
}
