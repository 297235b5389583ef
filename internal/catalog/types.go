package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-vidria/internal/pricing"
)

// Model is a window/door product parametrized by dimensions and glass type.
type Model struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Supplier        string           `json:"supplier"`
	BasePrice       decimal.Decimal  `json:"basePrice"`
	CostPerMmWidth  decimal.Decimal  `json:"costPerMmWidth"`
	CostPerMmHeight decimal.Decimal  `json:"costPerMmHeight"`
	AccessoryPrice  *decimal.Decimal `json:"accessoryPrice,omitempty"`
	MinWidthMm      float64          `json:"minWidthMm"`
	MaxWidthMm      float64          `json:"maxWidthMm"`
	MinHeightMm     float64          `json:"minHeightMm"`
	MaxHeightMm     float64          `json:"maxHeightMm"`
	Active          bool             `json:"active"`
}

// PricingModel maps the catalog entry onto the engine's model shape.
func (m Model) PricingModel() pricing.Model {
	return pricing.Model{
		BasePrice:       m.BasePrice,
		CostPerMmWidth:  m.CostPerMmWidth,
		CostPerMmHeight: m.CostPerMmHeight,
		AccessoryPrice:  m.AccessoryPrice,
	}
}

// GlassType carries the per-square-meter price the cart calculator needs.
type GlassType struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	PricePerM2 decimal.Decimal `json:"pricePerM2"`
	Active     bool            `json:"active"`
}

// Color optionally scales the glass price by a surcharge percentage.
type Color struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name"`
	SurchargePercentage decimal.Decimal `json:"surchargePercentage"`
	Active              bool            `json:"active"`
}

// MeteredService is a metered add-on (cutting, tempering, installation). Type
// is informational catalog metadata; Unit drives the billing arithmetic.
type MeteredService struct {
	ID     uuid.UUID           `json:"id"`
	Name   string              `json:"name"`
	Type   pricing.ServiceType `json:"type"`
	Unit   pricing.Unit        `json:"unit"`
	Rate   decimal.Decimal     `json:"rate"`
	Active bool                `json:"active"`
}

// AdjustmentPreset is a reusable surcharge/discount definition admins attach
// to quote lines.
type AdjustmentPreset struct {
	ID      uuid.UUID       `json:"id"`
	Concept string          `json:"concept"`
	Unit    pricing.Unit    `json:"unit"`
	Sign    pricing.Sign    `json:"sign"`
	Value   decimal.Decimal `json:"value"`
	Active  bool            `json:"active"`
}
