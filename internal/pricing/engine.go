package pricing

import "github.com/shopspring/decimal"

// Unit identifies the billing basis of a service or adjustment.
type Unit string

const (
	// UnitPiece bills a flat per-unit amount.
	UnitPiece Unit = "unit"
	// UnitSquareMeter bills by glass area.
	UnitSquareMeter Unit = "sqm"
	// UnitLinearMeter bills by frame perimeter.
	UnitLinearMeter Unit = "ml"
)

// ServiceType classifies a service for catalog display. It never drives the
// arithmetic; Unit is authoritative for quantity selection.
type ServiceType string

const (
	ServiceTypeFixed     ServiceType = "fixed"
	ServiceTypeArea      ServiceType = "area"
	ServiceTypePerimeter ServiceType = "perimeter"
)

// Sign marks an adjustment as a surcharge or a discount.
type Sign string

const (
	SignPositive Sign = "positive"
	SignNegative Sign = "negative"
)

// Model describes the dimensional pricing of the product being quoted.
type Model struct {
	BasePrice       decimal.Decimal
	CostPerMmWidth  decimal.Decimal
	CostPerMmHeight decimal.Decimal
	AccessoryPrice  *decimal.Decimal
}

// ServiceCharge is one metered add-on applied to a line item.
type ServiceCharge struct {
	ServiceID string
	Type      ServiceType
	Unit      Unit
	Rate      decimal.Decimal
	// QuantityOverride, when set, replaces the unit-derived quantity entirely.
	QuantityOverride *float64
}

// Adjustment is a signed surcharge or discount on a line item. Unlike
// services, adjustments carry no quantity override.
type Adjustment struct {
	Concept string
	Unit    Unit
	Sign    Sign
	Value   decimal.Decimal
}

// Input aggregates everything needed to price one line item. Callers resolve
// model, services, and adjustments from catalog data beforehand; no lookups
// happen here.
type Input struct {
	Dimensions       Dimensions
	Model            Model
	IncludeAccessory bool
	Services         []ServiceCharge
	Adjustments      []Adjustment
}

// ServiceLine is the priced outcome of one service entry.
type ServiceLine struct {
	ServiceID string  `json:"serviceId"`
	Unit      Unit    `json:"unit"`
	Quantity  float64 `json:"quantity"`
	Amount    float64 `json:"amount"`
}

// AdjustmentLine is the priced outcome of one adjustment entry.
type AdjustmentLine struct {
	Concept string  `json:"concept"`
	Amount  float64 `json:"amount"`
}

// Result is the fully decomposed price of one line item. It is a disposable
// value: constructed fresh on every call, never mutated, never persisted.
type Result struct {
	DimPrice    float64          `json:"dimPrice"`
	AccPrice    float64          `json:"accPrice"`
	Services    []ServiceLine    `json:"services"`
	Adjustments []AdjustmentLine `json:"adjustments"`
	Subtotal    float64          `json:"subtotal"`
}

// CalculatePriceItem computes the authoritative price for a single line item:
// dimension pricing, optional accessory, metered services, and signed
// adjustments, summed into a subtotal. All intermediate arithmetic runs in
// decimal precision; each stage rounds to 2 decimals before aggregation, so
// the subtotal equals the sum of its parts exactly. The function is total over
// its input: invalid dimensions clamp to zero and a discount may legitimately
// drive the subtotal negative.
func CalculatePriceItem(in Input) Result {
	geo := Normalize(in.Dimensions)

	dim := round2(in.Model.BasePrice.
		Add(geo.WidthMm.Mul(in.Model.CostPerMmWidth)).
		Add(geo.HeightMm.Mul(in.Model.CostPerMmHeight)))

	acc := decimal.Zero
	if in.IncludeAccessory && in.Model.AccessoryPrice != nil {
		acc = round2(*in.Model.AccessoryPrice)
	}

	subtotal := dim.Add(acc)

	services := make([]ServiceLine, 0, len(in.Services))
	for _, sc := range in.Services {
		qty := quantityFor(sc.Unit, geo, sc.QuantityOverride)
		amount := round2(qty.Mul(sc.Rate))
		subtotal = subtotal.Add(amount)
		services = append(services, ServiceLine{
			ServiceID: sc.ServiceID,
			Unit:      sc.Unit,
			Quantity:  qty.InexactFloat64(),
			Amount:    amount.InexactFloat64(),
		})
	}

	adjustments := make([]AdjustmentLine, 0, len(in.Adjustments))
	for _, adj := range in.Adjustments {
		qty := quantityFor(adj.Unit, geo, nil)
		amount := round2(qty.Mul(adj.Value))
		if adj.Sign == SignNegative {
			amount = amount.Neg()
		}
		subtotal = subtotal.Add(amount)
		adjustments = append(adjustments, AdjustmentLine{
			Concept: adj.Concept,
			Amount:  amount.InexactFloat64(),
		})
	}

	return Result{
		DimPrice:    dim.InexactFloat64(),
		AccPrice:    acc.InexactFloat64(),
		Services:    services,
		Adjustments: adjustments,
		Subtotal:    subtotal.InexactFloat64(),
	}
}

// quantityFor selects the billing quantity for a unit tag. An override always
// wins when present.
func quantityFor(unit Unit, geo Geometry, override *float64) decimal.Decimal {
	if override != nil {
		return decimal.NewFromFloat(clampDimension(*override))
	}
	switch unit {
	case UnitSquareMeter:
		return geo.AreaM2
	case UnitLinearMeter:
		return geo.PerimeterM
	default:
		return decimal.NewFromInt(1)
	}
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
