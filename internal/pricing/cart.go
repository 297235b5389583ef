package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CartParams feeds the fast cart-side calculator. PricePerM2 comes from the
// selected glass type and ColorSurchargePct from the selected color, both
// resolved by the caller.
type CartParams struct {
	WidthMm           float64
	HeightMm          float64
	PricePerM2        decimal.Decimal
	Quantity          *float64
	ColorSurchargePct *decimal.Decimal
}

// CalculateItemPrice is the glass-price-only companion of CalculatePriceItem,
// used by the quote builder for instantaneous re-pricing on every dimension,
// glass, or color change. It computes area × pricePerM2 × quantity, optionally
// scaled by a color surcharge percentage, and keeps the result in decimal:
// rounding for display is the caller's responsibility.
func CalculateItemPrice(p CartParams) decimal.Decimal {
	geo := Normalize(Dimensions{WidthMm: p.WidthMm, HeightMm: p.HeightMm})

	qty := decimal.NewFromInt(1)
	if p.Quantity != nil {
		qty = decimal.NewFromFloat(clampDimension(*p.Quantity))
	}

	total := geo.AreaM2.Mul(p.PricePerM2).Mul(qty)
	if p.ColorSurchargePct != nil {
		total = total.Mul(decimal.NewFromInt(1).Add(p.ColorSurchargePct.Div(hundred)))
	}
	return total
}
