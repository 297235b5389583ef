package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	mmPerMeter = decimal.NewFromInt(1000)
	two        = decimal.NewFromInt(2)
)

// Dimensions holds raw line-item dimensions in millimeters.
type Dimensions struct {
	WidthMm  float64
	HeightMm float64
}

// Geometry carries the derived quantities every pricing stage consumes.
type Geometry struct {
	WidthMm    decimal.Decimal
	HeightMm   decimal.Decimal
	WidthM     decimal.Decimal
	HeightM    decimal.Decimal
	AreaM2     decimal.Decimal
	PerimeterM decimal.Decimal
}

// Normalize converts raw dimensions into linear, area, and perimeter
// quantities. Negative, NaN, or infinite inputs clamp to zero so a malformed
// dimension degrades to "no dimensional contribution" instead of an error.
func Normalize(d Dimensions) Geometry {
	w := decimal.NewFromFloat(clampDimension(d.WidthMm))
	h := decimal.NewFromFloat(clampDimension(d.HeightMm))
	wm := w.Div(mmPerMeter)
	hm := h.Div(mmPerMeter)
	return Geometry{
		WidthMm:    w,
		HeightMm:   h,
		WidthM:     wm,
		HeightM:    hm,
		AreaM2:     wm.Mul(hm),
		PerimeterM: wm.Add(hm).Mul(two),
	}
}

func clampDimension(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
