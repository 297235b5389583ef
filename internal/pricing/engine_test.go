package pricing

import (
	"math"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func baseModel() Model {
	return Model{
		BasePrice:       dec("100000"),
		CostPerMmWidth:  dec("50"),
		CostPerMmHeight: dec("40"),
	}
}

func TestDimensionPricing(t *testing.T) {
	res := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: 1000, HeightMm: 800},
		Model:      baseModel(),
	})
	if res.DimPrice != 182000 {
		t.Fatalf("expected dimPrice 182000, got %v", res.DimPrice)
	}
	if res.Subtotal != 182000 {
		t.Fatalf("expected subtotal 182000, got %v", res.Subtotal)
	}
}

func TestAccessoryGating(t *testing.T) {
	model := baseModel()
	model.AccessoryPrice = decPtr("25000")

	res := CalculatePriceItem(Input{
		Dimensions:       Dimensions{WidthMm: 1000, HeightMm: 800},
		Model:            model,
		IncludeAccessory: true,
	})
	if res.AccPrice != 25000 {
		t.Fatalf("expected accPrice 25000, got %v", res.AccPrice)
	}
	if res.Subtotal != 207000 {
		t.Fatalf("expected subtotal 207000, got %v", res.Subtotal)
	}

	res = CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: 1000, HeightMm: 800},
		Model:      model,
	})
	if res.AccPrice != 0 {
		t.Fatalf("accessory must be gated off, got %v", res.AccPrice)
	}

	res = CalculatePriceItem(Input{
		Dimensions:       Dimensions{WidthMm: 1000, HeightMm: 800},
		Model:            baseModel(),
		IncludeAccessory: true,
	})
	if res.AccPrice != 0 {
		t.Fatalf("nil accessory price must yield 0, got %v", res.AccPrice)
	}
}

func TestNegativeDimensionClampsToZero(t *testing.T) {
	neg := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: -500, HeightMm: 800},
		Model:      baseModel(),
	})
	zero := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: 0, HeightMm: 800},
		Model:      baseModel(),
	})
	if neg.DimPrice != zero.DimPrice {
		t.Fatalf("negative width must price like zero: %v vs %v", neg.DimPrice, zero.DimPrice)
	}
	nan := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: math.NaN(), HeightMm: 800},
		Model:      baseModel(),
	})
	if nan.DimPrice != zero.DimPrice {
		t.Fatalf("NaN width must price like zero: %v vs %v", nan.DimPrice, zero.DimPrice)
	}
}

func TestServiceAreaQuantity(t *testing.T) {
	res := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: 2000, HeightMm: 1000},
		Model:      Model{},
		Services: []ServiceCharge{
			{ServiceID: "svc-temper", Type: ServiceTypeArea, Unit: UnitSquareMeter, Rate: dec("20000")},
		},
	})
	if len(res.Services) != 1 {
		t.Fatalf("expected 1 service line, got %d", len(res.Services))
	}
	line := res.Services[0]
	if line.Quantity != 2.0 {
		t.Fatalf("expected quantity 2.0, got %v", line.Quantity)
	}
	if line.Amount != 40000 {
		t.Fatalf("expected amount 40000, got %v", line.Amount)
	}
}

func TestServicePerimeterQuantity(t *testing.T) {
	res := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: 1000, HeightMm: 500},
		Model:      Model{},
		Services: []ServiceCharge{
			{ServiceID: "svc-polish", Type: ServiceTypePerimeter, Unit: UnitLinearMeter, Rate: dec("5000")},
		},
	})
	line := res.Services[0]
	if line.Quantity != 3.0 {
		t.Fatalf("expected perimeter quantity 3.0, got %v", line.Quantity)
	}
	if line.Amount != 15000 {
		t.Fatalf("expected amount 15000, got %v", line.Amount)
	}
}

func TestServiceQuantityOverrideWins(t *testing.T) {
	override := 5.0
	res := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: 2000, HeightMm: 1000},
		Model:      Model{},
		Services: []ServiceCharge{
			{ServiceID: "svc-cut", Unit: UnitSquareMeter, Rate: dec("1000"), QuantityOverride: &override},
		},
	})
	if res.Services[0].Quantity != 5.0 {
		t.Fatalf("override must win, got quantity %v", res.Services[0].Quantity)
	}
	if res.Services[0].Amount != 5000 {
		t.Fatalf("expected amount 5000, got %v", res.Services[0].Amount)
	}
}

func TestDuplicateServicesPricedIndependently(t *testing.T) {
	res := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: 1000, HeightMm: 1000},
		Model:      Model{},
		Services: []ServiceCharge{
			{ServiceID: "svc-cut", Unit: UnitPiece, Rate: dec("100")},
			{ServiceID: "svc-cut", Unit: UnitPiece, Rate: dec("100")},
		},
	})
	if len(res.Services) != 2 {
		t.Fatalf("duplicates must not be deduplicated, got %d lines", len(res.Services))
	}
	if res.Subtotal != 200 {
		t.Fatalf("expected subtotal 200, got %v", res.Subtotal)
	}
}

func TestAdjustmentSignHandling(t *testing.T) {
	base := Input{
		Dimensions: Dimensions{WidthMm: 1000, HeightMm: 800},
		Model:      baseModel(),
	}

	base.Adjustments = []Adjustment{{Concept: "promo", Unit: UnitPiece, Sign: SignNegative, Value: dec("20000")}}
	res := CalculatePriceItem(base)
	if res.Subtotal != 162000 {
		t.Fatalf("expected subtotal 162000 with discount, got %v", res.Subtotal)
	}
	if res.Adjustments[0].Amount != -20000 {
		t.Fatalf("expected adjustment amount -20000, got %v", res.Adjustments[0].Amount)
	}

	base.Adjustments = []Adjustment{{Concept: "rush", Unit: UnitPiece, Sign: SignPositive, Value: dec("20000")}}
	res = CalculatePriceItem(base)
	if res.Subtotal != 202000 {
		t.Fatalf("expected subtotal 202000 with surcharge, got %v", res.Subtotal)
	}
}

func TestNegativeSubtotalIsValid(t *testing.T) {
	res := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: 1000, HeightMm: 800},
		Model:      Model{BasePrice: dec("100")},
		Adjustments: []Adjustment{
			{Concept: "goodwill", Unit: UnitPiece, Sign: SignNegative, Value: dec("500")},
		},
	})
	if res.Subtotal != -400 {
		t.Fatalf("expected subtotal -400, got %v", res.Subtotal)
	}
}

func TestDecimalPrecisionRoundTrip(t *testing.T) {
	res := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: 333, HeightMm: 333},
		Model: Model{
			BasePrice:       dec("100000"),
			CostPerMmWidth:  dec("33.333"),
			CostPerMmHeight: dec("33.333"),
		},
	})
	if res.DimPrice != 122199.78 {
		t.Fatalf("expected dimPrice 122199.78, got %v", res.DimPrice)
	}
}

func TestDeterminism(t *testing.T) {
	override := 2.5
	in := Input{
		Dimensions:       Dimensions{WidthMm: 1234, HeightMm: 876},
		Model:            baseModel(),
		IncludeAccessory: true,
		Services: []ServiceCharge{
			{ServiceID: "a", Unit: UnitSquareMeter, Rate: dec("123.45")},
			{ServiceID: "b", Unit: UnitLinearMeter, Rate: dec("67.89"), QuantityOverride: &override},
		},
		Adjustments: []Adjustment{
			{Concept: "x", Unit: UnitSquareMeter, Sign: SignNegative, Value: dec("11.11")},
		},
	}
	first := CalculatePriceItem(in)
	second := CalculatePriceItem(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestSubtotalDecomposition(t *testing.T) {
	override := 1.75
	res := CalculatePriceItem(Input{
		Dimensions:       Dimensions{WidthMm: 1730, HeightMm: 945},
		Model:            Model{BasePrice: dec("9999.99"), CostPerMmWidth: dec("1.015"), CostPerMmHeight: dec("2.125"), AccessoryPrice: decPtr("150.55")},
		IncludeAccessory: true,
		Services: []ServiceCharge{
			{ServiceID: "s1", Unit: UnitSquareMeter, Rate: dec("333.33")},
			{ServiceID: "s2", Unit: UnitPiece, Rate: dec("75.25"), QuantityOverride: &override},
		},
		Adjustments: []Adjustment{
			{Concept: "up", Unit: UnitLinearMeter, Sign: SignPositive, Value: dec("12.12")},
			{Concept: "down", Unit: UnitPiece, Sign: SignNegative, Value: dec("500.01")},
		},
	})
	sum := res.DimPrice + res.AccPrice
	for _, s := range res.Services {
		sum += s.Amount
	}
	for _, a := range res.Adjustments {
		sum += a.Amount
	}
	if math.Abs(sum-res.Subtotal) > 1e-9 {
		t.Fatalf("subtotal %v does not decompose into components summing to %v", res.Subtotal, sum)
	}
}

func TestEmptyListsContributeNothing(t *testing.T) {
	res := CalculatePriceItem(Input{
		Dimensions: Dimensions{WidthMm: 100, HeightMm: 100},
		Model:      Model{BasePrice: dec("10")},
	})
	if len(res.Services) != 0 || len(res.Adjustments) != 0 {
		t.Fatalf("expected empty lines, got %+v", res)
	}
	if res.Subtotal != 10 {
		t.Fatalf("expected subtotal 10, got %v", res.Subtotal)
	}
}
