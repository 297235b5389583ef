package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-vidria/internal/pricing"
)

// Fixture is the JSON shape the catalog store loads at startup.
type Fixture struct {
	Models      []Model            `json:"models"`
	GlassTypes  []GlassType        `json:"glassTypes"`
	Colors      []Color            `json:"colors"`
	Services    []MeteredService   `json:"services"`
	Adjustments []AdjustmentPreset `json:"adjustments"`
}

// Validate checks referential soundness of a fixture before loading it.
func (f Fixture) Validate() error {
	for _, m := range f.Models {
		if m.ID == uuid.Nil {
			return fmt.Errorf("model %q: missing id", m.Name)
		}
		if m.MaxWidthMm > 0 && m.MinWidthMm > m.MaxWidthMm {
			return fmt.Errorf("model %q: min width exceeds max", m.Name)
		}
		if m.MaxHeightMm > 0 && m.MinHeightMm > m.MaxHeightMm {
			return fmt.Errorf("model %q: min height exceeds max", m.Name)
		}
	}
	for _, sv := range f.Services {
		switch sv.Unit {
		case pricing.UnitPiece, pricing.UnitSquareMeter, pricing.UnitLinearMeter:
		default:
			return fmt.Errorf("service %q: unknown unit %q", sv.Name, sv.Unit)
		}
	}
	for _, a := range f.Adjustments {
		if a.Sign != pricing.SignPositive && a.Sign != pricing.SignNegative {
			return fmt.Errorf("adjustment %q: unknown sign %q", a.Concept, a.Sign)
		}
	}
	return nil
}

// LoadFixtureFile reads and validates a catalog fixture from disk.
func LoadFixtureFile(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, fmt.Errorf("validate fixture: %w", err)
	}
	return f, nil
}

// DemoFixture returns a small built-in catalog used when no fixture path is
// configured. Handy for local development and the seeder tool.
func DemoFixture() Fixture {
	accessory := decimal.NewFromInt(25000)
	return Fixture{
		Models: []Model{
			{
				ID:              uuid.MustParse("7b9e1b2c-0001-4a55-9d1a-1a8c5f0e6b01"),
				Name:            "Sliding Window 2T",
				Supplier:        "Vidrios Andinos",
				BasePrice:       decimal.NewFromInt(100000),
				CostPerMmWidth:  decimal.NewFromInt(50),
				CostPerMmHeight: decimal.NewFromInt(40),
				AccessoryPrice:  &accessory,
				MinWidthMm:      400,
				MaxWidthMm:      2400,
				MinHeightMm:     400,
				MaxHeightMm:     2000,
				Active:          true,
			},
			{
				ID:              uuid.MustParse("7b9e1b2c-0002-4a55-9d1a-1a8c5f0e6b02"),
				Name:            "Fixed Panel",
				Supplier:        "Vidrios Andinos",
				BasePrice:       decimal.NewFromInt(60000),
				CostPerMmWidth:  decimal.NewFromInt(35),
				CostPerMmHeight: decimal.NewFromInt(30),
				MinWidthMm:      300,
				MaxWidthMm:      3000,
				MinHeightMm:     300,
				MaxHeightMm:     2400,
				Active:          true,
			},
		},
		GlassTypes: []GlassType{
			{ID: uuid.MustParse("5c1f0a10-0001-4c1f-8e1e-2b9d7f0e6c01"), Name: "Clear 4mm", PricePerM2: decimal.NewFromInt(48000), Active: true},
			{ID: uuid.MustParse("5c1f0a10-0002-4c1f-8e1e-2b9d7f0e6c02"), Name: "Tempered 6mm", PricePerM2: decimal.NewFromInt(110000), Active: true},
		},
		Colors: []Color{
			{ID: uuid.MustParse("3d2e0b20-0001-4d2e-9f2f-3cae8f0e6d01"), Name: "Natural", SurchargePercentage: decimal.Zero, Active: true},
			{ID: uuid.MustParse("3d2e0b20-0002-4d2e-9f2f-3cae8f0e6d02"), Name: "Bronze", SurchargePercentage: decimal.NewFromInt(10), Active: true},
		},
		Services: []MeteredService{
			{ID: uuid.MustParse("9e4f0c30-0001-4e4f-a030-4dbf9f0e6e01"), Name: "Tempering", Type: pricing.ServiceTypeArea, Unit: pricing.UnitSquareMeter, Rate: decimal.NewFromInt(20000), Active: true},
			{ID: uuid.MustParse("9e4f0c30-0002-4e4f-a030-4dbf9f0e6e02"), Name: "Edge polish", Type: pricing.ServiceTypePerimeter, Unit: pricing.UnitLinearMeter, Rate: decimal.NewFromInt(5000), Active: true},
			{ID: uuid.MustParse("9e4f0c30-0003-4e4f-a030-4dbf9f0e6e03"), Name: "Installation", Type: pricing.ServiceTypeFixed, Unit: pricing.UnitPiece, Rate: decimal.NewFromInt(35000), Active: true},
		},
		Adjustments: []AdjustmentPreset{
			{ID: uuid.MustParse("1f5a0d40-0001-4f5a-b141-5ec0af0e6f01"), Concept: "Rush order", Unit: pricing.UnitPiece, Sign: pricing.SignPositive, Value: decimal.NewFromInt(20000), Active: true},
			{ID: uuid.MustParse("1f5a0d40-0002-4f5a-b141-5ec0af0e6f02"), Concept: "Showroom discount", Unit: pricing.UnitPiece, Sign: pricing.SignNegative, Value: decimal.NewFromInt(15000), Active: true},
		},
	}
}
