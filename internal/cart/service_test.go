package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-vidria/internal/catalog"
)

var (
	clearID    = uuid.MustParse("5c1f0a10-0001-4c1f-8e1e-2b9d7f0e6c01")
	inactiveID = uuid.MustParse("5c1f0a10-0003-4c1f-8e1e-2b9d7f0e6c03")
	bronzeID   = uuid.MustParse("3d2e0b20-0002-4d2e-9f2f-3cae8f0e6d02")
)

type fakeCatalog struct {
	glass  map[uuid.UUID]catalog.GlassType
	colors map[uuid.UUID]catalog.Color
}

func (f fakeCatalog) GetGlassType(_ context.Context, id uuid.UUID) (catalog.GlassType, error) {
	if g, ok := f.glass[id]; ok {
		return g, nil
	}
	return catalog.GlassType{}, catalog.ErrNotFound
}

func (f fakeCatalog) GetColor(_ context.Context, id uuid.UUID) (catalog.Color, error) {
	if c, ok := f.colors[id]; ok {
		return c, nil
	}
	return catalog.Color{}, catalog.ErrNotFound
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		glass: map[uuid.UUID]catalog.GlassType{
			clearID:    {ID: clearID, Name: "Clear 4mm", PricePerM2: decimal.NewFromInt(48000), Active: true},
			inactiveID: {ID: inactiveID, Name: "Discontinued", PricePerM2: decimal.NewFromInt(90000), Active: false},
		},
		colors: map[uuid.UUID]catalog.Color{
			bronzeID: {ID: bronzeID, Name: "Bronze", SurchargePercentage: decimal.NewFromInt(10), Active: true},
		},
	}
}

func TestRepriceBase(t *testing.T) {
	svc := &Service{Catalog: testCatalog()}

	res, err := svc.Reprice(context.Background(), RepriceRequest{
		GlassTypeID: clearID.String(),
		WidthMm:     1000,
		HeightMm:    1000,
	})
	if err != nil {
		t.Fatalf("reprice: %v", err)
	}
	// 1 m2 * 48000
	if !res.Total.Equal(decimal.NewFromInt(48000)) {
		t.Fatalf("total = %s, want 48000", res.Total)
	}
	if res.Display != 48000 {
		t.Fatalf("display = %v, want 48000", res.Display)
	}
	if res.GlassTypeName != "Clear 4mm" {
		t.Fatalf("unexpected glass name %q", res.GlassTypeName)
	}
	if res.ColorName != nil {
		t.Fatalf("expected no color name, got %q", *res.ColorName)
	}
}

func TestRepriceWithColorSurcharge(t *testing.T) {
	svc := &Service{Catalog: testCatalog()}

	res, err := svc.Reprice(context.Background(), RepriceRequest{
		GlassTypeID: clearID.String(),
		ColorID:     bronzeID.String(),
		WidthMm:     1000,
		HeightMm:    1000,
	})
	if err != nil {
		t.Fatalf("reprice: %v", err)
	}
	// 48000 * 1.10
	if !res.Total.Equal(decimal.NewFromInt(52800)) {
		t.Fatalf("total = %s, want 52800", res.Total)
	}
	if res.ColorName == nil || *res.ColorName != "Bronze" {
		t.Fatalf("unexpected color name %v", res.ColorName)
	}
}

func TestRepriceQuantity(t *testing.T) {
	svc := &Service{Catalog: testCatalog()}

	qty := 2.0
	res, err := svc.Reprice(context.Background(), RepriceRequest{
		GlassTypeID: clearID.String(),
		WidthMm:     1000,
		HeightMm:    1000,
		Quantity:    &qty,
	})
	if err != nil {
		t.Fatalf("reprice: %v", err)
	}
	if !res.Total.Equal(decimal.NewFromInt(96000)) {
		t.Fatalf("total = %s, want 96000", res.Total)
	}
}

func TestRepriceUnknownGlass(t *testing.T) {
	svc := &Service{Catalog: testCatalog()}

	_, err := svc.Reprice(context.Background(), RepriceRequest{
		GlassTypeID: uuid.NewString(),
		WidthMm:     1000,
		HeightMm:    1000,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepriceInactiveGlass(t *testing.T) {
	svc := &Service{Catalog: testCatalog()}

	_, err := svc.Reprice(context.Background(), RepriceRequest{
		GlassTypeID: inactiveID.String(),
		WidthMm:     1000,
		HeightMm:    1000,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRepriceUnknownColor(t *testing.T) {
	svc := &Service{Catalog: testCatalog()}

	_, err := svc.Reprice(context.Background(), RepriceRequest{
		GlassTypeID: clearID.String(),
		ColorID:     uuid.NewString(),
		WidthMm:     1000,
		HeightMm:    1000,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
