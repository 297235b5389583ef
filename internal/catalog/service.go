package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-vidria/internal/common"
	"github.com/noah-isme/backend-vidria/internal/obs"
)

// ErrNotFound indicates the requested catalog entry does not exist.
var ErrNotFound = errors.New("catalog entry not found")

// Service orchestrates catalog lookups, caching, and pagination for the
// pricing collaborators and the read-side HTTP surface.
type Service struct {
	store        Store
	cache        *Cache
	defaultLimit int
	maxLimit     int
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Store        Store
	Cache        *Cache
	DefaultLimit int
	MaxLimit     int
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("catalog: store is required")
	}
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	maxLimit := cfg.MaxLimit
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &Service{
		store:        cfg.Store,
		cache:        cfg.Cache,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}, nil
}

// DefaultLimit exposes the configured page size for handlers.
func (s *Service) DefaultLimit() int { return s.defaultLimit }

// ClampLimit keeps a requested page size within configured bounds.
func (s *Service) ClampLimit(limit int) int {
	if limit < 1 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// ListModels returns the active models, cached when redis is configured.
func (s *Service) ListModels(ctx context.Context) ([]Model, error) {
	return cachedList(ctx, s.cache, "models", func() ([]Model, error) {
		return s.store.ListModels(ctx)
	})
}

// GetModel resolves one model by id.
func (s *Service) GetModel(ctx context.Context, id uuid.UUID) (Model, error) {
	return s.store.GetModel(ctx, id)
}

// ListGlassTypes returns the active glass types.
func (s *Service) ListGlassTypes(ctx context.Context) ([]GlassType, error) {
	return cachedList(ctx, s.cache, "glass-types", func() ([]GlassType, error) {
		return s.store.ListGlassTypes(ctx)
	})
}

// GetGlassType resolves one glass type by id.
func (s *Service) GetGlassType(ctx context.Context, id uuid.UUID) (GlassType, error) {
	return s.store.GetGlassType(ctx, id)
}

// ListColors returns the active colors.
func (s *Service) ListColors(ctx context.Context) ([]Color, error) {
	return cachedList(ctx, s.cache, "colors", func() ([]Color, error) {
		return s.store.ListColors(ctx)
	})
}

// GetColor resolves one color by id.
func (s *Service) GetColor(ctx context.Context, id uuid.UUID) (Color, error) {
	return s.store.GetColor(ctx, id)
}

// ListServices returns the active metered services.
func (s *Service) ListServices(ctx context.Context) ([]MeteredService, error) {
	return cachedList(ctx, s.cache, "services", func() ([]MeteredService, error) {
		return s.store.ListServices(ctx)
	})
}

// GetService resolves one metered service by id.
func (s *Service) GetService(ctx context.Context, id uuid.UUID) (MeteredService, error) {
	return s.store.GetService(ctx, id)
}

// ListAdjustmentPresets returns the active adjustment presets.
func (s *Service) ListAdjustmentPresets(ctx context.Context) ([]AdjustmentPreset, error) {
	return cachedList(ctx, s.cache, "adjustments", func() ([]AdjustmentPreset, error) {
		return s.store.ListAdjustmentPresets(ctx)
	})
}

// GetAdjustmentPreset resolves one preset by id.
func (s *Service) GetAdjustmentPreset(ctx context.Context, id uuid.UUID) (AdjustmentPreset, error) {
	return s.store.GetAdjustmentPreset(ctx, id)
}

// NotFoundError wraps ErrNotFound into the canonical API error shape.
func NotFoundError(what string) *common.AppError {
	return common.NewAppError("NOT_FOUND", what+" not found", 404, ErrNotFound)
}

func cachedList[T any](ctx context.Context, cache *Cache, key string, load func() ([]T, error)) ([]T, error) {
	if !cache.Enabled() {
		return load()
	}
	var cached []T
	ok, err := cache.GetJSON(ctx, key, &cached)
	switch {
	case err != nil:
		countCacheLookup("error")
	case ok:
		countCacheLookup("hit")
		return cached, nil
	default:
		countCacheLookup("miss")
	}
	items, err := load()
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, key, items)
	return items, nil
}

func countCacheLookup(result string) {
	if obs.CatalogCacheHits != nil {
		obs.CatalogCacheHits.WithLabelValues(result).Inc()
	}
}
