package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Store abstracts catalog lookups so the pricing collaborators never touch a
// concrete backend. Persistence is out of scope for this service; the shipped
// implementation holds the catalog in memory, seeded from a fixture.
type Store interface {
	ListModels(ctx context.Context) ([]Model, error)
	GetModel(ctx context.Context, id uuid.UUID) (Model, error)
	ListGlassTypes(ctx context.Context) ([]GlassType, error)
	GetGlassType(ctx context.Context, id uuid.UUID) (GlassType, error)
	ListColors(ctx context.Context) ([]Color, error)
	GetColor(ctx context.Context, id uuid.UUID) (Color, error)
	ListServices(ctx context.Context) ([]MeteredService, error)
	GetService(ctx context.Context, id uuid.UUID) (MeteredService, error)
	ListAdjustmentPresets(ctx context.Context) ([]AdjustmentPreset, error)
	GetAdjustmentPreset(ctx context.Context, id uuid.UUID) (AdjustmentPreset, error)
}

// MemoryStore is a concurrency-safe in-memory Store.
type MemoryStore struct {
	mu          sync.RWMutex
	models      map[uuid.UUID]Model
	glassTypes  map[uuid.UUID]GlassType
	colors      map[uuid.UUID]Color
	services    map[uuid.UUID]MeteredService
	adjustments map[uuid.UUID]AdjustmentPreset
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		models:      map[uuid.UUID]Model{},
		glassTypes:  map[uuid.UUID]GlassType{},
		colors:      map[uuid.UUID]Color{},
		services:    map[uuid.UUID]MeteredService{},
		adjustments: map[uuid.UUID]AdjustmentPreset{},
	}
}

// Load replaces the store contents with the fixture data.
func (s *MemoryStore) Load(f Fixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = map[uuid.UUID]Model{}
	for _, m := range f.Models {
		s.models[m.ID] = m
	}
	s.glassTypes = map[uuid.UUID]GlassType{}
	for _, g := range f.GlassTypes {
		s.glassTypes[g.ID] = g
	}
	s.colors = map[uuid.UUID]Color{}
	for _, c := range f.Colors {
		s.colors[c.ID] = c
	}
	s.services = map[uuid.UUID]MeteredService{}
	for _, sv := range f.Services {
		s.services[sv.ID] = sv
	}
	s.adjustments = map[uuid.UUID]AdjustmentPreset{}
	for _, a := range f.Adjustments {
		s.adjustments[a.ID] = a
	}
}

// ListModels returns active models sorted by name.
func (s *MemoryStore) ListModels(_ context.Context) ([]Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Model, 0, len(s.models))
	for _, m := range s.models {
		if m.Active {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetModel returns a model by id, active or not.
func (s *MemoryStore) GetModel(_ context.Context, id uuid.UUID) (Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[id]
	if !ok {
		return Model{}, ErrNotFound
	}
	return m, nil
}

// ListGlassTypes returns active glass types sorted by name.
func (s *MemoryStore) ListGlassTypes(_ context.Context) ([]GlassType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]GlassType, 0, len(s.glassTypes))
	for _, g := range s.glassTypes {
		if g.Active {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetGlassType returns a glass type by id.
func (s *MemoryStore) GetGlassType(_ context.Context, id uuid.UUID) (GlassType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.glassTypes[id]
	if !ok {
		return GlassType{}, ErrNotFound
	}
	return g, nil
}

// ListColors returns active colors sorted by name.
func (s *MemoryStore) ListColors(_ context.Context) ([]Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Color, 0, len(s.colors))
	for _, c := range s.colors {
		if c.Active {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetColor returns a color by id.
func (s *MemoryStore) GetColor(_ context.Context, id uuid.UUID) (Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.colors[id]
	if !ok {
		return Color{}, ErrNotFound
	}
	return c, nil
}

// ListServices returns active services sorted by name.
func (s *MemoryStore) ListServices(_ context.Context) ([]MeteredService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MeteredService, 0, len(s.services))
	for _, sv := range s.services {
		if sv.Active {
			out = append(out, sv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetService returns a service by id.
func (s *MemoryStore) GetService(_ context.Context, id uuid.UUID) (MeteredService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sv, ok := s.services[id]
	if !ok {
		return MeteredService{}, ErrNotFound
	}
	return sv, nil
}

// ListAdjustmentPresets returns active presets sorted by concept.
func (s *MemoryStore) ListAdjustmentPresets(_ context.Context) ([]AdjustmentPreset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AdjustmentPreset, 0, len(s.adjustments))
	for _, a := range s.adjustments {
		if a.Active {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Concept < out[j].Concept })
	return out, nil
}

// GetAdjustmentPreset returns a preset by id.
func (s *MemoryStore) GetAdjustmentPreset(_ context.Context, id uuid.UUID) (AdjustmentPreset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.adjustments[id]
	if !ok {
		return AdjustmentPreset{}, ErrNotFound
	}
	return a, nil
}
