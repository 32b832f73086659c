package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/mtlprog/complytrack/internal/domain"
)

// GetControl implements service.Catalog.
func (s *Store) GetControl(ctx context.Context, id string) (*domain.Control, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.controls[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrControlNotFound, id)
	}
	cp := *c
	return &cp, nil
}

// GetControls implements service.Catalog.
func (s *Store) GetControls(ctx context.Context, ids []string) (map[string]*domain.Control, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*domain.Control, len(ids))
	for _, id := range ids {
		if c, ok := s.controls[id]; ok {
			cp := *c
			out[id] = &cp
		}
	}
	return out, nil
}

// GetFamily implements service.Catalog.
func (s *Store) GetFamily(ctx context.Context, id string) (*domain.ControlFamily, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.families[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFamilyNotFound, id)
	}
	cp := *f
	return &cp, nil
}

// GetAction implements service.Catalog.
func (s *Store) GetAction(ctx context.Context, id string) (*domain.CatalogAction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.actions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrActionNotFound, id)
	}
	cp := *a
	return &cp, nil
}

// ListActions implements service.Catalog, ordered by id.
func (s *Store) ListActions(ctx context.Context) ([]*domain.CatalogAction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.CatalogAction, 0, len(s.actions))
	for _, a := range s.actions {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AssetExists implements service.AssetRegistry.
func (s *Store) AssetExists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.assets[id]
	return ok, nil
}

// ScopeExists implements service.AssetRegistry.
func (s *Store) ScopeExists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.scopes[id]
	return ok, nil
}

// ListAssets implements service.AssetRegistry, ordered by id.
func (s *Store) ListAssets(ctx context.Context) ([]*domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListScopes implements service.AssetRegistry, ordered by id.
func (s *Store) ListScopes(ctx context.Context, assetID string) ([]*domain.Scope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Scope
	for _, sc := range s.scopes {
		if sc.AssetID == assetID {
			cp := *sc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
