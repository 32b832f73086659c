// Package memstore is a mutex-guarded in-memory implementation of the task
// record store, catalog, asset registry and user directory. It backs the
// engine and handler tests and mirrors the PostgreSQL repositories' contracts.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mtlprog/complytrack/internal/domain"
)

// Store holds every collection in memory.
type Store struct {
	mu sync.RWMutex

	records  map[string]*domain.TaskRecord
	families map[string]*domain.ControlFamily
	controls map[string]*domain.Control
	actions  map[string]*domain.CatalogAction
	assets   map[string]*domain.Asset
	scopes   map[string]*domain.Scope
	users    map[string]*domain.User

	// insertion order for stable listings
	seq      int
	recordSq map[string]int
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		records:  make(map[string]*domain.TaskRecord),
		families: make(map[string]*domain.ControlFamily),
		controls: make(map[string]*domain.Control),
		actions:  make(map[string]*domain.CatalogAction),
		assets:   make(map[string]*domain.Asset),
		scopes:   make(map[string]*domain.Scope),
		users:    make(map[string]*domain.User),
		recordSq: make(map[string]int),
	}
}

// PutFamily adds or replaces a control family.
func (s *Store) PutFamily(f domain.ControlFamily) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.families[f.ID] = &f
}

// PutControl adds or replaces a control. Replacing a control changes the
// criticality seen by the next risk computation.
func (s *Store) PutControl(c domain.Control) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls[c.ID] = &c
}

// PutAction adds or replaces a catalog action.
func (s *Store) PutAction(a domain.CatalogAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[a.ID] = &a
}

// PutAsset adds or replaces an asset.
func (s *Store) PutAsset(a domain.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[a.ID] = &a
}

// PutScope adds or replaces a scope.
func (s *Store) PutScope(sc domain.Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopes[sc.ID] = &sc
}

// PutUser adds or replaces a user.
func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = &u
}

// Create implements service.TaskRecordStore.
func (s *Store) Create(ctx context.Context, rec *domain.TaskRecord) (*domain.TaskRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.findByKeyLocked(rec.Key()); existing != nil {
		return existing.Clone(), false, nil
	}

	stored := rec.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.History == nil {
		stored.History = []domain.ChangeEntry{}
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
		stored.UpdatedAt = stored.CreatedAt
	}
	s.seq++
	s.recordSq[stored.ID] = s.seq
	s.records[stored.ID] = stored

	return stored.Clone(), true, nil
}

// GetByID implements service.TaskRecordStore.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.TaskRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskRecordNotFound, id)
	}
	return rec.Clone(), nil
}

// GetByKey implements service.TaskRecordStore.
func (s *Store) GetByKey(ctx context.Context, key domain.TaskKey) (*domain.TaskRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := s.findByKeyLocked(key)
	if rec == nil {
		return nil, domain.ErrTaskRecordNotFound
	}
	return rec.Clone(), nil
}

func (s *Store) findByKeyLocked(key domain.TaskKey) *domain.TaskRecord {
	for _, rec := range s.records {
		if rec.ActionID == key.ActionID && rec.AssetID == key.AssetID && sameScope(rec.ScopeID, key.ScopeID) {
			return rec
		}
	}
	return nil
}

func sameScope(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// CompareAndSwap implements service.TaskRecordStore.
func (s *Store) CompareAndSwap(
	ctx context.Context,
	rec *domain.TaskRecord,
	expectedStatus domain.Status,
	expectedHistoryLen int,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[rec.ID]
	if !ok || current.Status != expectedStatus || len(current.History) != expectedHistoryLen {
		return fmt.Errorf("%w: task %s changed since it was read", domain.ErrConcurrentModification, rec.ID)
	}

	updated := rec.Clone()
	// identity and key fields are immutable
	updated.ActionID = current.ActionID
	updated.AssetID = current.AssetID
	updated.ScopeID = current.ScopeID
	updated.ControlID = current.ControlID
	updated.FamilyID = current.FamilyID
	updated.CreatedBy = current.CreatedBy
	updated.CreatedAt = current.CreatedAt
	s.records[rec.ID] = updated

	return nil
}

// List implements service.TaskRecordStore.
func (s *Store) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.TaskRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.TaskRecord
	for _, rec := range s.records {
		if matches(rec, filter) {
			out = append(out, rec.Clone())
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return s.recordSq[out[i].ID] < s.recordSq[out[j].ID]
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*domain.TaskRecord{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func matches(rec *domain.TaskRecord, f domain.TaskFilter) bool {
	if f.OnlyTasks && !rec.IsTask {
		return false
	}
	if f.AssetID != nil && rec.AssetID != *f.AssetID {
		return false
	}
	if f.ScopeID != nil && (rec.ScopeID == nil || *rec.ScopeID != *f.ScopeID) {
		return false
	}
	if f.ControlID != nil && rec.ControlID != *f.ControlID {
		return false
	}
	if f.FamilyID != nil && rec.FamilyID != *f.FamilyID {
		return false
	}
	if f.AssignedTo != nil && !rec.IsAssignedTo(*f.AssignedTo) {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, st := range f.Statuses {
			if rec.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// StatusCounts implements service.TaskRecordStore.
func (s *Store) StatusCounts(ctx context.Context, assetID *string) (map[domain.Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.Status]int)
	for _, rec := range s.records {
		if assetID != nil && rec.AssetID != *assetID {
			continue
		}
		counts[rec.Status]++
	}
	return counts, nil
}

// Ping always succeeds; the store lives in process.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
