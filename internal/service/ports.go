package service

import (
	"context"

	"github.com/mtlprog/complytrack/internal/domain"
)

// TaskRecordStore persists task records and their history.
type TaskRecordStore interface {
	// Create inserts the record unless one with the same key exists. It returns
	// the stored record and whether this call created it.
	Create(ctx context.Context, rec *domain.TaskRecord) (*domain.TaskRecord, bool, error)
	GetByID(ctx context.Context, id string) (*domain.TaskRecord, error)
	GetByKey(ctx context.Context, key domain.TaskKey) (*domain.TaskRecord, error)
	// CompareAndSwap writes every mutable field of rec, including the full history,
	// only if the stored status and history length still match the expected values.
	// Returns domain.ErrConcurrentModification otherwise.
	CompareAndSwap(ctx context.Context, rec *domain.TaskRecord, expectedStatus domain.Status, expectedHistoryLen int) error
	// List returns records ordered by creation time, then id.
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.TaskRecord, error)
	StatusCounts(ctx context.Context, assetID *string) (map[domain.Status]int, error)
}

// Catalog is the read side of the control family / control / action hierarchy.
type Catalog interface {
	GetControl(ctx context.Context, id string) (*domain.Control, error)
	// GetControls returns the controls found among ids, keyed by id. Missing ids are omitted.
	GetControls(ctx context.Context, ids []string) (map[string]*domain.Control, error)
	GetFamily(ctx context.Context, id string) (*domain.ControlFamily, error)
	GetAction(ctx context.Context, id string) (*domain.CatalogAction, error)
	ListActions(ctx context.Context) ([]*domain.CatalogAction, error)
}

// AssetRegistry is the read side of discovered assets and scopes.
type AssetRegistry interface {
	AssetExists(ctx context.Context, id string) (bool, error)
	ScopeExists(ctx context.Context, id string) (bool, error)
	ListAssets(ctx context.Context) ([]*domain.Asset, error)
	ListScopes(ctx context.Context, assetID string) ([]*domain.Scope, error)
}
