package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtlprog/complytrack/internal/domain"
	"github.com/mtlprog/complytrack/internal/events"
)

// WorkflowService enforces the task record state machine. Every transition is
// validated, appended to history and committed with compare-and-set semantics.
// It never retries: ConcurrentModification is returned to the caller.
type WorkflowService struct {
	records   TaskRecordStore
	catalog   Catalog
	assets    AssetRegistry
	publisher events.Publisher
	validator *Validator
	cfg       Config
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(
	records TaskRecordStore,
	catalog Catalog,
	assets AssetRegistry,
	publisher events.Publisher,
	cfg Config,
) *WorkflowService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &WorkflowService{
		records:   records,
		catalog:   catalog,
		assets:    assets,
		publisher: publisher,
		validator: NewValidator(),
		cfg:       cfg.withDefaults(),
	}
}

// CreateTaskRecordParams identifies the record to create.
type CreateTaskRecordParams struct {
	ActionID         string
	AssetID          string
	ScopeID          *string
	SelectedSoftware *string
}

// CreateTaskRecord creates the record for (action, asset, scope) or returns the
// existing one. The boolean reports whether a new record was stored.
func (s *WorkflowService) CreateTaskRecord(
	ctx context.Context,
	actor domain.Actor,
	params CreateTaskRecordParams,
) (*domain.TaskRecord, bool, error) {
	if err := s.validator.CheckActor(actor); err != nil {
		return nil, false, err
	}
	if err := actor.Require(domain.CapabilityAdd); err != nil {
		return nil, false, err
	}
	if err := s.validator.CanCreate(params); err != nil {
		return nil, false, err
	}

	key := domain.TaskKey{ActionID: params.ActionID, AssetID: params.AssetID, ScopeID: params.ScopeID}
	existing, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (*domain.TaskRecord, error) {
		return s.records.GetByKey(ctx, key)
	})
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("look up task record: %w", err)
	}

	if err := s.checkAssetAndScope(ctx, params.AssetID, params.ScopeID); err != nil {
		return nil, false, err
	}

	control, family, action, err := s.resolveCatalog(ctx, params.ActionID)
	if err != nil {
		return nil, false, err
	}

	now := s.cfg.Now()
	rec := &domain.TaskRecord{
		ActionID:           params.ActionID,
		AssetID:            params.AssetID,
		ScopeID:            params.ScopeID,
		ControlID:          control.ID,
		FamilyID:           family.ID,
		Status:             domain.StatusOpen,
		IsSoftwareSelected: params.SelectedSoftware != nil,
		IsTask:             family.IsControlFamily && control.IsControl && action.IsAction,
		SelectedSoftware:   params.SelectedSoftware,
		CreatedBy:          actor.ID,
		AssignedBy:         &actor.ID,
		AssignedTo:         &actor.ID,
		History:            []domain.ChangeEntry{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	type createResult struct {
		rec     *domain.TaskRecord
		created bool
	}
	res, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (createResult, error) {
		stored, created, err := s.records.Create(ctx, rec)
		return createResult{stored, created}, err
	})
	if err != nil {
		return nil, false, fmt.Errorf("create task record: %w", err)
	}

	if res.created {
		slog.Info("task record created",
			"task_id", res.rec.ID,
			"action_id", res.rec.ActionID,
			"asset_id", res.rec.AssetID,
			"is_task", res.rec.IsTask,
			"actor_id", actor.ID,
		)
	}

	return res.rec, res.created, nil
}

func (s *WorkflowService) checkAssetAndScope(ctx context.Context, assetID string, scopeID *string) error {
	ok, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (bool, error) {
		return s.assets.AssetExists(ctx, assetID)
	})
	if err != nil {
		return fmt.Errorf("check asset %s: %w", assetID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAssetNotFound, assetID)
	}

	if scopeID == nil {
		return nil
	}
	ok, err = bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (bool, error) {
		return s.assets.ScopeExists(ctx, *scopeID)
	})
	if err != nil {
		return fmt.Errorf("check scope %s: %w", *scopeID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrScopeNotFound, *scopeID)
	}
	return nil
}

func (s *WorkflowService) resolveCatalog(
	ctx context.Context,
	actionID string,
) (*domain.Control, *domain.ControlFamily, *domain.CatalogAction, error) {
	action, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (*domain.CatalogAction, error) {
		return s.catalog.GetAction(ctx, actionID)
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get catalog action %s: %w", actionID, err)
	}

	control, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (*domain.Control, error) {
		return s.catalog.GetControl(ctx, action.ControlID)
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get control %s: %w", action.ControlID, err)
	}

	family, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (*domain.ControlFamily, error) {
		return s.catalog.GetFamily(ctx, control.FamilyID)
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get control family %s: %w", control.FamilyID, err)
	}

	return control, family, action, nil
}

// Get returns one task record with its full history.
func (s *WorkflowService) Get(ctx context.Context, actor domain.Actor, taskID string) (*domain.TaskRecord, error) {
	if err := s.checkReader(actor); err != nil {
		return nil, err
	}
	if err := s.validator.CheckTaskID(taskID); err != nil {
		return nil, err
	}
	return s.getRecord(ctx, taskID)
}

// List returns task records matching the filter.
func (s *WorkflowService) List(ctx context.Context, actor domain.Actor, filter domain.TaskFilter) ([]*domain.TaskRecord, error) {
	if err := s.checkReader(actor); err != nil {
		return nil, err
	}
	for _, st := range filter.Statuses {
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, st)
		}
	}
	return bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) ([]*domain.TaskRecord, error) {
		return s.records.List(ctx, filter)
	})
}

// StatusCounts returns how many records are in each status, optionally for one asset.
func (s *WorkflowService) StatusCounts(ctx context.Context, actor domain.Actor, assetID *string) (map[domain.Status]int, error) {
	if err := s.checkReader(actor); err != nil {
		return nil, err
	}
	return bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (map[domain.Status]int, error) {
		return s.records.StatusCounts(ctx, assetID)
	})
}

func (s *WorkflowService) checkReader(actor domain.Actor) error {
	if err := s.validator.CheckActor(actor); err != nil {
		return err
	}
	return actor.Require(domain.CapabilityView)
}

func (s *WorkflowService) getRecord(ctx context.Context, taskID string) (*domain.TaskRecord, error) {
	return bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (*domain.TaskRecord, error) {
		return s.records.GetByID(ctx, taskID)
	})
}

// mutation applies operation-specific field changes on top of the status/action
// update. It may reject the transition with a domain error.
type mutation func(rec *domain.TaskRecord, now time.Time) error

// apply runs one transition: capability gate, load, legality check, mutation,
// history append and compare-and-set commit.
func (s *WorkflowService) apply(
	ctx context.Context,
	taskID string,
	actor domain.Actor,
	action domain.TransitionAction,
	mutate mutation,
) (*domain.TaskRecord, error) {
	if err := s.validator.CheckActor(actor); err != nil {
		return nil, err
	}
	if err := s.validator.CheckTaskID(taskID); err != nil {
		return nil, err
	}

	tr, ok := domain.LookupTransition(action)
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrValidation, action)
	}
	if err := actor.Require(tr.Capabilities...); err != nil {
		return nil, err
	}

	current, err := s.getRecord(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanApply(current, tr); err != nil {
		return nil, err
	}

	now := s.cfg.Now()
	next := current.Clone()
	next.Status = tr.To
	next.Action = &tr.Action
	if mutate != nil {
		if err := mutate(next, now); err != nil {
			return nil, err
		}
	}
	next.IsCompleted = next.Status == domain.StatusCompleted
	next.History = append(next.History, domain.ChangeEntry{
		ModifiedAt: now,
		ModifiedBy: actor.ID,
		Changes:    diffRecords(current, next),
	})
	next.UpdatedAt = now

	// Cancellation is only honored up to this point.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("transition %q on task %s: %w", action, taskID, classifyStoreError(err))
	}

	_, err = bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.records.CompareAndSwap(ctx, next, current.Status, len(current.History))
	})
	if err != nil {
		return nil, err
	}

	slog.Info("task record transitioned",
		"task_id", next.ID,
		"actor_id", actor.ID,
		"action", action,
		"old_status", current.Status,
		"new_status", next.Status,
		"history_len", len(next.History),
	)

	s.publish(ctx, current.Status, next, actor)

	return next, nil
}

// publish delivers the transition event after the commit. Failures are logged;
// the committed transition stands.
func (s *WorkflowService) publish(ctx context.Context, oldStatus domain.Status, rec *domain.TaskRecord, actor domain.Actor) {
	event := events.TransitionEvent{
		TaskID:     rec.ID,
		AssetID:    rec.AssetID,
		Action:     string(*rec.Action),
		OldStatus:  string(oldStatus),
		NewStatus:  string(rec.Status),
		ActorID:    actor.ID,
		AssignedTo: rec.AssignedTo,
		OccurredAt: rec.UpdatedAt,
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		slog.Warn("failed to publish transition event",
			"task_id", rec.ID,
			"action", event.Action,
			"error", err,
		)
	}
}
