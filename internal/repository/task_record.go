package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/complytrack/internal/domain"
)

// taskRecordColumns is the shared list of columns for task record queries.
var taskRecordColumns = []string{
	"id", "action_id", "asset_id", "scope_id", "control_id", "family_id",
	"status", "action",
	"is_completed", "is_evidence_uploaded", "is_software_selected", "is_task",
	"is_auditor_confirmed_for_not_applicable",
	"selected_software", "feedback",
	"created_by", "assigned_by", "assigned_to",
	"completed_at", "history", "created_at", "updated_at",
}

// TaskRecordRepository handles database operations for task records.
type TaskRecordRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRecordRepository creates a new TaskRecordRepository.
func NewTaskRecordRepository(pool *pgxpool.Pool) *TaskRecordRepository {
	return &TaskRecordRepository{pool: pool}
}

// scanTaskRecord scans a single row into a TaskRecord struct.
func scanTaskRecord(row pgx.Row) (*domain.TaskRecord, error) {
	var (
		rec     domain.TaskRecord
		action  *string
		history []byte
	)
	err := row.Scan(
		&rec.ID,
		&rec.ActionID,
		&rec.AssetID,
		&rec.ScopeID,
		&rec.ControlID,
		&rec.FamilyID,
		&rec.Status,
		&action,
		&rec.IsCompleted,
		&rec.IsEvidenceUploaded,
		&rec.IsSoftwareSelected,
		&rec.IsTask,
		&rec.IsAuditorConfirmedForNotApplicable,
		&rec.SelectedSoftware,
		&rec.Feedback,
		&rec.CreatedBy,
		&rec.AssignedBy,
		&rec.AssignedTo,
		&rec.CompletedAt,
		&history,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, storeError("scan task record", err, domain.ErrTaskRecordNotFound)
	}

	if action != nil {
		a := domain.TransitionAction(*action)
		rec.Action = &a
	}

	rec.History, err = decodeHistory(history)
	if err != nil {
		return nil, fmt.Errorf("task record %s: %w", rec.ID, err)
	}

	return &rec, nil
}

// scanTaskRecords scans multiple rows into a slice of TaskRecord structs.
func scanTaskRecords(rows pgx.Rows) ([]*domain.TaskRecord, error) {
	defer rows.Close()

	records := []*domain.TaskRecord{}
	for rows.Next() {
		rec, err := scanTaskRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate rows", err, nil)
	}
	return records, nil
}

// GetByID retrieves a task record by ID.
func (r *TaskRecordRepository) GetByID(ctx context.Context, id string) (*domain.TaskRecord, error) {
	query, args, err := psql.
		Select(taskRecordColumns...).
		From("task_records").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task record %s: %w", id, err)
	}

	rec, err := scanTaskRecord(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, domain.ErrTaskRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskRecordNotFound, id)
	}
	return rec, err
}

// GetByKey retrieves a task record by its (action, asset, scope) key.
// A nil scope matches only unscoped records.
func (r *TaskRecordRepository) GetByKey(ctx context.Context, key domain.TaskKey) (*domain.TaskRecord, error) {
	query, args, err := psql.
		Select(taskRecordColumns...).
		From("task_records").
		Where(sq.Eq{
			"action_id": key.ActionID,
			"asset_id":  key.AssetID,
			"scope_id":  key.ScopeID,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByKey query for task record: %w", err)
	}

	return scanTaskRecord(r.pool.QueryRow(ctx, query, args...))
}

// Create inserts a task record unless one with the same key already exists,
// in which case the stored record is returned and created is false.
func (r *TaskRecordRepository) Create(ctx context.Context, rec *domain.TaskRecord) (*domain.TaskRecord, bool, error) {
	history, err := encodeHistory(rec.History)
	if err != nil {
		return nil, false, err
	}

	query, args, err := psql.
		Insert("task_records").
		Columns(
			"action_id", "asset_id", "scope_id", "control_id", "family_id",
			"status", "is_completed", "is_evidence_uploaded", "is_software_selected", "is_task",
			"is_auditor_confirmed_for_not_applicable", "selected_software",
			"created_by", "assigned_by", "assigned_to", "history",
		).
		Values(
			rec.ActionID,
			rec.AssetID,
			rec.ScopeID,
			rec.ControlID,
			rec.FamilyID,
			rec.Status,
			rec.IsCompleted,
			rec.IsEvidenceUploaded,
			rec.IsSoftwareSelected,
			rec.IsTask,
			rec.IsAuditorConfirmedForNotApplicable,
			rec.SelectedSoftware,
			rec.CreatedBy,
			rec.AssignedBy,
			rec.AssignedTo,
			history,
		).
		Suffix("ON CONFLICT ON CONSTRAINT task_records_key DO NOTHING RETURNING " + strings.Join(taskRecordColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build Create query for task record: %w", err)
	}

	stored, err := scanTaskRecord(r.pool.QueryRow(ctx, query, args...))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, domain.ErrTaskRecordNotFound) {
		return nil, false, fmt.Errorf("create task record: %w", err)
	}

	// Conflict: someone else created the record first.
	existing, err := r.GetByKey(ctx, rec.Key())
	if err != nil {
		return nil, false, fmt.Errorf("load existing task record: %w", err)
	}
	return existing, false, nil
}

// CompareAndSwap writes the mutable fields and full history of rec in one
// statement, guarded by the status and history length that were read.
// Returns ErrConcurrentModification if another transition committed first.
func (r *TaskRecordRepository) CompareAndSwap(
	ctx context.Context,
	rec *domain.TaskRecord,
	expectedStatus domain.Status,
	expectedHistoryLen int,
) error {
	history, err := encodeHistory(rec.History)
	if err != nil {
		return err
	}

	var action *string
	if rec.Action != nil {
		a := string(*rec.Action)
		action = &a
	}

	query, args, err := psql.
		Update("task_records").
		Set("status", rec.Status).
		Set("action", action).
		Set("is_completed", rec.IsCompleted).
		Set("is_evidence_uploaded", rec.IsEvidenceUploaded).
		Set("is_software_selected", rec.IsSoftwareSelected).
		Set("is_auditor_confirmed_for_not_applicable", rec.IsAuditorConfirmedForNotApplicable).
		Set("selected_software", rec.SelectedSoftware).
		Set("feedback", rec.Feedback).
		Set("assigned_by", rec.AssignedBy).
		Set("assigned_to", rec.AssignedTo).
		Set("completed_at", rec.CompletedAt).
		Set("history", history).
		Set("updated_at", rec.UpdatedAt).
		Where(sq.Eq{
			"id":     rec.ID,
			"status": expectedStatus,
		}).
		Where("jsonb_array_length(history) = ?", expectedHistoryLen).
		ToSql()
	if err != nil {
		return fmt.Errorf("build CompareAndSwap query for task record %s: %w", rec.ID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return storeError("update task record", err, nil)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: task %s is no longer in %q", domain.ErrConcurrentModification, rec.ID, expectedStatus)
	}

	return nil
}

// List returns task records matching the filter, oldest first.
func (r *TaskRecordRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.TaskRecord, error) {
	qb := psql.
		Select(taskRecordColumns...).
		From("task_records").
		OrderBy("created_at ASC", "id ASC")

	qb = applyTaskFilter(qb, filter)

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for task records: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list task records", err, nil)
	}

	return scanTaskRecords(rows)
}

// StatusCounts returns the number of records per status, optionally for one asset.
func (r *TaskRecordRepository) StatusCounts(ctx context.Context, assetID *string) (map[domain.Status]int, error) {
	qb := psql.
		Select("status", "COUNT(*)").
		From("task_records").
		GroupBy("status")
	if assetID != nil {
		qb = qb.Where(sq.Eq{"asset_id": *assetID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build StatusCounts query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("count task records", err, nil)
	}
	defer rows.Close()

	counts := make(map[domain.Status]int)
	for rows.Next() {
		var (
			status domain.Status
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, storeError("scan status count", err, nil)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate status counts", err, nil)
	}

	return counts, nil
}

func applyTaskFilter(qb sq.SelectBuilder, filter domain.TaskFilter) sq.SelectBuilder {
	if filter.AssetID != nil {
		qb = qb.Where(sq.Eq{"asset_id": *filter.AssetID})
	}
	if filter.ScopeID != nil {
		qb = qb.Where(sq.Eq{"scope_id": *filter.ScopeID})
	}
	if filter.ControlID != nil {
		qb = qb.Where(sq.Eq{"control_id": *filter.ControlID})
	}
	if filter.FamilyID != nil {
		qb = qb.Where(sq.Eq{"family_id": *filter.FamilyID})
	}
	if filter.AssignedTo != nil {
		qb = qb.Where(sq.Eq{"assigned_to": *filter.AssignedTo})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		qb = qb.Where(sq.Eq{"status": statuses})
	}
	if filter.OnlyTasks {
		qb = qb.Where(sq.Eq{"is_task": true})
	}
	return qb
}
