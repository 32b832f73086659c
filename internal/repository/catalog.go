package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/complytrack/internal/domain"
)

// CatalogRepository reads the control family / control / action hierarchy.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

var controlColumns = []string{"id", "family_id", "name", "criticality", "is_control"}

func scanControl(row pgx.Row) (*domain.Control, error) {
	var (
		c           domain.Control
		criticality string
	)
	if err := row.Scan(&c.ID, &c.FamilyID, &c.Name, &criticality, &c.IsControl); err != nil {
		return nil, storeError("scan control", err, domain.ErrControlNotFound)
	}
	c.Criticality = domain.ParseCriticality(criticality)
	return &c, nil
}

// GetControl retrieves a control by ID.
func (r *CatalogRepository) GetControl(ctx context.Context, id string) (*domain.Control, error) {
	query, args, err := psql.
		Select(controlColumns...).
		From("controls").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetControl query for %s: %w", id, err)
	}

	c, err := scanControl(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, domain.ErrControlNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrControlNotFound, id)
	}
	return c, err
}

// GetControls retrieves the controls among ids in one query, keyed by id.
func (r *CatalogRepository) GetControls(ctx context.Context, ids []string) (map[string]*domain.Control, error) {
	out := make(map[string]*domain.Control, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := psql.
		Select(controlColumns...).
		From("controls").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetControls query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("get controls", err, nil)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanControl(rows)
		if err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate controls", err, nil)
	}
	return out, nil
}

// GetFamily retrieves a control family by ID.
func (r *CatalogRepository) GetFamily(ctx context.Context, id string) (*domain.ControlFamily, error) {
	query, args, err := psql.
		Select("id", "name", "is_control_family").
		From("control_families").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetFamily query for %s: %w", id, err)
	}

	var f domain.ControlFamily
	err = r.pool.QueryRow(ctx, query, args...).Scan(&f.ID, &f.Name, &f.IsControlFamily)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFamilyNotFound, id)
	}
	if err != nil {
		return nil, storeError("get control family", err, nil)
	}
	return &f, nil
}

var actionColumns = []string{"id", "control_id", "name", "is_action"}

func scanAction(row pgx.Row) (*domain.CatalogAction, error) {
	var a domain.CatalogAction
	if err := row.Scan(&a.ID, &a.ControlID, &a.Name, &a.IsAction); err != nil {
		return nil, storeError("scan catalog action", err, domain.ErrActionNotFound)
	}
	return &a, nil
}

// GetAction retrieves a catalog action by ID.
func (r *CatalogRepository) GetAction(ctx context.Context, id string) (*domain.CatalogAction, error) {
	query, args, err := psql.
		Select(actionColumns...).
		From("catalog_actions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetAction query for %s: %w", id, err)
	}

	a, err := scanAction(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, domain.ErrActionNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrActionNotFound, id)
	}
	return a, err
}

// ListActions returns every catalog action ordered by id.
func (r *CatalogRepository) ListActions(ctx context.Context) ([]*domain.CatalogAction, error) {
	query, args, err := psql.
		Select(actionColumns...).
		From("catalog_actions").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListActions query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list catalog actions", err, nil)
	}
	defer rows.Close()

	actions := []*domain.CatalogAction{}
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate catalog actions", err, nil)
	}
	return actions, nil
}

// CreateFamily inserts a control family. Used by fixtures and tests.
func (r *CatalogRepository) CreateFamily(ctx context.Context, f *domain.ControlFamily) error {
	return r.exec(ctx, "insert control family", psql.
		Insert("control_families").
		Columns("id", "name", "is_control_family").
		Values(f.ID, f.Name, f.IsControlFamily))
}

// CreateControl inserts a control.
func (r *CatalogRepository) CreateControl(ctx context.Context, c *domain.Control) error {
	return r.exec(ctx, "insert control", psql.
		Insert("controls").
		Columns(controlColumns...).
		Values(c.ID, c.FamilyID, c.Name, c.Criticality.String(), c.IsControl))
}

// CreateAction inserts a catalog action.
func (r *CatalogRepository) CreateAction(ctx context.Context, a *domain.CatalogAction) error {
	return r.exec(ctx, "insert catalog action", psql.
		Insert("catalog_actions").
		Columns(actionColumns...).
		Values(a.ID, a.ControlID, a.Name, a.IsAction))
}

func (r *CatalogRepository) exec(ctx context.Context, op string, b sq.InsertBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build %s query: %w", op, err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return storeError(op, err, nil)
	}
	return nil
}
