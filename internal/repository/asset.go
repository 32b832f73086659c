package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/complytrack/internal/domain"
)

// AssetRepository reads discovered assets and their scopes.
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

// AssetExists reports whether an asset with the given ID is registered.
func (r *AssetRepository) AssetExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "assets", id)
}

// ScopeExists reports whether a scope with the given ID is registered.
func (r *AssetRepository) ScopeExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "scopes", id)
}

func (r *AssetRepository) exists(ctx context.Context, table, id string) (bool, error) {
	query, args, err := psql.
		Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(sq.Eq{"id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query for %s: %w", table, err)
	}

	var ok bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, storeError("check "+table, err, nil)
	}
	return ok, nil
}

// ListAssets returns every asset ordered by id.
func (r *AssetRepository) ListAssets(ctx context.Context) ([]*domain.Asset, error) {
	query, args, err := psql.
		Select("id", "name", "type", "location", "is_scoped").
		From("assets").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListAssets query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list assets", err, nil)
	}
	defer rows.Close()

	assets := []*domain.Asset{}
	for rows.Next() {
		var a domain.Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Location, &a.IsScoped); err != nil {
			return nil, storeError("scan asset", err, nil)
		}
		assets = append(assets, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate assets", err, nil)
	}
	return assets, nil
}

// ListScopes returns the scopes of one asset ordered by id.
func (r *AssetRepository) ListScopes(ctx context.Context, assetID string) ([]*domain.Scope, error) {
	query, args, err := psql.
		Select("id", "asset_id", "name", "cloud_provider", "service_type").
		From("scopes").
		Where(sq.Eq{"asset_id": assetID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListScopes query for asset %s: %w", assetID, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list scopes", err, nil)
	}
	defer rows.Close()

	scopes := []*domain.Scope{}
	for rows.Next() {
		var s domain.Scope
		if err := rows.Scan(&s.ID, &s.AssetID, &s.Name, &s.CloudProvider, &s.ServiceType); err != nil {
			return nil, storeError("scan scope", err, nil)
		}
		scopes = append(scopes, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate scopes", err, nil)
	}
	return scopes, nil
}

// CreateAsset inserts an asset.
func (r *AssetRepository) CreateAsset(ctx context.Context, a *domain.Asset) error {
	query, args, err := psql.
		Insert("assets").
		Columns("id", "name", "type", "location", "is_scoped").
		Values(a.ID, a.Name, a.Type, a.Location, a.IsScoped).
		ToSql()
	if err != nil {
		return fmt.Errorf("build CreateAsset query: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return storeError("insert asset", err, nil)
	}
	return nil
}

// CreateScope inserts a scope.
func (r *AssetRepository) CreateScope(ctx context.Context, s *domain.Scope) error {
	query, args, err := psql.
		Insert("scopes").
		Columns("id", "asset_id", "name", "cloud_provider", "service_type").
		Values(s.ID, s.AssetID, s.Name, s.CloudProvider, s.ServiceType).
		ToSql()
	if err != nil {
		return fmt.Errorf("build CreateScope query: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return storeError("insert scope", err, nil)
	}
	return nil
}
