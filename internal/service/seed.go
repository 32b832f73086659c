package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtlprog/complytrack/internal/domain"
)

// SeedResult summarizes a seeding run.
type SeedResult struct {
	Created  int
	Existing int
	Skipped  int // scoped assets without any scope
}

// Seed creates a task record for every catalog action against every asset.
// Scoped assets get one record per scope; scoped assets with no scopes are
// skipped. Re-running is safe: existing records are left untouched.
func (s *WorkflowService) Seed(ctx context.Context, actor domain.Actor) (SeedResult, error) {
	var result SeedResult

	actions, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) ([]*domain.CatalogAction, error) {
		return s.catalog.ListActions(ctx)
	})
	if err != nil {
		return result, fmt.Errorf("list catalog actions: %w", err)
	}

	assets, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) ([]*domain.Asset, error) {
		return s.assets.ListAssets(ctx)
	})
	if err != nil {
		return result, fmt.Errorf("list assets: %w", err)
	}

	for _, asset := range assets {
		scopeIDs := []*string{nil}
		if asset.IsScoped {
			scopes, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) ([]*domain.Scope, error) {
				return s.assets.ListScopes(ctx, asset.ID)
			})
			if err != nil {
				return result, fmt.Errorf("list scopes for asset %s: %w", asset.ID, err)
			}
			if len(scopes) == 0 {
				slog.Info("scoped asset has no scopes, skipping", "asset_id", asset.ID, "asset_name", asset.Name)
				result.Skipped++
				continue
			}
			scopeIDs = scopeIDs[:0]
			for _, sc := range scopes {
				id := sc.ID
				scopeIDs = append(scopeIDs, &id)
			}
		}

		for _, action := range actions {
			for _, scopeID := range scopeIDs {
				_, created, err := s.CreateTaskRecord(ctx, actor, CreateTaskRecordParams{
					ActionID: action.ID,
					AssetID:  asset.ID,
					ScopeID:  scopeID,
				})
				if err != nil {
					return result, fmt.Errorf("seed action %s on asset %s: %w", action.ID, asset.ID, err)
				}
				if created {
					result.Created++
				} else {
					result.Existing++
				}
			}
		}
	}

	slog.Info("seeding finished",
		"created", result.Created,
		"existing", result.Existing,
		"skipped_assets", result.Skipped,
	)

	return result, nil
}
