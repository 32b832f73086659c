package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtlprog/complytrack/internal/domain"
)

// RiskService computes weighted risk scores from live task record and catalog
// state. Nothing is cached: every call is a fresh scan, and a scan may observe
// transitions that are still being committed.
type RiskService struct {
	records TaskRecordStore
	catalog Catalog
	assets  AssetRegistry
	cfg     Config
}

// NewRiskService creates a new RiskService.
func NewRiskService(records TaskRecordStore, catalog Catalog, assets AssetRegistry, cfg Config) *RiskService {
	return &RiskService{
		records: records,
		catalog: catalog,
		assets:  assets,
		cfg:     cfg.withDefaults(),
	}
}

// RiskByAsset computes the risk report of one asset. Asset criticality is the
// maximum over all joined controls; the score counts incomplete records only.
func (s *RiskService) RiskByAsset(ctx context.Context, actor domain.Actor, assetID string) (*domain.AssetRiskReport, error) {
	if err := s.checkReader(actor); err != nil {
		return nil, err
	}
	if assetID == "" {
		return nil, fmt.Errorf("%w: asset id is required", domain.ErrValidation)
	}

	records, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) ([]*domain.TaskRecord, error) {
		return s.records.List(ctx, domain.TaskFilter{AssetID: &assetID, OnlyTasks: true})
	})
	if err != nil {
		return nil, fmt.Errorf("list task records for asset %s: %w", assetID, err)
	}

	report := &domain.AssetRiskReport{
		AssetID:     assetID,
		Criticality: domain.CriticalityLow,
	}

	if len(records) == 0 {
		ok, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (bool, error) {
			return s.assets.AssetExists(ctx, assetID)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: check asset %s: %w", domain.ErrComputation, assetID, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, assetID)
		}
		return report, nil
	}

	controls, err := s.loadControls(ctx, records)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if c, ok := controls[rec.ControlID]; ok {
			report.Criticality = domain.MaxCriticality(report.Criticality, c.Criticality)
		}
	}

	for _, rec := range records {
		if rec.IsCompleted {
			continue
		}
		report.NumberOfIncompleteActions++
		if c, ok := controls[rec.ControlID]; ok {
			report.TotalRiskScore += domain.BaseRiskScore * c.Criticality.Multiplier()
		}
	}

	report.ScopeID = records[0].ScopeID

	slog.Debug("asset risk computed",
		"asset_id", assetID,
		"total_risk_score", report.TotalRiskScore,
		"criticality", report.Criticality,
		"records", len(records),
	)

	return report, nil
}

// OverallRisk computes the organization-wide report. Per asset, criticality is
// the maximum over that asset's incomplete records and the scope is the first
// non-null scope seen on them. Assets appear in first-seen order.
func (s *RiskService) OverallRisk(ctx context.Context, actor domain.Actor) (*domain.OverallRisk, error) {
	if err := s.checkReader(actor); err != nil {
		return nil, err
	}

	records, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) ([]*domain.TaskRecord, error) {
		return s.records.List(ctx, domain.TaskFilter{OnlyTasks: true})
	})
	if err != nil {
		return nil, fmt.Errorf("list task records: %w", err)
	}

	controls, err := s.loadControls(ctx, records)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	result := &domain.OverallRisk{AssetRisks: []domain.AssetRisk{}}

	for _, rec := range records {
		if rec.IsCompleted {
			continue
		}
		c, ok := controls[rec.ControlID]
		if !ok {
			continue
		}

		i, seen := index[rec.AssetID]
		if !seen {
			i = len(result.AssetRisks)
			index[rec.AssetID] = i
			result.AssetRisks = append(result.AssetRisks, domain.AssetRisk{
				AssetID:     rec.AssetID,
				Criticality: c.Criticality,
			})
		}

		ar := &result.AssetRisks[i]
		ar.RiskScore += domain.BaseRiskScore * c.Criticality.Multiplier()
		ar.Criticality = domain.MaxCriticality(ar.Criticality, c.Criticality)
		if ar.ScopeID == nil && rec.ScopeID != nil {
			scope := *rec.ScopeID
			ar.ScopeID = &scope
		}
	}

	for _, ar := range result.AssetRisks {
		result.TotalRiskScore += ar.RiskScore
	}

	slog.Debug("overall risk computed",
		"total_risk_score", result.TotalRiskScore,
		"assets", len(result.AssetRisks),
		"records", len(records),
	)

	return result, nil
}

// loadControls joins records against the catalog in one batch read. Any catalog
// failure aborts the computation; a partial score is never returned.
func (s *RiskService) loadControls(ctx context.Context, records []*domain.TaskRecord) (map[string]*domain.Control, error) {
	seen := make(map[string]bool, len(records))
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if !seen[rec.ControlID] {
			seen[rec.ControlID] = true
			ids = append(ids, rec.ControlID)
		}
	}
	if len(ids) == 0 {
		return map[string]*domain.Control{}, nil
	}

	controls, err := bounded(ctx, s.cfg.StoreTimeout, func(ctx context.Context) (map[string]*domain.Control, error) {
		return s.catalog.GetControls(ctx, ids)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: load controls: %w", domain.ErrComputation, err)
	}
	return controls, nil
}

func (s *RiskService) checkReader(actor domain.Actor) error {
	if actor.ID == "" {
		return domain.ErrMissingActor
	}
	return actor.Require(domain.CapabilityView)
}
