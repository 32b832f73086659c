package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/complytrack/internal/domain"
	"github.com/mtlprog/complytrack/internal/memstore"
	"github.com/mtlprog/complytrack/internal/service"
)

type riskFixture struct {
	store    *memstore.Store
	workflow *service.WorkflowService
	risk     *service.RiskService
}

func newRiskFixture(t *testing.T) *riskFixture {
	t.Helper()
	store := newCatalogStore()
	cfg := service.Config{Now: func() time.Time { return fixedNow }}
	return &riskFixture{
		store:    store,
		workflow: service.NewWorkflowService(store, store, store, nil, cfg),
		risk:     service.NewRiskService(store, store, store, cfg),
	}
}

func (f *riskFixture) create(t *testing.T, actionID, assetID string, scopeID *string) *domain.TaskRecord {
	t.Helper()
	rec, _, err := f.workflow.CreateTaskRecord(context.Background(), compliance, service.CreateTaskRecordParams{
		ActionID: actionID,
		AssetID:  assetID,
		ScopeID:  scopeID,
	})
	require.NoError(t, err)
	return rec
}

func (f *riskFixture) complete(t *testing.T, taskID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.workflow.DelegateToIT(ctx, taskID, compliance, itOwner.ID)
	require.NoError(t, err)
	_, err = f.workflow.SubmitEvidence(ctx, taskID, itOwner)
	require.NoError(t, err)
	_, err = f.workflow.DelegateToAuditor(ctx, taskID, compliance, auditor.ID)
	require.NoError(t, err)
	_, err = f.workflow.ConfirmEvidence(ctx, taskID, auditor, "")
	require.NoError(t, err)
}

func TestRiskByAsset_UnknownAsset(t *testing.T) {
	f := newRiskFixture(t)

	_, err := f.risk.RiskByAsset(context.Background(), executive, "asset-zzz")
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestRiskByAsset_KnownAssetWithoutRecords(t *testing.T) {
	f := newRiskFixture(t)

	report, err := f.risk.RiskByAsset(context.Background(), executive, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, "asset-1", report.AssetID)
	assert.Zero(t, report.TotalRiskScore)
	assert.Zero(t, report.NumberOfIncompleteActions)
	assert.Equal(t, domain.CriticalityLow, report.Criticality)
	assert.Nil(t, report.ScopeID)
}

func TestRiskByAsset_WeightsIncompleteAndTakesMaxOverAll(t *testing.T) {
	f := newRiskFixture(t)
	crit := f.create(t, "act-crit", "asset-1", nil)
	f.create(t, "act-low", "asset-1", nil)
	f.create(t, "act-high", "asset-1", nil)

	report, err := f.risk.RiskByAsset(context.Background(), executive, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, 40+10+30, report.TotalRiskScore)
	assert.Equal(t, 3, report.NumberOfIncompleteActions)
	assert.Equal(t, domain.CriticalityCritical, report.Criticality)

	f.complete(t, crit.ID)

	report, err = f.risk.RiskByAsset(context.Background(), executive, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, 10+30, report.TotalRiskScore)
	assert.Equal(t, 2, report.NumberOfIncompleteActions)
	// completed records still count toward asset criticality
	assert.Equal(t, domain.CriticalityCritical, report.Criticality)
}

func TestRiskByAsset_ExcludesNonTasks(t *testing.T) {
	f := newRiskFixture(t)
	f.create(t, "act-retired", "asset-1", nil)
	f.create(t, "act-low", "asset-1", nil)

	report, err := f.risk.RiskByAsset(context.Background(), executive, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, 10, report.TotalRiskScore)
	assert.Equal(t, domain.CriticalityLow, report.Criticality)
}

func TestRiskByAsset_ScopeFromFirstRecord(t *testing.T) {
	f := newRiskFixture(t)
	scopeA, scopeB := "scope-a", "scope-b"
	f.create(t, "act-low", "asset-2", &scopeB)
	f.create(t, "act-high", "asset-2", &scopeA)

	report, err := f.risk.RiskByAsset(context.Background(), executive, "asset-2")
	require.NoError(t, err)
	require.NotNil(t, report.ScopeID)
	assert.Equal(t, "scope-b", *report.ScopeID)
}

func TestRiskByAsset_MissingControlIsSkipped(t *testing.T) {
	f := newRiskFixture(t)
	_, _, err := f.store.Create(context.Background(), &domain.TaskRecord{
		ActionID:  "act-orphan",
		AssetID:   "asset-1",
		ControlID: "ctl-gone",
		FamilyID:  "fam-1",
		Status:    domain.StatusOpen,
		IsTask:    true,
	})
	require.NoError(t, err)
	f.create(t, "act-high", "asset-1", nil)

	report, err := f.risk.RiskByAsset(context.Background(), executive, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, 30, report.TotalRiskScore)
	assert.Equal(t, 2, report.NumberOfIncompleteActions)
}

func TestOverallRisk_BreakdownInFirstSeenOrder(t *testing.T) {
	f := newRiskFixture(t)
	scopeA := "scope-a"

	crit := f.create(t, "act-crit", "asset-1", nil)
	f.create(t, "act-low", "asset-1", nil)
	f.create(t, "act-high", "asset-2", &scopeA)
	f.complete(t, crit.ID)

	report, err := f.risk.OverallRisk(context.Background(), executive)
	require.NoError(t, err)

	require.Len(t, report.AssetRisks, 2)
	assert.Equal(t, 10+30, report.TotalRiskScore)

	first := report.AssetRisks[0]
	assert.Equal(t, "asset-1", first.AssetID)
	assert.Equal(t, 10, first.RiskScore)
	// only incomplete records decide criticality here
	assert.Equal(t, domain.CriticalityLow, first.Criticality)
	assert.Nil(t, first.ScopeID)

	second := report.AssetRisks[1]
	assert.Equal(t, "asset-2", second.AssetID)
	assert.Equal(t, 30, second.RiskScore)
	assert.Equal(t, domain.CriticalityHigh, second.Criticality)
	require.NotNil(t, second.ScopeID)
	assert.Equal(t, "scope-a", *second.ScopeID)
}

func TestRisk_ReadsLiveControlCriticality(t *testing.T) {
	f := newRiskFixture(t)
	f.create(t, "act-low", "asset-1", nil)
	ctx := context.Background()

	before, err := f.risk.OverallRisk(ctx, executive)
	require.NoError(t, err)
	assert.Equal(t, 10, before.TotalRiskScore)

	f.store.PutControl(domain.Control{ID: "ctl-low", FamilyID: "fam-1", Name: "Banner", Criticality: domain.CriticalityCritical, IsControl: true})

	after, err := f.risk.OverallRisk(ctx, executive)
	require.NoError(t, err)
	assert.Equal(t, 40, after.TotalRiskScore)
	require.Len(t, after.AssetRisks, 1)
	assert.Equal(t, domain.CriticalityCritical, after.AssetRisks[0].Criticality)

	report, err := f.risk.RiskByAsset(ctx, executive, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, 40, report.TotalRiskScore)
	assert.Equal(t, domain.CriticalityCritical, report.Criticality)
}

func TestOverallRisk_EmptyIsZero(t *testing.T) {
	f := newRiskFixture(t)

	report, err := f.risk.OverallRisk(context.Background(), executive)
	require.NoError(t, err)
	assert.Zero(t, report.TotalRiskScore)
	assert.Empty(t, report.AssetRisks)
}

func TestRisk_CatalogFailureIsComputationError(t *testing.T) {
	f := newRiskFixture(t)
	f.create(t, "act-high", "asset-1", nil)

	broken := service.NewRiskService(f.store, &failingCatalog{Store: f.store, err: errors.New("catalog offline")}, f.store, service.Config{})

	_, err := broken.OverallRisk(context.Background(), executive)
	assert.ErrorIs(t, err, domain.ErrComputation)

	_, err = broken.RiskByAsset(context.Background(), executive, "asset-1")
	assert.ErrorIs(t, err, domain.ErrComputation)
}

func TestRisk_StoreTimeout(t *testing.T) {
	f := newRiskFixture(t)
	slow := service.NewRiskService(&slowStore{f.store}, f.store, f.store, service.Config{StoreTimeout: 10 * time.Millisecond})

	_, err := slow.OverallRisk(context.Background(), executive)
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestRisk_RequiresView(t *testing.T) {
	f := newRiskFixture(t)

	_, err := f.risk.OverallRisk(context.Background(), domain.Actor{ID: "guest", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.risk.RiskByAsset(context.Background(), domain.Actor{}, "asset-1")
	assert.ErrorIs(t, err, domain.ErrMissingActor)
}
