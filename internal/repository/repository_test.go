package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/complytrack/internal/database"
	"github.com/mtlprog/complytrack/internal/domain"
	"github.com/mtlprog/complytrack/internal/repository"
)

// RepositoryTestSuite runs against a real PostgreSQL instance.
type RepositoryTestSuite struct {
	suite.Suite
	pool    *pgxpool.Pool
	records *repository.TaskRecordRepository
	catalog *repository.CatalogRepository
	assets  *repository.AssetRepository
	users   *repository.UserRepository
}

func (s *RepositoryTestSuite) SetupSuite() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		s.T().Skip("DATABASE_URL is not set")
	}

	ctx := context.Background()

	db, err := database.New(ctx, databaseURL, database.Options{})
	s.Require().NoError(err, "failed to connect to database")
	s.pool = db.Pool()

	s.Require().NoError(database.RunMigrations(ctx, s.pool), "failed to run migrations")

	s.records = repository.NewTaskRecordRepository(s.pool)
	s.catalog = repository.NewCatalogRepository(s.pool)
	s.assets = repository.NewAssetRepository(s.pool)
	s.users = repository.NewUserRepository(s.pool)
}

func (s *RepositoryTestSuite) SetupTest() {
	ctx := context.Background()

	_, err := s.pool.Exec(ctx, "TRUNCATE task_records, scopes, assets, catalog_actions, controls, control_families, users CASCADE")
	s.Require().NoError(err, "failed to truncate tables")

	s.Require().NoError(s.catalog.CreateFamily(ctx, &domain.ControlFamily{ID: "fam-1", Name: "Access", IsControlFamily: true}))
	s.Require().NoError(s.catalog.CreateControl(ctx, &domain.Control{
		ID: "ctl-1", FamilyID: "fam-1", Name: "MFA", Criticality: domain.CriticalityHigh, IsControl: true,
	}))
	s.Require().NoError(s.catalog.CreateAction(ctx, &domain.CatalogAction{ID: "act-1", ControlID: "ctl-1", Name: "Enable MFA", IsAction: true}))
	s.Require().NoError(s.catalog.CreateAction(ctx, &domain.CatalogAction{ID: "act-2", ControlID: "ctl-1", Name: "Review MFA", IsAction: true}))
	s.Require().NoError(s.assets.CreateAsset(ctx, &domain.Asset{ID: "asset-1", Name: "web", IsScoped: true}))
	s.Require().NoError(s.assets.CreateScope(ctx, &domain.Scope{ID: "scope-1", AssetID: "asset-1", Name: "prod"}))
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *RepositoryTestSuite) newRecord(actionID string, scopeID *string) *domain.TaskRecord {
	return &domain.TaskRecord{
		ActionID:  actionID,
		AssetID:   "asset-1",
		ScopeID:   scopeID,
		ControlID: "ctl-1",
		FamilyID:  "fam-1",
		Status:    domain.StatusOpen,
		IsTask:    true,
		CreatedBy: "user-1",
		History:   []domain.ChangeEntry{},
	}
}

func (s *RepositoryTestSuite) TestCreate_IsIdempotentByKey() {
	ctx := context.Background()

	first, created, err := s.records.Create(ctx, s.newRecord("act-1", nil))
	s.Require().NoError(err)
	s.True(created)
	s.NotEmpty(first.ID)

	second, created, err := s.records.Create(ctx, s.newRecord("act-1", nil))
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, second.ID)

	scope := "scope-1"
	scoped, created, err := s.records.Create(ctx, s.newRecord("act-1", &scope))
	s.Require().NoError(err)
	s.True(created)
	s.NotEqual(first.ID, scoped.ID)
}

func (s *RepositoryTestSuite) TestGetByKey_NilScopeMatchesUnscopedOnly() {
	ctx := context.Background()
	scope := "scope-1"

	_, _, err := s.records.Create(ctx, s.newRecord("act-1", &scope))
	s.Require().NoError(err)

	_, err = s.records.GetByKey(ctx, domain.TaskKey{ActionID: "act-1", AssetID: "asset-1"})
	s.ErrorIs(err, domain.ErrNotFound)

	rec, err := s.records.GetByKey(ctx, domain.TaskKey{ActionID: "act-1", AssetID: "asset-1", ScopeID: &scope})
	s.Require().NoError(err)
	s.Equal(scope, *rec.ScopeID)
}

func (s *RepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.records.GetByID(context.Background(), "00000000-0000-0000-0000-000000000099")
	s.ErrorIs(err, domain.ErrTaskRecordNotFound)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositoryTestSuite) TestCompareAndSwap_PersistsHistory() {
	ctx := context.Background()

	rec, _, err := s.records.Create(ctx, s.newRecord("act-1", nil))
	s.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	action := domain.ActionDelegateToIT
	it := "it-1"
	next := rec.Clone()
	next.Status = domain.StatusDelegatedToIT
	next.Action = &action
	next.AssignedTo = &it
	next.UpdatedAt = now
	next.History = append(next.History, domain.ChangeEntry{
		ModifiedAt: now,
		ModifiedBy: "user-1",
		Changes:    map[string]string{"status": "Open -> Delegated to IT Team"},
	})

	s.Require().NoError(s.records.CompareAndSwap(ctx, next, domain.StatusOpen, 0))

	stored, err := s.records.GetByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusDelegatedToIT, stored.Status)
	s.Require().NotNil(stored.Action)
	s.Equal(domain.ActionDelegateToIT, *stored.Action)
	s.Require().Len(stored.History, 1)
	s.Equal("user-1", stored.History[0].ModifiedBy)
	s.True(now.Equal(stored.History[0].ModifiedAt))
}

func (s *RepositoryTestSuite) TestCompareAndSwap_StaleStatus() {
	ctx := context.Background()

	rec, _, err := s.records.Create(ctx, s.newRecord("act-1", nil))
	s.Require().NoError(err)

	next := rec.Clone()
	next.Status = domain.StatusDelegatedToIT

	err = s.records.CompareAndSwap(ctx, next, domain.StatusWrongEvidence, 0)
	s.ErrorIs(err, domain.ErrConcurrentModification)

	err = s.records.CompareAndSwap(ctx, next, domain.StatusOpen, 3)
	s.ErrorIs(err, domain.ErrConcurrentModification)
}

func (s *RepositoryTestSuite) TestCompareAndSwap_ConcurrentWritersOneWins() {
	ctx := context.Background()

	rec, _, err := s.records.Create(ctx, s.newRecord("act-1", nil))
	s.Require().NoError(err)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := rec.Clone()
			next.Status = domain.StatusDelegatedToIT
			next.History = append(next.History, domain.ChangeEntry{ModifiedAt: time.Now(), ModifiedBy: "user-1"})
			results <- s.records.CompareAndSwap(ctx, next, domain.StatusOpen, 0)
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			s.ErrorIs(err, domain.ErrConcurrentModification)
		}
	}
	s.Equal(1, successes, "exactly one writer should win")
}

func (s *RepositoryTestSuite) TestListAndStatusCounts() {
	ctx := context.Background()

	_, _, err := s.records.Create(ctx, s.newRecord("act-1", nil))
	s.Require().NoError(err)
	_, _, err = s.records.Create(ctx, s.newRecord("act-2", nil))
	s.Require().NoError(err)

	all, err := s.records.List(ctx, domain.TaskFilter{})
	s.Require().NoError(err)
	s.Len(all, 2)

	page, err := s.records.List(ctx, domain.TaskFilter{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(all[1].ID, page[0].ID)

	none, err := s.records.List(ctx, domain.TaskFilter{Statuses: []domain.Status{domain.StatusCompleted}})
	s.Require().NoError(err)
	s.Empty(none)

	assetID := "asset-1"
	counts, err := s.records.StatusCounts(ctx, &assetID)
	s.Require().NoError(err)
	s.Equal(2, counts[domain.StatusOpen])
}

func (s *RepositoryTestSuite) TestCatalogAndAssets() {
	ctx := context.Background()

	controls, err := s.catalog.GetControls(ctx, []string{"ctl-1", "missing"})
	s.Require().NoError(err)
	s.Require().Len(controls, 1)
	s.Equal(domain.CriticalityHigh, controls["ctl-1"].Criticality)

	_, err = s.catalog.GetAction(ctx, "missing")
	s.ErrorIs(err, domain.ErrActionNotFound)

	actions, err := s.catalog.ListActions(ctx)
	s.Require().NoError(err)
	s.Len(actions, 2)

	ok, err := s.assets.AssetExists(ctx, "asset-1")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.assets.ScopeExists(ctx, "scope-2")
	s.Require().NoError(err)
	s.False(ok)

	scopes, err := s.assets.ListScopes(ctx, "asset-1")
	s.Require().NoError(err)
	s.Len(scopes, 1)
}

func (s *RepositoryTestSuite) TestUsers_GetByToken() {
	ctx := context.Background()

	created, err := s.users.Create(ctx, &domain.User{
		Username:    "alice",
		Role:        domain.RoleIT,
		Token:       "token-alice",
		IsActive:    true,
		Permissions: []domain.Capability{domain.CapabilityConfirmEvidence},
	})
	s.Require().NoError(err)

	u, err := s.users.GetByToken(ctx, "token-alice")
	s.Require().NoError(err)
	s.Equal(created.ID, u.ID)
	s.Equal([]domain.Capability{domain.CapabilityConfirmEvidence}, u.Permissions)

	_, err = s.users.GetByToken(ctx, "nope")
	s.ErrorIs(err, domain.ErrUserNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
