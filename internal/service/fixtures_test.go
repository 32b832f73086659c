package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/mtlprog/complytrack/internal/domain"
	"github.com/mtlprog/complytrack/internal/events"
	"github.com/mtlprog/complytrack/internal/memstore"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func actorFor(id string, role domain.Role) domain.Actor {
	u := domain.User{ID: id, Role: role, IsActive: true}
	return u.Actor()
}

var (
	admin      = actorFor("admin-1", domain.RoleAdmin)
	compliance = actorFor("compliance-1", domain.RoleCompliance)
	itOwner    = actorFor("it-1", domain.RoleIT)
	itOther    = actorFor("it-2", domain.RoleIT)
	auditor    = actorFor("auditor-1", domain.RoleAuditor)
	external   = actorFor("ext-1", domain.RoleExternalAuditor)
	executive  = actorFor("exec-1", domain.RoleExecutive)
)

// newCatalogStore returns a store with a small catalog:
//
//	act-high -> ctl-high (high), act-low -> ctl-low (low),
//	act-crit -> ctl-crit (critical), act-retired -> ctl-retired (inactive control).
//
// asset-1 is unscoped, asset-2 has scope-a and scope-b, asset-3 is scoped without scopes.
func newCatalogStore() *memstore.Store {
	s := memstore.New()

	s.PutFamily(domain.ControlFamily{ID: "fam-1", Name: "Access Control", IsControlFamily: true})

	s.PutControl(domain.Control{ID: "ctl-high", FamilyID: "fam-1", Name: "MFA", Criticality: domain.CriticalityHigh, IsControl: true})
	s.PutControl(domain.Control{ID: "ctl-low", FamilyID: "fam-1", Name: "Banner", Criticality: domain.CriticalityLow, IsControl: true})
	s.PutControl(domain.Control{ID: "ctl-crit", FamilyID: "fam-1", Name: "Encryption", Criticality: domain.CriticalityCritical, IsControl: true})
	s.PutControl(domain.Control{ID: "ctl-retired", FamilyID: "fam-1", Name: "Legacy", Criticality: domain.CriticalityCritical, IsControl: false})

	s.PutAction(domain.CatalogAction{ID: "act-high", ControlID: "ctl-high", Name: "Enable MFA", IsAction: true})
	s.PutAction(domain.CatalogAction{ID: "act-low", ControlID: "ctl-low", Name: "Show banner", IsAction: true})
	s.PutAction(domain.CatalogAction{ID: "act-crit", ControlID: "ctl-crit", Name: "Encrypt disks", IsAction: true})
	s.PutAction(domain.CatalogAction{ID: "act-retired", ControlID: "ctl-retired", Name: "Legacy check", IsAction: true})

	s.PutAsset(domain.Asset{ID: "asset-1", Name: "web-01", Type: "server"})
	s.PutAsset(domain.Asset{ID: "asset-2", Name: "cloud", Type: "cloud", IsScoped: true})
	s.PutAsset(domain.Asset{ID: "asset-3", Name: "empty-cloud", Type: "cloud", IsScoped: true})

	s.PutScope(domain.Scope{ID: "scope-a", AssetID: "asset-2", Name: "prod", CloudProvider: "aws", ServiceType: "ec2"})
	s.PutScope(domain.Scope{ID: "scope-b", AssetID: "asset-2", Name: "dev", CloudProvider: "aws", ServiceType: "s3"})

	return s
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.TransitionEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.TransitionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []events.TransitionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.TransitionEvent(nil), p.events...)
}

// barrierStore holds every GetByID until n readers have arrived, so concurrent
// transitions all read the same version before any of them commits.
type barrierStore struct {
	*memstore.Store
	reads sync.WaitGroup
}

func newBarrierStore(inner *memstore.Store, n int) *barrierStore {
	b := &barrierStore{Store: inner}
	b.reads.Add(n)
	return b
}

func (b *barrierStore) GetByID(ctx context.Context, id string) (*domain.TaskRecord, error) {
	rec, err := b.Store.GetByID(ctx, id)
	b.reads.Done()
	b.reads.Wait()
	return rec, err
}

// slowStore blocks every read until the context expires.
type slowStore struct {
	*memstore.Store
}

func (s *slowStore) GetByID(ctx context.Context, _ string) (*domain.TaskRecord, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *slowStore) List(ctx context.Context, _ domain.TaskFilter) ([]*domain.TaskRecord, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// cancellingStore cancels the caller right after the record has been read.
type cancellingStore struct {
	*memstore.Store
	cancel context.CancelFunc
}

func (s *cancellingStore) GetByID(ctx context.Context, id string) (*domain.TaskRecord, error) {
	rec, err := s.Store.GetByID(ctx, id)
	s.cancel()
	return rec, err
}

// failingCatalog fails every control lookup.
type failingCatalog struct {
	*memstore.Store
	err error
}

func (c *failingCatalog) GetControls(context.Context, []string) (map[string]*domain.Control, error) {
	return nil, c.err
}
