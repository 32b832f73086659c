package domain

import "time"

// TaskKey is the natural key of a task record.
type TaskKey struct {
	ActionID string
	AssetID  string
	ScopeID  *string // nil for unscoped assets
}

// TaskRecord tracks one catalog action applied to one asset, optionally scoped.
type TaskRecord struct {
	ID       string
	ActionID string
	AssetID  string
	ScopeID  *string

	// Denormalized from the catalog for aggregation.
	ControlID string
	FamilyID  string

	Status Status
	Action *TransitionAction // nil before the first transition

	IsCompleted                        bool
	IsEvidenceUploaded                 bool
	IsSoftwareSelected                 bool
	IsTask                             bool
	IsAuditorConfirmedForNotApplicable bool

	SelectedSoftware *string
	Feedback         *string

	CreatedBy  string
	AssignedBy *string
	AssignedTo *string

	CompletedAt *time.Time
	History     []ChangeEntry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Key returns the natural key of the record.
func (r *TaskRecord) Key() TaskKey {
	return TaskKey{ActionID: r.ActionID, AssetID: r.AssetID, ScopeID: r.ScopeID}
}

// IsAssignedTo checks if the record is currently assigned to the given user.
func (r *TaskRecord) IsAssignedTo(userID string) bool {
	return r.AssignedTo != nil && *r.AssignedTo == userID
}

// Clone returns a deep copy so callers can mutate it without touching the original.
func (r *TaskRecord) Clone() *TaskRecord {
	c := *r
	c.ScopeID = cloneString(r.ScopeID)
	c.SelectedSoftware = cloneString(r.SelectedSoftware)
	c.Feedback = cloneString(r.Feedback)
	c.AssignedBy = cloneString(r.AssignedBy)
	c.AssignedTo = cloneString(r.AssignedTo)
	if r.Action != nil {
		a := *r.Action
		c.Action = &a
	}
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		c.CompletedAt = &t
	}
	c.History = make([]ChangeEntry, len(r.History))
	for i, e := range r.History {
		c.History[i] = e.Clone()
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// TaskFilter narrows task record listings. Zero values mean "any".
type TaskFilter struct {
	AssetID    *string
	ScopeID    *string
	ControlID  *string
	FamilyID   *string
	AssignedTo *string
	Statuses   []Status
	OnlyTasks  bool
	Limit      int
	Offset     int
}
