package service

import (
	"fmt"

	"github.com/mtlprog/complytrack/internal/domain"
)

// Validator handles identity and state validation for workflow operations.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// CheckActor validates that a request carries an acting identity.
func (v *Validator) CheckActor(actor domain.Actor) error {
	if actor.ID == "" {
		return domain.ErrMissingActor
	}
	return nil
}

// CheckTaskID validates a task id argument.
func (v *Validator) CheckTaskID(taskID string) error {
	if taskID == "" {
		return fmt.Errorf("%w: task id is required", domain.ErrValidation)
	}
	return nil
}

// CanApply validates that the transition is legal from the record's current status.
func (v *Validator) CanApply(rec *domain.TaskRecord, tr domain.Transition) error {
	if !tr.Allows(rec.Status) {
		return fmt.Errorf("%w: task %s is in %q status, %q requires one of %q",
			domain.ErrInvalidTransition, rec.ID, rec.Status, tr.Action, tr.From)
	}
	return nil
}

// CanSubmitEvidence validates that only the current assignee uploads evidence.
func (v *Validator) CanSubmitEvidence(rec *domain.TaskRecord, actor domain.Actor) error {
	if !rec.IsAssignedTo(actor.ID) {
		assignee := "nobody"
		if rec.AssignedTo != nil {
			assignee = *rec.AssignedTo
		}
		return fmt.Errorf("%w: task %s is assigned to %s, not %s", domain.ErrNotAssignee, rec.ID, assignee, actor.ID)
	}
	return nil
}

// CanCreate validates the natural key of a new task record.
func (v *Validator) CanCreate(params CreateTaskRecordParams) error {
	if params.ActionID == "" || params.AssetID == "" {
		return domain.ErrMissingKey
	}
	if params.ScopeID != nil && *params.ScopeID == "" {
		return fmt.Errorf("%w: scope id must be omitted or non-empty", domain.ErrValidation)
	}
	return nil
}
