package service

import (
	"context"
	"strings"
	"time"

	"github.com/mtlprog/complytrack/internal/domain"
)

// DelegateToIT hands an open or returned task to an IT owner.
func (s *WorkflowService) DelegateToIT(
	ctx context.Context,
	taskID string,
	actor domain.Actor,
	itOwnerID string,
) (*domain.TaskRecord, error) {
	if itOwnerID == "" {
		return nil, domain.ErrMissingAssignee
	}
	return s.apply(ctx, taskID, actor, domain.ActionDelegateToIT, func(rec *domain.TaskRecord, _ time.Time) error {
		rec.AssignedTo = &itOwnerID
		rec.AssignedBy = &actor.ID
		return nil
	})
}

// SubmitEvidence marks evidence as uploaded. Only the current assignee may submit.
func (s *WorkflowService) SubmitEvidence(
	ctx context.Context,
	taskID string,
	actor domain.Actor,
) (*domain.TaskRecord, error) {
	return s.apply(ctx, taskID, actor, domain.ActionSubmitEvidence, func(rec *domain.TaskRecord, _ time.Time) error {
		if err := s.validator.CanSubmitEvidence(rec, actor); err != nil {
			return err
		}
		rec.IsEvidenceUploaded = true
		return nil
	})
}

// DelegateToAuditor sends uploaded evidence for internal audit. When auditorID
// is empty the assignment is left unchanged.
func (s *WorkflowService) DelegateToAuditor(
	ctx context.Context,
	taskID string,
	actor domain.Actor,
	auditorID string,
) (*domain.TaskRecord, error) {
	return s.apply(ctx, taskID, actor, domain.ActionDelegateToAuditor, reassign(actor, auditorID))
}

// DelegateToExternalAuditor escalates evidence to an external auditor.
func (s *WorkflowService) DelegateToExternalAuditor(
	ctx context.Context,
	taskID string,
	actor domain.Actor,
	auditorID string,
) (*domain.TaskRecord, error) {
	return s.apply(ctx, taskID, actor, domain.ActionDelegateToExternalAuditor, reassign(actor, auditorID))
}

// ConfirmEvidence accepts audited evidence and completes the task.
func (s *WorkflowService) ConfirmEvidence(
	ctx context.Context,
	taskID string,
	actor domain.Actor,
	feedback string,
) (*domain.TaskRecord, error) {
	return s.apply(ctx, taskID, actor, domain.ActionConfirmEvidence, func(rec *domain.TaskRecord, now time.Time) error {
		rec.CompletedAt = &now
		rec.Feedback = optionalText(feedback)
		return nil
	})
}

// ReturnEvidence rejects audited evidence; the task goes back to the IT branch.
func (s *WorkflowService) ReturnEvidence(
	ctx context.Context,
	taskID string,
	actor domain.Actor,
	feedback string,
) (*domain.TaskRecord, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, domain.ErrEmptyFeedback
	}
	return s.apply(ctx, taskID, actor, domain.ActionReturnEvidence, func(rec *domain.TaskRecord, _ time.Time) error {
		rec.IsEvidenceUploaded = false
		rec.Feedback = optionalText(feedback)
		return nil
	})
}

// SetNotApplicable proposes the task as not applicable, pending auditor confirmation.
func (s *WorkflowService) SetNotApplicable(
	ctx context.Context,
	taskID string,
	actor domain.Actor,
) (*domain.TaskRecord, error) {
	return s.apply(ctx, taskID, actor, domain.ActionSetNotApplicable, func(rec *domain.TaskRecord, _ time.Time) error {
		rec.IsAuditorConfirmedForNotApplicable = false
		return nil
	})
}

// ConfirmNotApplicable is the auditor's confirmation of a pending not-applicable proposal.
func (s *WorkflowService) ConfirmNotApplicable(
	ctx context.Context,
	taskID string,
	actor domain.Actor,
) (*domain.TaskRecord, error) {
	return s.apply(ctx, taskID, actor, domain.ActionConfirmNotApplicable, func(rec *domain.TaskRecord, _ time.Time) error {
		rec.IsAuditorConfirmedForNotApplicable = true
		return nil
	})
}

// AcceptRisk closes the task without evidence. The justification is stored as feedback.
func (s *WorkflowService) AcceptRisk(
	ctx context.Context,
	taskID string,
	actor domain.Actor,
	justification string,
) (*domain.TaskRecord, error) {
	if strings.TrimSpace(justification) == "" {
		return nil, domain.ErrEmptyFeedback
	}
	return s.apply(ctx, taskID, actor, domain.ActionAcceptRisk, func(rec *domain.TaskRecord, _ time.Time) error {
		rec.Feedback = optionalText(justification)
		return nil
	})
}

func reassign(actor domain.Actor, assigneeID string) mutation {
	return func(rec *domain.TaskRecord, _ time.Time) error {
		if assigneeID == "" {
			return nil
		}
		rec.AssignedTo = &assigneeID
		rec.AssignedBy = &actor.ID
		return nil
	}
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
