package handler

import (
	"context"
	"net/http"

	"github.com/mtlprog/complytrack/internal/domain"
	"github.com/mtlprog/complytrack/internal/handler/dto"
	"github.com/mtlprog/complytrack/internal/middleware"
)

type transitionFunc func(ctx context.Context, taskID string, actor domain.Actor) (*domain.TaskRecord, error)

// runTransition resolves the actor and task id, runs fn and writes the updated record.
func (h *Handler) runTransition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, dto.CodeInvalidToken, "Authentication required")
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	rec, err := fn(ctx, taskID, actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskRecordDetail(rec))
}

// handleDelegateToIT assigns an Open or Wrong Evidence task to an IT owner.
// @Summary Delegate to IT
// @Tags transitions
// @Accept json
// @Produce json
// @Param id path string true "Task record ID"
// @Param request body dto.DelegateRequest true "IT owner"
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records/{id}/delegate-it [post]
func (h *Handler) handleDelegateToIT(w http.ResponseWriter, r *http.Request) {
	var req dto.DelegateRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	h.runTransition(w, r, func(ctx context.Context, taskID string, actor domain.Actor) (*domain.TaskRecord, error) {
		return h.workflow.DelegateToIT(ctx, taskID, actor, req.AssigneeID)
	})
}

// handleSubmitEvidence marks evidence as uploaded by the assignee.
// @Summary Submit evidence
// @Tags transitions
// @Produce json
// @Param id path string true "Task record ID"
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records/{id}/submit-evidence [post]
func (h *Handler) handleSubmitEvidence(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, h.workflow.SubmitEvidence)
}

// handleDelegateToAuditor sends evidence to internal audit.
// @Summary Delegate to auditor
// @Tags transitions
// @Accept json
// @Produce json
// @Param id path string true "Task record ID"
// @Param request body dto.DelegateRequest false "Optional auditor"
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records/{id}/delegate-auditor [post]
func (h *Handler) handleDelegateToAuditor(w http.ResponseWriter, r *http.Request) {
	var req dto.DelegateRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	h.runTransition(w, r, func(ctx context.Context, taskID string, actor domain.Actor) (*domain.TaskRecord, error) {
		return h.workflow.DelegateToAuditor(ctx, taskID, actor, req.AssigneeID)
	})
}

// handleDelegateToExternalAuditor escalates evidence to an external auditor.
// @Summary Delegate to external auditor
// @Tags transitions
// @Accept json
// @Produce json
// @Param id path string true "Task record ID"
// @Param request body dto.DelegateRequest false "Optional auditor"
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records/{id}/delegate-external-auditor [post]
func (h *Handler) handleDelegateToExternalAuditor(w http.ResponseWriter, r *http.Request) {
	var req dto.DelegateRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	h.runTransition(w, r, func(ctx context.Context, taskID string, actor domain.Actor) (*domain.TaskRecord, error) {
		return h.workflow.DelegateToExternalAuditor(ctx, taskID, actor, req.AssigneeID)
	})
}

// handleConfirmEvidence accepts evidence and completes the task.
// @Summary Confirm evidence
// @Tags transitions
// @Accept json
// @Produce json
// @Param id path string true "Task record ID"
// @Param request body dto.FeedbackRequest false "Optional feedback"
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records/{id}/confirm-evidence [post]
func (h *Handler) handleConfirmEvidence(w http.ResponseWriter, r *http.Request) {
	var req dto.FeedbackRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	h.runTransition(w, r, func(ctx context.Context, taskID string, actor domain.Actor) (*domain.TaskRecord, error) {
		return h.workflow.ConfirmEvidence(ctx, taskID, actor, req.Feedback)
	})
}

// handleReturnEvidence rejects evidence with feedback.
// @Summary Return evidence
// @Tags transitions
// @Accept json
// @Produce json
// @Param id path string true "Task record ID"
// @Param request body dto.FeedbackRequest true "Feedback for the IT owner"
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records/{id}/return-evidence [post]
func (h *Handler) handleReturnEvidence(w http.ResponseWriter, r *http.Request) {
	var req dto.FeedbackRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	h.runTransition(w, r, func(ctx context.Context, taskID string, actor domain.Actor) (*domain.TaskRecord, error) {
		return h.workflow.ReturnEvidence(ctx, taskID, actor, req.Feedback)
	})
}

// handleSetNotApplicable proposes the task as not applicable.
// @Summary Set not applicable
// @Tags transitions
// @Produce json
// @Param id path string true "Task record ID"
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records/{id}/set-not-applicable [post]
func (h *Handler) handleSetNotApplicable(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, h.workflow.SetNotApplicable)
}

// handleConfirmNotApplicable confirms a pending not-applicable proposal.
// @Summary Confirm not applicable
// @Tags transitions
// @Produce json
// @Param id path string true "Task record ID"
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records/{id}/confirm-not-applicable [post]
func (h *Handler) handleConfirmNotApplicable(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, h.workflow.ConfirmNotApplicable)
}

// handleAcceptRisk closes the task without evidence.
// @Summary Accept risk
// @Tags transitions
// @Accept json
// @Produce json
// @Param id path string true "Task record ID"
// @Param request body dto.FeedbackRequest true "Justification"
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records/{id}/accept-risk [post]
func (h *Handler) handleAcceptRisk(w http.ResponseWriter, r *http.Request) {
	var req dto.FeedbackRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	h.runTransition(w, r, func(ctx context.Context, taskID string, actor domain.Actor) (*domain.TaskRecord, error) {
		return h.workflow.AcceptRisk(ctx, taskID, actor, req.Feedback)
	})
}
