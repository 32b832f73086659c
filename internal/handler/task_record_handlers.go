package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/mtlprog/complytrack/internal/domain"
	"github.com/mtlprog/complytrack/internal/handler/dto"
	"github.com/mtlprog/complytrack/internal/middleware"
	"github.com/mtlprog/complytrack/internal/service"
)

// handleCreateTaskRecord creates the task record for (action, asset, scope) or returns the existing one.
// @Summary Create or get a task record
// @Description Creates the record for the given key. Returns 201 when created, 200 when it already existed.
// @Tags task-records
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRecordRequest true "Task record key"
// @Success 201 {object} dto.TaskRecordDetail
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records [post]
func (h *Handler) handleCreateTaskRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, dto.CodeInvalidToken, "Authentication required")
		return
	}

	var req dto.CreateTaskRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, dto.CodeInvalidJSON, "Invalid request body")
		return
	}

	rec, created, err := h.workflow.CreateTaskRecord(ctx, actor, service.CreateTaskRecordParams{
		ActionID:         strings.TrimSpace(req.ActionID),
		AssetID:          strings.TrimSpace(req.AssetID),
		ScopeID:          trimmedOrNil(req.ScopeID),
		SelectedSoftware: req.SelectedSoftware,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, dto.ToTaskRecordDetail(rec))
}

// handleGetTaskRecord returns one task record with its full history.
// @Summary Get task record
// @Tags task-records
// @Produce json
// @Param id path string true "Task record ID"
// @Success 200 {object} dto.TaskRecordDetail
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records/{id} [get]
func (h *Handler) handleGetTaskRecord(w http.ResponseWriter, r *http.Request) {
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

	rec, err := h.workflow.Get(ctx, actor, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskRecordDetail(rec))
}

// handleListTaskRecords lists task records with filters.
// @Summary List task records
// @Tags task-records
// @Produce json
// @Param status query string false "Comma-separated statuses"
// @Param asset_id query string false "Filter by asset"
// @Param scope_id query string false "Filter by scope"
// @Param control_id query string false "Filter by control"
// @Param family_id query string false "Filter by control family"
// @Param assigned_to query string false "Assignee id or 'me'"
// @Param only_tasks query bool false "Only records that count as tasks"
// @Param limit query int false "Page size (1-200, default 50)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} dto.TaskRecordsListResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /task-records [get]
func (h *Handler) handleListTaskRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.GetActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, dto.CodeInvalidToken, "Authentication required")
		return
	}

	f := parseListFilters(r, actor.ID)

	statuses := make([]domain.Status, len(f.Status))
	for i, st := range f.Status {
		statuses[i] = domain.Status(st)
	}

	records, err := h.workflow.List(ctx, actor, domain.TaskFilter{
		AssetID:    f.AssetID,
		ScopeID:    f.ScopeID,
		ControlID:  f.ControlID,
		FamilyID:   f.FamilyID,
		AssignedTo: f.AssignedTo,
		Statuses:   statuses,
		OnlyTasks:  f.OnlyTasks,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	items := make([]dto.TaskRecordSummary, len(records))
	for i, rec := range records {
		items[i] = dto.ToTaskRecordSummary(rec)
	}

	respondJSON(w, http.StatusOK, dto.TaskRecordsListResponse{
		TaskRecords: items,
		Total:       len(items),
		Limit:       f.Limit,
		Offset:      f.Offset,
	})
}

func parseListFilters(r *http.Request, actorID string) dto.ListTaskRecordsFilters {
	query := r.URL.Query()

	f := dto.ListTaskRecordsFilters{
		Limit:     50,
		OnlyTasks: query.Get("only_tasks") == "true",
	}

	if statusParam := query.Get("status"); statusParam != "" {
		f.Status = splitAndTrim(statusParam, ",")
	}

	optional := func(name string) *string {
		if v := strings.TrimSpace(query.Get(name)); v != "" {
			return &v
		}
		return nil
	}
	f.AssetID = optional("asset_id")
	f.ScopeID = optional("scope_id")
	f.ControlID = optional("control_id")
	f.FamilyID = optional("family_id")
	f.AssignedTo = optional("assigned_to")
	if f.AssignedTo != nil && *f.AssignedTo == "me" {
		f.AssignedTo = &actorID
	}

	if limitParam := query.Get("limit"); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n > 0 && n <= 200 {
			f.Limit = n
		}
	}
	if offsetParam := query.Get("offset"); offsetParam != "" {
		if n, err := strconv.Atoi(offsetParam); err == nil && n >= 0 {
			f.Offset = n
		}
	}

	return f
}

// trimmedOrNil trims an optional id; blank means absent.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// splitAndTrim splits a string by delimiter and trims whitespace.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
