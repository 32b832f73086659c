package dto

import (
	"time"

	"github.com/mtlprog/complytrack/internal/domain"
)

// TaskRecordSummary represents a task record in the list view (without history).
type TaskRecordSummary struct {
	ID               string     `json:"id"`
	ActionID         string     `json:"action_id"`
	AssetID          string     `json:"asset_id"`
	ScopeID          *string    `json:"scope_id"`
	ControlID        string     `json:"control_id"`
	FamilyID         string     `json:"family_id"`
	Status           string     `json:"status"`
	Action           *string    `json:"action"`
	IsCompleted      bool       `json:"is_completed"`
	IsTask           bool       `json:"is_task"`
	AssignedTo       *string    `json:"assigned_to"`
	CompletedAt      *time.Time `json:"completed_at"`
	AvailableActions []string   `json:"available_actions"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TaskRecordsListResponse represents the response for GET /task-records.
type TaskRecordsListResponse struct {
	TaskRecords []TaskRecordSummary `json:"task_records"`
	Total       int                 `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
}

// TaskRecordDetail represents the full task record with its change history.
type TaskRecordDetail struct {
	TaskRecordSummary
	IsEvidenceUploaded                 bool          `json:"is_evidence_uploaded"`
	IsSoftwareSelected                 bool          `json:"is_software_selected"`
	IsAuditorConfirmedForNotApplicable bool          `json:"is_auditor_confirmed_for_not_applicable"`
	SelectedSoftware                   *string       `json:"selected_software"`
	Feedback                           *string       `json:"feedback"`
	CreatedBy                          string        `json:"created_by"`
	AssignedBy                         *string       `json:"assigned_by"`
	History                            []ChangeEntry `json:"history"`
}

// ChangeEntry is one history item: who changed which fields and when.
type ChangeEntry struct {
	ModifiedAt time.Time         `json:"modified_at"`
	ModifiedBy string            `json:"modified_by"`
	Changes    map[string]string `json:"changes"`
}

// ToTaskRecordSummary converts a domain record to its list representation.
func ToTaskRecordSummary(rec *domain.TaskRecord) TaskRecordSummary {
	var action *string
	if rec.Action != nil {
		a := string(*rec.Action)
		action = &a
	}

	available := []string{}
	for _, a := range domain.AvailableActions(rec.Status) {
		available = append(available, string(a))
	}

	return TaskRecordSummary{
		ID:               rec.ID,
		ActionID:         rec.ActionID,
		AssetID:          rec.AssetID,
		ScopeID:          rec.ScopeID,
		ControlID:        rec.ControlID,
		FamilyID:         rec.FamilyID,
		Status:           string(rec.Status),
		Action:           action,
		IsCompleted:      rec.IsCompleted,
		IsTask:           rec.IsTask,
		AssignedTo:       rec.AssignedTo,
		CompletedAt:      rec.CompletedAt,
		AvailableActions: available,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}

// ToTaskRecordDetail converts a domain record to its detail representation.
func ToTaskRecordDetail(rec *domain.TaskRecord) TaskRecordDetail {
	history := make([]ChangeEntry, len(rec.History))
	for i, e := range rec.History {
		history[i] = ChangeEntry{
			ModifiedAt: e.ModifiedAt,
			ModifiedBy: e.ModifiedBy,
			Changes:    e.Changes,
		}
	}

	return TaskRecordDetail{
		TaskRecordSummary:                  ToTaskRecordSummary(rec),
		IsEvidenceUploaded:                 rec.IsEvidenceUploaded,
		IsSoftwareSelected:                 rec.IsSoftwareSelected,
		IsAuditorConfirmedForNotApplicable: rec.IsAuditorConfirmedForNotApplicable,
		SelectedSoftware:                   rec.SelectedSoftware,
		Feedback:                           rec.Feedback,
		CreatedBy:                          rec.CreatedBy,
		AssignedBy:                         rec.AssignedBy,
		History:                            history,
	}
}

// AssetRiskResponse represents the response for GET /risk/assets/{assetId}.
type AssetRiskResponse struct {
	AssetID                   string  `json:"asset_id"`
	TotalRiskScore            int     `json:"total_risk_score"`
	Criticality               string  `json:"criticality"`
	ScopeID                   *string `json:"scope_id"`
	NumberOfIncompleteActions int     `json:"number_of_incomplete_actions"`
}

// ToAssetRiskResponse converts a per-asset risk report.
func ToAssetRiskResponse(r *domain.AssetRiskReport) AssetRiskResponse {
	return AssetRiskResponse{
		AssetID:                   r.AssetID,
		TotalRiskScore:            r.TotalRiskScore,
		Criticality:               r.Criticality.String(),
		ScopeID:                   r.ScopeID,
		NumberOfIncompleteActions: r.NumberOfIncompleteActions,
	}
}

// AssetRisk is one entry of the overall risk breakdown.
type AssetRisk struct {
	AssetID     string  `json:"asset_id"`
	RiskScore   int     `json:"risk_score"`
	Criticality string  `json:"criticality"`
	ScopeID     *string `json:"scope_id"`
}

// OverallRiskResponse represents the response for GET /risk.
type OverallRiskResponse struct {
	TotalRiskScore int         `json:"total_risk_score"`
	AssetRisks     []AssetRisk `json:"asset_risks"`
}

// ToOverallRiskResponse converts the organization-wide risk report.
func ToOverallRiskResponse(r *domain.OverallRisk) OverallRiskResponse {
	assets := make([]AssetRisk, len(r.AssetRisks))
	for i, ar := range r.AssetRisks {
		assets[i] = AssetRisk{
			AssetID:     ar.AssetID,
			RiskScore:   ar.RiskScore,
			Criticality: ar.Criticality.String(),
			ScopeID:     ar.ScopeID,
		}
	}
	return OverallRiskResponse{
		TotalRiskScore: r.TotalRiskScore,
		AssetRisks:     assets,
	}
}

// StatsResponse represents the response for GET /stats.
type StatsResponse struct {
	AssetID               *string        `json:"asset_id,omitempty"`
	TotalRecords          int            `json:"total_records"`
	RecordsByStatus       map[string]int `json:"records_by_status"`
	CompletedCount        int            `json:"completed_count"`
	RiskAcceptedCount     int            `json:"risk_accepted_count"`
	CompletionRatePercent float64        `json:"completion_rate_percent"`
}
