package dto

// CreateTaskRecordRequest represents the request body for POST /task-records.
type CreateTaskRecordRequest struct {
	ActionID         string  `json:"action_id"`
	AssetID          string  `json:"asset_id"`
	ScopeID          *string `json:"scope_id,omitempty"`
	SelectedSoftware *string `json:"selected_software,omitempty"`
}

// DelegateRequest represents the body of the delegate-it, delegate-auditor and
// delegate-external-auditor endpoints. AssigneeID is required for delegate-it.
type DelegateRequest struct {
	AssigneeID string `json:"assignee_id"`
}

// FeedbackRequest represents the body of confirm-evidence, return-evidence
// and accept-risk.
type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}

// ListTaskRecordsFilters represents query parameters for GET /task-records.
type ListTaskRecordsFilters struct {
	Status     []string // ?status=Open,Wrong Evidence
	AssetID    *string  // ?asset_id=
	ScopeID    *string  // ?scope_id=
	ControlID  *string  // ?control_id=
	FamilyID   *string  // ?family_id=
	AssignedTo *string  // ?assigned_to=<id> or ?assigned_to=me
	OnlyTasks  bool     // ?only_tasks=true
	Limit      int      // ?limit=50
	Offset     int      // ?offset=0
}
