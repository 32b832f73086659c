package domain

// Status represents the status of a task record in the completion workflow.
type Status string

const (
	StatusOpen                   Status = "Open"
	StatusDelegatedToIT          Status = "Delegated to IT Team"
	StatusEvidenceUploaded       Status = "Evidence Uploaded"
	StatusAuditDelegated         Status = "Audit Delegated"
	StatusExternalAuditDelegated Status = "External Audit Delegated"
	StatusNotApplicable          Status = "Not Applicable"
	StatusNotApplicablePending   Status = "Not Applicable (Pending Auditor Confirmation)"
	StatusWrongEvidence          Status = "Wrong Evidence"
	StatusRiskAccepted           Status = "Risk Accepted"
	StatusCompleted              Status = "Completed"
)

// AllStatuses lists every status in workflow order.
var AllStatuses = []Status{
	StatusOpen,
	StatusDelegatedToIT,
	StatusEvidenceUploaded,
	StatusAuditDelegated,
	StatusExternalAuditDelegated,
	StatusWrongEvidence,
	StatusNotApplicablePending,
	StatusNotApplicable,
	StatusRiskAccepted,
	StatusCompleted,
}

// IsTerminal returns true for Completed and Risk Accepted.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRiskAccepted
}

// IsValid checks if the status is one of the allowed values.
func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// TransitionAction is the label written to a task record by each transition.
type TransitionAction string

const (
	ActionDelegateToIT              TransitionAction = "Delegate to IT"
	ActionSubmitEvidence            TransitionAction = "Submit Evidence"
	ActionDelegateToAuditor         TransitionAction = "Delegate to Auditor"
	ActionDelegateToExternalAuditor TransitionAction = "Delegate to External Auditor"
	ActionConfirmEvidence           TransitionAction = "Confirm Evidence"
	ActionReturnEvidence            TransitionAction = "Return Evidence"
	ActionSetNotApplicable          TransitionAction = "Set Not Applicable"
	ActionConfirmNotApplicable      TransitionAction = "Confirm Not Applicable"
	ActionAcceptRisk                TransitionAction = "Accept Risk"
)

// Transition describes one edge set of the workflow state machine.
type Transition struct {
	Action       TransitionAction
	From         []Status
	To           Status
	Capabilities []Capability
}

// Allows reports whether the transition may start from the given status.
func (t Transition) Allows(from Status) bool {
	for _, s := range t.From {
		if s == from {
			return true
		}
	}
	return false
}

// transitions is the single source of truth for transition legality.
var transitions = map[TransitionAction]Transition{
	ActionDelegateToIT: {
		Action:       ActionDelegateToIT,
		From:         []Status{StatusOpen, StatusWrongEvidence},
		To:           StatusDelegatedToIT,
		Capabilities: []Capability{CapabilityDelegate},
	},
	ActionSubmitEvidence: {
		Action:       ActionSubmitEvidence,
		From:         []Status{StatusDelegatedToIT},
		To:           StatusEvidenceUploaded,
		Capabilities: []Capability{CapabilityUploadEvidence},
	},
	ActionDelegateToAuditor: {
		Action:       ActionDelegateToAuditor,
		From:         []Status{StatusEvidenceUploaded},
		To:           StatusAuditDelegated,
		Capabilities: []Capability{CapabilityDelegate},
	},
	ActionDelegateToExternalAuditor: {
		Action:       ActionDelegateToExternalAuditor,
		From:         []Status{StatusAuditDelegated, StatusEvidenceUploaded},
		To:           StatusExternalAuditDelegated,
		Capabilities: []Capability{CapabilityDelegate},
	},
	ActionConfirmEvidence: {
		Action:       ActionConfirmEvidence,
		From:         []Status{StatusAuditDelegated, StatusExternalAuditDelegated},
		To:           StatusCompleted,
		Capabilities: []Capability{CapabilityConfirmEvidence},
	},
	ActionReturnEvidence: {
		Action:       ActionReturnEvidence,
		From:         []Status{StatusAuditDelegated, StatusExternalAuditDelegated},
		To:           StatusWrongEvidence,
		Capabilities: []Capability{CapabilityConfirmEvidence},
	},
	ActionSetNotApplicable: {
		Action: ActionSetNotApplicable,
		From: []Status{
			StatusOpen,
			StatusDelegatedToIT,
			StatusEvidenceUploaded,
			StatusAuditDelegated,
			StatusExternalAuditDelegated,
			StatusWrongEvidence,
		},
		To:           StatusNotApplicablePending,
		Capabilities: []Capability{CapabilityEdit},
	},
	ActionConfirmNotApplicable: {
		Action:       ActionConfirmNotApplicable,
		From:         []Status{StatusNotApplicablePending},
		To:           StatusNotApplicable,
		Capabilities: []Capability{CapabilityConfirmEvidence},
	},
	ActionAcceptRisk: {
		Action: ActionAcceptRisk,
		From: []Status{
			StatusOpen,
			StatusDelegatedToIT,
			StatusWrongEvidence,
			StatusNotApplicablePending,
		},
		To:           StatusRiskAccepted,
		Capabilities: []Capability{CapabilityEdit, CapabilityDelegate},
	},
}

// LookupTransition returns the transition registered for an action.
func LookupTransition(action TransitionAction) (Transition, bool) {
	t, ok := transitions[action]
	return t, ok
}

// AvailableActions returns the actions that are legal from a status, in a stable order.
func AvailableActions(from Status) []TransitionAction {
	order := []TransitionAction{
		ActionDelegateToIT,
		ActionSubmitEvidence,
		ActionDelegateToAuditor,
		ActionDelegateToExternalAuditor,
		ActionConfirmEvidence,
		ActionReturnEvidence,
		ActionSetNotApplicable,
		ActionConfirmNotApplicable,
		ActionAcceptRisk,
	}

	var out []TransitionAction
	for _, a := range order {
		if transitions[a].Allows(from) {
			out = append(out, a)
		}
	}
	return out
}
