package service

import (
	"strconv"
	"time"

	"github.com/mtlprog/complytrack/internal/domain"
)

// diffRecords returns the fields whose value differs between before and after,
// mapped to their new value rendered as a string. Null renders as "".
func diffRecords(before, after *domain.TaskRecord) map[string]string {
	changes := make(map[string]string)

	set := func(field, prev, next string) {
		if prev != next {
			changes[field] = next
		}
	}

	set("status", string(before.Status), string(after.Status))
	set("action", actionText(before.Action), actionText(after.Action))
	set("isCompleted", strconv.FormatBool(before.IsCompleted), strconv.FormatBool(after.IsCompleted))
	set("isEvidenceUploaded", strconv.FormatBool(before.IsEvidenceUploaded), strconv.FormatBool(after.IsEvidenceUploaded))
	set("isAuditorConfirmedForNotApplicable",
		strconv.FormatBool(before.IsAuditorConfirmedForNotApplicable),
		strconv.FormatBool(after.IsAuditorConfirmedForNotApplicable))
	set("isSoftwareSelected", strconv.FormatBool(before.IsSoftwareSelected), strconv.FormatBool(after.IsSoftwareSelected))
	set("selectedSoftware", text(before.SelectedSoftware), text(after.SelectedSoftware))
	set("feedback", text(before.Feedback), text(after.Feedback))
	set("AssignedBy", text(before.AssignedBy), text(after.AssignedBy))
	set("AssignedTo", text(before.AssignedTo), text(after.AssignedTo))
	set("completedAt", timeText(before.CompletedAt), timeText(after.CompletedAt))

	return changes
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func actionText(a *domain.TransitionAction) string {
	if a == nil {
		return ""
	}
	return string(*a)
}

func timeText(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
