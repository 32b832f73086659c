package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mtlprog/complytrack/internal/domain"
)

func TestDiffRecords_OnlyChangedFields(t *testing.T) {
	it := "it-1"
	before := &domain.TaskRecord{Status: domain.StatusOpen}
	after := before.Clone()
	action := domain.ActionDelegateToIT
	after.Status = domain.StatusDelegatedToIT
	after.Action = &action
	after.AssignedTo = &it

	assert.Equal(t, map[string]string{
		"status":     "Delegated to IT Team",
		"action":     "Delegate to IT",
		"AssignedTo": "it-1",
	}, diffRecords(before, after))
}

func TestDiffRecords_ClearedValuesRenderEmpty(t *testing.T) {
	feedback := "blurry"
	done := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	before := &domain.TaskRecord{
		Status:             domain.StatusAuditDelegated,
		IsEvidenceUploaded: true,
		Feedback:           &feedback,
	}
	after := before.Clone()
	after.IsEvidenceUploaded = false
	after.Feedback = nil
	after.CompletedAt = &done

	changes := diffRecords(before, after)
	assert.Equal(t, "false", changes["isEvidenceUploaded"])
	assert.Equal(t, "", changes["feedback"])
	assert.Contains(t, changes, "feedback")
	assert.Equal(t, "2026-01-02T03:04:05Z", changes["completedAt"])
	assert.NotContains(t, changes, "status")
}
