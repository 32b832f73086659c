package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/complytrack/internal/domain"
)

func TestParseCriticality(t *testing.T) {
	tests := map[string]domain.Criticality{
		"low":      domain.CriticalityLow,
		"medium":   domain.CriticalityMedium,
		"High":     domain.CriticalityHigh,
		"critical": domain.CriticalityCritical,
		"":         domain.CriticalityLow,
		"severe":   domain.CriticalityLow,
	}
	for label, want := range tests {
		assert.Equal(t, want, domain.ParseCriticality(label), "label %q", label)
	}
}

func TestCriticality_OrderingIsSeverityNotLexical(t *testing.T) {
	// "low" > "high" lexically; the ordinal must not follow string order.
	assert.Greater(t, domain.CriticalityHigh, domain.CriticalityLow)
	assert.Greater(t, domain.CriticalityCritical, domain.CriticalityHigh)
	assert.Equal(t, domain.CriticalityCritical, domain.MaxCriticality(domain.CriticalityCritical, domain.CriticalityMedium))
}

func TestCriticality_Multiplier(t *testing.T) {
	assert.Equal(t, 1, domain.CriticalityLow.Multiplier())
	assert.Equal(t, 2, domain.CriticalityMedium.Multiplier())
	assert.Equal(t, 3, domain.CriticalityHigh.Multiplier())
	assert.Equal(t, 4, domain.CriticalityCritical.Multiplier())
	assert.Equal(t, 1, domain.Criticality(0).Multiplier())
}

func TestCriticality_JSONUsesLabels(t *testing.T) {
	b, err := json.Marshal(map[string]domain.Criticality{"c": domain.CriticalityHigh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"high"}`, string(b))

	var out map[string]domain.Criticality
	require.NoError(t, json.Unmarshal([]byte(`{"c":"critical"}`), &out))
	assert.Equal(t, domain.CriticalityCritical, out["c"])
}
