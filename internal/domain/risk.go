package domain

// BaseRiskScore is the score of one incomplete low-criticality task.
const BaseRiskScore = 10

// AssetRiskReport is the per-asset risk breakdown.
type AssetRiskReport struct {
	AssetID                   string
	TotalRiskScore            int
	Criticality               Criticality
	ScopeID                   *string
	NumberOfIncompleteActions int
}

// AssetRisk is one asset entry of the organization-wide report.
type AssetRisk struct {
	AssetID     string
	RiskScore   int
	Criticality Criticality
	ScopeID     *string
}

// OverallRisk is the organization-wide risk report.
type OverallRisk struct {
	TotalRiskScore int
	AssetRisks     []AssetRisk
}
