package domain

import "strings"

// Criticality is the severity of a control. The zero value is not a level;
// use ParseCriticality to read stored labels.
type Criticality int

const (
	CriticalityLow Criticality = iota + 1
	CriticalityMedium
	CriticalityHigh
	CriticalityCritical
)

// ParseCriticality converts a stored label to a Criticality.
// Unrecognized labels are treated as low.
func ParseCriticality(label string) Criticality {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "medium":
		return CriticalityMedium
	case "high":
		return CriticalityHigh
	case "critical":
		return CriticalityCritical
	default:
		return CriticalityLow
	}
}

// String returns the stored label.
func (c Criticality) String() string {
	switch c {
	case CriticalityMedium:
		return "medium"
	case CriticalityHigh:
		return "high"
	case CriticalityCritical:
		return "critical"
	default:
		return "low"
	}
}

// Multiplier is the risk weight applied per incomplete task.
func (c Criticality) Multiplier() int {
	if c < CriticalityLow || c > CriticalityCritical {
		return 1
	}
	return int(c)
}

// MarshalText encodes the criticality as its label.
func (c Criticality) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a label, falling back to low.
func (c *Criticality) UnmarshalText(text []byte) error {
	*c = ParseCriticality(string(text))
	return nil
}

// MaxCriticality returns the more severe of two levels.
func MaxCriticality(a, b Criticality) Criticality {
	if b > a {
		return b
	}
	return a
}

// ControlFamily is the top level of the regulatory catalog.
type ControlFamily struct {
	ID              string
	Name            string
	IsControlFamily bool
}

// Control belongs to a family and carries the criticality used for risk weighting.
type Control struct {
	ID          string
	FamilyID    string
	Name        string
	Criticality Criticality
	IsControl   bool
}

// CatalogAction is the atomic compliance obligation under a control.
type CatalogAction struct {
	ID        string
	ControlID string
	Name      string
	IsAction  bool
}

// Asset is a discovered asset from the registry.
type Asset struct {
	ID       string
	Name     string
	Type     string
	Location string
	IsScoped bool
}

// Scope is an optional sub-division of an asset (for example a cloud service).
type Scope struct {
	ID            string
	AssetID       string
	Name          string
	CloudProvider string
	ServiceType   string
}
