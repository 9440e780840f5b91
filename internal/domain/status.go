package domain

import "strings"

// VelocityTier classifies how fast a SKU sells.
type VelocityTier string

const (
	TierA VelocityTier = "A" // top 20% by trailing-90d revenue with recent sales
	TierB VelocityTier = "B" // steady sellers
	TierC VelocityTier = "C" // declining sellers
	TierD VelocityTier = "D" // slow sellers
	TierF VelocityTier = "F" // dead stock
	TierN VelocityTier = "N" // new launch, no history yet
)

var velocityTierLabels = map[VelocityTier]string{
	TierA: "Top Seller",
	TierB: "Steady",
	TierC: "Declining",
	TierD: "Slow",
	TierF: "Dead",
	TierN: "New",
}

// Label returns a human-readable label for a velocity tier.
func (t VelocityTier) Label() string {
	if label, ok := velocityTierLabels[t]; ok {
		return label
	}

	return "Unknown"
}

// CoverageStatus classifies how confidently a brand's inventory covers its
// revenue target.
type CoverageStatus string

const (
	StatusConfident CoverageStatus = "CONFIDENT"
	StatusThin      CoverageStatus = "THIN"
	StatusAtRisk    CoverageStatus = "AT_RISK"
	StatusShortfall CoverageStatus = "SHORTFALL"
	StatusNoTarget  CoverageStatus = "NO_TARGET"
)

var coverageStatuses = map[string]CoverageStatus{
	"confident": StatusConfident,
	"thin":      StatusThin,
	"at_risk":   StatusAtRisk,
	"shortfall": StatusShortfall,
	"no_target": StatusNoTarget,
}

// ParseCoverageStatus returns the status for a given label (case-insensitive).
func ParseCoverageStatus(label string) (CoverageStatus, bool) {
	status, ok := coverageStatuses[strings.ToLower(label)]

	return status, ok
}
