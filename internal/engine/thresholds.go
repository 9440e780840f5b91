// internal/engine/thresholds.go
package engine

import "github.com/ravindra-p/stockpulse/internal/domain"

// DiscountBand is one step of the markdown ladder. Bands apply from
// MinAgeDays (inclusive) until the next band takes over. FloorProtected bands
// never price below cogs * MarginFloor.
type DiscountBand struct {
	MinAgeDays     int
	Label          string
	Pct            float64
	FloorProtected bool
}

// Thresholds collects every numeric cutoff the engine uses. Components take
// it explicitly so tests and channel config can override values without
// touching logic. DefaultThresholds documents the production values.
type Thresholds struct {
	// ExcessRatio is the supply/forecast ratio above which stock counts as
	// excess.
	ExcessRatio float64

	// AgeBucketBounds are the ascending day boundaries between age buckets.
	// Four bounds give the five buckets <30, 30-59, 60-89, 90-119, 120+.
	AgeBucketBounds [4]int

	// ValueAtRiskAgeDays: value at risk activates strictly past this age.
	ValueAtRiskAgeDays int

	// NewSkuWindowDays: a SKU with no sales history created within this
	// window classifies as tier N rather than F.
	NewSkuWindowDays int

	// DeadSaleCutoffDays: with zero 30-day sales, a SKU whose last sale is
	// older than this (or absent) classifies as tier F.
	DeadSaleCutoffDays int

	// TopRevenueShare is the fraction of SKUs, by trailing-90d revenue, that
	// qualify for tier A.
	TopRevenueShare float64

	// SteadyRunRate and DecliningRunRate split tiers B/C/D on the ratio of
	// 30-day units to the 90-day monthly average. These are the ported
	// classification cutoffs; do not re-derive them.
	SteadyRunRate    float64
	DecliningRunRate float64

	// DiscountBands is the markdown ladder, ascending by MinAgeDays.
	DiscountBands []DiscountBand

	// MarginFloor: floor-protected prices never drop below cogs * MarginFloor.
	MarginFloor float64

	// OverstockMultiplier: on-hand above this multiple of the trailing-90d
	// average monthly units (floored at 1) counts as overstock.
	OverstockMultiplier float64

	// TierWeights are the reliability weights applied per velocity tier in
	// coverage layer 1.
	TierWeights map[domain.VelocityTier]float64

	// Top3ShareThreshold and ConcentrationPenalty drive coverage layer 3:
	// when the top 3 SKUs hold more than the threshold share of effective
	// potential, the penalty multiplier applies.
	Top3ShareThreshold   float64
	ConcentrationPenalty float64

	// Coverage status cutoffs, descending: adjusted coverage >= Confident is
	// CONFIDENT, >= Thin is THIN, >= AtRisk is AT_RISK, else SHORTFALL.
	ConfidentCoverage float64
	ThinCoverage      float64
	AtRiskCoverage    float64

	// PageSize is the fixed page size for paginated push list queries.
	PageSize int
}

// DefaultThresholds returns the production threshold set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ExcessRatio:         2.0,
		AgeBucketBounds:     [4]int{30, 60, 90, 120},
		ValueAtRiskAgeDays:  30,
		NewSkuWindowDays:    90,
		DeadSaleCutoffDays:  60,
		TopRevenueShare:     0.20,
		SteadyRunRate:       0.80,
		DecliningRunRate:    0.40,
		MarginFloor:         1.10,
		OverstockMultiplier: 2.0,
		DiscountBands: []DiscountBand{
			{MinAgeDays: 0, Label: "No Discount", Pct: 0},
			{MinAgeDays: 30, Label: "20% Off", Pct: 0.20},
			{MinAgeDays: 60, Label: "30% Off", Pct: 0.30},
			{MinAgeDays: 90, Label: "40% Off", Pct: 0.40},
			{MinAgeDays: 120, Label: "Cost + 10%", Pct: 0.50, FloorProtected: true},
		},
		TierWeights: map[domain.VelocityTier]float64{
			domain.TierA: 1.0,
			domain.TierB: 0.9,
			domain.TierC: 0.7,
			domain.TierD: 0.4,
			domain.TierF: 0.1,
			domain.TierN: 0.5,
		},
		Top3ShareThreshold:   0.50,
		ConcentrationPenalty: 0.80,
		ConfidentCoverage:    1.5,
		ThinCoverage:         1.0,
		AtRiskCoverage:       0.7,
		PageSize:             50,
	}
}
