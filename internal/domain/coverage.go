package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TierSlice is the per-tier breakdown inside a coverage assessment.
type TierSlice struct {
	Tier           VelocityTier    `json:"tier"`
	Skus           int             `json:"skus"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	Weight         float64         `json:"weight"`
	WeightedValue  decimal.Decimal `json:"weighted_value"`
}

// TopSku is one of the highest-potential SKUs, surfaced for concentration
// transparency.
type TopSku struct {
	SkuID       string          `json:"sku_id"`
	SkuCode     string          `json:"sku_code"`
	ProductName string          `json:"product_name"`
	Potential   decimal.Decimal `json:"potential"`
	Share       float64         `json:"share"`
}

// GapSku is a fast-moving SKU whose effective supply covers the least of its
// forecast, ranked ascending by coverage ratio.
type GapSku struct {
	SkuID         string          `json:"sku_id"`
	SkuCode       string          `json:"sku_code"`
	ProductName   string          `json:"product_name"`
	VelocityTier  VelocityTier    `json:"velocity_tier"`
	CoverageRatio float64         `json:"coverage_ratio"`
	UnitsNeeded   int             `json:"units_needed"`
	RevenueAtRisk decimal.Decimal `json:"revenue_at_risk"`
}

// CoverageAssessment is the 4-layer effective-supply verdict for one brand
// and month. Status is a pure function of adjusted coverage and target
// presence; nothing here is cached or mutated.
type CoverageAssessment struct {
	BrandID                   int64           `json:"brand_id"`
	BrandName                 string          `json:"brand_name"`
	Month                     time.Time       `json:"month"`
	RevenueTarget             decimal.Decimal `json:"revenue_target"`
	RevenueActual             decimal.Decimal `json:"revenue_actual"`
	RawInventoryValue         decimal.Decimal `json:"raw_inventory_value"`
	RawCoverage               float64         `json:"raw_coverage"`
	EffectiveRevenuePotential decimal.Decimal `json:"effective_revenue_potential"`
	AdjustedCoverage          float64         `json:"adjusted_coverage"`
	ConcentrationPenalty      float64         `json:"concentration_penalty"`
	Top3Share                 float64         `json:"top3_share"`
	InventoryQualityGap       decimal.Decimal `json:"inventory_quality_gap"`
	QualityGapPct             float64         `json:"quality_gap_pct"`
	BufferNeeded              decimal.Decimal `json:"buffer_needed"`
	BufferGap                 decimal.Decimal `json:"buffer_gap"`
	VelocityBreakdown         []TierSlice     `json:"velocity_breakdown"`
	TopSkus                   []TopSku        `json:"top_skus"`
	GapSkus                   []GapSku        `json:"gap_skus"`
	Status                    CoverageStatus  `json:"status"`
}
