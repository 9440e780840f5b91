package engine

import (
	"math"
	"sort"
	"time"

	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/shopspring/decimal"
)

// VelocityClassifier assigns A/B/C/D/F/N tiers from rolling sales windows.
// The top-revenue set is computed once per batch and passed into Classify.
type VelocityClassifier struct {
	thresholds Thresholds
	now        time.Time
}

// NewVelocityClassifier creates a classifier evaluating ages against now.
func NewVelocityClassifier(t Thresholds, now time.Time) *VelocityClassifier {
	return &VelocityClassifier{thresholds: t, now: now}
}

// TopRevenueSet returns the SKU IDs in the top TopRevenueShare of the batch
// by trailing-90-day revenue (units * wholesale price). Set size is
// ceil(share * N). Revenue ties break by SKU ID so the set is deterministic.
func (vc *VelocityClassifier) TopRevenueSet(snapshots []domain.SkuSnapshot) map[string]bool {
	set := make(map[string]bool)
	if len(snapshots) == 0 {
		return set
	}

	type skuRevenue struct {
		skuID   string
		revenue decimal.Decimal
	}
	ranked := make([]skuRevenue, 0, len(snapshots))
	for _, s := range snapshots {
		ranked = append(ranked, skuRevenue{
			skuID:   s.SkuID,
			revenue: s.WholesalePrice.Mul(decimal.NewFromInt(int64(s.UnitsSold90d))),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].revenue.Equal(ranked[j].revenue) {
			return ranked[i].revenue.GreaterThan(ranked[j].revenue)
		}
		return ranked[i].skuID < ranked[j].skuID
	})

	size := int(math.Ceil(vc.thresholds.TopRevenueShare * float64(len(ranked))))
	for i := 0; i < size && i < len(ranked); i++ {
		set[ranked[i].skuID] = true
	}
	return set
}

// Classify assigns a velocity tier to one SKU.
//
// N: no sales history and created within NewSkuWindowDays.
// F: zero 30-day sales and no sale within DeadSaleCutoffDays.
// A: in the top-revenue set with recent 30-day sales.
// B/C/D: split on the 30-day run rate relative to the 90-day monthly average.
func (vc *VelocityClassifier) Classify(s domain.SkuSnapshot, topRevenue map[string]bool) domain.VelocityTier {
	hasHistory := s.UnitsSold90d > 0 || s.LastSaleDate != nil

	if !hasHistory {
		if s.SkuCreatedAt != nil && vc.daysSince(*s.SkuCreatedAt) <= vc.thresholds.NewSkuWindowDays {
			return domain.TierN
		}
		return domain.TierF
	}

	if s.UnitsSold30d == 0 {
		if s.LastSaleDate == nil || vc.daysSince(*s.LastSaleDate) > vc.thresholds.DeadSaleCutoffDays {
			return domain.TierF
		}
		return domain.TierD
	}

	if topRevenue[s.SkuID] {
		return domain.TierA
	}

	// Run rate: 30-day units over the trailing-90d monthly average. A 90d
	// count of zero with 30d sales means all recent activity is new, which
	// counts as steady.
	monthlyAvg := float64(s.UnitsSold90d) / 3.0
	if monthlyAvg <= 0 {
		return domain.TierB
	}
	runRate := float64(s.UnitsSold30d) / monthlyAvg

	switch {
	case runRate >= vc.thresholds.SteadyRunRate:
		return domain.TierB
	case runRate >= vc.thresholds.DecliningRunRate:
		return domain.TierC
	default:
		return domain.TierD
	}
}

// ClassifyBatch computes the top-revenue set once and tiers every SKU.
func (vc *VelocityClassifier) ClassifyBatch(snapshots []domain.SkuSnapshot) map[string]domain.VelocityTier {
	topRevenue := vc.TopRevenueSet(snapshots)
	tiers := make(map[string]domain.VelocityTier, len(snapshots))
	for _, s := range snapshots {
		tiers[s.SkuID] = vc.Classify(s, topRevenue)
	}
	return tiers
}

func (vc *VelocityClassifier) daysSince(t time.Time) int {
	days := int(vc.now.Sub(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
