package engine

import (
	"sort"
	"time"

	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/shopspring/decimal"
)

const maxGapSkus = 5

type skuPotential struct {
	snapshot  domain.SkuSnapshot
	tier      domain.VelocityTier
	value     decimal.Decimal // units * cogs
	effective decimal.Decimal // after weighting and demand capping
}

// CoverageInput is everything the scorer needs for one brand and month.
// RevenueTarget of zero means no target was set.
type CoverageInput struct {
	BrandID       int64
	BrandName     string
	Month         time.Time
	RevenueTarget decimal.Decimal
	RevenueActual decimal.Decimal
	Snapshots     []domain.SkuSnapshot
}

// CoverageScorer implements the 4-layer effective-supply model: velocity
// weighting, per-SKU demand capping, concentration penalty and status
// classification. Stateless; every call recomputes from the input batch.
type CoverageScorer struct {
	thresholds Thresholds
	velocity   *VelocityClassifier
}

// NewCoverageScorer creates a scorer evaluating sales recency against now.
func NewCoverageScorer(t Thresholds, now time.Time) *CoverageScorer {
	return &CoverageScorer{
		thresholds: t,
		velocity:   NewVelocityClassifier(t, now),
	}
}

// Score produces the coverage assessment for one brand-month. All divisions
// are zero-guarded; a missing or zero target yields status NO_TARGET with
// coverage ratios zeroed, never an error.
func (cs *CoverageScorer) Score(input CoverageInput) domain.CoverageAssessment {
	tiers := cs.velocity.ClassifyBatch(input.Snapshots)

	rawValue := decimal.Zero
	potentials := make([]skuPotential, 0, len(input.Snapshots))
	tierSlices := make(map[domain.VelocityTier]*domain.TierSlice)

	for _, s := range input.Snapshots {
		tier := tiers[s.SkuID]
		// Allocated units are already spoken for and cannot cover the target.
		value := s.Cogs.Mul(decimal.NewFromInt(int64(s.NetUnitsOnHand())))
		rawValue = rawValue.Add(value)

		// Layer 1: weight inventory value by tier reliability.
		weight := cs.thresholds.TierWeights[tier]
		effective := value.Mul(decimal.NewFromFloat(weight))

		// Layer 2: cap at forecast demand value so one overstocked SKU
		// cannot mask a shortage elsewhere.
		demandValue := s.Cogs.Mul(decimal.NewFromInt(int64(s.ForecastedUnits)))
		if effective.GreaterThan(demandValue) {
			effective = demandValue
		}

		potentials = append(potentials, skuPotential{snapshot: s, tier: tier, value: value, effective: effective})

		slice, ok := tierSlices[tier]
		if !ok {
			slice = &domain.TierSlice{Tier: tier, Weight: weight, InventoryValue: decimal.Zero, WeightedValue: decimal.Zero}
			tierSlices[tier] = slice
		}
		slice.Skus++
		slice.InventoryValue = slice.InventoryValue.Add(value)
		slice.WeightedValue = slice.WeightedValue.Add(effective)
	}

	effectiveTotal := decimal.Zero
	for _, p := range potentials {
		effectiveTotal = effectiveTotal.Add(p.effective)
	}

	// Layer 3: concentration. Share of effective potential held by the three
	// highest-value SKUs; above the threshold the penalty multiplier applies.
	sort.SliceStable(potentials, func(i, j int) bool {
		return potentials[i].effective.GreaterThan(potentials[j].effective)
	})

	top3 := decimal.Zero
	topSkus := make([]domain.TopSku, 0, 3)
	for i := 0; i < 3 && i < len(potentials); i++ {
		top3 = top3.Add(potentials[i].effective)
	}
	top3Share := 0.0
	if effectiveTotal.IsPositive() {
		top3Share = top3.Div(effectiveTotal).InexactFloat64()
	}
	for i := 0; i < 3 && i < len(potentials); i++ {
		p := potentials[i]
		share := 0.0
		if effectiveTotal.IsPositive() {
			share = p.effective.Div(effectiveTotal).InexactFloat64()
		}
		topSkus = append(topSkus, domain.TopSku{
			SkuID:       p.snapshot.SkuID,
			SkuCode:     p.snapshot.SkuCode,
			ProductName: p.snapshot.ProductName,
			Potential:   p.effective.Round(2),
			Share:       share,
		})
	}

	penalty := 1.0
	if top3Share > cs.thresholds.Top3ShareThreshold {
		penalty = cs.thresholds.ConcentrationPenalty
		effectiveTotal = effectiveTotal.Mul(decimal.NewFromFloat(penalty))
	}

	// Layer 4: status classification against the revenue target.
	assessment := domain.CoverageAssessment{
		BrandID:                   input.BrandID,
		BrandName:                 input.BrandName,
		Month:                     input.Month,
		RevenueTarget:             input.RevenueTarget,
		RevenueActual:             input.RevenueActual,
		RawInventoryValue:         rawValue.Round(2),
		EffectiveRevenuePotential: effectiveTotal.Round(2),
		ConcentrationPenalty:      penalty,
		Top3Share:                 top3Share,
		TopSkus:                   topSkus,
		VelocityBreakdown:         sortedTierSlices(tierSlices),
		GapSkus:                   cs.gapSkus(potentials),
		BufferNeeded:              decimal.Zero,
		BufferGap:                 decimal.Zero,
	}

	gap := rawValue.Sub(effectiveTotal)
	assessment.InventoryQualityGap = gap.Round(2)
	if rawValue.IsPositive() {
		assessment.QualityGapPct = gap.Div(rawValue).InexactFloat64() * 100
	}

	if !input.RevenueTarget.IsPositive() {
		assessment.Status = domain.StatusNoTarget
		return assessment
	}

	assessment.RawCoverage = rawValue.Div(input.RevenueTarget).InexactFloat64()
	assessment.AdjustedCoverage = effectiveTotal.Div(input.RevenueTarget).InexactFloat64()
	assessment.Status = cs.classify(assessment.AdjustedCoverage)

	bufferNeeded := input.RevenueTarget.Mul(decimal.NewFromFloat(cs.thresholds.ConfidentCoverage))
	assessment.BufferNeeded = bufferNeeded.Round(2)
	if bufferGap := bufferNeeded.Sub(effectiveTotal); bufferGap.IsPositive() {
		assessment.BufferGap = bufferGap.Round(2)
	}

	return assessment
}

func (cs *CoverageScorer) classify(adjustedCoverage float64) domain.CoverageStatus {
	switch {
	case adjustedCoverage >= cs.thresholds.ConfidentCoverage:
		return domain.StatusConfident
	case adjustedCoverage >= cs.thresholds.ThinCoverage:
		return domain.StatusThin
	case adjustedCoverage >= cs.thresholds.AtRiskCoverage:
		return domain.StatusAtRisk
	default:
		return domain.StatusShortfall
	}
}

// gapSkus ranks fast-moving SKUs by how little of their forecast the
// effective supply covers, ascending, annotated with what it would take to
// close the gap.
func (cs *CoverageScorer) gapSkus(potentials []skuPotential) []domain.GapSku {
	gaps := make([]domain.GapSku, 0)
	for _, p := range potentials {
		if p.tier != domain.TierA && p.tier != domain.TierB {
			continue
		}
		if p.snapshot.ForecastedUnits <= 0 {
			continue
		}
		demandValue := p.snapshot.Cogs.Mul(decimal.NewFromInt(int64(p.snapshot.ForecastedUnits)))
		ratio := 0.0
		if demandValue.IsPositive() {
			ratio = p.effective.Div(demandValue).InexactFloat64()
		}

		unitsNeeded := p.snapshot.ForecastedUnits - p.snapshot.NetUnitsOnHand()
		if unitsNeeded < 0 {
			unitsNeeded = 0
		}
		gaps = append(gaps, domain.GapSku{
			SkuID:         p.snapshot.SkuID,
			SkuCode:       p.snapshot.SkuCode,
			ProductName:   p.snapshot.ProductName,
			VelocityTier:  p.tier,
			CoverageRatio: ratio,
			UnitsNeeded:   unitsNeeded,
			RevenueAtRisk: p.snapshot.WholesalePrice.Mul(decimal.NewFromInt(int64(unitsNeeded))).Round(2),
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].CoverageRatio < gaps[j].CoverageRatio })
	if len(gaps) > maxGapSkus {
		gaps = gaps[:maxGapSkus]
	}
	return gaps
}

func sortedTierSlices(slices map[domain.VelocityTier]*domain.TierSlice) []domain.TierSlice {
	order := []domain.VelocityTier{domain.TierA, domain.TierB, domain.TierC, domain.TierD, domain.TierF, domain.TierN}
	out := make([]domain.TierSlice, 0, len(slices))
	for _, tier := range order {
		if slice, ok := slices[tier]; ok {
			out = append(out, *slice)
		}
	}
	return out
}
