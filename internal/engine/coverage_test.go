package engine_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/ravindra-p/stockpulse/internal/engine"
)

// Three SKUs: a top seller, a dead one and a steady one whose stock exceeds
// its forecast (the demand cap engages). Concentration penalty fires because
// three SKUs trivially hold 100% of potential.
func concentratedInput(target int64) engine.CoverageInput {
	return engine.CoverageInput{
		BrandID:       7,
		BrandName:     "Acme",
		RevenueTarget: decimal.NewFromInt(target),
		Snapshots: []domain.SkuSnapshot{
			{
				SkuID: "TOP", SkuCode: "TOP", UnitsOnHand: 100,
				Cogs: decimal.NewFromInt(10), WholesalePrice: decimal.NewFromInt(20),
				UnitsSold30d: 30, UnitsSold90d: 90, LastSaleDate: daysAgo(2),
				ForecastedUnits: 200,
			},
			{
				SkuID: "DEAD", SkuCode: "DEAD", UnitsOnHand: 50,
				Cogs: decimal.NewFromInt(10), WholesalePrice: decimal.NewFromInt(20),
				ForecastedUnits: 100,
			},
			{
				SkuID: "CAPPED", SkuCode: "CAPPED", UnitsOnHand: 30,
				Cogs: decimal.NewFromInt(10), WholesalePrice: decimal.NewFromInt(15),
				UnitsSold30d: 10, UnitsSold90d: 30, LastSaleDate: daysAgo(2),
				ForecastedUnits: 10,
			},
		},
	}
}

func TestScore_FourLayers(t *testing.T) {
	scorer := engine.NewCoverageScorer(engine.DefaultThresholds(), testNow)
	a := scorer.Score(concentratedInput(1000))

	// Raw: 100*10 + 50*10 + 30*10.
	assert.True(t, a.RawInventoryValue.Equal(decimal.NewFromInt(1800)), "raw=%s", a.RawInventoryValue)
	assert.InDelta(t, 1.8, a.RawCoverage, 1e-9)

	// Layer 1+2: TOP 1000*1.0, DEAD 500*0.1=50, CAPPED min(270, 10*10)=100.
	// Layer 3: top3Share=1.0 > 0.5, so 1150 * 0.8 = 920.
	assert.InDelta(t, 1.0, a.Top3Share, 1e-9)
	assert.InDelta(t, 0.8, a.ConcentrationPenalty, 1e-9)
	assert.True(t, a.EffectiveRevenuePotential.Equal(decimal.NewFromInt(920)), "effective=%s", a.EffectiveRevenuePotential)

	// Layer 4: 920/1000 = 0.92 -> AT_RISK.
	assert.InDelta(t, 0.92, a.AdjustedCoverage, 1e-9)
	assert.Equal(t, domain.StatusAtRisk, a.Status)

	assert.True(t, a.InventoryQualityGap.Equal(decimal.NewFromInt(880)))
	assert.InDelta(t, 48.888888, a.QualityGapPct, 1e-4)
	assert.True(t, a.BufferNeeded.Equal(decimal.NewFromInt(1500)))
	assert.True(t, a.BufferGap.Equal(decimal.NewFromInt(580)))
}

func TestScore_StatusThresholds(t *testing.T) {
	scorer := engine.NewCoverageScorer(engine.DefaultThresholds(), testNow)

	tests := []struct {
		target int64
		want   domain.CoverageStatus
	}{
		{500, domain.StatusConfident}, // 920/500 = 1.84
		{800, domain.StatusThin},      // 1.15
		{1000, domain.StatusAtRisk},   // 0.92
		{2000, domain.StatusShortfall},
	}

	for _, tt := range tests {
		a := scorer.Score(concentratedInput(tt.target))
		assert.Equal(t, tt.want, a.Status, "target=%d coverage=%f", tt.target, a.AdjustedCoverage)
	}
}

func TestScore_NoTarget(t *testing.T) {
	scorer := engine.NewCoverageScorer(engine.DefaultThresholds(), testNow)

	input := concentratedInput(0)
	a := scorer.Score(input)

	assert.Equal(t, domain.StatusNoTarget, a.Status)
	assert.Zero(t, a.RawCoverage)
	assert.Zero(t, a.AdjustedCoverage)
	assert.True(t, a.BufferNeeded.IsZero())
	assert.True(t, a.BufferGap.IsZero())
	// Inventory quality fields are target-independent and still computed.
	assert.True(t, a.RawInventoryValue.Equal(decimal.NewFromInt(1800)))
	assert.False(t, a.EffectiveRevenuePotential.IsZero())
}

func TestScore_AllocationReducesPotential(t *testing.T) {
	scorer := engine.NewCoverageScorer(engine.DefaultThresholds(), testNow)

	input := concentratedInput(1000)
	input.Snapshots[0].AllocatedUnits = 40 // TOP: 100 on hand, 60 uncommitted
	a := scorer.Score(input)

	// Raw drops by the committed value: 1800 - 40*10.
	assert.True(t, a.RawInventoryValue.Equal(decimal.NewFromInt(1400)), "raw=%s", a.RawInventoryValue)

	// The gap for TOP widens to forecast minus uncommitted stock.
	require.NotEmpty(t, a.GapSkus)
	assert.Equal(t, "TOP", a.GapSkus[0].SkuID)
	assert.Equal(t, 140, a.GapSkus[0].UnitsNeeded)

	// Allocation beyond on-hand contributes nothing, not a negative value.
	over := concentratedInput(1000)
	over.Snapshots[0].AllocatedUnits = 500
	b := scorer.Score(over)
	assert.True(t, b.RawInventoryValue.Equal(decimal.NewFromInt(800)), "raw=%s", b.RawInventoryValue)
}

func TestScore_EffectiveNeverExceedsRaw(t *testing.T) {
	scorer := engine.NewCoverageScorer(engine.DefaultThresholds(), testNow)

	for n := 0; n < 40; n++ {
		snaps := make([]domain.SkuSnapshot, 0, n)
		for i := 0; i < n; i++ {
			snaps = append(snaps, domain.SkuSnapshot{
				SkuID:           fmt.Sprintf("SKU-%d", i),
				UnitsOnHand:     (i * 37) % 500,
				Cogs:            decimal.NewFromInt(int64(1 + i%13)),
				WholesalePrice:  decimal.NewFromInt(int64(2 + i%29)),
				UnitsSold30d:    (i * 7) % 40,
				UnitsSold90d:    (i * 11) % 90,
				LastSaleDate:    daysAgo(i % 100),
				ForecastedUnits: (i * 53) % 300,
			})
		}

		a := scorer.Score(engine.CoverageInput{RevenueTarget: decimal.NewFromInt(10000), Snapshots: snaps})
		assert.True(t, a.EffectiveRevenuePotential.LessThanOrEqual(a.RawInventoryValue),
			"n=%d effective %s > raw %s", n, a.EffectiveRevenuePotential, a.RawInventoryValue)
	}
}

func TestScore_ConcentrationNotAppliedWhenSpread(t *testing.T) {
	scorer := engine.NewCoverageScorer(engine.DefaultThresholds(), testNow)

	snaps := make([]domain.SkuSnapshot, 0, 10)
	for i := 0; i < 10; i++ {
		snaps = append(snaps, domain.SkuSnapshot{
			SkuID:           fmt.Sprintf("SKU-%d", i),
			UnitsOnHand:     10,
			Cogs:            decimal.NewFromInt(10),
			WholesalePrice:  decimal.NewFromInt(20),
			UnitsSold30d:    10,
			UnitsSold90d:    30,
			LastSaleDate:    daysAgo(1),
			ForecastedUnits: 100,
		})
	}

	a := scorer.Score(engine.CoverageInput{RevenueTarget: decimal.NewFromInt(1000), Snapshots: snaps})
	assert.Less(t, a.Top3Share, 0.5)
	assert.InDelta(t, 1.0, a.ConcentrationPenalty, 1e-9)
}

func TestScore_GapSkusRankAscendingByCoverage(t *testing.T) {
	scorer := engine.NewCoverageScorer(engine.DefaultThresholds(), testNow)
	a := scorer.Score(concentratedInput(1000))

	// TOP covers 1000 of a 2000-unit-value forecast (0.5); CAPPED fully
	// covers its forecast (1.0). TOP ranks first.
	require.Len(t, a.GapSkus, 2)
	assert.Equal(t, "TOP", a.GapSkus[0].SkuID)
	assert.InDelta(t, 0.5, a.GapSkus[0].CoverageRatio, 1e-9)
	assert.Equal(t, 100, a.GapSkus[0].UnitsNeeded)
	assert.True(t, a.GapSkus[0].RevenueAtRisk.Equal(decimal.NewFromInt(2000)))

	assert.Equal(t, "CAPPED", a.GapSkus[1].SkuID)
	assert.Equal(t, 0, a.GapSkus[1].UnitsNeeded)
}

func TestScore_VelocityBreakdownAccountsForEverySku(t *testing.T) {
	scorer := engine.NewCoverageScorer(engine.DefaultThresholds(), testNow)
	a := scorer.Score(concentratedInput(1000))

	total := 0
	for _, slice := range a.VelocityBreakdown {
		total += slice.Skus
	}
	assert.Equal(t, 3, total)
}
