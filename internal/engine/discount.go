package engine

import (
	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/shopspring/decimal"
)

// DiscountPricer derives a discount tier, discounted price and value at risk
// from stock age, cost and price.
type DiscountPricer struct {
	thresholds Thresholds
}

// NewDiscountPricer creates a discount pricer.
func NewDiscountPricer(t Thresholds) *DiscountPricer {
	return &DiscountPricer{thresholds: t}
}

// Decide resolves the discount band for a stock age and prices the SKU.
// Floor-protected bands never price below cogs * MarginFloor, whatever the
// markdown percentage.
func (dp *DiscountPricer) Decide(ageDays int, cogs, wholesalePrice decimal.Decimal) domain.DiscountDecision {
	band := dp.thresholds.DiscountBands[0]
	for _, b := range dp.thresholds.DiscountBands {
		if ageDays >= b.MinAgeDays {
			band = b
		}
	}

	price := wholesalePrice.Mul(decimal.NewFromFloat(1 - band.Pct))
	if band.FloorProtected {
		floor := cogs.Mul(decimal.NewFromFloat(dp.thresholds.MarginFloor))
		if price.LessThan(floor) {
			price = floor
		}
	}

	return domain.DiscountDecision{
		AgeDays:         ageDays,
		TierLabel:       band.Label,
		DiscountPct:     band.Pct,
		DiscountedPrice: price.Round(2),
	}
}

// ValueAtRisk is the cost value exposed to markdown. It activates strictly
// past the at-risk age threshold.
func (dp *DiscountPricer) ValueAtRisk(ageDays, unitsOnHand int, cogs decimal.Decimal) decimal.Decimal {
	if ageDays <= dp.thresholds.ValueAtRiskAgeDays {
		return decimal.Zero
	}
	return cogs.Mul(decimal.NewFromInt(int64(unitsOnHand)))
}
