package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ravindra-p/stockpulse/internal/engine"
)

func TestDecide_BandLadder(t *testing.T) {
	pricer := engine.NewDiscountPricer(engine.DefaultThresholds())
	wholesale := decimal.NewFromInt(100)
	cogs := decimal.NewFromInt(40)

	tests := []struct {
		ageDays   int
		wantLabel string
		wantPrice string
	}{
		{0, "No Discount", "100"},
		{29, "No Discount", "100"},
		{30, "20% Off", "80"},
		{59, "20% Off", "80"},
		{60, "30% Off", "70"},
		{90, "40% Off", "60"},
		{119, "40% Off", "60"},
		{120, "Cost + 10%", "50"},
		{365, "Cost + 10%", "50"},
	}

	for _, tt := range tests {
		d := pricer.Decide(tt.ageDays, cogs, wholesale)
		assert.Equal(t, tt.wantLabel, d.TierLabel, "age=%d", tt.ageDays)
		assert.True(t, d.DiscountedPrice.Equal(decimal.RequireFromString(tt.wantPrice)),
			"age=%d: got %s want %s", tt.ageDays, d.DiscountedPrice, tt.wantPrice)
	}
}

// In a floor-protected band the price never drops below cogs * 1.10, no
// matter how deep the markdown percentage cuts.
func TestDecide_MarginFloorHolds(t *testing.T) {
	pricer := engine.NewDiscountPricer(engine.DefaultThresholds())

	cogs := decimal.NewFromInt(90)
	wholesale := decimal.NewFromInt(100)
	floor := decimal.NewFromFloat(99.0) // 90 * 1.10

	for _, age := range []int{120, 150, 999} {
		d := pricer.Decide(age, cogs, wholesale)
		assert.True(t, d.DiscountedPrice.GreaterThanOrEqual(floor),
			"age=%d priced %s below floor %s", age, d.DiscountedPrice, floor)
	}
}

func TestDecide_ZeroCogsFloorsAtZero(t *testing.T) {
	pricer := engine.NewDiscountPricer(engine.DefaultThresholds())

	d := pricer.Decide(130, decimal.Zero, decimal.NewFromInt(100))
	// Floor is zero, so the markdown applies in full.
	assert.True(t, d.DiscountedPrice.Equal(decimal.NewFromInt(50)))
}

func TestValueAtRisk_ActivatesPast30Days(t *testing.T) {
	pricer := engine.NewDiscountPricer(engine.DefaultThresholds())
	cogs := decimal.NewFromInt(7)

	assert.True(t, pricer.ValueAtRisk(30, 10, cogs).IsZero(), "age 30 is not yet at risk")
	assert.True(t, pricer.ValueAtRisk(0, 10, cogs).IsZero())
	assert.True(t, pricer.ValueAtRisk(31, 10, cogs).Equal(decimal.NewFromInt(70)))
}
