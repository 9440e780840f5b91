package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/ravindra-p/stockpulse/internal/engine"
)

func TestShortage_Scenarios(t *testing.T) {
	calc := engine.NewBalanceCalculator(engine.DefaultThresholds())

	tests := []struct {
		name string
		row  domain.BalanceRow
		want int
	}{
		{
			name: "forecast exceeds orders and available",
			row:  domain.BalanceRow{ForecastedUnits: 500, OrderedUnits: 200, OnHandUnits: 50},
			want: 250,
		},
		{
			name: "fully covered",
			row:  domain.BalanceRow{ForecastedUnits: 100, OrderedUnits: 60, OnHandUnits: 50},
			want: 0,
		},
		{
			name: "in transit counts toward supply",
			row:  domain.BalanceRow{ForecastedUnits: 100, OnHandUnits: 20, InTransitUnits: 80},
			want: 0,
		},
		{
			name: "over-allocation deepens the shortage",
			row:  domain.BalanceRow{ForecastedUnits: 100, OnHandUnits: 10, AllocatedUnits: 40},
			want: 130,
		},
		{
			name: "zero row",
			row:  domain.BalanceRow{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Shortage(tt.row)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0, "shortage must never be negative")
		})
	}
}

func TestExcess_Scenarios(t *testing.T) {
	calc := engine.NewBalanceCalculator(engine.DefaultThresholds())

	t.Run("ratio above threshold", func(t *testing.T) {
		row := domain.BalanceRow{ForecastedUnits: 100, OrderedUnits: 150, OnHandUnits: 100}
		excess, ratio := calc.Excess(row)
		assert.Equal(t, 50, excess)
		assert.InDelta(t, 2.5, ratio, 1e-9)
	})

	t.Run("ratio at threshold is not excess", func(t *testing.T) {
		row := domain.BalanceRow{ForecastedUnits: 100, OrderedUnits: 100, OnHandUnits: 100}
		excess, ratio := calc.Excess(row)
		assert.Equal(t, 0, excess)
		assert.InDelta(t, 2.0, ratio, 1e-9)
	})

	t.Run("zero forecast with supply is fully excess", func(t *testing.T) {
		row := domain.BalanceRow{OnHandUnits: 30}
		excess, _ := calc.Excess(row)
		assert.Equal(t, 30, excess)
	})

	t.Run("zero forecast without supply", func(t *testing.T) {
		excess, _ := calc.Excess(domain.BalanceRow{})
		assert.Equal(t, 0, excess)
	})

	t.Run("custom threshold", func(t *testing.T) {
		thresholds := engine.DefaultThresholds()
		thresholds.ExcessRatio = 1.5
		calc := engine.NewBalanceCalculator(thresholds)

		row := domain.BalanceRow{ForecastedUnits: 100, OnHandUnits: 200}
		excess, ratio := calc.Excess(row)
		assert.Equal(t, 50, excess)
		assert.InDelta(t, 2.0, ratio, 1e-9)
	})
}

func TestBalanceReport_ShortageAndExcessAreExclusive(t *testing.T) {
	calc := engine.NewBalanceCalculator(engine.DefaultThresholds())

	// Both checks read the same supply, so no row lands in both lists even
	// when a negative allocation inflates the available count.
	rows := []domain.BalanceRow{
		{SkuID: "SKU-1", ForecastedUnits: 500, OrderedUnits: 200, OnHandUnits: 50},
		{SkuID: "SKU-2", ForecastedUnits: 10, OnHandUnits: 100},
		{SkuID: "SKU-3", ForecastedUnits: 100, OrderedUnits: 100, OnHandUnits: 50},
		{SkuID: "SKU-4", ForecastedUnits: 40, OnHandUnits: 50, AllocatedUnits: -60},
		{SkuID: "SKU-5", ForecastedUnits: 0, OnHandUnits: 0, AllocatedUnits: -25},
	}

	report := calc.Report(rows)
	require.Len(t, report.Shortages, 1)
	assert.Equal(t, "SKU-1", report.Shortages[0].SkuID)
	assert.Equal(t, 250, report.Shortages[0].Shortage)

	require.Len(t, report.Excesses, 3)
	assert.Equal(t, "SKU-2", report.Excesses[0].SkuID)
	assert.Equal(t, 80, report.Excesses[0].Excess)
	assert.Equal(t, "SKU-4", report.Excesses[1].SkuID)
	assert.Equal(t, 30, report.Excesses[1].Excess)
	assert.Equal(t, "SKU-5", report.Excesses[2].SkuID)
	assert.Equal(t, 25, report.Excesses[2].Excess)

	assert.Empty(t, report.Flagged)
}
