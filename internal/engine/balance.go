package engine

import (
	"math"

	"github.com/ravindra-p/stockpulse/internal/domain"
)

// BalanceCalculator computes per-SKU shortage and excess against forecast.
// Pure arithmetic over aggregated monthly rows; no side effects.
type BalanceCalculator struct {
	thresholds Thresholds
}

// NewBalanceCalculator creates a balance calculator.
func NewBalanceCalculator(t Thresholds) *BalanceCalculator {
	return &BalanceCalculator{thresholds: t}
}

// Shortage returns how many units the SKU is short against forecast after
// accounting for open orders and available supply. Never negative.
func (bc *BalanceCalculator) Shortage(row domain.BalanceRow) int {
	shortage := row.ForecastedUnits - row.OrderedUnits - row.AvailableUnits()
	if shortage < 0 {
		return 0
	}
	return shortage
}

// Excess returns the units carried beyond the excess threshold and the
// supply/forecast ratio. Any supply against a zero forecast is fully excess;
// that is policy, not a division guard.
func (bc *BalanceCalculator) Excess(row domain.BalanceRow) (int, float64) {
	supply := row.OrderedUnits + row.AvailableUnits()

	if row.ForecastedUnits == 0 {
		if supply > 0 {
			return supply, 0
		}
		return 0, 0
	}

	ratio := float64(supply) / float64(row.ForecastedUnits)
	if ratio <= bc.thresholds.ExcessRatio {
		return 0, ratio
	}

	excess := int(math.Round(float64(supply) - float64(row.ForecastedUnits)*bc.thresholds.ExcessRatio))
	if excess < 0 {
		excess = 0
	}
	return excess, ratio
}

// Report computes shortage and excess records for a batch of rows. Shortage
// and Excess read the same supply figure, so their positive cases are
// mutually exclusive for any input: shortage needs forecast above supply,
// excess needs supply well above forecast. Flagged therefore stays empty and
// exists only so a future divergence in the two supply figures is surfaced
// instead of silently reconciled.
func (bc *BalanceCalculator) Report(rows []domain.BalanceRow) domain.BalanceReport {
	report := domain.BalanceReport{
		Shortages: make([]domain.ShortageRecord, 0),
		Excesses:  make([]domain.ExcessRecord, 0),
	}
	if len(rows) > 0 {
		report.Month = rows[0].Month
	}

	for _, row := range rows {
		shortage := bc.Shortage(row)
		excess, ratio := bc.Excess(row)

		if shortage > 0 {
			report.Shortages = append(report.Shortages, domain.ShortageRecord{
				SkuID:    row.SkuID,
				Shortage: shortage,
			})
		}
		if excess > 0 {
			report.Excesses = append(report.Excesses, domain.ExcessRecord{
				SkuID:  row.SkuID,
				Excess: excess,
				Ratio:  ratio,
			})
		}
		if shortage > 0 && excess > 0 {
			report.Flagged = append(report.Flagged, row.SkuID)
		}
	}

	return report
}
