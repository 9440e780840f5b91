package service

import (
	"context"
	"time"

	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/ravindra-p/stockpulse/internal/engine"
	"github.com/ravindra-p/stockpulse/internal/repository"
	"github.com/rs/zerolog/log"
)

// BalanceService reconciles forecast demand against ordered and available
// supply for one month.
type BalanceService struct {
	repo       repository.InventoryRepository
	thresholds engine.Thresholds
}

func NewBalanceService(repo repository.InventoryRepository, thresholds engine.Thresholds) *BalanceService {
	return &BalanceService{repo: repo, thresholds: thresholds}
}

func (s *BalanceService) Report(ctx context.Context, month time.Time, brandIDs []int64) (*domain.BalanceReport, error) {
	rows, err := s.repo.GetBalanceRows(ctx, month, brandIDs)
	if err != nil {
		return nil, err
	}

	calc := engine.NewBalanceCalculator(s.thresholds)
	report := calc.Report(rows)
	report.Month = month

	if len(report.Flagged) > 0 {
		log.Warn().
			Str("month", month.Format(monthKeyFormat)).
			Strs("sku_ids", report.Flagged).
			Msg("balance: SKUs report both shortage and excess")
	}

	return &report, nil
}
