package service

import (
	"context"
	"time"

	"github.com/ravindra-p/stockpulse/internal/cache"
	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/ravindra-p/stockpulse/internal/engine"
	"github.com/ravindra-p/stockpulse/internal/repository"
	"github.com/rs/zerolog/log"
)

const monthKeyFormat = "2006-01"

// PushListService serves the aged-stock push list and its dashboard
// aggregates. Snapshots are loaded for the whole catalog and filtered in
// memory so totals stay consistent with the charts.
type PushListService struct {
	repo       repository.InventoryRepository
	cache      cache.PushListCache
	thresholds engine.Thresholds
}

func NewPushListService(repo repository.InventoryRepository, cacheImpl cache.PushListCache, thresholds engine.Thresholds) *PushListService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopPushListCache()
	}
	return &PushListService{repo: repo, cache: cacheImpl, thresholds: thresholds}
}

func (s *PushListService) Query(ctx context.Context, month time.Time, filter domain.PushListFilter) (*domain.PushListResult, error) {
	monthKey := month.Format(monthKeyFormat)

	if result, ok, err := s.cache.GetResult(ctx, monthKey, filter); err == nil && ok {
		return result, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("push list: cache get failed")
	}

	rows, err := s.buildRows(ctx, month)
	if err != nil {
		return nil, err
	}

	builder := engine.NewPushListBuilder(s.thresholds, time.Now())
	result := builder.Query(rows, filter)

	if err := s.cache.SetResult(ctx, monthKey, filter, &result); err != nil {
		log.Warn().Err(err).Msg("push list: cache set failed")
	}

	return &result, nil
}

func (s *PushListService) Dashboard(ctx context.Context, month time.Time, brandIDs []int64) (*domain.AgingDashboard, error) {
	rows, err := s.buildRows(ctx, month)
	if err != nil {
		return nil, err
	}

	builder := engine.NewPushListBuilder(s.thresholds, time.Now())
	if len(brandIDs) > 0 {
		brandSet := make(map[int64]bool, len(brandIDs))
		for _, id := range brandIDs {
			brandSet[id] = true
		}
		kept := make([]domain.PushListRow, 0, len(rows))
		for _, row := range rows {
			if brandSet[row.BrandID] {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	return &domain.AgingDashboard{
		KPI:        builder.KPI(rows),
		AgeBuckets: builder.AgeBucketChart(rows),
		Brands:     builder.BrandChart(rows),
	}, nil
}

func (s *PushListService) GetBrands(ctx context.Context) ([]domain.Brand, error) {
	return s.repo.GetBrands(ctx)
}

func (s *PushListService) GetAvailableMonths(ctx context.Context, limit int) ([]time.Time, error) {
	return s.repo.GetAvailableMonths(ctx, limit)
}

func (s *PushListService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

func (s *PushListService) buildRows(ctx context.Context, month time.Time) ([]domain.PushListRow, error) {
	snapshots, err := s.repo.GetSkuSnapshots(ctx, month, nil)
	if err != nil {
		return nil, err
	}

	builder := engine.NewPushListBuilder(s.thresholds, time.Now())
	return builder.BuildRows(snapshots), nil
}
