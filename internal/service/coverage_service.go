package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ravindra-p/stockpulse/internal/cache"
	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/ravindra-p/stockpulse/internal/engine"
	"github.com/ravindra-p/stockpulse/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// portfolioConcurrency caps how many brand assessments run at once during a
// portfolio sweep.
const portfolioConcurrency = 4

// CoverageService runs the effective-supply coverage model per brand-month.
type CoverageService struct {
	repo       repository.InventoryRepository
	cache      cache.CoverageCache
	thresholds engine.Thresholds
}

func NewCoverageService(repo repository.InventoryRepository, cacheImpl cache.CoverageCache, thresholds engine.Thresholds) *CoverageService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopCoverageCache()
	}
	return &CoverageService{repo: repo, cache: cacheImpl, thresholds: thresholds}
}

func (s *CoverageService) Assess(ctx context.Context, brandID int64, month time.Time) (*domain.CoverageAssessment, error) {
	monthKey := month.Format(monthKeyFormat)

	if assessment, ok, err := s.cache.GetAssessment(ctx, brandID, monthKey); err == nil && ok {
		return assessment, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("coverage: cache get failed")
	}

	brandName, err := s.brandName(ctx, brandID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.assess(ctx, brandID, brandName, month)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetAssessment(ctx, brandID, monthKey, assessment); err != nil {
		log.Warn().Err(err).Msg("coverage: cache set failed")
	}

	return assessment, nil
}

// Portfolio assesses every brand for the month, a few at a time. A failure on
// one brand aborts the sweep.
func (s *CoverageService) Portfolio(ctx context.Context, month time.Time) ([]domain.CoverageAssessment, error) {
	brands, err := s.repo.GetBrands(ctx)
	if err != nil {
		return nil, err
	}

	sem := semaphore.NewWeighted(portfolioConcurrency)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	assessments := make([]domain.CoverageAssessment, 0, len(brands))

	for _, brand := range brands {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}

		wg.Add(1)
		go func(brand domain.Brand) {
			defer wg.Done()
			defer sem.Release(1)

			assessment, err := s.assess(ctx, brand.ID, brand.Name, month)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			assessments = append(assessments, *assessment)
		}(brand)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].BrandID < assessments[j].BrandID
	})

	return assessments, nil
}

func (s *CoverageService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

func (s *CoverageService) assess(ctx context.Context, brandID int64, brandName string, month time.Time) (*domain.CoverageAssessment, error) {
	snapshots, err := s.repo.GetSkuSnapshots(ctx, month, []int64{brandID})
	if err != nil {
		return nil, err
	}

	target, _, err := s.repo.GetRevenueTarget(ctx, brandID, month)
	if err != nil {
		return nil, err
	}

	actual, err := s.repo.GetRevenueActual(ctx, brandID, month)
	if err != nil {
		return nil, err
	}

	scorer := engine.NewCoverageScorer(s.thresholds, time.Now())
	assessment := scorer.Score(engine.CoverageInput{
		BrandID:       brandID,
		BrandName:     brandName,
		Month:         month,
		RevenueTarget: target,
		RevenueActual: actual,
		Snapshots:     snapshots,
	})

	return &assessment, nil
}

func (s *CoverageService) brandName(ctx context.Context, brandID int64) (string, error) {
	brands, err := s.repo.GetBrands(ctx)
	if err != nil {
		return "", err
	}
	for _, b := range brands {
		if b.ID == brandID {
			return b.Name, nil
		}
	}
	return "", nil
}
