package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ravindra-p/stockpulse/internal/config"
	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/ravindra-p/stockpulse/internal/engine"
	"github.com/ravindra-p/stockpulse/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	balanceRows []domain.BalanceRow
	snapshots   []domain.SkuSnapshot
	brands      []domain.Brand
	targets     map[int64]decimal.Decimal
	actuals     map[int64]decimal.Decimal
	months      []time.Time

	snapshotCalls int
}

func (r *stubRepo) GetBalanceRows(ctx context.Context, month time.Time, brandIDs []int64) ([]domain.BalanceRow, error) {
	return r.balanceRows, nil
}

func (r *stubRepo) GetSkuSnapshots(ctx context.Context, month time.Time, brandIDs []int64) ([]domain.SkuSnapshot, error) {
	r.snapshotCalls++
	if len(brandIDs) == 0 {
		return r.snapshots, nil
	}
	keep := make(map[int64]bool, len(brandIDs))
	for _, id := range brandIDs {
		keep[id] = true
	}
	var out []domain.SkuSnapshot
	for _, s := range r.snapshots {
		if keep[s.BrandID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubRepo) GetRevenueTarget(ctx context.Context, brandID int64, month time.Time) (decimal.Decimal, bool, error) {
	target, ok := r.targets[brandID]
	if !ok {
		return decimal.Zero, false, nil
	}
	return target, true, nil
}

func (r *stubRepo) GetRevenueActual(ctx context.Context, brandID int64, month time.Time) (decimal.Decimal, error) {
	return r.actuals[brandID], nil
}

func (r *stubRepo) GetBrands(ctx context.Context) ([]domain.Brand, error) {
	return r.brands, nil
}

func (r *stubRepo) GetAvailableMonths(ctx context.Context, limit int) ([]time.Time, error) {
	if limit < len(r.months) {
		return r.months[:limit], nil
	}
	return r.months, nil
}

func testMonth() time.Time {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
}

func testSnapshot(brandID int64, skuID string, units int, cogs float64) domain.SkuSnapshot {
	received := time.Now().AddDate(0, 0, -10)
	return domain.SkuSnapshot{
		SkuID:           skuID,
		SkuCode:         "C-" + skuID,
		ProductName:     "Product " + skuID,
		BrandID:         brandID,
		BrandName:       "Brand",
		UnitsOnHand:     units,
		Cogs:            decimal.NewFromFloat(cogs),
		WholesalePrice:  decimal.NewFromFloat(cogs * 2),
		ReceivedDate:    &received,
		UnitsSold30d:    10,
		UnitsSold90d:    30,
		LastSaleDate:    &received,
		ForecastedUnits: units * 2,
	}
}

func TestBalanceServiceReport(t *testing.T) {
	repo := &stubRepo{
		balanceRows: []domain.BalanceRow{
			{SkuID: "SKU-1", BrandID: 1, ForecastedUnits: 500, OrderedUnits: 200, OnHandUnits: 50},
			{SkuID: "SKU-2", BrandID: 1, ForecastedUnits: 100, OnHandUnits: 300},
		},
	}

	svc := service.NewBalanceService(repo, engine.DefaultThresholds())
	report, err := svc.Report(context.Background(), testMonth(), nil)
	require.NoError(t, err)

	assert.Equal(t, testMonth(), report.Month)
	require.Len(t, report.Shortages, 1)
	assert.Equal(t, "SKU-1", report.Shortages[0].SkuID)
	assert.Equal(t, 250, report.Shortages[0].Shortage)
	require.Len(t, report.Excesses, 1)
	assert.Equal(t, "SKU-2", report.Excesses[0].SkuID)
}

func TestPushListServiceQuery(t *testing.T) {
	repo := &stubRepo{
		snapshots: []domain.SkuSnapshot{
			testSnapshot(1, "SKU-1", 20, 10),
			testSnapshot(2, "SKU-2", 40, 5),
		},
	}

	svc := service.NewPushListService(repo, nil, engine.DefaultThresholds())
	result, err := svc.Query(context.Background(), testMonth(), domain.PushListFilter{BrandIDs: []int64{1}})
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "SKU-1", result.Rows[0].SkuID)
	assert.Equal(t, 1, result.Totals.TotalRows)
	assert.Equal(t, 20, result.Totals.TotalUnits)
}

func TestPushListServiceDashboard(t *testing.T) {
	repo := &stubRepo{
		snapshots: []domain.SkuSnapshot{
			testSnapshot(1, "SKU-1", 20, 10),
			testSnapshot(2, "SKU-2", 40, 5),
		},
	}

	svc := service.NewPushListService(repo, nil, engine.DefaultThresholds())
	dashboard, err := svc.Dashboard(context.Background(), testMonth(), nil)
	require.NoError(t, err)

	assert.True(t, dashboard.KPI.TotalInventoryValue.Equal(decimal.NewFromInt(400)))
	assert.Len(t, dashboard.Brands, 2)

	scoped, err := svc.Dashboard(context.Background(), testMonth(), []int64{2})
	require.NoError(t, err)
	require.Len(t, scoped.Brands, 1)
	assert.Equal(t, int64(2), scoped.Brands[0].BrandID)
}

func TestCoverageServiceAssess(t *testing.T) {
	repo := &stubRepo{
		snapshots: []domain.SkuSnapshot{testSnapshot(1, "SKU-1", 100, 10)},
		brands:    []domain.Brand{{ID: 1, Name: "Acme"}},
		targets:   map[int64]decimal.Decimal{1: decimal.NewFromInt(500)},
		actuals:   map[int64]decimal.Decimal{1: decimal.NewFromInt(450)},
	}

	svc := service.NewCoverageService(repo, nil, engine.DefaultThresholds())
	assessment, err := svc.Assess(context.Background(), 1, testMonth())
	require.NoError(t, err)

	assert.Equal(t, "Acme", assessment.BrandName)
	assert.True(t, assessment.RawInventoryValue.Equal(decimal.NewFromInt(1000)))
	assert.NotEqual(t, domain.StatusNoTarget, assessment.Status)
}

func TestCoverageServiceAssessNoTarget(t *testing.T) {
	repo := &stubRepo{
		snapshots: []domain.SkuSnapshot{testSnapshot(2, "SKU-9", 10, 10)},
		brands:    []domain.Brand{{ID: 2, Name: "NoTarget Co"}},
	}

	svc := service.NewCoverageService(repo, nil, engine.DefaultThresholds())
	assessment, err := svc.Assess(context.Background(), 2, testMonth())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNoTarget, assessment.Status)
	assert.Zero(t, assessment.AdjustedCoverage)
}

func TestCoverageServicePortfolio(t *testing.T) {
	repo := &stubRepo{
		snapshots: []domain.SkuSnapshot{
			testSnapshot(1, "SKU-1", 20, 10),
			testSnapshot(2, "SKU-2", 40, 5),
		},
		brands: []domain.Brand{
			{ID: 2, Name: "Beta"},
			{ID: 1, Name: "Alpha"},
		},
		targets: map[int64]decimal.Decimal{1: decimal.NewFromInt(100)},
	}

	svc := service.NewCoverageService(repo, nil, engine.DefaultThresholds())
	assessments, err := svc.Portfolio(context.Background(), testMonth())
	require.NoError(t, err)

	require.Len(t, assessments, 2)
	assert.Equal(t, int64(1), assessments[0].BrandID)
	assert.Equal(t, int64(2), assessments[1].BrandID)
	assert.Equal(t, domain.StatusNoTarget, assessments[1].Status)
}

func TestThresholdsFromConfig(t *testing.T) {
	overridden := service.ThresholdsFromConfig(config.EngineConfig{
		ExcessRatio: 1.5,
		PageSize:    25,
	})
	assert.Equal(t, 1.5, overridden.ExcessRatio)
	assert.Equal(t, 25, overridden.PageSize)

	defaults := engine.DefaultThresholds()
	assert.Equal(t, defaults.ConfidentCoverage, overridden.ConfidentCoverage)
	assert.Equal(t, defaults.DiscountBands, overridden.DiscountBands)
}
