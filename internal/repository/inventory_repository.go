// internal/repository/inventory_repository.go
package repository

import (
	"context"
	"time"

	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/shopspring/decimal"
)

// InventoryRepository loads the per-SKU inputs the scoring engine works on.
// Month parameters are first-of-month keys; brandIDs nil or empty means all
// brands.
type InventoryRepository interface {
	GetBalanceRows(ctx context.Context, month time.Time, brandIDs []int64) ([]domain.BalanceRow, error)
	GetSkuSnapshots(ctx context.Context, month time.Time, brandIDs []int64) ([]domain.SkuSnapshot, error)
	GetRevenueTarget(ctx context.Context, brandID int64, month time.Time) (decimal.Decimal, bool, error)
	GetRevenueActual(ctx context.Context, brandID int64, month time.Time) (decimal.Decimal, error)
	GetBrands(ctx context.Context) ([]domain.Brand, error)
	GetAvailableMonths(ctx context.Context, limit int) ([]time.Time, error)
}
