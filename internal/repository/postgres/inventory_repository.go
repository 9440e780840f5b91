package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/ravindra-p/stockpulse/internal/repository"
	"github.com/shopspring/decimal"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetBalanceRows(ctx context.Context, month time.Time, brandIDs []int64) ([]domain.BalanceRow, error) {
	query := `
        WITH forecasts AS (
            SELECT sku_id, SUM(units) AS forecasted_units
            FROM demand_forecasts
            WHERE month = $1::date
            GROUP BY sku_id
        ),
        orders AS (
            SELECT sku_id, SUM(units) AS ordered_units
            FROM order_lines
            WHERE month = $1::date
            GROUP BY sku_id
        ),
        inventory AS (
            SELECT
                sku_id,
                SUM(on_hand_units) AS on_hand_units,
                SUM(in_transit_units) AS in_transit_units,
                SUM(allocated_units) AS allocated_units
            FROM inventory_items
            GROUP BY sku_id
        )
        SELECT
            s.id AS sku_id,
            s.brand_id,
            $1::date AS month,
            COALESCE(f.forecasted_units, 0) AS forecasted_units,
            COALESCE(o.ordered_units, 0) AS ordered_units,
            COALESCE(i.on_hand_units, 0) AS on_hand_units,
            COALESCE(i.in_transit_units, 0) AS in_transit_units,
            COALESCE(i.allocated_units, 0) AS allocated_units
        FROM skus s
        LEFT JOIN forecasts f ON f.sku_id = s.id
        LEFT JOIN orders o ON o.sku_id = s.id
        LEFT JOIN inventory i ON i.sku_id = s.id
        WHERE (f.sku_id IS NOT NULL OR o.sku_id IS NOT NULL OR i.sku_id IS NOT NULL)
    `

	args := []interface{}{month}

	var conditions []string
	conditions, args, _ = brandCondition(conditions, args, 2, "s.brand_id", brandIDs)

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY s.id"

	var rows []domain.BalanceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("error getting balance rows: %w", err)
	}

	return rows, nil
}

func (r *inventoryRepository) GetSkuSnapshots(ctx context.Context, month time.Time, brandIDs []int64) ([]domain.SkuSnapshot, error) {
	query := `
        WITH inventory AS (
            SELECT
                sku_id,
                SUM(on_hand_units) AS units_on_hand,
                SUM(allocated_units) AS allocated_units,
                MAX(cogs) AS cogs,
                MAX(wholesale_price) AS wholesale_price,
                MIN(received_date) AS received_date,
                MAX(last_updated) AS last_updated
            FROM inventory_items
            GROUP BY sku_id
        ),
        sku_sales AS (
            SELECT
                sku_id,
                COALESCE(SUM(units) FILTER (WHERE sold_at >= now() - interval '30 days'), 0) AS units_sold_30d,
                COALESCE(SUM(units) FILTER (WHERE sold_at >= now() - interval '90 days'), 0) AS units_sold_90d,
                MAX(sold_at) AS last_sale_date
            FROM sales
            GROUP BY sku_id
        ),
        forecasts AS (
            SELECT sku_id, SUM(units) AS forecasted_units
            FROM demand_forecasts
            WHERE month = $1::date
            GROUP BY sku_id
        )
        SELECT
            s.id AS sku_id,
            s.code AS sku_code,
            s.name AS product_name,
            s.brand_id,
            b.name AS brand_name,
            COALESCE(i.units_on_hand, 0) AS units_on_hand,
            COALESCE(i.allocated_units, 0) AS allocated_units,
            COALESCE(i.cogs, 0) AS cogs,
            COALESCE(i.wholesale_price, 0) AS wholesale_price,
            i.received_date,
            i.last_updated,
            COALESCE(ss.units_sold_30d, 0) AS units_sold_30d,
            COALESCE(ss.units_sold_90d, 0) AS units_sold_90d,
            ss.last_sale_date,
            s.created_at AS sku_created_at,
            COALESCE(f.forecasted_units, 0) AS forecasted_units
        FROM skus s
        JOIN brands b ON b.id = s.brand_id
        LEFT JOIN inventory i ON i.sku_id = s.id
        LEFT JOIN sku_sales ss ON ss.sku_id = s.id
        LEFT JOIN forecasts f ON f.sku_id = s.id
        WHERE (i.sku_id IS NOT NULL OR ss.sku_id IS NOT NULL OR f.sku_id IS NOT NULL)
    `

	args := []interface{}{month}

	var conditions []string
	conditions, args, _ = brandCondition(conditions, args, 2, "s.brand_id", brandIDs)

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY s.code"

	var snapshots []domain.SkuSnapshot
	if err := r.db.SelectContext(ctx, &snapshots, query, args...); err != nil {
		return nil, fmt.Errorf("error getting sku snapshots: %w", err)
	}

	return snapshots, nil
}

func (r *inventoryRepository) GetRevenueTarget(ctx context.Context, brandID int64, month time.Time) (decimal.Decimal, bool, error) {
	query := `
        SELECT target
        FROM revenue_targets
        WHERE brand_id = $1 AND month = $2::date
    `

	var target decimal.Decimal
	err := r.db.GetContext(ctx, &target, query, brandID, month)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("error getting revenue target: %w", err)
	}

	return target, true, nil
}

func (r *inventoryRepository) GetRevenueActual(ctx context.Context, brandID int64, month time.Time) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(sa.revenue), 0)
        FROM sales sa
        JOIN skus s ON s.id = sa.sku_id
        WHERE s.brand_id = $1
          AND sa.sold_at >= $2::date
          AND sa.sold_at < ($2::date + interval '1 month')
    `

	var actual decimal.Decimal
	if err := r.db.GetContext(ctx, &actual, query, brandID, month); err != nil {
		return decimal.Zero, fmt.Errorf("error getting revenue actual: %w", err)
	}

	return actual, nil
}

func (r *inventoryRepository) GetBrands(ctx context.Context) ([]domain.Brand, error) {
	query := `
        SELECT id, name
        FROM brands
        ORDER BY name
    `

	var brands []domain.Brand
	if err := r.db.SelectContext(ctx, &brands, query); err != nil {
		return nil, fmt.Errorf("error getting brands: %w", err)
	}

	return brands, nil
}

func (r *inventoryRepository) GetAvailableMonths(ctx context.Context, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 12
	}

	query := `
        SELECT DISTINCT month
        FROM demand_forecasts
        ORDER BY month DESC
        LIMIT $1
    `

	var months []time.Time
	if err := r.db.SelectContext(ctx, &months, query, limit); err != nil {
		return nil, fmt.Errorf("error getting available months: %w", err)
	}

	return months, nil
}
