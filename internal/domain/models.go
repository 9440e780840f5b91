// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Brand represents a brand tracked in the catalog
type Brand struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// BalanceRow holds per-SKU demand and supply figures aggregated for one
// calendar month (first-of-month key). Forecast and order units are summed
// across all retailer rows for the SKU.
type BalanceRow struct {
	SkuID           string    `json:"sku_id" db:"sku_id"`
	BrandID         int64     `json:"brand_id" db:"brand_id"`
	Month           time.Time `json:"month" db:"month"`
	ForecastedUnits int       `json:"forecasted_units" db:"forecasted_units"`
	OrderedUnits    int       `json:"ordered_units" db:"ordered_units"`
	OnHandUnits     int       `json:"on_hand_units" db:"on_hand_units"`
	InTransitUnits  int       `json:"in_transit_units" db:"in_transit_units"`
	AllocatedUnits  int       `json:"allocated_units" db:"allocated_units"`
}

// AvailableUnits is the unencumbered supply pool. It may go negative when a
// SKU is over-allocated; callers decide what to do with that.
func (r BalanceRow) AvailableUnits() int {
	return r.OnHandUnits + r.InTransitUnits - r.AllocatedUnits
}

// ShortageRecord reports units a SKU is short against forecast.
type ShortageRecord struct {
	SkuID    string `json:"sku_id"`
	Shortage int    `json:"shortage"`
}

// ExcessRecord reports units a SKU carries beyond the excess threshold.
// Ratio is supply/forecast (0 when forecast is zero).
type ExcessRecord struct {
	SkuID  string  `json:"sku_id"`
	Excess int     `json:"excess"`
	Ratio  float64 `json:"ratio"`
}

// BalanceReport bundles shortage and excess results for one month. Flagged
// lists SKUs reporting shortage and excess at once; with both computed from
// the same supply figure that cannot happen, so the field is a tripwire for
// a future divergence rather than an expected output.
type BalanceReport struct {
	Month     time.Time        `json:"month"`
	Shortages []ShortageRecord `json:"shortages"`
	Excesses  []ExcessRecord   `json:"excesses"`
	Flagged   []string         `json:"flagged,omitempty"`
}

// SkuSnapshot is the per-SKU input row for aging, velocity, discount and
// coverage calculations. Missing numeric fields default to zero; missing
// dates are nil and resolved by the engine's reference-date priority.
type SkuSnapshot struct {
	SkuID           string          `json:"sku_id" db:"sku_id"`
	SkuCode         string          `json:"sku_code" db:"sku_code"`
	ProductName     string          `json:"product_name" db:"product_name"`
	BrandID         int64           `json:"brand_id" db:"brand_id"`
	BrandName       string          `json:"brand_name" db:"brand_name"`
	UnitsOnHand     int             `json:"units_on_hand" db:"units_on_hand"`
	AllocatedUnits  int             `json:"allocated_units" db:"allocated_units"`
	Cogs            decimal.Decimal `json:"cogs" db:"cogs"`
	WholesalePrice  decimal.Decimal `json:"wholesale_price" db:"wholesale_price"`
	ReceivedDate    *time.Time      `json:"received_date" db:"received_date"`
	LastUpdated     *time.Time      `json:"last_updated" db:"last_updated"`
	UnitsSold30d    int             `json:"units_sold_30d" db:"units_sold_30d"`
	UnitsSold90d    int             `json:"units_sold_90d" db:"units_sold_90d"`
	LastSaleDate    *time.Time      `json:"last_sale_date" db:"last_sale_date"`
	SkuCreatedAt    *time.Time      `json:"sku_created_at" db:"sku_created_at"`
	ForecastedUnits int             `json:"forecasted_units" db:"forecasted_units"`
}

// NetUnitsOnHand is the on-hand count net of units already committed to
// orders. Units allocated beyond what is physically on hand clamp to zero
// rather than going negative.
func (s SkuSnapshot) NetUnitsOnHand() int {
	net := s.UnitsOnHand - s.AllocatedUnits
	if net < 0 {
		return 0
	}
	return net
}

// DiscountDecision is the pricing outcome for a SKU at a given stock age.
type DiscountDecision struct {
	AgeDays         int             `json:"age_days"`
	TierLabel       string          `json:"tier_label"`
	DiscountPct     float64         `json:"discount_pct"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
}

// PushListRow is the joined per-SKU view served to the push list.
type PushListRow struct {
	SkuID           string          `json:"sku_id"`
	SkuCode         string          `json:"sku_code"`
	ProductName     string          `json:"product_name"`
	BrandID         int64           `json:"brand_id"`
	BrandName       string          `json:"brand_name"`
	UnitsOnHand     int             `json:"units_on_hand"`
	Cogs            decimal.Decimal `json:"cogs"`
	WholesalePrice  decimal.Decimal `json:"wholesale_price"`
	StockAgeDays    int             `json:"stock_age_days"`
	AgeBucket       string          `json:"age_bucket"`
	VelocityTier    VelocityTier    `json:"velocity_tier"`
	UnitsSold30d    int             `json:"units_sold_30d"`
	UnitsSold90d    int             `json:"units_sold_90d"`
	DiscountTier    string          `json:"discount_tier"`
	DiscountPct     float64         `json:"discount_pct"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
	ValueAtRisk     decimal.Decimal `json:"value_at_risk"`
	CogsWarning     bool            `json:"cogs_warning"`
}

// PushListTotals are computed over the filtered, pre-pagination row set.
type PushListTotals struct {
	TotalRows           int             `json:"total_rows"`
	TotalUnits          int             `json:"total_units"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	TotalValueAtRisk    decimal.Decimal `json:"total_value_at_risk"`
}

// AgingKPI holds the cumulative at-risk buckets. Each bucket uses the same
// stockAgeDays > N predicate, so over120 <= over90 <= over60 <= over30.
type AgingKPI struct {
	ValueOver30d        decimal.Decimal `json:"value_over_30d"`
	ValueOver60d        decimal.Decimal `json:"value_over_60d"`
	ValueOver90d        decimal.Decimal `json:"value_over_90d"`
	ValueOver120d       decimal.Decimal `json:"value_over_120d"`
	TotalValueAtRisk    decimal.Decimal `json:"total_value_at_risk"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
}

// AgeBucketSlice is a chart aggregate for one age bucket.
type AgeBucketSlice struct {
	Bucket         string          `json:"bucket"`
	Skus           int             `json:"skus"`
	Units          int             `json:"units"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// BrandSlice is a chart aggregate for one brand.
type BrandSlice struct {
	BrandID        int64           `json:"brand_id"`
	BrandName      string          `json:"brand_name"`
	Skus           int             `json:"skus"`
	Units          int             `json:"units"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	ValueAtRisk    decimal.Decimal `json:"value_at_risk"`
}

// PushListFilter describes the push list query. Filters are AND-combined.
// TopN and pagination are mutually exclusive: a nonzero TopN wins.
type PushListFilter struct {
	BrandIDs       []int64 `json:"brand_ids"`
	AgeBucket      string  `json:"age_bucket"`
	SlowMoversOnly bool    `json:"slow_movers_only"`
	OverstockOnly  bool    `json:"overstock_only"`
	Search         string  `json:"search"`
	SortField      string  `json:"sort_field"`
	SortDir        string  `json:"sort_dir"`
	TopN           int     `json:"top_n"`
	Page           int     `json:"page"`
	PageSize       int     `json:"page_size"`
}

// AgingDashboard bundles the KPI header with the chart aggregates.
type AgingDashboard struct {
	KPI        AgingKPI         `json:"kpi"`
	AgeBuckets []AgeBucketSlice `json:"age_buckets"`
	Brands     []BrandSlice     `json:"brands"`
}

// PushListResult is a page of rows plus totals over the whole filtered set.
type PushListResult struct {
	Rows       []PushListRow  `json:"rows"`
	Totals     PushListTotals `json:"totals"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}
