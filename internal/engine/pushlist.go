package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/shopspring/decimal"
)

// PushListBuilder assembles, filters, sorts and paginates SKU-level rows and
// computes portfolio totals and chart aggregates. Everything is computed
// fresh per call from the snapshot batch; nothing is cached here.
type PushListBuilder struct {
	thresholds Thresholds
	now        time.Time
	velocity   *VelocityClassifier
	pricer     *DiscountPricer
}

// NewPushListBuilder creates a builder evaluating stock ages against now.
func NewPushListBuilder(t Thresholds, now time.Time) *PushListBuilder {
	return &PushListBuilder{
		thresholds: t,
		now:        now,
		velocity:   NewVelocityClassifier(t, now),
		pricer:     NewDiscountPricer(t),
	}
}

// BuildRows joins aging, velocity and discount signals into push list rows,
// one per snapshot.
func (b *PushListBuilder) BuildRows(snapshots []domain.SkuSnapshot) []domain.PushListRow {
	topRevenue := b.velocity.TopRevenueSet(snapshots)

	rows := make([]domain.PushListRow, 0, len(snapshots))
	for _, s := range snapshots {
		ageDays := StockAgeDays(b.now, s.ReceivedDate, s.LastUpdated)
		decision := b.pricer.Decide(ageDays, s.Cogs, s.WholesalePrice)

		// Units already committed to orders are not pushable inventory.
		units := s.NetUnitsOnHand()

		rows = append(rows, domain.PushListRow{
			SkuID:           s.SkuID,
			SkuCode:         s.SkuCode,
			ProductName:     s.ProductName,
			BrandID:         s.BrandID,
			BrandName:       s.BrandName,
			UnitsOnHand:     units,
			Cogs:            s.Cogs,
			WholesalePrice:  s.WholesalePrice,
			StockAgeDays:    ageDays,
			AgeBucket:       b.thresholds.AgeBucket(ageDays),
			VelocityTier:    b.velocity.Classify(s, topRevenue),
			UnitsSold30d:    s.UnitsSold30d,
			UnitsSold90d:    s.UnitsSold90d,
			DiscountTier:    decision.TierLabel,
			DiscountPct:     decision.DiscountPct,
			DiscountedPrice: decision.DiscountedPrice,
			InventoryValue:  s.Cogs.Mul(decimal.NewFromInt(int64(units))),
			ValueAtRisk:     b.pricer.ValueAtRisk(ageDays, units, s.Cogs),
			CogsWarning:     s.Cogs.IsZero(),
		})
	}
	return rows
}

// Query filters, sorts and pages rows. Totals always cover the whole
// filtered set, never just the returned page. When TopN is set the result is
// exactly the top N rows by the active sort and pagination is ignored.
func (b *PushListBuilder) Query(rows []domain.PushListRow, filter domain.PushListFilter) domain.PushListResult {
	filtered := b.filter(rows, filter)
	b.sortRows(filtered, filter.SortField, filter.SortDir)

	totals := b.totals(filtered)

	if filter.TopN > 0 {
		n := filter.TopN
		if n > len(filtered) {
			n = len(filtered)
		}
		return domain.PushListResult{
			Rows:       filtered[:n],
			Totals:     totals,
			Page:       1,
			PageSize:   n,
			TotalPages: 1,
		}
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = b.thresholds.PageSize
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return domain.PushListResult{
		Rows:       filtered[start:end],
		Totals:     totals,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// KPI computes the cumulative at-risk buckets over a row set. Buckets nest:
// value over 120d is a subset of value over 90d, and so on down to 30d.
func (b *PushListBuilder) KPI(rows []domain.PushListRow) domain.AgingKPI {
	kpi := domain.AgingKPI{
		ValueOver30d:        decimal.Zero,
		ValueOver60d:        decimal.Zero,
		ValueOver90d:        decimal.Zero,
		ValueOver120d:       decimal.Zero,
		TotalValueAtRisk:    decimal.Zero,
		TotalInventoryValue: decimal.Zero,
	}

	bounds := b.thresholds.AgeBucketBounds
	for _, row := range rows {
		kpi.TotalInventoryValue = kpi.TotalInventoryValue.Add(row.InventoryValue)
		kpi.TotalValueAtRisk = kpi.TotalValueAtRisk.Add(row.ValueAtRisk)

		if row.StockAgeDays > bounds[0] {
			kpi.ValueOver30d = kpi.ValueOver30d.Add(row.InventoryValue)
		}
		if row.StockAgeDays > bounds[1] {
			kpi.ValueOver60d = kpi.ValueOver60d.Add(row.InventoryValue)
		}
		if row.StockAgeDays > bounds[2] {
			kpi.ValueOver90d = kpi.ValueOver90d.Add(row.InventoryValue)
		}
		if row.StockAgeDays > bounds[3] {
			kpi.ValueOver120d = kpi.ValueOver120d.Add(row.InventoryValue)
		}
	}

	return kpi
}

// AgeBucketChart aggregates rows per age bucket, in ascending bucket order.
func (b *PushListBuilder) AgeBucketChart(rows []domain.PushListRow) []domain.AgeBucketSlice {
	byBucket := make(map[string]*domain.AgeBucketSlice)
	for _, label := range b.thresholds.AgeBuckets() {
		byBucket[label] = &domain.AgeBucketSlice{Bucket: label, InventoryValue: decimal.Zero}
	}

	for _, row := range rows {
		slice, ok := byBucket[row.AgeBucket]
		if !ok {
			continue
		}
		slice.Skus++
		slice.Units += row.UnitsOnHand
		slice.InventoryValue = slice.InventoryValue.Add(row.InventoryValue)
	}

	out := make([]domain.AgeBucketSlice, 0, len(byBucket))
	for _, label := range b.thresholds.AgeBuckets() {
		out = append(out, *byBucket[label])
	}
	return out
}

// BrandChart aggregates rows per brand, descending by inventory value.
func (b *PushListBuilder) BrandChart(rows []domain.PushListRow) []domain.BrandSlice {
	byBrand := make(map[int64]*domain.BrandSlice)
	for _, row := range rows {
		slice, ok := byBrand[row.BrandID]
		if !ok {
			slice = &domain.BrandSlice{
				BrandID:        row.BrandID,
				BrandName:      row.BrandName,
				InventoryValue: decimal.Zero,
				ValueAtRisk:    decimal.Zero,
			}
			byBrand[row.BrandID] = slice
		}
		slice.Skus++
		slice.Units += row.UnitsOnHand
		slice.InventoryValue = slice.InventoryValue.Add(row.InventoryValue)
		slice.ValueAtRisk = slice.ValueAtRisk.Add(row.ValueAtRisk)
	}

	out := make([]domain.BrandSlice, 0, len(byBrand))
	for _, slice := range byBrand {
		out = append(out, *slice)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].InventoryValue.Equal(out[j].InventoryValue) {
			return out[i].InventoryValue.GreaterThan(out[j].InventoryValue)
		}
		return out[i].BrandID < out[j].BrandID
	})
	return out
}

func (b *PushListBuilder) filter(rows []domain.PushListRow, f domain.PushListFilter) []domain.PushListRow {
	brandSet := make(map[int64]bool, len(f.BrandIDs))
	for _, id := range f.BrandIDs {
		brandSet[id] = true
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.PushListRow, 0, len(rows))
	for _, row := range rows {
		if len(brandSet) > 0 && !brandSet[row.BrandID] {
			continue
		}
		if f.AgeBucket != "" && row.AgeBucket != f.AgeBucket {
			continue
		}
		if f.SlowMoversOnly && row.UnitsSold30d != 0 {
			continue
		}
		if f.OverstockOnly && !b.isOverstock(row) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(row.SkuCode), search) &&
			!strings.Contains(strings.ToLower(row.ProductName), search) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// isOverstock compares on-hand units against a multiple of the average
// monthly units over the trailing 90 days, floored at 1 so a SKU with no
// sales still gets a meaningful baseline.
func (b *PushListBuilder) isOverstock(row domain.PushListRow) bool {
	avgMonthly := float64(row.UnitsSold90d) / 3.0
	if avgMonthly < 1 {
		avgMonthly = 1
	}
	return float64(row.UnitsOnHand) > b.thresholds.OverstockMultiplier*avgMonthly
}

func (b *PushListBuilder) totals(rows []domain.PushListRow) domain.PushListTotals {
	totals := domain.PushListTotals{
		TotalRows:           len(rows),
		TotalInventoryValue: decimal.Zero,
		TotalValueAtRisk:    decimal.Zero,
	}
	for _, row := range rows {
		totals.TotalUnits += row.UnitsOnHand
		totals.TotalInventoryValue = totals.TotalInventoryValue.Add(row.InventoryValue)
		totals.TotalValueAtRisk = totals.TotalValueAtRisk.Add(row.ValueAtRisk)
	}
	return totals
}

// sortRows sorts in place. Ties keep their original order.
func (b *PushListBuilder) sortRows(rows []domain.PushListRow, field, dir string) {
	if field == "" {
		field = "inventory_value"
	}
	desc := strings.ToLower(dir) != "asc"

	less := func(i, j int) bool { return rows[i].InventoryValue.LessThan(rows[j].InventoryValue) }
	switch strings.ToLower(field) {
	case "sku_code":
		less = func(i, j int) bool { return rows[i].SkuCode < rows[j].SkuCode }
	case "product_name":
		less = func(i, j int) bool { return rows[i].ProductName < rows[j].ProductName }
	case "brand_name":
		less = func(i, j int) bool { return rows[i].BrandName < rows[j].BrandName }
	case "units_on_hand":
		less = func(i, j int) bool { return rows[i].UnitsOnHand < rows[j].UnitsOnHand }
	case "stock_age_days":
		less = func(i, j int) bool { return rows[i].StockAgeDays < rows[j].StockAgeDays }
	case "units_sold_30d":
		less = func(i, j int) bool { return rows[i].UnitsSold30d < rows[j].UnitsSold30d }
	case "value_at_risk":
		less = func(i, j int) bool { return rows[i].ValueAtRisk.LessThan(rows[j].ValueAtRisk) }
	case "discounted_price":
		less = func(i, j int) bool { return rows[i].DiscountedPrice.LessThan(rows[j].DiscountedPrice) }
	case "inventory_value":
		// default comparator
	}

	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(rows, less)
}
