package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ravindra-p/stockpulse/internal/engine"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(days int) *time.Time {
	t := testNow.AddDate(0, 0, -days)
	return &t
}

func TestStockAgeDays_ReferencePriority(t *testing.T) {
	t.Run("received date wins", func(t *testing.T) {
		assert.Equal(t, 45, engine.StockAgeDays(testNow, daysAgo(45), daysAgo(10)))
	})

	t.Run("falls back to last updated", func(t *testing.T) {
		assert.Equal(t, 10, engine.StockAgeDays(testNow, nil, daysAgo(10)))
	})

	t.Run("no dates means age zero", func(t *testing.T) {
		assert.Equal(t, 0, engine.StockAgeDays(testNow, nil, nil))
	})

	t.Run("future reference clamps to zero", func(t *testing.T) {
		future := testNow.AddDate(0, 0, 3)
		assert.Equal(t, 0, engine.StockAgeDays(testNow, &future, nil))
	})
}

func TestAgeBucket_Boundaries(t *testing.T) {
	thresholds := engine.DefaultThresholds()

	tests := []struct {
		days int
		want string
	}{
		{0, "<30"},
		{29, "<30"},
		{30, "30-59"},
		{59, "30-59"},
		{60, "60-89"},
		{89, "60-89"},
		{90, "90-119"},
		{119, "90-119"},
		{120, "120+"},
		{400, "120+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, thresholds.AgeBucket(tt.days), "days=%d", tt.days)
	}
}

// Every non-negative day count must land in exactly one bucket, and adjacent
// days never skip a bucket.
func TestAgeBucket_PartitionIsTotalAndContiguous(t *testing.T) {
	thresholds := engine.DefaultThresholds()
	buckets := thresholds.AgeBuckets()

	index := make(map[string]int, len(buckets))
	for i, b := range buckets {
		index[b] = i
	}

	prev := 0
	for days := 0; days <= 500; days++ {
		bucket := thresholds.AgeBucket(days)
		i, ok := index[bucket]
		assert.True(t, ok, "day %d classified into unknown bucket %q", days, bucket)
		assert.GreaterOrEqual(t, i, prev, "bucket order regressed at day %d", days)
		assert.LessOrEqual(t, i-prev, 1, "bucket skipped at day %d", days)
		prev = i
	}
	assert.Equal(t, len(buckets)-1, prev, "final bucket never reached")
}
