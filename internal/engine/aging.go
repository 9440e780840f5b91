package engine

import (
	"fmt"
	"time"
)

// Age bucket labels, ascending. AgeBuckets lists them in chart order.
const (
	BucketUnder30 = "<30"
	Bucket30to59  = "30-59"
	Bucket60to89  = "60-89"
	Bucket90to119 = "90-119"
	BucketOver120 = "120+"
)

// AgeBuckets returns the bucket labels for the given bounds, ascending.
func (t Thresholds) AgeBuckets() []string {
	b := t.AgeBucketBounds
	return []string{
		fmt.Sprintf("<%d", b[0]),
		fmt.Sprintf("%d-%d", b[0], b[1]-1),
		fmt.Sprintf("%d-%d", b[1], b[2]-1),
		fmt.Sprintf("%d-%d", b[2], b[3]-1),
		fmt.Sprintf("%d+", b[3]),
	}
}

// StockAgeDays computes the stock age from the reference date, preferring
// the receipt date, then the last-updated timestamp, then now (age 0).
func StockAgeDays(now time.Time, receivedDate, lastUpdated *time.Time) int {
	ref := now
	switch {
	case receivedDate != nil:
		ref = *receivedDate
	case lastUpdated != nil:
		ref = *lastUpdated
	}

	days := int(now.Sub(ref).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// AgeBucket classifies a stock age into its bucket. Buckets are
// inclusive-lower/exclusive-upper except the final open-ended one, so every
// non-negative day count lands in exactly one bucket.
func (t Thresholds) AgeBucket(days int) string {
	buckets := t.AgeBuckets()
	for i, bound := range t.AgeBucketBounds {
		if days < bound {
			return buckets[i]
		}
	}
	return buckets[len(buckets)-1]
}
