package postgres

import (
	"fmt"

	"github.com/lib/pq"
)

// brandCondition appends an ANY-array brand filter for the given column when
// brandIDs is non-empty. It returns the updated conditions, args and counter.
func brandCondition(conditions []string, args []interface{}, argCounter int, column string, brandIDs []int64) ([]string, []interface{}, int) {
	if len(brandIDs) == 0 {
		return conditions, args, argCounter
	}

	conditions = append(conditions, fmt.Sprintf("%s = ANY($%d::bigint[])", column, argCounter))
	args = append(args, pq.Array(brandIDs))
	argCounter++

	return conditions, args, argCounter
}
