package core

import (
	"sort"

	"github.com/gitgrade/gitgrade/schema"
)

// rankAuthors orders results by total score descending. The sort must be
// stable so equal totals keep their first-seen order.
func rankAuthors(results []schema.ScoreResult) []schema.ScoreResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Total > results[j].Total
	})
	return results
}
