package core

import (
	"sort"

	"github.com/gitgrade/gitgrade/schema"
)

// BuildActivityTimeline produces the dense author-by-month commit matrix.
// The month axis is the sorted union of every author's active months, and
// every series spans the full axis with explicit zeros. Authors are ordered
// by commit count descending, ties by name ascending.
func BuildActivityTimeline(authors map[string]*schema.AuthorAggregate) schema.ActivityTimeline {
	monthSet := make(map[string]struct{})
	for _, author := range authors {
		for month := range author.Monthly {
			monthSet[month] = struct{}{}
		}
	}

	months := make([]string, 0, len(monthSet))
	for month := range monthSet {
		months = append(months, month)
	}
	sort.Strings(months)

	series := make([]schema.AuthorSeries, 0, len(authors))
	for _, author := range authors {
		timeline := make([]int, len(months))
		for i, month := range months {
			timeline[i] = author.Monthly[month]
		}
		series = append(series, schema.AuthorSeries{
			Author:       author.Name,
			TotalCommits: author.Commits,
			Timeline:     timeline,
		})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].TotalCommits != series[j].TotalCommits {
			return series[i].TotalCommits > series[j].TotalCommits
		}
		return series[i].Author < series[j].Author
	})

	return schema.ActivityTimeline{Months: months, Authors: series}
}
