// Package agg implements the single forward pass that turns a commit
// sequence into per-author and repository-wide aggregates.
package agg

import (
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

// Default percent sub-range reserved for the aggregation stage within an
// overall analysis run.
const (
	DefaultProgressFloor = 55
	DefaultProgressCeil  = 95
)

// Options controls filtering and progress mapping for one aggregation pass.
type Options struct {
	ExcludeFiles    []string
	ExcludePolicies []schema.ExcludeMatchPolicy
	FilterAuthors   []string

	// ProgressFloor/ProgressCeil map stage progress into the caller's
	// reserved percent sub-range. Both zero means the default range.
	ProgressFloor int
	ProgressCeil  int
}

// AggregateHistory walks the commit sequence exactly once and accumulates
// every tally later stages need. Commits by authors outside the allow-list
// are skipped entirely. Commits whose files are all excluded still count
// toward commit totals and monthly buckets.
func AggregateHistory(records []schema.CommitRecord, opts Options, sink contract.ProgressSink) *schema.HistoryOutput {
	floor, ceil := opts.ProgressFloor, opts.ProgressCeil
	if ceil <= floor {
		floor, ceil = DefaultProgressFloor, DefaultProgressCeil
	}

	out := schema.NewHistoryOutput()
	total := len(records)

	for i, rec := range records {
		processed := i + 1
		if processed%schema.ProgressStride == 0 || processed == total {
			percent := floor + processed*(ceil-floor)/total
			contract.ReportProgress(sink, schema.StageHistory, processed, total, percent,
				fmt.Sprintf("Processed %d/%d commits", processed, total))
		}

		if contract.IsFilteredAuthor(rec.Author, opts.FilterAuthors) {
			continue
		}

		author := out.Authors[rec.Author]
		if author == nil {
			author = &schema.AuthorAggregate{
				Name:          rec.Author,
				Order:         len(out.Authors),
				FileChanges:   make(map[string]int),
				FileTimelines: make(map[string][]int64),
				Monthly:       make(map[string]int),
			}
			out.Authors[rec.Author] = author
		}

		author.Commits++
		out.Global.TotalCommits++
		out.Global.TotalInsertions += rec.Insertions
		out.Global.TotalDeletions += rec.Deletions

		month := time.Unix(rec.Timestamp, 0).Format("2006-01")
		author.Monthly[month]++

		filesTouched := 0
		for _, path := range rec.Files {
			if contract.ShouldExclude(path, opts.ExcludeFiles, opts.ExcludePolicies) {
				continue
			}
			filesTouched++
			author.FileChanges[path]++
			author.FileTimelines[path] = append(author.FileTimelines[path], rec.Timestamp)
			out.Global.FileChanges[path]++
		}

		author.Details = append(author.Details, schema.CommitDetail{
			Timestamp: rec.Timestamp,
			// Message length is measured in characters, not bytes.
			MessageLength: utf8.RuneCountInString(rec.Message),
			FilesTouched:  filesTouched,
		})
	}

	return out
}

// TopChangedFiles returns the most-changed files sorted by change count
// descending, ties broken by path ascending for deterministic output.
func TopChangedFiles(global schema.GlobalAggregate, limit int) []schema.FileChangeCount {
	files := make([]schema.FileChangeCount, 0, len(global.FileChanges))
	for path, changes := range global.FileChanges {
		files = append(files, schema.FileChangeCount{Filename: path, Changes: changes})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].Changes != files[j].Changes {
			return files[i].Changes > files[j].Changes
		}
		return files[i].Filename < files[j].Filename
	})
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files
}

// BuildChangeDistribution buckets every tracked file by change frequency.
func BuildChangeDistribution(global schema.GlobalAggregate) schema.ChangeDistribution {
	var dist schema.ChangeDistribution
	for _, changes := range global.FileChanges {
		switch {
		case changes <= 5:
			dist.Low++
		case changes <= 15:
			dist.Medium++
		case changes <= 30:
			dist.High++
		default:
			dist.VeryHigh++
		}
	}
	return dist
}
