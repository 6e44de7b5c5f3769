package core

import (
	"math"
	"sort"
	"time"

	"github.com/gitgrade/gitgrade/schema"
)

// Derivation constants.
const (
	secondsPerDay = 86400.0

	// hotspotShare is the fraction of distinct files considered hotspots.
	hotspotShare = 0.2

	// rapidReworkWindowDays bounds the gap between consecutive touches of
	// the same file for the pair to count as rework.
	rapidReworkWindowDays = 5

	// concentrationTopFiles is how many of an author's busiest files feed
	// the concentration ratio.
	concentrationTopFiles = 10
)

// round1 rounds to one decimal place. Every ratio metric is rounded before
// scoring so banded thresholds behave predictably.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// hotspotSet returns the top max(1, floor(0.2*n)) files by global change
// count. Ties are broken by path ascending so the set is deterministic.
func hotspotSet(fileChanges map[string]int) map[string]struct{} {
	if len(fileChanges) == 0 {
		return map[string]struct{}{}
	}

	paths := make([]string, 0, len(fileChanges))
	for path := range fileChanges {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool {
		if fileChanges[paths[i]] != fileChanges[paths[j]] {
			return fileChanges[paths[i]] > fileChanges[paths[j]]
		}
		return paths[i] < paths[j]
	})

	count := int(math.Floor(float64(len(paths)) * hotspotShare))
	if count < 1 {
		count = 1
	}

	set := make(map[string]struct{}, count)
	for _, path := range paths[:count] {
		set[path] = struct{}{}
	}
	return set
}

// DeriveAuthorMetrics computes the per-author metric vectors from one
// aggregation pass. Authors are returned in first-seen order so downstream
// ranking stays stable. The clock anchors days_since_last_commit; inject a
// fixed time in tests, the CLI passes time.Now().
func DeriveAuthorMetrics(out *schema.HistoryOutput, now time.Time) []schema.DerivedMetrics {
	authors := make([]*schema.AuthorAggregate, 0, len(out.Authors))
	for _, author := range out.Authors {
		authors = append(authors, author)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].Order < authors[j].Order })

	hotspots := hotspotSet(out.Global.FileChanges)

	metrics := make([]schema.DerivedMetrics, 0, len(authors))
	for _, author := range authors {
		metrics = append(metrics, deriveOne(author, out.Global, hotspots, now))
	}
	return metrics
}

// deriveOne computes all fourteen metrics for a single author.
func deriveOne(author *schema.AuthorAggregate, global schema.GlobalAggregate, hotspots map[string]struct{}, now time.Time) schema.DerivedMetrics {
	m := schema.DerivedMetrics{
		Author:        author.Name,
		TotalCommits:  author.Commits,
		FilesModified: len(author.FileChanges),
	}
	if author.Commits == 0 {
		return m
	}

	first, last := author.Details[0].Timestamp, author.Details[0].Timestamp
	totalFiles, totalMsgLen := 0, 0
	for _, d := range author.Details {
		if d.Timestamp < first {
			first = d.Timestamp
		}
		if d.Timestamp > last {
			last = d.Timestamp
		}
		totalFiles += d.FilesTouched
		totalMsgLen += d.MessageLength
	}

	activeDays := float64(last-first) / secondsPerDay
	if activeDays < 1 {
		activeDays = 1
	}
	m.ActiveDays = round1(activeDays)
	m.AvgFilesPerCommit = round1(float64(totalFiles) / float64(author.Commits))
	m.AvgMessageLength = round1(float64(totalMsgLen) / float64(author.Commits))
	m.DaysSinceLastCommit = round1(float64(now.Unix()-last) / secondsPerDay)

	if author.Commits > 1 {
		m.AvgCommitInterval = round1(activeDays / float64(author.Commits))
	} else {
		m.AvgCommitInterval = round1(activeDays)
	}

	m.FileConcentration = fileConcentration(author.FileChanges)
	m.TotalFileModifications = totalModifications(author.FileChanges)

	if m.FilesModified > 0 {
		inHotspots := 0
		for path := range author.FileChanges {
			if _, ok := hotspots[path]; ok {
				inHotspots++
			}
		}
		m.HotspotParticipation = round1(float64(inHotspots) / float64(m.FilesModified) * 100)
	}

	if global.TotalCommits > 0 {
		share := float64(author.Commits) / float64(global.TotalCommits)
		m.ContributionRatio = round1(share * 100)
		churn := float64(global.TotalInsertions + global.TotalDeletions)
		m.TotalCodeChanges = int(math.Round(churn * share))
	}

	m.RapidReworkCount, m.RapidReworkRatio = rapidRework(author.FileTimelines)
	return m
}

// fileConcentration is the share of an author's file modifications that
// land in their ten busiest files, as a percentage.
func fileConcentration(fileChanges map[string]int) float64 {
	total := totalModifications(fileChanges)
	if total == 0 {
		return 0
	}

	counts := make([]int, 0, len(fileChanges))
	for _, n := range fileChanges {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	top := 0
	for i, n := range counts {
		if i >= concentrationTopFiles {
			break
		}
		top += n
	}
	return round1(float64(top) / float64(total) * 100)
}

// totalModifications sums every per-file change count.
func totalModifications(fileChanges map[string]int) int {
	total := 0
	for _, n := range fileChanges {
		total += n
	}
	return total
}

// rapidRework counts consecutive same-file modification pairs that land
// within the rework window, and the ratio of such pairs to all pairs.
func rapidRework(timelines map[string][]int64) (int, float64) {
	window := int64(rapidReworkWindowDays * secondsPerDay)
	rapid, intervals := 0, 0

	for _, timestamps := range timelines {
		if len(timestamps) < 2 {
			continue
		}
		sorted := make([]int64, len(timestamps))
		copy(sorted, timestamps)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		for i := 1; i < len(sorted); i++ {
			intervals++
			if sorted[i]-sorted[i-1] <= window {
				rapid++
			}
		}
	}

	if intervals == 0 {
		return 0, 0
	}
	return rapid, round1(float64(rapid) / float64(intervals) * 100)
}
