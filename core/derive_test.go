package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitgrade/gitgrade/core/agg"
	"github.com/gitgrade/gitgrade/schema"
)

const day = int64(86400)

func singleAuthorOutput(author *schema.AuthorAggregate, global schema.GlobalAggregate) *schema.HistoryOutput {
	return &schema.HistoryOutput{
		Global:  global,
		Authors: map[string]*schema.AuthorAggregate{author.Name: author},
	}
}

// TestDeriveSingleCommitAuthor checks the degenerate one-commit case.
func TestDeriveSingleCommitAuthor(t *testing.T) {
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix()
	author := &schema.AuthorAggregate{
		Name:          "solo",
		Commits:       1,
		Details:       []schema.CommitDetail{{Timestamp: ts, MessageLength: 12, FilesTouched: 2}},
		FileChanges:   map[string]int{"a.go": 1, "b.go": 1},
		FileTimelines: map[string][]int64{"a.go": {ts}, "b.go": {ts}},
		Monthly:       map[string]int{"2024-06": 1},
	}
	global := schema.GlobalAggregate{
		FileChanges:     map[string]int{"a.go": 1, "b.go": 1},
		TotalCommits:    1,
		TotalInsertions: 100,
		TotalDeletions:  40,
	}
	now := time.Unix(ts+10*day, 0)

	metrics := DeriveAuthorMetrics(singleAuthorOutput(author, global), now)
	require.Len(t, metrics, 1)
	m := metrics[0]

	assert.Equal(t, 1.0, m.ActiveDays)
	assert.Equal(t, 1.0, m.AvgCommitInterval) // equals active days for one commit
	assert.Equal(t, 2.0, m.AvgFilesPerCommit)
	assert.Equal(t, 12.0, m.AvgMessageLength)
	assert.Equal(t, 10.0, m.DaysSinceLastCommit)
	assert.Equal(t, 100.0, m.ContributionRatio)
	assert.Equal(t, 140, m.TotalCodeChanges)
	assert.Zero(t, m.RapidReworkCount)
	assert.Zero(t, m.RapidReworkRatio)
	assert.Equal(t, 2, m.FilesModified)
	assert.Equal(t, 2, m.TotalFileModifications)
}

// TestDeriveRapidRework verifies the 5-day window over consecutive pairs.
func TestDeriveRapidRework(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	// Pairs: 2 days apart (rapid) and 8 days apart (not rapid).
	author := &schema.AuthorAggregate{
		Name:    "alice",
		Commits: 3,
		Details: []schema.CommitDetail{
			{Timestamp: base, MessageLength: 10, FilesTouched: 1},
			{Timestamp: base + 2*day, MessageLength: 10, FilesTouched: 1},
			{Timestamp: base + 10*day, MessageLength: 10, FilesTouched: 1},
		},
		FileChanges:   map[string]int{"hot.go": 3},
		FileTimelines: map[string][]int64{"hot.go": {base + 10*day, base, base + 2*day}}, // unsorted on purpose
		Monthly:       map[string]int{"2024-01": 3},
	}
	global := schema.GlobalAggregate{FileChanges: map[string]int{"hot.go": 3}, TotalCommits: 3}

	metrics := DeriveAuthorMetrics(singleAuthorOutput(author, global), time.Unix(base+11*day, 0))
	m := metrics[0]

	assert.Equal(t, 1, m.RapidReworkCount)
	assert.Equal(t, 50.0, m.RapidReworkRatio)
}

// TestDeriveRapidReworkWindowEdge: a gap of exactly 5 days counts.
func TestDeriveRapidReworkWindowEdge(t *testing.T) {
	rapid, ratio := rapidRework(map[string][]int64{
		"f.go": {0, 5 * day},
		"g.go": {0, 5*day + 1},
	})
	assert.Equal(t, 1, rapid)
	assert.Equal(t, 50.0, ratio)
}

// TestHotspotSet checks floor-based sizing with a minimum of one.
func TestHotspotSet(t *testing.T) {
	// Five files: floor(5*0.2) = 1, so only the top file qualifies.
	set := hotspotSet(map[string]int{"a": 40, "b": 5, "c": 3, "d": 2, "e": 1})
	assert.Len(t, set, 1)
	assert.Contains(t, set, "a")

	// Ten files: floor(10*0.2) = 2.
	ten := map[string]int{}
	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		ten[name] = i + 1
	}
	set = hotspotSet(ten)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "j")
	assert.Contains(t, set, "i")

	// Ties broken by path ascending.
	set = hotspotSet(map[string]int{"z": 7, "m": 7, "a": 7})
	assert.Len(t, set, 1)
	assert.Contains(t, set, "a")

	assert.Empty(t, hotspotSet(nil))
}

// TestDeriveHotspotParticipation checks the participation percentage.
func TestDeriveHotspotParticipation(t *testing.T) {
	base := time.Now().Unix()
	author := &schema.AuthorAggregate{
		Name:          "alice",
		Commits:       2,
		Details:       []schema.CommitDetail{{Timestamp: base, FilesTouched: 2}, {Timestamp: base + day, FilesTouched: 0}},
		FileChanges:   map[string]int{"a": 1, "b": 1},
		FileTimelines: map[string][]int64{"a": {base}, "b": {base}},
		Monthly:       map[string]int{},
	}
	global := schema.GlobalAggregate{
		FileChanges:  map[string]int{"a": 40, "b": 5, "c": 3, "d": 2, "e": 1},
		TotalCommits: 2,
	}

	m := DeriveAuthorMetrics(singleAuthorOutput(author, global), time.Unix(base+2*day, 0))[0]
	// Hotspot set is {a}; author touched a and b.
	assert.Equal(t, 50.0, m.HotspotParticipation)
}

// TestDeriveProration checks the prorated code-change estimate.
func TestDeriveProration(t *testing.T) {
	base := time.Now().Unix()
	author := &schema.AuthorAggregate{
		Name:          "alice",
		Commits:       3,
		Details:       []schema.CommitDetail{{Timestamp: base}, {Timestamp: base + day}, {Timestamp: base + 2*day}},
		FileChanges:   map[string]int{"a": 3},
		FileTimelines: map[string][]int64{"a": {base, base + day, base + 2*day}},
		Monthly:       map[string]int{},
	}
	global := schema.GlobalAggregate{
		FileChanges:     map[string]int{"a": 10},
		TotalCommits:    10,
		TotalInsertions: 1000,
		TotalDeletions:  500,
	}

	m := DeriveAuthorMetrics(singleAuthorOutput(author, global), time.Unix(base+3*day, 0))[0]
	assert.Equal(t, 450, m.TotalCodeChanges) // 0.3*1000 + 0.3*500
	assert.Equal(t, 30.0, m.ContributionRatio)
}

// TestDeriveProrationRoundsOnce: the estimate rounds the combined churn a
// single time instead of rounding insertions and deletions separately.
func TestDeriveProrationRoundsOnce(t *testing.T) {
	base := time.Now().Unix()
	author := &schema.AuthorAggregate{
		Name:          "alice",
		Commits:       1,
		Details:       []schema.CommitDetail{{Timestamp: base}},
		FileChanges:   map[string]int{"a": 1},
		FileTimelines: map[string][]int64{"a": {base}},
		Monthly:       map[string]int{},
	}
	global := schema.GlobalAggregate{
		FileChanges:     map[string]int{"a": 2},
		TotalCommits:    2,
		TotalInsertions: 3,
		TotalDeletions:  3,
	}

	m := DeriveAuthorMetrics(singleAuthorOutput(author, global), time.Unix(base+day, 0))[0]
	// (3+3)*0.5 = 3, not round(1.5)+round(1.5) = 4.
	assert.Equal(t, 3, m.TotalCodeChanges)
}

// TestDeriveMessageLengthMultibyte runs the aggregation and derivation
// stages together on a CJK commit message.
func TestDeriveMessageLengthMultibyte(t *testing.T) {
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Unix()
	out := agg.AggregateHistory([]schema.CommitRecord{{
		Author:     "alice",
		Timestamp:  ts,
		Message:    "修正錯誤",
		Files:      []string{"a.go"},
		Insertions: 1,
	}}, agg.Options{}, nil)

	metrics := DeriveAuthorMetrics(out, time.Unix(ts+day, 0))
	require.Len(t, metrics, 1)
	assert.Equal(t, 4.0, metrics[0].AvgMessageLength)
}

// TestFileConcentration checks the top-ten share computation.
func TestFileConcentration(t *testing.T) {
	// Twelve files with one modification each: top ten cover 10/12.
	changes := map[string]int{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		changes[name] = 1
	}
	assert.Equal(t, 83.3, fileConcentration(changes))

	// Fewer than ten files: everything is in the top set.
	assert.Equal(t, 100.0, fileConcentration(map[string]int{"a": 3, "b": 1}))

	assert.Zero(t, fileConcentration(nil))
}

// TestDeriveEncounterOrder verifies authors come back in first-seen order.
func TestDeriveEncounterOrder(t *testing.T) {
	base := time.Now().Unix()
	mk := func(name string, order int) *schema.AuthorAggregate {
		return &schema.AuthorAggregate{
			Name:          name,
			Order:         order,
			Commits:       1,
			Details:       []schema.CommitDetail{{Timestamp: base}},
			FileChanges:   map[string]int{},
			FileTimelines: map[string][]int64{},
			Monthly:       map[string]int{},
		}
	}
	out := &schema.HistoryOutput{
		Global: schema.GlobalAggregate{FileChanges: map[string]int{}, TotalCommits: 3},
		Authors: map[string]*schema.AuthorAggregate{
			"zoe": mk("zoe", 0), "abe": mk("abe", 1), "mia": mk("mia", 2),
		},
	}

	metrics := DeriveAuthorMetrics(out, time.Unix(base, 0))
	require.Len(t, metrics, 3)
	assert.Equal(t, "zoe", metrics[0].Author)
	assert.Equal(t, "abe", metrics[1].Author)
	assert.Equal(t, "mia", metrics[2].Author)
}

// TestRound1 checks half-away-from-zero rounding to one decimal.
func TestRound1(t *testing.T) {
	assert.Equal(t, 33.3, round1(100.0/3.0))
	assert.Equal(t, 0.1, round1(0.05))
	assert.Equal(t, 2.0, round1(1.95))
	assert.Equal(t, 0.0, round1(0.0))
}
