package agg

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

func commit(author string, ts int64, msg string, files ...string) schema.CommitRecord {
	return schema.CommitRecord{
		Author:     author,
		Timestamp:  ts,
		Message:    msg,
		Files:      files,
		Insertions: 10,
		Deletions:  5,
	}
}

// TestAggregateHistoryBasics verifies the core tallies of a small pass.
func TestAggregateHistoryBasics(t *testing.T) {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC).Unix()
	records := []schema.CommitRecord{
		commit("alice", base, "first change", "a.go", "b.go"),
		commit("alice", base+3600, "second", "a.go"),
		commit("bob", base+7200, "bob work", "c.go"),
	}

	out := AggregateHistory(records, Options{}, nil)

	assert.Equal(t, 3, out.Global.TotalCommits)
	assert.Equal(t, 30, out.Global.TotalInsertions)
	assert.Equal(t, 15, out.Global.TotalDeletions)
	assert.Equal(t, map[string]int{"a.go": 2, "b.go": 1, "c.go": 1}, out.Global.FileChanges)

	alice := out.Authors["alice"]
	require.NotNil(t, alice)
	assert.Equal(t, 2, alice.Commits)
	assert.Equal(t, 0, alice.Order)
	assert.Equal(t, map[string]int{"a.go": 2, "b.go": 1}, alice.FileChanges)
	assert.Equal(t, []int64{base, base + 3600}, alice.FileTimelines["a.go"])
	require.Len(t, alice.Details, 2)
	assert.Equal(t, len("first change"), alice.Details[0].MessageLength)
	assert.Equal(t, 2, alice.Details[0].FilesTouched)

	bob := out.Authors["bob"]
	require.NotNil(t, bob)
	assert.Equal(t, 1, bob.Order)
}

// TestAggregateHistoryFileSumInvariant checks that per-file change counts
// across authors sum to the global counts.
func TestAggregateHistoryFileSumInvariant(t *testing.T) {
	base := time.Now().Unix()
	var records []schema.CommitRecord
	for i := 0; i < 50; i++ {
		author := fmt.Sprintf("dev%d", i%4)
		file := fmt.Sprintf("pkg/f%d.go", i%7)
		records = append(records, commit(author, base+int64(i)*60, "msg", file, "shared.go"))
	}

	out := AggregateHistory(records, Options{}, nil)

	perAuthor := make(map[string]int)
	for _, author := range out.Authors {
		for path, n := range author.FileChanges {
			perAuthor[path] += n
		}
	}
	assert.Equal(t, out.Global.FileChanges, perAuthor)
}

// TestAggregateHistoryAuthorFilter verifies case-insensitive allow-list
// skips whole commits.
func TestAggregateHistoryAuthorFilter(t *testing.T) {
	base := time.Now().Unix()
	records := []schema.CommitRecord{
		commit("Alice Smith", base, "kept", "a.go"),
		commit("bob", base+60, "skipped", "b.go"),
	}

	out := AggregateHistory(records, Options{FilterAuthors: []string{"alice smith"}}, nil)

	assert.Equal(t, 1, out.Global.TotalCommits)
	assert.Equal(t, 10, out.Global.TotalInsertions)
	assert.Contains(t, out.Authors, "Alice Smith")
	assert.NotContains(t, out.Authors, "bob")
	assert.NotContains(t, out.Global.FileChanges, "b.go")
}

// TestAggregateHistoryExclusions verifies excluded paths never enter any
// tally but the commit itself still counts.
func TestAggregateHistoryExclusions(t *testing.T) {
	base := time.Now().Unix()
	records := []schema.CommitRecord{
		commit("alice", base, "deps only", "go.sum"),
	}
	opts := Options{
		ExcludeFiles:    []string{"go.sum"},
		ExcludePolicies: []schema.ExcludeMatchPolicy{schema.MatchBasename},
	}

	out := AggregateHistory(records, opts, nil)

	alice := out.Authors["alice"]
	require.NotNil(t, alice)
	assert.Equal(t, 1, alice.Commits)
	assert.Empty(t, alice.FileChanges)
	assert.Empty(t, out.Global.FileChanges)
	require.Len(t, alice.Details, 1)
	assert.Zero(t, alice.Details[0].FilesTouched)
	assert.Len(t, alice.Monthly, 1)
}

// TestAggregateHistoryMessageLengthRunes verifies message lengths count
// characters, so multibyte messages are not inflated by their byte size.
func TestAggregateHistoryMessageLengthRunes(t *testing.T) {
	records := []schema.CommitRecord{
		commit("alice", time.Now().Unix(), "修正錯誤", "a.go"),
	}

	out := AggregateHistory(records, Options{}, nil)

	alice := out.Authors["alice"]
	require.NotNil(t, alice)
	require.Len(t, alice.Details, 1)
	assert.Equal(t, 4, alice.Details[0].MessageLength)
}

// TestAggregateHistoryMonthlyBuckets checks YYYY-MM bucketing.
func TestAggregateHistoryMonthlyBuckets(t *testing.T) {
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local).Unix()
	feb := time.Date(2024, 2, 2, 0, 0, 0, 0, time.Local).Unix()
	records := []schema.CommitRecord{
		commit("alice", jan, "one", "a.go"),
		commit("alice", jan+60, "two", "a.go"),
		commit("alice", feb, "three", "a.go"),
	}

	out := AggregateHistory(records, Options{}, nil)

	assert.Equal(t, map[string]int{"2024-01": 2, "2024-02": 1}, out.Authors["alice"].Monthly)
}

// TestAggregateHistoryProgress checks the report cadence and percent
// mapping into the reserved sub-range.
func TestAggregateHistoryProgress(t *testing.T) {
	base := time.Now().Unix()
	var records []schema.CommitRecord
	for i := 0; i < 45; i++ {
		records = append(records, commit("alice", base+int64(i), "m", "a.go"))
	}

	var events []schema.ProgressEvent
	sink := contract.SinkFunc(func(e schema.ProgressEvent) { events = append(events, e) })

	AggregateHistory(records, Options{ProgressFloor: 55, ProgressCeil: 95}, sink)

	// Events at commits 20, 40 and the final 45.
	require.Len(t, events, 3)
	assert.Equal(t, 20, events[0].Current)
	assert.Equal(t, 40, events[1].Current)
	assert.Equal(t, 45, events[2].Current)
	assert.Equal(t, 95, events[2].Percent)
	assert.Equal(t, schema.StageHistory, events[0].Stage)
	for _, e := range events {
		assert.GreaterOrEqual(t, e.Percent, 55)
		assert.LessOrEqual(t, e.Percent, 95)
	}
}

// TestAggregateHistoryEmpty returns a usable zeroed output.
func TestAggregateHistoryEmpty(t *testing.T) {
	out := AggregateHistory(nil, Options{}, nil)
	assert.Zero(t, out.Global.TotalCommits)
	assert.Empty(t, out.Authors)
	assert.NotNil(t, out.Global.FileChanges)
}

// TestTopChangedFiles checks ordering, tie-break and limit.
func TestTopChangedFiles(t *testing.T) {
	global := schema.GlobalAggregate{FileChanges: map[string]int{
		"b.go": 3, "a.go": 3, "c.go": 9, "d.go": 1,
	}}

	files := TopChangedFiles(global, 3)

	require.Len(t, files, 3)
	assert.Equal(t, "c.go", files[0].Filename)
	assert.Equal(t, "a.go", files[1].Filename) // tie with b.go broken by path
	assert.Equal(t, "b.go", files[2].Filename)
}

// TestBuildChangeDistribution checks bucket edges and the sum invariant.
func TestBuildChangeDistribution(t *testing.T) {
	global := schema.GlobalAggregate{FileChanges: map[string]int{
		"a": 1, "b": 5, "c": 6, "d": 15, "e": 16, "f": 30, "g": 31, "h": 100,
	}}

	dist := BuildChangeDistribution(global)

	assert.Equal(t, 2, dist.Low)
	assert.Equal(t, 2, dist.Medium)
	assert.Equal(t, 2, dist.High)
	assert.Equal(t, 2, dist.VeryHigh)
	assert.Equal(t, len(global.FileChanges), dist.Low+dist.Medium+dist.High+dist.VeryHigh)
}
