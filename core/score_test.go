package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitgrade/gitgrade/schema"
)

// TestScoreCommitBehaviorBands walks every band edge of the 40-point
// dimension.
func TestScoreCommitBehaviorBands(t *testing.T) {
	tests := []struct {
		name     string
		metrics  schema.DerivedMetrics
		expected float64
	}{
		{"ideal small commits", schema.DerivedMetrics{AvgFilesPerCommit: 1, DaysSinceLastCommit: 30, AvgMessageLength: 20}, 40},
		{"upper ideal edge", schema.DerivedMetrics{AvgFilesPerCommit: 3, DaysSinceLastCommit: 0, AvgMessageLength: 25}, 40},
		{"moderate commits", schema.DerivedMetrics{AvgFilesPerCommit: 6, DaysSinceLastCommit: 31, AvgMessageLength: 10}, 18 + 3 + 11},
		{"sparse commits", schema.DerivedMetrics{AvgFilesPerCommit: 0.5, DaysSinceLastCommit: 90, AvgMessageLength: 19.9}, 15 + 3 + 11},
		{"large commits", schema.DerivedMetrics{AvgFilesPerCommit: 10, DaysSinceLastCommit: 91, AvgMessageLength: 9.9}, 15 + 1 + 5},
		{"very large commits", schema.DerivedMetrics{AvgFilesPerCommit: 15, DaysSinceLastCommit: 400, AvgMessageLength: 0}, 10 + 1 + 5},
		{"huge commits floor", schema.DerivedMetrics{AvgFilesPerCommit: 16, DaysSinceLastCommit: 400, AvgMessageLength: 0}, 5 + 1 + 5},
		{"zero files per commit", schema.DerivedMetrics{AvgFilesPerCommit: 0, DaysSinceLastCommit: 0, AvgMessageLength: 0}, 5 + 5 + 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreCommitBehavior(tt.metrics))
		})
	}
}

// TestScoreQualityAndScopeBands walks the 30-point quality dimension.
func TestScoreQualityAndScopeBands(t *testing.T) {
	tests := []struct {
		name     string
		metrics  schema.DerivedMetrics
		expected float64
	}{
		{"maximum", schema.DerivedMetrics{FilesModified: 50, TotalCodeChanges: 10000, RapidReworkRatio: 10}, 30},
		{"strong", schema.DerivedMetrics{FilesModified: 30, TotalCodeChanges: 5000, RapidReworkRatio: 20}, 7 + 6 + 12},
		{"middle", schema.DerivedMetrics{FilesModified: 15, TotalCodeChanges: 2000, RapidReworkRatio: 30}, 5 + 4 + 9},
		{"light", schema.DerivedMetrics{FilesModified: 5, TotalCodeChanges: 500, RapidReworkRatio: 50}, 3 + 2 + 5},
		{"minimal", schema.DerivedMetrics{FilesModified: 4, TotalCodeChanges: 499, RapidReworkRatio: 50.1}, 1 + 1 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreQualityAndScope(tt.metrics))
		})
	}
}

// TestScoreActivityBands walks the 30-point activity dimension.
func TestScoreActivityBands(t *testing.T) {
	tests := []struct {
		name     string
		metrics  schema.DerivedMetrics
		expected float64
	}{
		{"maximum", schema.DerivedMetrics{FilesModified: 50, ActiveDays: 180, ContributionRatio: 30}, 30},
		{"strong", schema.DerivedMetrics{FilesModified: 30, ActiveDays: 90, ContributionRatio: 15}, 8 + 8 + 8},
		{"middle", schema.DerivedMetrics{FilesModified: 10, ActiveDays: 30, ContributionRatio: 5}, 6 + 6 + 6},
		{"floor", schema.DerivedMetrics{FilesModified: 9, ActiveDays: 29.9, ContributionRatio: 4.9}, 3 + 3 + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreActivity(tt.metrics))
		})
	}
}

// TestGradeBoundaries checks the letter thresholds, including the 89.9 case.
func TestGradeBoundaries(t *testing.T) {
	assert.Equal(t, schema.GradeS, gradeFor(100))
	assert.Equal(t, schema.GradeS, gradeFor(90))
	assert.Equal(t, schema.GradeA, gradeFor(89.9))
	assert.Equal(t, schema.GradeA, gradeFor(80))
	assert.Equal(t, schema.GradeB, gradeFor(79.9))
	assert.Equal(t, schema.GradeB, gradeFor(70))
	assert.Equal(t, schema.GradeC, gradeFor(69.9))
	assert.Equal(t, schema.GradeC, gradeFor(60))
	assert.Equal(t, schema.GradeD, gradeFor(59.9))
	assert.Equal(t, schema.GradeD, gradeFor(0))
}

// TestScoreOneTotalAndGrade verifies sub-score composition and echoing.
func TestScoreOneTotalAndGrade(t *testing.T) {
	perfect := schema.DerivedMetrics{
		Author:              "ace",
		AvgFilesPerCommit:   2,
		DaysSinceLastCommit: 5,
		AvgMessageLength:    42,
		FilesModified:       60,
		TotalCodeChanges:    12000,
		RapidReworkRatio:    3,
		ActiveDays:          365,
		ContributionRatio:   45,
	}

	result := scoreOne(perfect)

	assert.Equal(t, 100.0, result.Total)
	assert.Equal(t, schema.GradeS, result.Grade)
	assert.Equal(t, 40.0, result.Scores.CommitBehavior)
	assert.Equal(t, 30.0, result.Scores.QualityAndScope)
	assert.Equal(t, 30.0, result.Scores.Activity)
	assert.Equal(t, "ace", result.Author)
	assert.Equal(t, perfect, result.Metrics)
	assert.Equal(t, result.Total, result.Scores.CommitBehavior+result.Scores.QualityAndScope+result.Scores.Activity)
}

// TestScoreAuthorsRanking verifies descending stable ordering.
func TestScoreAuthorsRanking(t *testing.T) {
	weak := schema.DerivedMetrics{Author: "weak"}
	strong := schema.DerivedMetrics{
		Author: "strong", AvgFilesPerCommit: 2, DaysSinceLastCommit: 1,
		AvgMessageLength: 30, FilesModified: 50, TotalCodeChanges: 10000,
		RapidReworkRatio: 5, ActiveDays: 200, ContributionRatio: 40,
	}
	// Two identical mid-tier authors to test tie stability.
	midA := schema.DerivedMetrics{Author: "first-seen", AvgFilesPerCommit: 2, AvgMessageLength: 20, DaysSinceLastCommit: 10}
	midB := schema.DerivedMetrics{Author: "second-seen", AvgFilesPerCommit: 2, AvgMessageLength: 20, DaysSinceLastCommit: 10}

	results := ScoreAuthors([]schema.DerivedMetrics{weak, midA, midB, strong})

	require.Len(t, results, 4)
	assert.Equal(t, "strong", results[0].Author)
	assert.Equal(t, "first-seen", results[1].Author)
	assert.Equal(t, "second-seen", results[2].Author)
	assert.Equal(t, "weak", results[3].Author)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Total, results[i].Total)
	}
}

// TestScoreAuthorsEmpty handles no-author input without panicking.
func TestScoreAuthorsEmpty(t *testing.T) {
	assert.Empty(t, ScoreAuthors(nil))
}
