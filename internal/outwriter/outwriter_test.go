package outwriter

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func testWriterConfig() *contract.Config {
	return &contract.Config{
		Output:       schema.TextMode,
		Width:        120,
		UseColors:    false,
		CacheBackend: schema.NoneBackend,
		ResultLimit:  25,
	}
}

func sampleReport() *schema.HistoryReport {
	return &schema.HistoryReport{
		Summary: schema.HistorySummary{
			TotalCommits:      42,
			TotalAuthors:      2,
			TotalFilesChanged: 3,
			TotalInsertions:   900,
			TotalDeletions:    120,
			Authors:           []string{"alice", "bob"},
		},
		TopChangedFiles: []schema.FileChangeCount{
			{Filename: "parser.go", Changes: 18},
			{Filename: "lexer.go", Changes: 9},
			{Filename: "README", Changes: 2},
		},
		ChangeDistribution: schema.ChangeDistribution{Low: 1, Medium: 1, High: 1},
		DeveloperActivity: schema.ActivityTimeline{
			Months: []string{"2024-01", "2024-02"},
			Authors: []schema.AuthorSeries{
				{Author: "Alice Smith", TotalCommits: 30, Timeline: []int{20, 10}},
				{Author: "bob", TotalCommits: 12, Timeline: []int{2, 10}},
			},
		},
		AuthorScores: []schema.ScoreResult{
			{
				Author: "alice",
				Total:  91.5,
				Grade:  schema.GradeS,
				Scores: schema.SubScores{CommitBehavior: 38.0, QualityAndScope: 27.5, Activity: 26.0},
				Metrics: schema.DerivedMetrics{
					Author: "alice", TotalCommits: 30, FilesModified: 12,
					RapidReworkRatio: 8.3, ContributionRatio: 71.4,
				},
			},
			{
				Author: "bob",
				Total:  64.2,
				Grade:  schema.GradeC,
				Scores: schema.SubScores{CommitBehavior: 28.0, QualityAndScope: 17.2, Activity: 19.0},
				Metrics: schema.DerivedMetrics{
					Author: "bob", TotalCommits: 12, FilesModified: 4,
					RapidReworkRatio: 33.3, ContributionRatio: 28.6,
				},
			},
		},
	}
}

// TestGetMaxTablePathWidth respects the width override and its clamps.
func TestGetMaxTablePathWidth(t *testing.T) {
	cfg := testWriterConfig()

	cfg.Width = 120
	assert.Equal(t, 70, getMaxTablePathWidth(cfg))

	cfg.Width = 60
	assert.Equal(t, 30, getMaxTablePathWidth(cfg))

	cfg.Width = 20
	assert.Equal(t, 15, getMaxTablePathWidth(cfg))
}

// TestWriteJSONIndentation pins the two-space indentation.
func TestWriteJSONIndentation(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, map[string]int{"a": 1})
	assert.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

// TestLimitScores caps rows without reordering.
func TestLimitScores(t *testing.T) {
	scores := sampleReport().AuthorScores

	limited := limitScores(scores, 1)
	assert.Len(t, limited, 1)
	assert.Equal(t, "alice", limited[0].Author)

	assert.Len(t, limitScores(scores, 0), 2)
	assert.Len(t, limitScores(scores, 10), 2)
}

// TestFirstLine trims multi-line commit messages.
func TestFirstLine(t *testing.T) {
	assert.Equal(t, "subject", firstLine("subject\n\nbody"))
	assert.Equal(t, "one liner", firstLine("one liner"))
	assert.Equal(t, "", firstLine(""))
}
