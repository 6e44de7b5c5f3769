package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitgrade/gitgrade/schema"
)

func TestWriteScoresTable(t *testing.T) {
	report := sampleReport()
	cfg := testWriterConfig()

	var buf bytes.Buffer
	err := writeScoresTable(&buf, report, report.AuthorScores, cfg, 5*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "91.5")
	assert.Contains(t, out, "Scored 2 of 2 authors across 42 commits (+900/-120 lines)")
	assert.Contains(t, out, "Cache backend: none")
	assert.NotContains(t, out, "Recent commits")
}

func TestWriteScoresTableRecentCommits(t *testing.T) {
	report := sampleReport()
	report.RecentCommits = []schema.CommitRecord{
		{Hash: "abc1234", Author: "Alice Smith", Timestamp: 1714500000, Message: "tighten parser\n\nlong body"},
	}
	cfg := testWriterConfig()

	var buf bytes.Buffer
	err := writeScoresTable(&buf, report, report.AuthorScores, cfg, time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Recent commits:")
	assert.Contains(t, out, "abc1234")
	assert.Contains(t, out, "Alice S")
	assert.Contains(t, out, "tighten parser")
	assert.NotContains(t, out, "long body")
}

func TestWriteScoresCSV(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer
	err := writeScoresCSV(&buf, report.AuthorScores)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows

	header := records[0]
	assert.Equal(t, "rank", header[0])
	assert.Contains(t, header, "grade")
	assert.Contains(t, header, "rapid_rework_ratio")

	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "alice", records[1][1])
	assert.Equal(t, "S", records[1][2])
	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "bob", records[2][1])
	assert.Equal(t, "C", records[2][2])
}

func TestWriteAuthorScoresJSON(t *testing.T) {
	report := sampleReport()
	cfg := testWriterConfig()
	cfg.Output = schema.JSONMode
	cfg.OutputFile = t.TempDir() + "/scores.json"

	require.NoError(t, WriteAuthorScores(report, cfg, time.Millisecond))

	data := readFile(t, cfg.OutputFile)
	var parsed struct {
		Summary      schema.HistorySummary `json:"summary"`
		AuthorScores []map[string]any      `json:"author_scores"`
	}
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, 42, parsed.Summary.TotalCommits)
	require.Len(t, parsed.AuthorScores, 2)
	assert.Equal(t, float64(1), parsed.AuthorScores[0]["rank"])
	assert.Equal(t, "Exceptional", parsed.AuthorScores[0]["label"])
	assert.Equal(t, "alice", parsed.AuthorScores[0]["author"])
}

func TestWriteAuthorScoresResultLimit(t *testing.T) {
	report := sampleReport()
	cfg := testWriterConfig()
	cfg.Output = schema.CSVMode
	cfg.ResultLimit = 1
	cfg.OutputFile = t.TempDir() + "/scores.csv"

	require.NoError(t, WriteAuthorScores(report, cfg, time.Millisecond))

	records, err := csv.NewReader(bytes.NewReader(readFile(t, cfg.OutputFile))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2) // header + 1 row
	assert.Equal(t, "alice", records[1][1])
}
