package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAbbreviateAuthor checks display-name shortening.
func TestAbbreviateAuthor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"two words", "Ada Lovelace", "Ada L"},
		{"three words", "Jean Luc Picard", "Jean P"},
		{"single word", "alice", "alice"},
		{"bot account", "dependabot[bot]", "dependabot[bot]"},
		{"wrapped in quotes", "\"Grace Hopper\"", "Grace H"},
		{"extra spaces", "  Alan   Turing  ", "Alan T"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AbbreviateAuthor(tt.input))
		})
	}
}

// TestEnrichScores verifies rank and label enrichment preserves order.
func TestEnrichScores(t *testing.T) {
	results := []ScoreResult{
		{Author: "alice", Total: 91.0, Grade: GradeS},
		{Author: "bob", Total: 72.5, Grade: GradeB},
	}

	enriched := EnrichScores(results)

	assert.Len(t, enriched, 2)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, "Exceptional", enriched[0].Label)
	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, "Good", enriched[1].Label)
	assert.Equal(t, "bob", enriched[1].Author)
}

// TestNewHistoryOutput ensures maps are ready for use.
func TestNewHistoryOutput(t *testing.T) {
	out := NewHistoryOutput()
	assert.NotNil(t, out.Global.FileChanges)
	assert.NotNil(t, out.Authors)
	assert.Zero(t, out.Global.TotalCommits)
}
