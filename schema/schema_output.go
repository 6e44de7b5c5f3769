package schema

// EnrichedScoreResult adds presentation data to a ScoreResult.
type EnrichedScoreResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ScoreResult
}

// EnrichScores adds rank and grade label to a ranked list of score results.
func EnrichScores(results []ScoreResult) []EnrichedScoreResult {
	output := make([]EnrichedScoreResult, len(results))
	for i, r := range results {
		output[i] = EnrichedScoreResult{
			Rank:        i + 1,
			Label:       GradeDescriptions[r.Grade],
			ScoreResult: r,
		}
	}
	return output
}
