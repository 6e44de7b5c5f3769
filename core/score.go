package core

import (
	"math"

	"github.com/gitgrade/gitgrade/schema"
)

// Sub-score caps. The three dimensions sum to at most 100.
const (
	commitBehaviorCap  = 40.0
	qualityAndScopeCap = 30.0
	activityCap        = 30.0
)

// ScoreAuthors grades every metric vector and returns results ranked by
// total score descending. The sort is stable, so ties keep first-seen order.
func ScoreAuthors(metrics []schema.DerivedMetrics) []schema.ScoreResult {
	results := make([]schema.ScoreResult, 0, len(metrics))
	for _, m := range metrics {
		results = append(results, scoreOne(m))
	}
	return rankAuthors(results)
}

// scoreOne computes the three clamped sub-scores and the letter grade for
// a single author.
func scoreOne(m schema.DerivedMetrics) schema.ScoreResult {
	scores := schema.SubScores{
		CommitBehavior:  math.Min(scoreCommitBehavior(m), commitBehaviorCap),
		QualityAndScope: math.Min(scoreQualityAndScope(m), qualityAndScopeCap),
		Activity:        math.Min(scoreActivity(m), activityCap),
	}
	total := round1(scores.CommitBehavior + scores.QualityAndScope + scores.Activity)

	return schema.ScoreResult{
		Author:  m.Author,
		Total:   total,
		Grade:   gradeFor(total),
		Scores:  scores,
		Metrics: m,
	}
}

// scoreCommitBehavior is the 40-point dimension: commit size discipline,
// recency and message quality.
func scoreCommitBehavior(m schema.DerivedMetrics) float64 {
	score := 0.0

	switch avg := m.AvgFilesPerCommit; {
	case avg >= 1 && avg <= 3:
		score += 20
	case avg > 3 && avg <= 6:
		score += 18
	case (avg >= 0.5 && avg < 1) || (avg > 6 && avg <= 10):
		score += 15
	case avg > 10 && avg <= 15:
		score += 10
	default:
		score += 5
	}

	switch days := m.DaysSinceLastCommit; {
	case days <= 30:
		score += 5
	case days <= 90:
		score += 3
	default:
		score += 1
	}

	switch msg := m.AvgMessageLength; {
	case msg >= 20:
		score += 15
	case msg >= 10:
		score += 11
	default:
		score += 5
	}

	return score
}

// scoreQualityAndScope is the 30-point dimension: breadth of files, volume
// of change and rework discipline.
func scoreQualityAndScope(m schema.DerivedMetrics) float64 {
	score := 0.0

	switch files := m.FilesModified; {
	case files >= 50:
		score += 8
	case files >= 30:
		score += 7
	case files >= 15:
		score += 5
	case files >= 5:
		score += 3
	default:
		score += 1
	}

	switch changes := m.TotalCodeChanges; {
	case changes >= 10000:
		score += 7
	case changes >= 5000:
		score += 6
	case changes >= 2000:
		score += 4
	case changes >= 500:
		score += 2
	default:
		score += 1
	}

	switch rework := m.RapidReworkRatio; {
	case rework <= 10:
		score += 15
	case rework <= 20:
		score += 12
	case rework <= 30:
		score += 9
	case rework <= 50:
		score += 5
	default:
		score += 2
	}

	return score
}

// scoreActivity is the 30-point dimension: sustained presence in the
// repository.
func scoreActivity(m schema.DerivedMetrics) float64 {
	score := 0.0

	switch files := m.FilesModified; {
	case files >= 50:
		score += 10
	case files >= 30:
		score += 8
	case files >= 10:
		score += 6
	default:
		score += 3
	}

	switch days := m.ActiveDays; {
	case days >= 180:
		score += 10
	case days >= 90:
		score += 8
	case days >= 30:
		score += 6
	default:
		score += 3
	}

	switch ratio := m.ContributionRatio; {
	case ratio >= 30:
		score += 10
	case ratio >= 15:
		score += 8
	case ratio >= 5:
		score += 6
	default:
		score += 3
	}

	return score
}

// gradeFor maps a total score to its letter grade.
func gradeFor(total float64) schema.Grade {
	switch {
	case total >= 90:
		return schema.GradeS
	case total >= 80:
		return schema.GradeA
	case total >= 70:
		return schema.GradeB
	case total >= 60:
		return schema.GradeC
	default:
		return schema.GradeD
	}
}
