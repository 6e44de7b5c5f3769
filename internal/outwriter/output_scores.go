package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

// WriteAuthorScores outputs the ranked author scores, dispatching based on
// the configured output format.
func WriteAuthorScores(report *schema.HistoryReport, cfg *contract.Config, duration time.Duration) error {
	scores := limitScores(report.AuthorScores, cfg.ResultLimit)

	switch cfg.Output {
	case schema.JSONMode:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Summary       schema.HistorySummary        `json:"summary"`
				AuthorScores  []schema.EnrichedScoreResult `json:"author_scores"`
				RecentCommits []schema.CommitRecord        `json:"recent_commits,omitempty"`
			}{
				Summary:       report.Summary,
				AuthorScores:  schema.EnrichScores(scores),
				RecentCommits: report.RecentCommits,
			})
		}, "Wrote JSON scores")

	case schema.CSVMode:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresCSV(w, scores)
		}, "Wrote CSV scores")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresTable(w, report, scores, cfg, duration)
		}, "Wrote score table")
	}
}

// limitScores caps the displayed rows while preserving rank order.
func limitScores(scores []schema.ScoreResult, limit int) []schema.ScoreResult {
	if limit > 0 && len(scores) > limit {
		return scores[:limit]
	}
	return scores
}

// writeScoresTable renders the human-readable ranking.
func writeScoresTable(w io.Writer, report *schema.HistoryReport, scores []schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Author", "Grade", "Score", "Behavior", "Quality", "Activity", "Commits", "Files", "Rework %"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, s := range scores {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.Author,
			contract.GetGradeLabel(s.Grade, cfg.UseColors),
			fmtFloat1(s.Total),
			fmtFloat1(s.Scores.CommitBehavior),
			fmtFloat1(s.Scores.QualityAndScope),
			fmtFloat1(s.Scores.Activity),
			strconv.Itoa(s.Metrics.TotalCommits),
			strconv.Itoa(s.Metrics.FilesModified),
			fmtFloat1(s.Metrics.RapidReworkRatio),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	summary := report.Summary
	if _, err := fmt.Fprintf(w, "Scored %d of %d authors across %d commits (+%d/-%d lines)\n",
		len(scores), summary.TotalAuthors, summary.TotalCommits, summary.TotalInsertions, summary.TotalDeletions); err != nil {
		return err
	}

	if len(report.RecentCommits) > 0 {
		if _, err := fmt.Fprintln(w, "\nRecent commits:"); err != nil {
			return err
		}
		for _, c := range report.RecentCommits {
			when := time.Unix(c.Timestamp, 0).Format("2006-01-02")
			if _, err := fmt.Fprintf(w, "  %s  %s  %s  %s\n", c.Hash, when, schema.AbbreviateAuthor(c.Author), firstLine(c.Message)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

// writeScoresCSV emits one row per author with the full metric vector.
func writeScoresCSV(w io.Writer, scores []schema.ScoreResult) error {
	header := []string{
		"rank", "author", "grade", "label", "total_score",
		"commit_behavior", "quality_and_scope", "activity",
		"total_commits", "files_modified", "active_days",
		"avg_files_per_commit", "avg_message_length", "avg_commit_interval",
		"days_since_last_commit", "file_concentration", "hotspot_participation",
		"contribution_ratio", "total_code_changes", "rapid_rework_ratio",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, s := range scores {
			m := s.Metrics
			rec := []string{
				strconv.Itoa(i + 1),
				s.Author,
				string(s.Grade),
				schema.GradeDescriptions[s.Grade],
				fmtFloat1(s.Total),
				fmtFloat1(s.Scores.CommitBehavior),
				fmtFloat1(s.Scores.QualityAndScope),
				fmtFloat1(s.Scores.Activity),
				strconv.Itoa(m.TotalCommits),
				strconv.Itoa(m.FilesModified),
				fmtFloat1(m.ActiveDays),
				fmtFloat1(m.AvgFilesPerCommit),
				fmtFloat1(m.AvgMessageLength),
				fmtFloat1(m.AvgCommitInterval),
				fmtFloat1(m.DaysSinceLastCommit),
				fmtFloat1(m.FileConcentration),
				fmtFloat1(m.HotspotParticipation),
				fmtFloat1(m.ContributionRatio),
				strconv.Itoa(m.TotalCodeChanges),
				fmtFloat1(m.RapidReworkRatio),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// firstLine returns the subject line of a commit message.
func firstLine(message string) string {
	for i, r := range message {
		if r == '\n' {
			return message[:i]
		}
	}
	return message
}
