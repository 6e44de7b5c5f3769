// Package parquet exports run tracking data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/gitgrade/gitgrade/schema"
)

// Run is one analysis run row for Parquet export.
// This struct maps to the gitgrade_runs database table.
type Run struct {
	RunID        int64      `parquet:"run_id,snappy"`
	StartTime    time.Time  `parquet:"start_time,snappy"`
	EndTime      *time.Time `parquet:"end_time,optional,snappy"`
	DurationMs   *int64     `parquet:"duration_ms,optional,snappy"`
	TotalAuthors int32      `parquet:"total_authors,snappy"`
	ConfigParams *string    `parquet:"config_params,optional,snappy"`
}

// AuthorScore is one graded author row for Parquet export.
// This struct maps to the gitgrade_author_scores database table.
type AuthorScore struct {
	RunID             int64     `parquet:"run_id,snappy"`
	Author            string    `parquet:"author,snappy"`
	ScoredAt          time.Time `parquet:"scored_at,snappy"`
	TotalScore        float64   `parquet:"total_score,snappy"`
	Grade             string    `parquet:"grade,snappy"`
	CommitBehavior    float64   `parquet:"commit_behavior,snappy"`
	QualityAndScope   float64   `parquet:"quality_and_scope,snappy"`
	Activity          float64   `parquet:"activity,snappy"`
	TotalCommits      int32     `parquet:"total_commits,snappy"`
	FilesModified     int32     `parquet:"files_modified,snappy"`
	ContributionRatio float64   `parquet:"contribution_ratio,snappy"`
	RapidReworkRatio  float64   `parquet:"rapid_rework_ratio,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteAuthorScoresParquet writes a slice of AuthorScore structs to a Parquet file.
func WriteAuthorScoresParquet(data []AuthorScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records to outputPath using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord rows for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:        record.RunID,
			StartTime:    record.StartTime,
			EndTime:      record.EndTime,
			DurationMs:   record.DurationMs,
			TotalAuthors: record.TotalAuthors,
			ConfigParams: record.ConfigParams,
		}
	}
	return result
}

// ConvertAuthorScoreRecords converts schema.AuthorScoreRecord rows for Parquet export.
func ConvertAuthorScoreRecords(records []schema.AuthorScoreRecord) []AuthorScore {
	result := make([]AuthorScore, len(records))
	for i, record := range records {
		result[i] = AuthorScore{
			RunID:             record.RunID,
			Author:            record.Author,
			ScoredAt:          record.ScoredAt,
			TotalScore:        record.TotalScore,
			Grade:             record.Grade,
			CommitBehavior:    record.CommitBehavior,
			QualityAndScope:   record.QualityAndScope,
			Activity:          record.Activity,
			TotalCommits:      record.TotalCommits,
			FilesModified:     record.FilesModified,
			ContributionRatio: record.ContributionRatio,
			RapidReworkRatio:  record.RapidReworkRatio,
		}
	}
	return result
}
