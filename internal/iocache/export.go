package iocache

import (
	"errors"
	"fmt"

	"github.com/gitgrade/gitgrade/internal/parquet"
)

// ExecuteRunsExport exports tracked runs and author scores to Parquet files.
func ExecuteRunsExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run tracking is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total author scores: %d\n", status.TotalAuthorsScored)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	authorScores, err := store.GetAllAuthorScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve author scores: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetScores := parquet.ConvertAuthorScoreRecords(authorScores)

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	scoresFile := outputFile + ".author_scores.parquet"
	if err := parquet.WriteAuthorScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write author scores: %w", err)
	}
	fmt.Printf("Exported %d author score records to: %s\n", len(parquetScores), scoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
