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

// WriteTopFiles outputs the most-changed files and the change-frequency
// distribution, dispatching based on the configured output format.
func WriteTopFiles(report *schema.HistoryReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONMode:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				TopChangedFiles    []schema.FileChangeCount  `json:"top_changed_files"`
				ChangeDistribution schema.ChangeDistribution `json:"change_distribution"`
			}{
				TopChangedFiles:    report.TopChangedFiles,
				ChangeDistribution: report.ChangeDistribution,
			})
		}, "Wrote JSON files")

	case schema.CSVMode:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTopFilesCSV(w, report.TopChangedFiles)
		}, "Wrote CSV files")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTopFilesTable(w, report, cfg, duration)
		}, "Wrote file table")
	}
}

// writeTopFilesTable renders the ranked file list with the distribution footer.
func writeTopFilesTable(w io.Writer, report *schema.HistoryReport, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Path", "Changes"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxPath := getMaxTablePathWidth(cfg)
	var data [][]string
	for i, f := range report.TopChangedFiles {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Filename, maxPath),
			strconv.Itoa(f.Changes),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	dist := report.ChangeDistribution
	if _, err := fmt.Fprintf(w, "Change distribution: 1-5: %d, 6-15: %d, 16-30: %d, >30: %d\n",
		dist.Low, dist.Medium, dist.High, dist.VeryHigh); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d of %d changed files\n",
		len(report.TopChangedFiles), report.Summary.TotalFilesChanged); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

// writeTopFilesCSV emits one row per file.
func writeTopFilesCSV(w io.Writer, files []schema.FileChangeCount) error {
	header := []string{"rank", "filename", "changes"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, f := range files {
			rec := []string{
				strconv.Itoa(i + 1),
				f.Filename,
				strconv.Itoa(f.Changes),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
