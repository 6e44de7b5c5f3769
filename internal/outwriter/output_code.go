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

// WriteCodeReport outputs the code statistics scan, dispatching based on
// the configured output format.
func WriteCodeReport(report *schema.CodeReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONMode:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON code report")

	case schema.CSVMode:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCodeCSV(w, report.Files)
		}, "Wrote CSV code report")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCodeTable(w, report, cfg, duration)
		}, "Wrote code table")
	}
}

// writeCodeTable renders the per-file statistics with a summary footer.
func writeCodeTable(w io.Writer, report *schema.CodeReport, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Path", "Language", "Lines", "Functions", "Complexity", "Avg"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxPath := getMaxTablePathWidth(cfg)
	var data [][]string
	for i, f := range report.Files {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Filename, maxPath),
			f.Language,
			strconv.Itoa(f.Lines),
			strconv.Itoa(f.Functions),
			strconv.Itoa(f.Complexity),
			fmtFloat1(f.AvgComplexity),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	summary := report.Summary
	if _, err := fmt.Fprintf(w, "Scanned %d files: %d lines, %d functions, avg complexity %s\n",
		summary.TotalFiles, summary.TotalLines, summary.TotalFunctions, fmtFloat1(summary.AvgComplexity)); err != nil {
		return err
	}
	if summary.MaxComplexity != nil {
		if _, err := fmt.Fprintf(w, "Most complex: %s (%d)\n",
			summary.MaxComplexity.Filename, summary.MaxComplexity.Complexity); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Scan completed in %v\n", duration)
	return err
}

// writeCodeCSV emits one row per scanned file.
func writeCodeCSV(w io.Writer, files []schema.CodeFileStats) error {
	header := []string{"rank", "filename", "language", "nloc", "functions", "complexity", "avg_complexity"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, f := range files {
			rec := []string{
				strconv.Itoa(i + 1),
				f.Filename,
				f.Language,
				strconv.Itoa(f.Lines),
				strconv.Itoa(f.Functions),
				strconv.Itoa(f.Complexity),
				fmtFloat1(f.AvgComplexity),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
