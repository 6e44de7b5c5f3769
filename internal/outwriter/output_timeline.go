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

// WriteTimeline outputs the author-by-month commit matrix, dispatching based
// on the configured output format.
func WriteTimeline(report *schema.HistoryReport, cfg *contract.Config, duration time.Duration) error {
	timeline := report.DeveloperActivity

	switch cfg.Output {
	case schema.JSONMode:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, timeline)
		}, "Wrote JSON timeline")

	case schema.CSVMode:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTimelineCSV(w, timeline)
		}, "Wrote CSV timeline")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTimelineTable(w, timeline, cfg, duration)
		}, "Wrote timeline table")
	}
}

// writeTimelineTable renders months as rows and authors as columns.
// Author headers are abbreviated to keep the matrix narrow.
func writeTimelineTable(w io.Writer, timeline schema.ActivityTimeline, cfg *contract.Config, duration time.Duration) error {
	headers := []string{"Month"}
	for _, series := range timeline.Authors {
		headers = append(headers, schema.AbbreviateAuthor(series.Author))
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for monthIdx, month := range timeline.Months {
		row := []string{month}
		for _, series := range timeline.Authors {
			row = append(row, strconv.Itoa(series.Timeline[monthIdx]))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%d authors over %d months\n", len(timeline.Authors), len(timeline.Months)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

// writeTimelineCSV emits one row per month with full author names.
func writeTimelineCSV(w io.Writer, timeline schema.ActivityTimeline) error {
	header := []string{"month"}
	for _, series := range timeline.Authors {
		header = append(header, series.Author)
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for monthIdx, month := range timeline.Months {
			rec := []string{month}
			for _, series := range timeline.Authors {
				rec = append(rec, strconv.Itoa(series.Timeline[monthIdx]))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
