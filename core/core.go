// Package core implements the gitgrade analysis pipeline: history
// aggregation, metric derivation, scoring and report assembly.
package core

import (
	"context"
	"time"

	"github.com/gitgrade/gitgrade/core/codestats"
	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/internal/outwriter"
)

// ExecuteAuthors runs the history analysis and renders the ranked author
// score table. This is the main command path.
func ExecuteAuthors(ctx context.Context, cfg *contract.Config, source contract.CommitSource, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := AnalyzeHistory(ctx, cfg, source, mgr, nil)
	if err != nil {
		return err
	}
	return outwriter.WriteAuthorScores(report, cfg, time.Since(start))
}

// ExecuteFiles runs the history analysis and renders the top changed
// files with the change-frequency distribution.
func ExecuteFiles(ctx context.Context, cfg *contract.Config, source contract.CommitSource, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := AnalyzeHistory(ctx, cfg, source, mgr, nil)
	if err != nil {
		return err
	}
	return outwriter.WriteTopFiles(report, cfg, time.Since(start))
}

// ExecuteTimeline runs the history analysis and renders the author
// activity matrix.
func ExecuteTimeline(ctx context.Context, cfg *contract.Config, source contract.CommitSource, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := AnalyzeHistory(ctx, cfg, source, mgr, nil)
	if err != nil {
		return err
	}
	return outwriter.WriteTimeline(report, cfg, time.Since(start))
}

// ExecuteCode scans the given directory tree for line and complexity
// statistics. It does not require a git repository.
func ExecuteCode(_ context.Context, cfg *contract.Config, path string) error {
	start := time.Now()
	report, err := codestats.Analyze(path, cfg.CodeExcludeFolders, cfg.CodeExcludeFiles)
	if err != nil {
		return err
	}
	return outwriter.WriteCodeReport(report, cfg, time.Since(start))
}
