package core

import (
	"context"
	"fmt"
	"time"

	"github.com/gitgrade/gitgrade/core/agg"
	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

// AnalyzeHistory runs the full pipeline: list commits, aggregate, derive
// metrics, score, rank, and assemble the report. When a run store is
// configured, the run and its scores are persisted as a side effect.
func AnalyzeHistory(ctx context.Context, cfg *contract.Config, source contract.CommitSource, mgr contract.CacheManager, sink contract.ProgressSink) (*schema.HistoryReport, error) {
	printRunHeader(ctx, cfg)

	runStore, runID := beginRunTracking(cfg, mgr)

	out, err := cachedAggregateHistory(ctx, cfg, source, mgr, sink)
	if err != nil {
		return nil, err
	}

	metrics := DeriveAuthorMetrics(out, time.Now())
	scores := ScoreAuthors(metrics)

	report := &schema.HistoryReport{
		Summary:            buildSummary(out, scores),
		TopChangedFiles:    agg.TopChangedFiles(out.Global, schema.TopChangedFileLimit),
		ChangeDistribution: agg.BuildChangeDistribution(out.Global),
		DeveloperActivity:  BuildActivityTimeline(out.Authors),
		AuthorScores:       scores,
	}

	if cfg.RecentLimit > 0 {
		recent, err := source.RecentCommits(ctx, cfg.RepoPath, cfg.RecentLimit)
		if err != nil {
			contract.LogWarn("skipping recent commits listing", err)
		} else {
			report.RecentCommits = recent
		}
	}

	finishRunTracking(runStore, runID, scores)
	return report, nil
}

// buildSummary assembles the headline counts. Author names follow rank
// order so the summary reads top-down like the score table.
func buildSummary(out *schema.HistoryOutput, scores []schema.ScoreResult) schema.HistorySummary {
	names := make([]string, 0, len(scores))
	for _, s := range scores {
		names = append(names, s.Author)
	}
	return schema.HistorySummary{
		TotalCommits:      out.Global.TotalCommits,
		TotalAuthors:      len(out.Authors),
		TotalFilesChanged: len(out.Global.FileChanges),
		TotalInsertions:   out.Global.TotalInsertions,
		TotalDeletions:    out.Global.TotalDeletions,
		Authors:           names,
	}
}

// printRunHeader shows the analysis scope on stdout unless suppressed.
// Structured output modes stay clean so they can be piped directly.
func printRunHeader(ctx context.Context, cfg *contract.Config) {
	if shouldSuppressHeader(ctx) || cfg.Output != schema.TextMode {
		return
	}
	fmt.Printf("Analyzing %s (%s, up to %d commits)\n",
		cfg.RepoPath, contract.BuildCommitRange(cfg.OlderRef, cfg.NewerRef), cfg.MaxCommits)
}

// beginRunTracking opens a run row when a run store is configured.
// Tracking failures degrade to warnings; they never abort analysis.
func beginRunTracking(cfg *contract.Config, mgr contract.CacheManager) (contract.RunStore, int64) {
	if mgr == nil {
		return nil, 0
	}
	runStore := mgr.GetRunStore()
	if runStore == nil {
		return nil, 0
	}

	params := map[string]any{
		"repo_path":   cfg.RepoPath,
		"older_ref":   cfg.OlderRef,
		"newer_ref":   cfg.NewerRef,
		"max_commits": cfg.MaxCommits,
	}
	runID, err := runStore.BeginRun(time.Now(), params)
	if err != nil {
		contract.LogWarn("run tracking disabled for this run", err)
		return nil, 0
	}
	return runStore, runID
}

// finishRunTracking persists the ranked scores and closes the run row.
func finishRunTracking(runStore contract.RunStore, runID int64, scores []schema.ScoreResult) {
	if runStore == nil || runID == 0 {
		return
	}
	for _, score := range scores {
		if err := runStore.RecordAuthorScore(runID, score); err != nil {
			contract.LogWarn("failed to record author score", err)
		}
	}
	if err := runStore.EndRun(runID, time.Now(), len(scores)); err != nil {
		contract.LogWarn("failed to finalize run", err)
	}
}
