// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/gitgrade/gitgrade/schema"
)

// RangeOptions bounds a history traversal. Empty refs fall back to HEAD.
type RangeOptions struct {
	OlderRef   string
	NewerRef   string
	MaxCommits int
}

// CommitSource defines the operations needed to obtain commit history.
// This allows the core pipeline to be tested without a real git executable.
type CommitSource interface {
	// ListCommits returns normalized commit records for the given range,
	// newest first, capped by opts.MaxCommits.
	ListCommits(ctx context.Context, repoPath string, opts RangeOptions) ([]schema.CommitRecord, error)

	// RecentCommits returns the latest commits without diff stats.
	RecentCommits(ctx context.Context, repoPath string, limit int) ([]schema.CommitRecord, error)

	// GetRepoRoot returns the absolute path to the root of the repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)
}

// ProgressSink receives incremental progress events during analysis.
type ProgressSink interface {
	Report(event schema.ProgressEvent)
}

// SinkFunc adapts a plain function to the ProgressSink interface.
type SinkFunc func(event schema.ProgressEvent)

// Report implements ProgressSink.
func (f SinkFunc) Report(event schema.ProgressEvent) { f(event) }

// ReportProgress sends an event through the sink, tolerating a nil sink.
func ReportProgress(sink ProgressSink, stage string, current, total, percent int, msg string) {
	if sink == nil {
		return
	}
	sink.Report(schema.ProgressEvent{
		Stage:     stage,
		Current:   current,
		Total:     total,
		Percent:   percent,
		Message:   msg,
		Timestamp: time.Now(),
	})
}

// CacheManager defines the interface for managing persistent stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetActivityStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for cached aggregation output.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking analysis runs and the
// author scores they produced.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalAuthors int) error

	// RecordAuthorScore stores one author's graded outcome for a run.
	RecordAuthorScore(runID int64, result schema.ScoreResult) error

	// GetAllRuns returns every tracked run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllAuthorScores returns every persisted author score row.
	GetAllAuthorScores() ([]schema.AuthorScoreRecord, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
