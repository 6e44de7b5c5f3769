package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

// Table names for run tracking.
const (
	runsTable         = "gitgrade_runs"
	authorScoresTable = "gitgrade_author_scores"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	// Return a no-op store for disabled tracking
	if backend == schema.NoneBackend {
		return &RunStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil
	}

	db, driverName, err := openBackendDB(backend, connStr, GetRunsDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createRunTables creates the run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{authorScoresTable, getCreateAuthorScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for gitgrade_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				duration_ms BIGINT,
				total_authors INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgresBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				duration_ms BIGINT,
				total_authors INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				duration_ms INTEGER,
				total_authors INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateAuthorScoresQuery returns the CREATE TABLE query for gitgrade_author_scores.
func getCreateAuthorScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(authorScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				author VARCHAR(255) NOT NULL,
				scored_at DATETIME(6) NOT NULL,
				total_score DOUBLE NOT NULL,
				grade VARCHAR(5) NOT NULL,
				commit_behavior DOUBLE NOT NULL,
				quality_and_scope DOUBLE NOT NULL,
				activity DOUBLE NOT NULL,
				total_commits INT NOT NULL,
				files_modified INT NOT NULL,
				contribution_ratio DOUBLE NOT NULL,
				rapid_rework_ratio DOUBLE NOT NULL,
				PRIMARY KEY (run_id, author)
			);
		`, quotedTableName)

	case schema.PostgresBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				author TEXT NOT NULL,
				scored_at TIMESTAMPTZ NOT NULL,
				total_score DOUBLE PRECISION NOT NULL,
				grade TEXT NOT NULL,
				commit_behavior DOUBLE PRECISION NOT NULL,
				quality_and_scope DOUBLE PRECISION NOT NULL,
				activity DOUBLE PRECISION NOT NULL,
				total_commits INT NOT NULL,
				files_modified INT NOT NULL,
				contribution_ratio DOUBLE PRECISION NOT NULL,
				rapid_rework_ratio DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, author)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				author TEXT NOT NULL,
				scored_at TEXT NOT NULL,
				total_score REAL NOT NULL,
				grade TEXT NOT NULL,
				commit_behavior REAL NOT NULL,
				quality_and_scope REAL NOT NULL,
				activity REAL NOT NULL,
				total_commits INTEGER NOT NULL,
				files_modified INTEGER NOT NULL,
				contribution_ratio REAL NOT NULL,
				rapid_rework_ratio REAL NOT NULL,
				PRIMARY KEY (run_id, author)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgresBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, formatTime(startTime, rs.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalAuthors int) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgresBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName)
	}

	startTime, err := scanTime(rs.db.QueryRow(query, runID), rs.backend)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	var args []any

	switch rs.backend {
	case schema.PostgresBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, duration_ms = $2, total_authors = $3 WHERE run_id = $4`, quotedTableName)
		args = []any{endTime, durationMs, totalAuthors, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, duration_ms = ?, total_authors = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, rs.backend), durationMs, totalAuthors, runID}
	}

	if _, err := rs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return nil
}

// RecordAuthorScore stores one author's graded outcome for a run.
func (rs *RunStoreImpl) RecordAuthorScore(runID int64, result schema.ScoreResult) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(authorScoresTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgresBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, author, scored_at, total_score, grade,
			                commit_behavior, quality_and_scope, activity,
			                total_commits, files_modified, contribution_ratio, rapid_rework_ratio)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, author, scored_at, total_score, grade,
			                commit_behavior, quality_and_scope, activity,
			                total_commits, files_modified, contribution_ratio, rapid_rework_ratio)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	args := []any{
		runID, result.Author, formatTime(time.Now(), rs.backend), result.Total, string(result.Grade),
		result.Scores.CommitBehavior, result.Scores.QualityAndScope, result.Scores.Activity,
		result.Metrics.TotalCommits, result.Metrics.FilesModified,
		result.Metrics.ContributionRatio, result.Metrics.RapidReworkRatio,
	}

	if _, err := rs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert author score: %w", err)
	}

	return nil
}

// GetAllRuns returns every tracked run, oldest first.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)
	query := fmt.Sprintf("SELECT run_id, start_time, end_time, duration_ms, total_authors, config_params FROM %s ORDER BY run_id", quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord

	for rows.Next() {
		var record schema.RunRecord
		var totalAuthors sql.NullInt32

		switch rs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.DurationMs, &totalAuthors, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.DurationMs, &totalAuthors, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}

		if totalAuthors.Valid {
			record.TotalAuthors = totalAuthors.Int32
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return results, nil
}

// GetAllAuthorScores returns every persisted author score row.
func (rs *RunStoreImpl) GetAllAuthorScores() ([]schema.AuthorScoreRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(authorScoresTable, rs.backend)
	query := fmt.Sprintf(`SELECT run_id, author, scored_at, total_score, grade,
	commit_behavior, quality_and_scope, activity,
	total_commits, files_modified, contribution_ratio, rapid_rework_ratio
	FROM %s ORDER BY run_id, author`, quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query author scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AuthorScoreRecord

	for rows.Next() {
		var record schema.AuthorScoreRecord

		switch rs.backend {
		case schema.SQLiteBackend:
			var scoredAtStr string
			if err := rows.Scan(&record.RunID, &record.Author, &scoredAtStr, &record.TotalScore, &record.Grade,
				&record.CommitBehavior, &record.QualityAndScope, &record.Activity,
				&record.TotalCommits, &record.FilesModified, &record.ContributionRatio, &record.RapidReworkRatio); err != nil {
				return nil, fmt.Errorf("failed to scan author score: %w", err)
			}
			scoredAt, err := time.Parse(time.RFC3339Nano, scoredAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse scored_at: %w", err)
			}
			record.ScoredAt = scoredAt
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.Author, &record.ScoredAt, &record.TotalScore, &record.Grade,
				&record.CommitBehavior, &record.QualityAndScope, &record.Activity,
				&record.TotalCommits, &record.FilesModified, &record.ContributionRatio, &record.RapidReworkRatio); err != nil {
				return nil, fmt.Errorf("failed to scan author score: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author scores: %w", err)
	}

	return results, nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStoreStatus, error) {
	status := schema.RunStoreStatus{
		Backend:   string(rs.backend),
		Connected: rs.db != nil,
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, rs.backend))
	if err := rs.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	scoresQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(authorScoresTable, rs.backend))
	if err := rs.db.QueryRow(scoresQuery).Scan(&status.TotalAuthorsScored); err != nil {
		return status, fmt.Errorf("failed to get total authors scored: %w", err)
	}

	if status.TotalRuns == 0 {
		return status, nil
	}

	lastQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(runsTable, rs.backend))
	lastRunTime, err := scanTime(rs.db.QueryRow(lastQuery), rs.backend)
	if err != nil {
		return status, fmt.Errorf("failed to get last run time: %w", err)
	}
	status.LastRunTime = &lastRunTime

	oldestQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(runsTable, rs.backend))
	oldestRunTime, err := scanTime(rs.db.QueryRow(oldestQuery), rs.backend)
	if err != nil {
		return status, fmt.Errorf("failed to get oldest run time: %w", err)
	}
	status.OldestRunTime = &oldestRunTime

	return status, nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// formatTime converts a time.Time to the appropriate value for the backend.
// SQLite stores timestamps as RFC3339 text.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}

// scanTime reads a single timestamp column, handling SQLite's text storage.
func scanTime(row *sql.Row, backend schema.DatabaseBackend) (time.Time, error) {
	if backend == schema.SQLiteBackend {
		var raw string
		if err := row.Scan(&raw); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, raw)
	}
	var t time.Time
	if err := row.Scan(&t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}
