package schema

import "time"

// RunRecord is one tracked analysis run as persisted by the run store.
type RunRecord struct {
	RunID        int64      `json:"run_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	DurationMs   *int64     `json:"duration_ms,omitempty"`
	TotalAuthors int32      `json:"total_authors"`
	ConfigParams *string    `json:"config_params,omitempty"`
}

// AuthorScoreRecord is one persisted per-author score row tied to a run.
type AuthorScoreRecord struct {
	RunID             int64     `json:"run_id"`
	Author            string    `json:"author"`
	ScoredAt          time.Time `json:"scored_at"`
	TotalScore        float64   `json:"total_score"`
	Grade             string    `json:"grade"`
	CommitBehavior    float64   `json:"commit_behavior"`
	QualityAndScope   float64   `json:"quality_and_scope"`
	Activity          float64   `json:"activity"`
	TotalCommits      int32     `json:"total_commits"`
	FilesModified     int32     `json:"files_modified"`
	ContributionRatio float64   `json:"contribution_ratio"`
	RapidReworkRatio  float64   `json:"rapid_rework_ratio"`
}
