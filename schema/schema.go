// Package schema holds the shared data models for gitgrade analysis results.
package schema

// CommitRecord is one normalized commit as produced by the commit source.
// Records are built once per traversal and discarded after aggregation.
type CommitRecord struct {
	Hash       string   `json:"hash"`
	Author     string   `json:"author"`
	Timestamp  int64    `json:"timestamp"`
	Message    string   `json:"message"`
	Files      []string `json:"files"`
	Insertions int      `json:"insertions"`
	Deletions  int      `json:"deletions"`
}

// CommitDetail is the per-commit tuple retained inside an AuthorAggregate.
type CommitDetail struct {
	Timestamp     int64 `json:"timestamp"`
	MessageLength int   `json:"message_length"`
	FilesTouched  int   `json:"files_touched"`
}

// AuthorAggregate accumulates raw tallies for a single author during the
// history pass. FileTimelines keeps every observed modification timestamp
// per file so rework intervals can be derived later.
type AuthorAggregate struct {
	Name          string             `json:"name"`
	Order         int                `json:"order"`
	Commits       int                `json:"commits"`
	Details       []CommitDetail     `json:"details"`
	FileChanges   map[string]int     `json:"file_changes"`
	FileTimelines map[string][]int64 `json:"file_timelines"`
	Monthly       map[string]int     `json:"monthly"`
}

// GlobalAggregate holds repository-wide tallies from the history pass.
type GlobalAggregate struct {
	FileChanges     map[string]int `json:"file_changes"`
	TotalCommits    int            `json:"total_commits"`
	TotalInsertions int            `json:"total_insertions"`
	TotalDeletions  int            `json:"total_deletions"`
}

// HistoryOutput is the complete result of one aggregation pass. It is the
// unit stored in the activity cache.
type HistoryOutput struct {
	Global  GlobalAggregate             `json:"global"`
	Authors map[string]*AuthorAggregate `json:"authors"`
}

// NewHistoryOutput returns an empty HistoryOutput with maps initialized.
func NewHistoryOutput() *HistoryOutput {
	return &HistoryOutput{
		Global:  GlobalAggregate{FileChanges: make(map[string]int)},
		Authors: make(map[string]*AuthorAggregate),
	}
}

// DerivedMetrics is the per-author metric vector computed from an
// AuthorAggregate. Ratio fields are rounded to one decimal place.
type DerivedMetrics struct {
	Author                 string  `json:"author"`
	TotalCommits           int     `json:"total_commits"`
	FilesModified          int     `json:"files_modified"`
	ActiveDays             float64 `json:"active_days"`
	AvgFilesPerCommit      float64 `json:"avg_files_per_commit"`
	AvgMessageLength       float64 `json:"avg_message_length"`
	AvgCommitInterval      float64 `json:"avg_commit_interval"`
	DaysSinceLastCommit    float64 `json:"days_since_last_commit"`
	FileConcentration      float64 `json:"file_concentration"`
	HotspotParticipation   float64 `json:"hotspot_participation"`
	ContributionRatio      float64 `json:"contribution_ratio"`
	TotalCodeChanges       int     `json:"total_code_changes"`
	RapidReworkRatio       float64 `json:"rapid_rework_ratio"`
	RapidReworkCount       int     `json:"rapid_rework_count"`
	TotalFileModifications int     `json:"total_file_modifications"`
}

// SubScores is the three-dimension breakdown behind a total score.
type SubScores struct {
	CommitBehavior  float64 `json:"commit_behavior"`
	QualityAndScope float64 `json:"quality_and_scope"`
	Activity        float64 `json:"activity"`
}

// ScoreResult is one author's graded outcome with the metrics echoed for
// transparency.
type ScoreResult struct {
	Author  string         `json:"author"`
	Total   float64        `json:"total_score"`
	Grade   Grade          `json:"grade"`
	Scores  SubScores      `json:"scores"`
	Metrics DerivedMetrics `json:"metrics"`
}

// FileChangeCount pairs a path with how many commits touched it.
type FileChangeCount struct {
	Filename string `json:"filename"`
	Changes  int    `json:"changes"`
}

// ChangeDistribution buckets files by how often they changed.
type ChangeDistribution struct {
	Low      int `json:"low"`       // 1-5 changes
	Medium   int `json:"medium"`    // 6-15 changes
	High     int `json:"high"`      // 16-30 changes
	VeryHigh int `json:"very_high"` // >30 changes
}

// AuthorSeries is one row of the activity timeline matrix. Timeline always
// has the same length as the month axis.
type AuthorSeries struct {
	Author       string `json:"author"`
	TotalCommits int    `json:"total_commits"`
	Timeline     []int  `json:"timeline"`
}

// ActivityTimeline is the dense author-by-month commit matrix.
type ActivityTimeline struct {
	Months  []string       `json:"months"`
	Authors []AuthorSeries `json:"authors"`
}

// HistorySummary aggregates the headline counts of one analysis run.
type HistorySummary struct {
	TotalCommits      int      `json:"total_commits"`
	TotalAuthors      int      `json:"total_authors"`
	TotalFilesChanged int      `json:"total_files_changed"`
	TotalInsertions   int      `json:"total_insertions"`
	TotalDeletions    int      `json:"total_deletions"`
	Authors           []string `json:"authors"`
}

// HistoryReport is the full output record of a history analysis.
type HistoryReport struct {
	Summary            HistorySummary     `json:"summary"`
	TopChangedFiles    []FileChangeCount  `json:"top_changed_files"`
	ChangeDistribution ChangeDistribution `json:"change_distribution"`
	DeveloperActivity  ActivityTimeline   `json:"developer_activity"`
	AuthorScores       []ScoreResult      `json:"author_scores"`
	RecentCommits      []CommitRecord     `json:"recent_commits,omitempty"`
}
