package schema

import "time"

// CacheStatus summarizes the state of the activity cache backend.
type CacheStatus struct {
	Backend         string     `json:"backend"`
	Connected       bool       `json:"connected"`
	TotalEntries    int        `json:"total_entries"`
	LastEntryTime   *time.Time `json:"last_entry_time,omitempty"`
	OldestEntryTime *time.Time `json:"oldest_entry_time,omitempty"`
}

// RunStoreStatus summarizes the state of the run-tracking backend.
type RunStoreStatus struct {
	Backend            string     `json:"backend"`
	Connected          bool       `json:"connected"`
	TotalRuns          int        `json:"total_runs"`
	TotalAuthorsScored int        `json:"total_authors_scored"`
	LastRunTime        *time.Time `json:"last_run_time,omitempty"`
	OldestRunTime      *time.Time `json:"oldest_run_time,omitempty"`
}
