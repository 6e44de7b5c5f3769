package schema

import "time"

// ProgressEvent reports incremental progress of a long-running analysis
// stage. Current and Total are stage-relative; Percent maps the event into
// the caller's reserved portion of the overall run.
type ProgressEvent struct {
	Stage     string    `json:"stage"`
	Current   int       `json:"current"`
	Total     int       `json:"total"`
	Percent   int       `json:"percent"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
