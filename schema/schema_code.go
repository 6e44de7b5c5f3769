package schema

// CodeFileStats holds line and complexity tallies for one source file.
type CodeFileStats struct {
	Filename      string  `json:"filename"`
	Language      string  `json:"language"`
	Lines         int     `json:"nloc"`
	Functions     int     `json:"functions"`
	Complexity    int     `json:"complexity"`
	AvgComplexity float64 `json:"avg_complexity"`
}

// CodeHotspot names the file with the highest estimated complexity.
type CodeHotspot struct {
	Filename   string `json:"filename"`
	Complexity int    `json:"complexity"`
}

// CodeSummary aggregates the code statistics across all scanned files.
type CodeSummary struct {
	TotalFiles     int          `json:"total_files"`
	TotalLines     int          `json:"total_lines"`
	TotalFunctions int          `json:"total_functions"`
	AvgComplexity  float64      `json:"avg_complexity"`
	MaxComplexity  *CodeHotspot `json:"max_complexity,omitempty"`
}

// CodeReport is the full output of a code statistics scan. Files are
// sorted by complexity descending.
type CodeReport struct {
	Summary CodeSummary     `json:"summary"`
	Files   []CodeFileStats `json:"files"`
}
