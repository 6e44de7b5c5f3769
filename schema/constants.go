package schema

// Grade is the letter grade assigned to an author's total score.
type Grade string

// Grades from best to worst.
const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// GradeDescriptions maps each grade to a short human label.
var GradeDescriptions = map[Grade]string{
	GradeS: "Exceptional",
	GradeA: "Excellent",
	GradeB: "Good",
	GradeC: "Fair",
	GradeD: "Needs attention",
}

// OutputMode selects the rendering format for command results.
type OutputMode string

// Output modes.
const (
	TextMode OutputMode = "text"
	CSVMode  OutputMode = "csv"
	JSONMode OutputMode = "json"
)

// ValidOutputModes enumerates accepted --output values.
var ValidOutputModes = map[OutputMode]bool{
	TextMode: true,
	CSVMode:  true,
	JSONMode: true,
}

// DatabaseBackend selects the storage engine for the cache and run stores.
type DatabaseBackend string

// Database backends.
const (
	SQLiteBackend   DatabaseBackend = "sqlite"
	MySQLBackend    DatabaseBackend = "mysql"
	PostgresBackend DatabaseBackend = "postgresql"
	NoneBackend     DatabaseBackend = "none"
)

// ValidDatabaseBackends enumerates accepted backend values.
var ValidDatabaseBackends = map[DatabaseBackend]bool{
	SQLiteBackend:   true,
	MySQLBackend:    true,
	PostgresBackend: true,
	NoneBackend:     true,
}

// ExcludeMatchPolicy selects how exclusion tokens match changed paths.
type ExcludeMatchPolicy string

// Exclusion match policies. Basename matching is the default.
const (
	MatchBasename  ExcludeMatchPolicy = "basename"
	MatchSubstring ExcludeMatchPolicy = "substring"
	MatchSuffix    ExcludeMatchPolicy = "suffix"
)

// ValidExcludeMatchPolicies enumerates accepted --exclude-match values.
var ValidExcludeMatchPolicies = map[ExcludeMatchPolicy]bool{
	MatchBasename:  true,
	MatchSubstring: true,
	MatchSuffix:    true,
}

// Traversal and report limits.
const (
	// DefaultMaxCommits bounds a history traversal when no cap is given.
	DefaultMaxCommits = 1000

	// TopChangedFileLimit caps the top-changed-files list in reports.
	TopChangedFileLimit = 50

	// ProgressStride is how many commits pass between progress reports.
	ProgressStride = 20
)

// Progress stages.
const (
	StageHistory = "history"
	StageCode    = "code"
)
