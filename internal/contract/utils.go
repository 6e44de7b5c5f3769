package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/gitgrade/gitgrade/schema"
)

// Color variables for console output, keyed by grade.
var (
	sColor = color.New(color.FgGreen, color.Bold)
	aColor = color.New(color.FgGreen)
	bColor = color.New(color.FgCyan)
	cColor = color.New(color.FgYellow)
	dColor = color.New(color.FgRed, color.Bold)
)

// GetGradeLabel returns a colored grade string for table output, or the
// plain grade when colors are disabled.
func GetGradeLabel(grade schema.Grade, useColors bool) string {
	if !useColors {
		return string(grade)
	}
	switch grade {
	case schema.GradeS:
		return sColor.Sprint(string(grade))
	case schema.GradeA:
		return aColor.Sprint(string(grade))
	case schema.GradeB:
		return bColor.Sprint(string(grade))
	case schema.GradeC:
		return cColor.Sprint(string(grade))
	default:
		return dColor.Sprint(string(grade))
	}
}

// ShouldExclude returns true if the given path matches any exclusion token
// under any of the active match policies. Paths are normalized to forward
// slashes before matching; comparison is case-sensitive.
func ShouldExclude(path string, tokens []string, policies []schema.ExcludeMatchPolicy) bool {
	if len(tokens) == 0 || len(policies) == 0 {
		return false
	}
	normalized := strings.ReplaceAll(path, "\\", "/")
	base := filepath.Base(normalized)

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		for _, policy := range policies {
			switch policy {
			case schema.MatchBasename:
				if base == token {
					return true
				}
			case schema.MatchSubstring:
				if strings.Contains(normalized, token) {
					return true
				}
			case schema.MatchSuffix:
				if strings.HasSuffix(normalized, token) {
					return true
				}
			}
		}
	}
	return false
}

// IsFilteredAuthor returns true when an allow-list is active and the author
// is not on it. Matching is case-insensitive and exact.
func IsFilteredAuthor(author string, allowList []string) bool {
	if len(allowList) == 0 {
		return false
	}
	for _, allowed := range allowList {
		if strings.EqualFold(author, allowed) {
			return false
		}
	}
	return true
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitgrade_cache.db"
	}
	return filepath.Join(homeDir, ".gitgrade_cache.db")
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitgrade_runs.db"
	}
	return filepath.Join(homeDir, ".gitgrade_runs.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for "..." plus at least one rune.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
