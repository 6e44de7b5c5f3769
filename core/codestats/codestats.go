// Package codestats scans a directory tree and estimates per-file line
// counts and cyclomatic complexity. It is independent of git history and
// works on any source checkout.
package codestats

import (
	"bufio"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gitgrade/gitgrade/schema"
)

// DefaultExcludeFolders are skipped in every scan unless overridden.
var DefaultExcludeFolders = []string{
	"node_modules", ".git", "vendor", "dist", "build", "out", "target",
	"__pycache__", ".venv", "venv", ".idea", ".vscode", ".next", "coverage",
}

// languageByExt maps recognized source extensions to a display language.
var languageByExt = map[string]string{
	".go":    "Go",
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".java":  "Java",
	".rb":    "Ruby",
	".rs":    "Rust",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".cs":    "C#",
	".php":   "PHP",
	".kt":    "Kotlin",
	".swift": "Swift",
	".scala": "Scala",
}

// functionMarkers are line prefixes that start a function definition,
// per language.
var functionMarkers = map[string][]string{
	"Go":         {"func "},
	"Python":     {"def ", "async def "},
	"JavaScript": {"function ", "async function "},
	"TypeScript": {"function ", "async function "},
	"Ruby":       {"def "},
	"Rust":       {"fn ", "pub fn ", "async fn ", "pub async fn "},
	"Kotlin":     {"fun "},
}

// branchKeywords approximate decision points for the complexity estimate.
var branchKeywords = []string{
	"if ", "if(", "for ", "for(", "while ", "while(", "case ", "catch ",
	"catch(", "elif ", "except ", "&&", "||", "when ",
}

// maxFileSizeBytes guards the scan against generated monsters.
const maxFileSizeBytes = 2 << 20

// Analyze walks the tree rooted at root and returns aggregated code
// statistics. Files are reported with paths relative to root and sorted
// by complexity descending.
func Analyze(root string, excludeFolders, excludeFiles []string) (*schema.CodeReport, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot scan %q: not a directory", root)
	}

	skipDirs := make(map[string]struct{})
	for _, folder := range DefaultExcludeFolders {
		skipDirs[folder] = struct{}{}
	}
	for _, folder := range excludeFolders {
		if folder = strings.TrimSpace(folder); folder != "" {
			skipDirs[folder] = struct{}{}
		}
	}

	skipFiles := make(map[string]struct{})
	for _, name := range excludeFiles {
		if name = strings.TrimSpace(name); name != "" {
			skipFiles[name] = struct{}{}
		}
	}

	report := &schema.CodeReport{}
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			if _, skip := skipDirs[entry.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		language, known := languageByExt[strings.ToLower(filepath.Ext(entry.Name()))]
		if !known {
			return nil
		}
		if _, skip := skipFiles[entry.Name()]; skip {
			return nil
		}
		if fi, err := entry.Info(); err != nil || fi.Size() > maxFileSizeBytes {
			return nil
		}

		stats, err := analyzeFile(path, language)
		if err != nil {
			// Unreadable files are skipped, not fatal.
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		stats.Filename = filepath.ToSlash(rel)
		report.Files = append(report.Files, stats)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(report.Files, func(i, j int) bool {
		if report.Files[i].Complexity != report.Files[j].Complexity {
			return report.Files[i].Complexity > report.Files[j].Complexity
		}
		return report.Files[i].Filename < report.Files[j].Filename
	})

	report.Summary = summarize(report.Files)
	return report, nil
}

// analyzeFile counts non-blank lines, function definitions and branch
// keywords for a single file.
func analyzeFile(path, language string) (schema.CodeFileStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return schema.CodeFileStats{}, err
	}
	defer func() { _ = f.Close() }()

	stats := schema.CodeFileStats{Language: language}
	markers := functionMarkers[language]
	branches := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		for _, marker := range markers {
			if strings.HasPrefix(line, marker) {
				stats.Functions++
				break
			}
		}
		for _, keyword := range branchKeywords {
			branches += strings.Count(line, keyword)
		}
	}
	if err := scanner.Err(); err != nil {
		return schema.CodeFileStats{}, err
	}

	// Each function contributes a base path; branches add decision points.
	funcs := stats.Functions
	if funcs == 0 {
		funcs = 1
	}
	stats.Complexity = funcs + branches
	stats.AvgComplexity = round1(float64(stats.Complexity) / float64(funcs))
	return stats, nil
}

// summarize folds per-file stats into the report summary.
func summarize(files []schema.CodeFileStats) schema.CodeSummary {
	summary := schema.CodeSummary{TotalFiles: len(files)}
	totalComplexity := 0

	for _, f := range files {
		summary.TotalLines += f.Lines
		summary.TotalFunctions += f.Functions
		totalComplexity += f.Complexity

		if summary.MaxComplexity == nil || f.Complexity > summary.MaxComplexity.Complexity {
			summary.MaxComplexity = &schema.CodeHotspot{
				Filename:   f.Filename,
				Complexity: f.Complexity,
			}
		}
	}

	if len(files) > 0 {
		summary.AvgComplexity = round1(float64(totalComplexity) / float64(len(files)))
	}
	return summary
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
