package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gitgrade/gitgrade/schema"
)

// Control bytes delimiting fields in git log output. Commit messages can
// contain pipes and newlines, so ordinary separators are not safe.
const (
	recordStart = "\x01"
	messageSep  = "\x02"
	statSep     = "\x03"
)

// logFormat emits one machine-parseable record per commit. The %P field
// distinguishes root commits, which contribute no diff stats.
const logFormat = "format:" + recordStart + "%h|%an|%at|%P" + messageSep + "%B" + statSep

// LocalGitClient implements the CommitSource interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ CommitSource = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(_ context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// ListCommits implements the CommitSource interface. Merge commits are
// measured against their first parent only.
func (c *LocalGitClient) ListCommits(ctx context.Context, repoPath string, opts RangeOptions) ([]schema.CommitRecord, error) {
	maxCommits := opts.MaxCommits
	if maxCommits <= 0 {
		maxCommits = schema.DefaultMaxCommits
	}
	args := []string{
		"log",
		"-n", strconv.Itoa(maxCommits),
		"--numstat",
		"--diff-merges=first-parent",
		"--pretty=" + logFormat,
		BuildCommitRange(opts.OlderRef, opts.NewerRef),
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return ParseCommitLog(string(out)), nil
}

// RecentCommits implements the CommitSource interface.
func (c *LocalGitClient) RecentCommits(ctx context.Context, repoPath string, limit int) ([]schema.CommitRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	args := []string{
		"log",
		"-n", strconv.Itoa(limit),
		"--pretty=" + logFormat,
		"HEAD",
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return ParseCommitLog(string(out)), nil
}

// GetRepoRoot implements the CommitSource interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoHash implements the CommitSource interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// BuildCommitRange assembles the git revision range from two optional
// endpoints. Both empty means full history from HEAD.
func BuildCommitRange(olderRef, newerRef string) string {
	switch {
	case olderRef != "" && newerRef != "":
		return olderRef + ".." + newerRef
	case olderRef != "":
		return olderRef + "..HEAD"
	case newerRef != "":
		return newerRef
	default:
		return "HEAD"
	}
}

// ParseCommitLog converts raw control-byte delimited git log output into
// commit records. Malformed chunks are skipped with a warning rather than
// aborting the whole traversal.
func ParseCommitLog(raw string) []schema.CommitRecord {
	var records []schema.CommitRecord
	for _, chunk := range strings.Split(raw, recordStart) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		record, ok := parseCommitChunk(chunk)
		if !ok {
			LogWarn("skipping malformed commit record", errors.New(strings.SplitN(chunk, "\n", 2)[0]))
			continue
		}
		records = append(records, record)
	}
	return records
}

// parseCommitChunk parses a single commit record between control bytes.
func parseCommitChunk(chunk string) (schema.CommitRecord, bool) {
	header, rest, found := strings.Cut(chunk, messageSep)
	if !found {
		return schema.CommitRecord{}, false
	}
	message, statBlock, found := strings.Cut(rest, statSep)
	if !found {
		return schema.CommitRecord{}, false
	}

	fields := strings.SplitN(header, "|", 4)
	if len(fields) != 4 {
		return schema.CommitRecord{}, false
	}
	timestamp, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return schema.CommitRecord{}, false
	}

	record := schema.CommitRecord{
		Hash:      strings.TrimSpace(fields[0]),
		Author:    strings.TrimSpace(fields[1]),
		Timestamp: timestamp,
		Message:   strings.TrimSpace(message),
	}

	// Root commits have no parent and contribute no diff stats.
	if strings.TrimSpace(fields[3]) == "" {
		return record, true
	}

	for line := range strings.SplitSeq(statBlock, "\n") {
		path, insertions, deletions, ok := parseStatLine(line)
		if !ok {
			continue
		}
		record.Files = append(record.Files, path)
		record.Insertions += insertions
		record.Deletions += deletions
	}
	return record, true
}

// parseStatLine parses one numstat line: "<added>\t<deleted>\t<path>".
func parseStatLine(line string) (string, int, int, bool) {
	parts := strings.Split(strings.TrimRight(line, "\r"), "\t")
	if len(parts) != 3 {
		return "", 0, 0, false
	}
	path := normalizeRenamePath(strings.TrimSpace(parts[2]))
	if path == "" {
		return "", 0, 0, false
	}
	return path, parseChurnValue(parts[0]), parseChurnValue(parts[1]), true
}

// parseChurnValue converts a numstat count to an int. Binary files report
// "-" and count as zero.
func parseChurnValue(s string) int {
	s = strings.TrimSpace(s)
	if s == "-" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// normalizeRenamePath resolves git rename notation to the new path.
// Handles both "old => new" and "prefix/{old => new}/suffix" forms.
func normalizeRenamePath(path string) string {
	if !strings.Contains(path, " => ") {
		return path
	}
	open := strings.Index(path, "{")
	closing := strings.Index(path, "}")
	if open >= 0 && closing > open {
		inner := path[open+1 : closing]
		_, newPart, _ := strings.Cut(inner, " => ")
		resolved := path[:open] + newPart + path[closing+1:]
		resolved = strings.ReplaceAll(resolved, "//", "/")
		return strings.TrimPrefix(resolved, "/")
	}
	_, newPath, _ := strings.Cut(path, " => ")
	return newPath
}
