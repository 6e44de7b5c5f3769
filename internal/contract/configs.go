package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gitgrade/gitgrade/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultRecentLimit = 10
	DefaultServeAddr   = ":8080"
)

// Config holds the runtime configuration for an analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath   string
	OlderRef   string
	NewerRef   string
	MaxCommits int

	ExcludeFiles    []string
	ExcludePolicies []schema.ExcludeMatchPolicy
	FilterAuthors   []string

	ResultLimit int
	RecentLimit int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	ServeAddr string

	CodeExcludeFolders []string
	CodeExcludeFiles   []string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Older          string `mapstructure:"older"`
	Newer          string `mapstructure:"newer"`
	MaxCommits     int    `mapstructure:"max-commits"`
	Exclude        string `mapstructure:"exclude"`
	ExcludeMatch   string `mapstructure:"exclude-match"`
	Authors        string `mapstructure:"authors"`
	Limit          int    `mapstructure:"limit"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunsBackend    string `mapstructure:"runs-backend"`
	RunsDBConnect  string `mapstructure:"runs-db-connect"`

	// --- Fields from authorsCmd.Flags() ---
	Recent int `mapstructure:"recent"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Fields from codeCmd.Flags() ---
	ExcludeFolders   string `mapstructure:"exclude-folders"`
	ExcludeCodeFiles string `mapstructure:"exclude-code-files"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ExcludeFiles != nil {
		clone.ExcludeFiles = make([]string, len(c.ExcludeFiles))
		copy(clone.ExcludeFiles, c.ExcludeFiles)
	}
	if c.ExcludePolicies != nil {
		clone.ExcludePolicies = make([]schema.ExcludeMatchPolicy, len(c.ExcludePolicies))
		copy(clone.ExcludePolicies, c.ExcludePolicies)
	}
	if c.FilterAuthors != nil {
		clone.FilterAuthors = make([]string, len(c.FilterAuthors))
		copy(clone.FilterAuthors, c.FilterAuthors)
	}
	if c.CodeExcludeFolders != nil {
		clone.CodeExcludeFolders = make([]string, len(c.CodeExcludeFolders))
		copy(clone.CodeExcludeFolders, c.CodeExcludeFolders)
	}
	if c.CodeExcludeFiles != nil {
		clone.CodeExcludeFiles = make([]string, len(c.CodeExcludeFiles))
		copy(clone.CodeExcludeFiles, c.CodeExcludeFiles)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Repository resolution runs last so
// every setup error surfaces before any traversal starts.
func ProcessAndValidate(ctx context.Context, cfg *Config, source CommitSource, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processExcludes(cfg, input); err != nil {
		return err
	}
	processAuthorFilter(cfg, input)
	if err := resolveRepoPath(ctx, cfg, source, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgresBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and run-store backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if cfg.RunsBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
			return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
		}
		cfg.RunsDBConnect = input.RunsDBConnect
		if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
			return err
		}

		// The cache and run stores must not share a SQLite file.
		if cfg.CacheBackend == schema.SQLiteBackend && cfg.RunsBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			runsDBPath := cfg.RunsDBConnect
			if runsDBPath == "" {
				runsDBPath = GetRunsDBFilePath()
			}
			if cacheDBPath == runsDBPath {
				return fmt.Errorf("cache and run storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OlderRef = strings.TrimSpace(input.Older)
	cfg.NewerRef = strings.TrimSpace(input.Newer)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.MaxCommits <= 0 {
		return fmt.Errorf("max-commits must be greater than 0 (received %d)", input.MaxCommits)
	}
	cfg.MaxCommits = input.MaxCommits

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	cfg.RecentLimit = input.Recent
	if cfg.RecentLimit < 0 {
		return fmt.Errorf("recent cannot be negative (received %d)", input.Recent)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	return validateBackendConfigs(cfg, input)
}

// processExcludes splits the exclusion token list and resolves match policies.
func processExcludes(cfg *Config, input *ConfigRawInput) error {
	cfg.ExcludeFiles = splitCommaList(input.Exclude)

	cfg.ExcludePolicies = nil
	if input.ExcludeMatch == "" {
		cfg.ExcludePolicies = []schema.ExcludeMatchPolicy{schema.MatchBasename}
	} else {
		for _, p := range splitCommaList(input.ExcludeMatch) {
			policy := schema.ExcludeMatchPolicy(strings.ToLower(p))
			if _, ok := schema.ValidExcludeMatchPolicies[policy]; !ok {
				return fmt.Errorf("invalid exclude-match policy '%s'. must be basename, substring, suffix", p)
			}
			cfg.ExcludePolicies = append(cfg.ExcludePolicies, policy)
		}
	}

	cfg.CodeExcludeFolders = splitCommaList(input.ExcludeFolders)
	cfg.CodeExcludeFiles = splitCommaList(input.ExcludeCodeFiles)
	return nil
}

// processAuthorFilter splits the author allow-list. Matching is
// case-insensitive, so names are kept verbatim here.
func processAuthorFilter(cfg *Config, input *ConfigRawInput) {
	cfg.FilterAuthors = splitCommaList(input.Authors)
}

// resolveRepoPath resolves the repository root from the search path.
func resolveRepoPath(ctx context.Context, cfg *Config, source CommitSource, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, statErr := os.Stat(absSearchPath)
	gitContextPath := absSearchPath
	if statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := source.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}

	cfg.RepoPath = gitRoot
	return nil
}

// splitCommaList splits a comma-separated string, trimming whitespace and
// dropping empty entries.
func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
