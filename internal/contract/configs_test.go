package contract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitgrade/gitgrade/schema"
)

// stubSource satisfies CommitSource for config validation tests.
type stubSource struct {
	root    string
	rootErr error
}

func (s *stubSource) ListCommits(context.Context, string, RangeOptions) ([]schema.CommitRecord, error) {
	return nil, nil
}

func (s *stubSource) RecentCommits(context.Context, string, int) ([]schema.CommitRecord, error) {
	return nil, nil
}

func (s *stubSource) GetRepoRoot(context.Context, string) (string, error) {
	return s.root, s.rootErr
}

func (s *stubSource) GetRepoHash(context.Context, string) (string, error) {
	return "deadbeef", nil
}

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		RepoPathStr:  ".",
		MaxCommits:   1000,
		Limit:        DefaultResultLimit,
		Output:       "text",
		Color:        "yes",
		CacheBackend: "none",
		RunsBackend:  "none",
	}
}

// TestProcessAndValidateDefaults checks the happy path.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	source := &stubSource{root: "/tmp/repo"}

	err := ProcessAndValidate(context.Background(), cfg, source, validInput())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/repo", cfg.RepoPath)
	assert.Equal(t, 1000, cfg.MaxCommits)
	assert.Equal(t, schema.TextMode, cfg.Output)
	assert.Equal(t, []schema.ExcludeMatchPolicy{schema.MatchBasename}, cfg.ExcludePolicies)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultServeAddr, cfg.ServeAddr)
	assert.Empty(t, cfg.ExcludeFiles)
	assert.Empty(t, cfg.FilterAuthors)
}

// TestProcessAndValidateLists checks CSV splitting of tokens and authors.
func TestProcessAndValidateLists(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Exclude = "go.sum, package-lock.json ,,.png"
	input.ExcludeMatch = "basename, suffix"
	input.Authors = "Alice, bob smith"

	err := ProcessAndValidate(context.Background(), cfg, &stubSource{root: "/r"}, input)
	require.NoError(t, err)

	assert.Equal(t, []string{"go.sum", "package-lock.json", ".png"}, cfg.ExcludeFiles)
	assert.Equal(t, []schema.ExcludeMatchPolicy{schema.MatchBasename, schema.MatchSuffix}, cfg.ExcludePolicies)
	assert.Equal(t, []string{"Alice", "bob smith"}, cfg.FilterAuthors)
}

// TestProcessAndValidateErrors checks each rejected input.
func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero max commits", func(i *ConfigRawInput) { i.MaxCommits = 0 }},
		{"negative limit", func(i *ConfigRawInput) { i.Limit = -1 }},
		{"oversized limit", func(i *ConfigRawInput) { i.Limit = MaxResultLimit + 1 }},
		{"bad output", func(i *ConfigRawInput) { i.Output = "xml" }},
		{"bad color", func(i *ConfigRawInput) { i.Color = "maybe" }},
		{"bad cache backend", func(i *ConfigRawInput) { i.CacheBackend = "redis" }},
		{"bad exclude policy", func(i *ConfigRawInput) { i.ExcludeMatch = "glob" }},
		{"negative recent", func(i *ConfigRawInput) { i.Recent = -5 }},
		{"mysql without conn string", func(i *ConfigRawInput) { i.CacheBackend = "mysql" }},
		{"postgres without host", func(i *ConfigRawInput) {
			i.CacheBackend = "postgresql"
			i.CacheDBConnect = "dbname=x"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			err := ProcessAndValidate(context.Background(), &Config{}, &stubSource{root: "/r"}, input)
			assert.Error(t, err)
		})
	}
}

// TestProcessAndValidateRepoResolution fails before traversal when the
// path is not a repository.
func TestProcessAndValidateRepoResolution(t *testing.T) {
	source := &stubSource{rootErr: assert.AnError}
	err := ProcessAndValidate(context.Background(), &Config{}, source, validInput())
	assert.Error(t, err)
}

// TestValidateDatabaseConnectionString covers accepted formats.
func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/gitgrade"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgresBackend, "host=localhost dbname=gitgrade sslmode=disable"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "localhost/gitgrade"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgresBackend, "host=localhost"))
}

// TestConfigClone ensures slices are deep-copied.
func TestConfigClone(t *testing.T) {
	cfg := &Config{
		RepoPath:        "/r",
		ExcludeFiles:    []string{"go.sum"},
		ExcludePolicies: []schema.ExcludeMatchPolicy{schema.MatchBasename},
		FilterAuthors:   []string{"alice"},
	}
	clone := cfg.Clone()
	clone.ExcludeFiles[0] = "changed"
	clone.FilterAuthors[0] = "bob"

	assert.Equal(t, "go.sum", cfg.ExcludeFiles[0])
	assert.Equal(t, "alice", cfg.FilterAuthors[0])
	assert.Equal(t, cfg.RepoPath, clone.RepoPath)
}

// TestSharedSQLitePathRejected verifies cache and runs cannot collide.
func TestSharedSQLitePathRejected(t *testing.T) {
	input := validInput()
	input.CacheBackend = "sqlite"
	input.RunsBackend = "sqlite"
	input.CacheDBConnect = "/tmp/same.db"
	input.RunsDBConnect = "/tmp/same.db"

	err := ProcessAndValidate(context.Background(), &Config{}, &stubSource{root: "/r"}, input)
	assert.Error(t, err)
}
