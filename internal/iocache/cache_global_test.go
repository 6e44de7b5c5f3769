package iocache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitgrade/gitgrade/schema"
)

// TestClearCacheSQLite removes the database file.
func TestClearCacheSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("stub"), 0o644))

	require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already absent file is fine.
	assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
}

// TestClearCacheSQLiteEmptyPath is rejected.
func TestClearCacheSQLiteEmptyPath(t *testing.T) {
	assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearRuns(schema.SQLiteBackend, "", ""))
}

// TestClearNoneBackend does nothing.
func TestClearNoneBackend(t *testing.T) {
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	assert.NoError(t, ClearRuns(schema.NoneBackend, "", ""))
}

// TestClearUnsupportedBackend fails fast.
func TestClearUnsupportedBackend(t *testing.T) {
	assert.Error(t, ClearCache(schema.DatabaseBackend("oracle"), "", ""))
	assert.Error(t, ClearRuns(schema.DatabaseBackend("oracle"), "", ""))
}

// TestClearRunsSQLite removes the runs database file.
func TestClearRunsSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("stub"), 0o644))

	require.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""))
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}
