package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore opens a store in a temporary directory.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	return store, func() { _ = store.Close() }
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "rulebook.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_AppliesMigrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	for _, table := range []string{"links", "scheduled_tasks", "task_results"} {
		var name string
		err := store.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestNewStore_ReopenKeepsVersion(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var applied int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_scheduler.up.sql":   {Data: []byte("SELECT 1;")},
		"002_scheduler.down.sql": {Data: []byte("SELECT 1;")},
		"001_link_index.up.sql":  {Data: []byte("SELECT 1;")},
		"010_later.up.sql":       {Data: []byte("SELECT 1;")},
		"notes.up.sql":           {Data: []byte("SELECT 1;")},
		"003_readme.txt":         {Data: []byte("ignored")},
	}

	all, err := pendingMigrations(fsys, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{all[0].version, all[1].version, all[2].version})

	rest, err := pendingMigrations(fsys, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "010_later.up.sql", rest[0].name)
}
