package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("GALVANI_DB_PATH", "/tmp/lab.db")
	assert.Equal(t, "/tmp/lab.db", DefaultConfig().Path)
}

func TestDefaultConfigHome(t *testing.T) {
	t.Setenv("GALVANI_DB_PATH", "")
	t.Setenv("HOME", t.TempDir())
	assert.Equal(t, "data.db", filepath.Base(DefaultConfig().Path))
	assert.Equal(t, ".galvani", filepath.Base(filepath.Dir(DefaultConfig().Path)))
}

func TestOpenAndMigrate(t *testing.T) {
	cfg := Config{Path: filepath.Join(t.TempDir(), "nested", "data.db")}

	db, err := OpenAndMigrate(cfg)
	require.NoError(t, err)
	defer db.Close()

	// idempotent
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "notebook_entries"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}
