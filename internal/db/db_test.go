package db

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-assist/assets"
)

func TestMigrate_EmbeddedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(Memory)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, assets.Migrations()))
	require.NoError(t, Migrate(ctx, db, assets.Migrations()))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)

	for _, table := range []string{"users", "sessions", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	ctx := context.Background()
	db, err := Open(Memory)
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"001_ok.sql":  {Data: []byte(`CREATE TABLE a (id INTEGER);`)},
		"002_bad.sql": {Data: []byte(`CREATE TABLE b (id INTEGER); NOT SQL;`)},
	}
	err = Migrate(ctx, db, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_bad.sql")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "solver.db")
	db, err := Open(dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping())
	assert.FileExists(t, dsn)
}
