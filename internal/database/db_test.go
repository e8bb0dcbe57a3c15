package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deck.db")
	db, err := OpenAndMigrate(context.Background(), path, nil)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM deck_states`).Scan(&n))
	assert.Zero(t, n)

	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenAndMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.db")
	db, err := OpenAndMigrate(context.Background(), path, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenAndMigrate(context.Background(), path, nil)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenAndMigrateRequiresPath(t *testing.T) {
	_, err := OpenAndMigrate(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestStripLineComments(t *testing.T) {
	in := "-- header\nCREATE TABLE t (a TEXT DEFAULT '--not a comment'); -- trailing\nSELECT 'it''s';"
	out := stripLineComments(in)
	assert.NotContains(t, out, "header")
	assert.NotContains(t, out, "trailing")
	assert.Contains(t, out, "'--not a comment'")
	assert.Contains(t, out, "'it''s'")
}

func TestExecSQLScriptSplitsStatements(t *testing.T) {
	db, err := OpenAndMigrate(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	defer db.Close()

	script := "CREATE TABLE a (x INTEGER);\n-- comment;\nINSERT INTO a VALUES (1);\nINSERT INTO a VALUES (2);"
	require.NoError(t, execSQLScript(context.Background(), db, script))

	var sum int
	require.NoError(t, db.QueryRow(`SELECT SUM(x) FROM a`).Scan(&sum))
	assert.Equal(t, 3, sum)
}
