package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteOptionRepository {
	t.Helper()
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "options.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunSQLiteMigrations(db))
	return NewSQLiteOptionRepository(db)
}

func TestSQLiteOptionRepository_RoundTrip(t *testing.T) {
	repo := openTestSQLite(t)
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "excluded_categories")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "excluded_categories", []byte(`["post"]`)))
	require.NoError(t, repo.Set(ctx, "excluded_categories", []byte(`["page","product"]`)))

	value, ok, err := repo.Get(ctx, "excluded_categories")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `["page","product"]`, string(value))
}

func TestRunSQLiteMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "options.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunSQLiteMigrations(db))
	require.NoError(t, RunSQLiteMigrations(db))
}
