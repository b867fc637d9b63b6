package repository

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := NewSQLiteDB(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Migrate(db))
}
