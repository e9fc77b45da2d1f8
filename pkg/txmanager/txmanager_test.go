package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
)

func setup(t *testing.T) (*dbmetrics.DB, *TransactionManager) {
	t.Helper()
	raw, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = raw.Close() })

	db := dbmetrics.New(raw, nil)
	_, err = db.ExecContext(context.Background(), "CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)

	return db, NewDefaultIsolation(db)
}

func count(t *testing.T, db *dbmetrics.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM items").Scan(&n))
	return n
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	db, tm := setup(t)

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		_, err := dbmetrics.GetExecutor(ctx, db).ExecContext(ctx, "INSERT INTO items (name) VALUES (?)", "a")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count(t, db))
}

func TestDo_RollsBackOnError(t *testing.T) {
	db, tm := setup(t)
	errBoom := errors.New("boom")

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		if _, err := dbmetrics.GetExecutor(ctx, db).ExecContext(ctx, "INSERT INTO items (name) VALUES (?)", "a"); err != nil {
			return err
		}
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, count(t, db))
}

func TestDo_RollsBackOnPanic(t *testing.T) {
	db, tm := setup(t)

	assert.Panics(t, func() {
		_ = tm.Do(context.Background(), func(ctx context.Context) error {
			_, _ = dbmetrics.GetExecutor(ctx, db).ExecContext(ctx, "INSERT INTO items (name) VALUES (?)", "a")
			panic("unexpected")
		})
	})
	assert.Equal(t, 0, count(t, db))
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	db, tm := setup(t)

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		return tm.DoSerializable(ctx, func(inner context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(inner))
			_, err := dbmetrics.GetExecutor(inner, db).ExecContext(inner, "INSERT INTO items (name) VALUES (?)", "a")
			return err
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count(t, db))
}

func TestOptions_IsolationPerDriver(t *testing.T) {
	assert.Nil(t, NewDefaultIsolation(nil).options(sql.LevelSerializable))

	opts := NewTransactionManager(nil).options(sql.LevelSerializable)
	require.NotNil(t, opts)
	assert.Equal(t, sql.LevelSerializable, opts.Isolation)
	assert.False(t, opts.ReadOnly)
}
