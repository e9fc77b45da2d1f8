package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

func TestMigrate_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	raw, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "nested", "slots.db"), 1000)
	require.NoError(t, err)
	defer raw.Close()

	db := dbmetrics.New(raw, nil)
	builder := psqlbuilder.MustNew(psqlbuilder.DialectSQLite)

	applied, err := Migrate(ctx, db, builder, logger.NewDiscard())
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	applied, err = Migrate(ctx, db, builder, logger.NewDiscard())
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	for _, table := range []string{"bookings", "working_hours", "holidays", "booking_settings"} {
		var count int
		err := raw.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, table)
	}
}

func TestReadMigrations_BothDialects(t *testing.T) {
	for _, dialect := range []string{psqlbuilder.DialectPostgres, psqlbuilder.DialectSQLite} {
		migrations, err := readMigrations(dialect)
		require.NoError(t, err)
		require.NotEmpty(t, migrations)
		assert.Equal(t, 1, migrations[0].version)
		assert.Contains(t, migrations[0].sql, "bookings_active_slot_uniq")
	}
}
