// Package storagetest поднимает временную SQLite базу со схемой сервиса для тестов
package storagetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/database"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

// DB временная база в t.TempDir() с примененными миграциями
type DB struct {
	*dbmetrics.DB
	Builder psqlbuilder.Builder
}

// NewSQLite создает базу, закрываемую по завершении теста
func NewSQLite(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	raw, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "slots.db"), 5000)
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	db := dbmetrics.New(raw, nil)
	builder := psqlbuilder.MustNew(psqlbuilder.DialectSQLite)

	_, err = database.Migrate(ctx, db, builder, logger.NewDiscard())
	require.NoError(t, err)

	return &DB{DB: db, Builder: builder}
}
