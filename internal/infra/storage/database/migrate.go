package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

//go:embed migrations
var migrationsFS embed.FS

// DB соединение, в котором можно выполнять запросы и открывать транзакции
type DB interface {
	dbmetrics.DBExecutor
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

type migration struct {
	version int
	name    string
	sql     string
}

// Migrate применяет непримененные миграции диалекта builder
// Версия схемы хранится в таблице schema_version, каждая миграция выполняется в своей транзакции
func Migrate(ctx context.Context, db DB, builder psqlbuilder.Builder, logger Logger) (int, error) {
	migrations, err := readMigrations(builder.Dialect())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	if _, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)"); err != nil {
		return 0, fmt.Errorf("%w: create schema_version: %v", ErrMigrate, err)
	}

	current, err := currentVersion(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	if len(migrations) > 0 && current > migrations[len(migrations)-1].version {
		return 0, fmt.Errorf("%w: schema version %d is newer than supported %d",
			ErrMigrate, current, migrations[len(migrations)-1].version)
	}

	applied := 0
	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		if err := apply(ctx, db, builder, m); err != nil {
			return applied, fmt.Errorf("%w: migration %d (%s): %v", ErrMigrate, m.version, m.name, err)
		}
		logger.Info("Applied migration %d: %s", m.version, m.name)
		applied++
	}

	return applied, nil
}

func apply(ctx context.Context, db DB, builder psqlbuilder.Builder, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		_ = tx.Rollback()
		return err
	}

	query, args, err := builder.Insert("schema_version").Columns("version").Values(m.version).ToSql()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func currentVersion(ctx context.Context, db dbmetrics.DBExecutor) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %v", err)
	}
	return version, nil
}

// readMigrations читает файлы NNN_name.sql диалекта, отсортированные по версии
func readMigrations(dialect string) ([]migration, error) {
	sub, err := fs.Sub(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations for %s: %v", dialect, err)
	}

	migrations := make([]migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(e.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid migration filename %s", e.Name())
		}
		version, err := strconv.Atoi(parts[0])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("invalid migration version in %s", e.Name())
		}

		content, err := fs.ReadFile(sub, e.Name())
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, migration{
			version: version,
			name:    strings.TrimSuffix(parts[1], ".sql"),
			sql:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].version == migrations[i-1].version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].version)
		}
	}

	return migrations, nil
}
