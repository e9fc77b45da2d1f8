package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

var (
	// ErrOpen ошибка открытия соединения с БД
	ErrOpen = errors.New("database: failed to open database")

	// ErrMigrate ошибка применения миграций
	ErrMigrate = errors.New("database: failed to apply migrations")
)

// PoolOptions параметры пула соединений postgres
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// OpenPostgres открывает пул соединений lib/pq и проверяет его
func OpenPostgres(ctx context.Context, dsn string, pool PoolOptions) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres: %v", ErrOpen, err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: postgres ping: %v", ErrOpen, err)
	}

	return db, nil
}

// OpenSQLite открывает файл SQLite (modernc.org/sqlite)
// Пул ограничен одним соединением: транзакции выполняются строго по очереди,
// поэтому внутри транзакции все запросы должны идти через её контекст
func OpenSQLite(ctx context.Context, path string, busyTimeoutMs int) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("%w: sqlite dir: %v", ErrOpen, err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", path, busyTimeoutMs)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite: %v", ErrOpen, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: sqlite ping: %v", ErrOpen, err)
	}

	return db, nil
}

// Dialect диалект SQL для драйвера из конфигурации
func Dialect(driver string) (psqlbuilder.Builder, error) {
	return psqlbuilder.New(driver)
}
