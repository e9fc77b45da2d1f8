// Package sqlerr классифицирует ошибки драйверов lib/pq и modernc.org/sqlite
package sqlerr

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
)

// Коды ошибок PostgreSQL
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
		// без расширенных кодов остаётся только текст
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}

	return false
}

// IsSerializationFailure конкурентная транзакция помешала SERIALIZABLE транзакции
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgSerializationFailure || pqErr.Code == pgDeadlockDetected
	}
	return false
}

// IsTransient хранилище временно недоступно: таймаут, потеря соединения, занятая база SQLite
func IsTransient(err error) bool {
	if dbmetrics.IsTransient(err) {
		return true
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		primary := liteErr.Code() & 0xff
		return primary == sqlite3.SQLITE_BUSY || primary == sqlite3.SQLITE_LOCKED
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// class 08: connection exception, 57P01..03: admin shutdown / cannot connect now
		return pqErr.Code.Class() == "08" || strings.HasPrefix(string(pqErr.Code), "57P")
	}

	return false
}
