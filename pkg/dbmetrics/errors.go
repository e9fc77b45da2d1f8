package dbmetrics

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
)

// IsTransient сообщает, что ошибка вызвана недоступностью хранилища
// (таймаут, отмена контекста, потеря соединения), и операцию можно повторить целиком
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
