package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/sqlerr"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или не в ожидаемом состоянии
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда на слот уже есть неотмененное бронирование
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// execError оборачивает ошибку драйвера
// Конфликт по уникальному индексу слота -> ErrSlotTaken, недоступность БД -> domain.ErrStoreUnavailable
func execError(op string, err error) error {
	switch {
	case sqlerr.IsUniqueViolation(err), sqlerr.IsSerializationFailure(err):
		return fmt.Errorf("%w: %s: %v", ErrSlotTaken, op, err)
	case sqlerr.IsTransient(err):
		return fmt.Errorf("%w: %w: %s: %v", ErrExecQuery, domain.ErrStoreUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}
