package calendar

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/sqlerr"
)

var (
	// ErrTemplateNotFound для дня недели не настроено ни одного слота
	ErrTemplateNotFound = errors.New("calendar.repository: working hours template not found")

	// ErrSlotNotFound слота нет в шаблоне дня недели
	ErrSlotNotFound = errors.New("calendar.repository: slot not found in template")

	// ErrSlotExists слот уже есть в шаблоне дня недели
	ErrSlotExists = errors.New("calendar.repository: slot already exists in template")

	// ErrHolidayNotFound праздник не найден
	ErrHolidayNotFound = errors.New("calendar.repository: holiday not found")

	// ErrHolidayExists на эту дату уже есть праздник
	ErrHolidayExists = errors.New("calendar.repository: holiday already exists for this date")

	// ErrSettingsNotFound настройки бронирования еще не созданы
	ErrSettingsNotFound = errors.New("calendar.repository: booking settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendar.repository: failed to scan row")
)

// execError оборачивает ошибку драйвера; conflict - ошибка для нарушения уникальности (может быть nil)
func execError(op string, err error, conflict error) error {
	switch {
	case conflict != nil && sqlerr.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s: %v", conflict, op, err)
	case sqlerr.IsTransient(err):
		return fmt.Errorf("%w: %w: %s: %v", ErrExecQuery, domain.ErrStoreUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}
