package calendar

import (
	"errors"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewReasonError(domain.ErrValidation, domain.ReasonInvalidInput,
		"calendar: invalid input data")

	// ErrInvalidWeekday день недели вне 0-6
	ErrInvalidWeekday = domain.NewReasonError(domain.ErrValidation, domain.ReasonInvalidInput,
		"calendar: weekday must be between 0 (Sunday) and 6 (Saturday)")

	// ErrInvalidSlotLabel метка не в формате "HH:MM AM/PM"
	ErrInvalidSlotLabel = domain.NewReasonError(domain.ErrValidation, domain.ReasonInvalidInput,
		"calendar: slot label must be in HH:MM AM/PM format")

	// ErrTemplateNotFound для дня недели нет слотов
	ErrTemplateNotFound = domain.NewReasonError(domain.ErrNotFound, domain.ReasonNoTemplate,
		"calendar: no working hours for this weekday")

	// ErrSlotNotFound слота нет в шаблоне
	ErrSlotNotFound = domain.NewReasonError(domain.ErrNotFound, domain.ReasonSlotNotFound,
		"calendar: slot not found in template")

	// ErrSlotAlreadyExists новый слот уже есть в шаблоне
	ErrSlotAlreadyExists = domain.NewReasonError(domain.ErrValidation, domain.ReasonSlotExists,
		"calendar: slot already exists in template")

	// ErrHolidayNotFound праздник не найден
	ErrHolidayNotFound = domain.NewReasonError(domain.ErrNotFound, domain.ReasonHolidayNotFound,
		"calendar: holiday not found")

	// ErrHolidayExists на дату уже есть праздник
	ErrHolidayExists = domain.NewReasonError(domain.ErrValidation, domain.ReasonHolidayExists,
		"calendar: holiday already exists for this date")

	// ErrHolidayInPast дата праздника раньше сегодняшней
	ErrHolidayInPast = domain.NewReasonError(domain.ErrValidation, domain.ReasonPastDate,
		"calendar: holiday date is in the past")

	// ErrHolidayOnForbiddenDay дата и так закрыта запрещенным днем недели
	ErrHolidayOnForbiddenDay = domain.NewReasonError(domain.ErrValidation, domain.ReasonForbiddenWeekday,
		"calendar: holiday falls on a forbidden weekday")

	// ErrHolidayHasBookings на дату есть открытые бронирования
	ErrHolidayHasBookings = domain.NewReasonError(domain.ErrValidation, domain.ReasonHasBookings,
		"calendar: date has open bookings, cancel them first")

	// ErrForbiddenDayHasBookings на новый запрещенный день недели есть открытые бронирования
	ErrForbiddenDayHasBookings = domain.NewReasonError(domain.ErrValidation, domain.ReasonHasBookings,
		"calendar: weekday has open bookings, cancel them first")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar: internal error")
)
