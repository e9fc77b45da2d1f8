package create_booking

import (
	"errors"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewReasonError(domain.ErrValidation, domain.ReasonInvalidInput,
		"create_booking: invalid input data")

	// ErrInvalidCategory возвращается, когда категория не из настроек
	ErrInvalidCategory = domain.NewReasonError(domain.ErrValidation, domain.ReasonInvalidCategory,
		"create_booking: unknown category")

	// ErrPastBooking возвращается, когда начало слота не позже текущего момента
	ErrPastBooking = domain.NewReasonError(domain.ErrValidation, domain.ReasonPastBooking,
		"create_booking: slot start is not in the future")

	// ErrOutOfHorizon возвращается, когда дата дальше горизонта бронирования
	ErrOutOfHorizon = domain.NewReasonError(domain.ErrValidation, domain.ReasonOutOfHorizon,
		"create_booking: date is beyond the booking horizon")

	// ErrOutOfOrder возвращается, когда у клиента уже есть открытое бронирование на этот день на тот же или более поздний слот
	ErrOutOfOrder = domain.NewReasonError(domain.ErrValidation, domain.ReasonOutOfOrder,
		"create_booking: slot must be later than your existing booking on this day")

	// ErrSlotUnavailable возвращается, когда слота нет среди доступных (занят, закрытая дата, нет в шаблоне)
	ErrSlotUnavailable = domain.NewReasonError(domain.ErrConflict, domain.ReasonSlotUnavailable,
		"create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
