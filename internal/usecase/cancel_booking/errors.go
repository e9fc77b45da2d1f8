package cancel_booking

import (
	"errors"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректном ID
	ErrInvalidInput = domain.NewReasonError(domain.ErrValidation, domain.ReasonInvalidInput,
		"cancel_booking: booking id must be positive")

	// ErrBookingNotFound бронирование не найдено или уже отменено
	ErrBookingNotFound = domain.NewReasonError(domain.ErrNotFound, domain.ReasonBookingNotFound,
		"cancel_booking: booking not found or already cancelled")

	// ErrAccessDenied отменить может только владелец или администратор
	ErrAccessDenied = domain.NewReasonError(domain.ErrAccessDenied, domain.ReasonNotOwner,
		"cancel_booking: booking belongs to another requester")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
