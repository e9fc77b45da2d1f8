package bookings

import (
	"errors"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewReasonError(domain.ErrNotFound, domain.ReasonBookingNotFound,
		"bookings: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому клиенту
	ErrAccessDenied = domain.NewReasonError(domain.ErrAccessDenied, domain.ReasonNotOwner,
		"bookings: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewReasonError(domain.ErrValidation, domain.ReasonInvalidInput,
		"bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
