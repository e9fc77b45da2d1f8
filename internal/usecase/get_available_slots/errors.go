package get_available_slots

import (
	"errors"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewReasonError(domain.ErrValidation, domain.ReasonInvalidInput, "get_available_slots: date is required")

	// ErrPastDate возвращается, когда запрошенная дата раньше сегодняшней (по локальному времени)
	ErrPastDate = domain.NewReasonError(domain.ErrValidation, domain.ReasonPastDate, "get_available_slots: date is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
