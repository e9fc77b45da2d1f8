package get_available_days

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

var (
	// ErrOutOfHorizon возвращается, когда запрошенный горизонт вне допустимых пределов
	ErrOutOfHorizon = domain.NewReasonError(domain.ErrValidation, domain.ReasonOutOfHorizon,
		fmt.Sprintf("get_available_days: horizonDays must be between %d and %d", domain.MinHorizonDays, domain.MaxHorizonDays))

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_days: internal error")
)
