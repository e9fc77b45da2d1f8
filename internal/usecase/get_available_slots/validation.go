package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return ErrInvalidInput
	}
	return nil
}

// validateDate запрещает даты раньше локального "сегодня"
func validateDate(date types.Date, now time.Time, settings domain.BookingSettings) error {
	if date.Before(settings.Today(now)) {
		return ErrPastDate
	}
	return nil
}
