package get_available_days

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// resolveHorizon горизонт из запроса или из настроек
func resolveHorizon(req *Request, settings domain.BookingSettings) (int, error) {
	if req.HorizonDays == nil {
		return min(max(settings.HorizonDays, domain.MinHorizonDays), domain.MaxHorizonDays), nil
	}

	horizon := *req.HorizonDays
	if horizon < domain.MinHorizonDays || horizon > domain.MaxHorizonDays {
		return 0, ErrOutOfHorizon
	}
	return horizon, nil
}
