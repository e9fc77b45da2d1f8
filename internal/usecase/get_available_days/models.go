package get_available_days

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Request модель запроса доступности на несколько дней
type Request struct {
	HorizonDays *int // Количество дней начиная с сегодня; nil - из настроек
}

// Response доступность по дням; пустые дни тоже включены
type Response struct {
	Today types.Date
	Days  []domain.AvailableDay
}
