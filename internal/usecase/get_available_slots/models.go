package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Request модель запроса доступных слотов на дату
type Request struct {
	Date types.Date // Календарная дата в часовом поясе сервиса
}

// Response доступные слоты даты
type Response struct {
	Date         types.Date
	Weekday      time.Weekday
	Slots        []types.TimeLabel   // В порядке шаблона
	ClosedReason domain.ClosedReason // Пусто, если дата не закрыта целиком
}
