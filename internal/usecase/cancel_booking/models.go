package cancel_booking

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// Request модель запроса на отмену
type Request struct {
	BookingID int64
	Subject   domain.Subject // Кто отменяет
	IsAdmin   bool           // Администратор может отменить любое бронирование
}

// Response отмененное бронирование и пересчитанные слоты его даты
type Response struct {
	Booking *domain.Booking
	Day     domain.AvailableDay
}
