package cancel_booking

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
)

// CancelBookingResponse отмененное бронирование и обновленные слоты его даты
type CancelBookingResponse struct {
	Booking *models.BookingResponse       `json:"booking"`
	Day     handlers.AvailableDayResponse `json:"day"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Day:     handlers.FromAvailableDay(resp.Day),
	}
}
