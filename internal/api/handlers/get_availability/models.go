package get_availability

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	getAvailableDays "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_days"
	getAvailableSlots "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_slots"
)

// DaysResponse доступность на горизонт бронирования
type DaysResponse struct {
	Today string                          `json:"today"`
	Days  []handlers.AvailableDayResponse `json:"days"`
}

// FromSlotsResponse ответ для одной даты
func FromSlotsResponse(resp *getAvailableSlots.Response) handlers.AvailableDayResponse {
	return handlers.FromAvailableDay(domain.AvailableDay{
		Date:         resp.Date,
		Weekday:      resp.Weekday,
		Slots:        resp.Slots,
		ClosedReason: resp.ClosedReason,
	})
}

// FromDaysResponse ответ для нескольких дней
func FromDaysResponse(resp *getAvailableDays.Response) *DaysResponse {
	days := make([]handlers.AvailableDayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, handlers.FromAvailableDay(d))
	}
	return &DaysResponse{Today: resp.Today.String(), Days: days}
}
