package handlers

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// dayErrorInternal код ошибки, когда слоты даты не удалось посчитать
const dayErrorInternal = "Internal"

// AvailableDayResponse доступность одной даты
type AvailableDayResponse struct {
	Date         string   `json:"date"`    // "2025-10-15"
	Weekday      string   `json:"weekday"` // "Wednesday"
	Slots        []string `json:"slots"`   // ["09:00 AM", ...] в порядке шаблона
	ClosedReason string   `json:"closedReason,omitempty"`
	Error        string   `json:"error,omitempty"` // Код ошибки расчета слотов даты
}

// FromAvailableDay конвертирует доступность даты в DTO
func FromAvailableDay(day domain.AvailableDay) AvailableDayResponse {
	slots := make([]string, len(day.Slots))
	for i, s := range day.Slots {
		slots[i] = s.String()
	}

	resp := AvailableDayResponse{
		Date:         day.Date.String(),
		Weekday:      day.Weekday.String(),
		Slots:        slots,
		ClosedReason: string(day.ClosedReason),
	}
	if day.Err != nil {
		if reason, ok := domain.ReasonOf(day.Err); ok {
			resp.Error = string(reason)
		} else {
			resp.Error = dayErrorInternal
		}
	}
	return resp
}
