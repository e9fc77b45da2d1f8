package get_availability

import (
	"context"

	getAvailableDays "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_days"
	getAvailableSlots "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_slots"
)

type AvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

type AvailableDaysUseCase interface {
	Execute(ctx context.Context, req *getAvailableDays.Request) (*getAvailableDays.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
