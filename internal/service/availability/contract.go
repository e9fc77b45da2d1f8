package availability

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// CalendarRepository источник шаблонов и праздников
type CalendarRepository interface {
	ListTemplates(ctx context.Context) ([]*domain.WorkingHoursTemplate, error)
	ListHolidaysInRange(ctx context.Context, from, to types.Date) ([]*domain.Holiday, error)
}

// BookingRepository источник занятых слотов
type BookingRepository interface {
	ListActiveByDateRange(ctx context.Context, from, to types.Date) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
