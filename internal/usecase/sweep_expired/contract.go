package sweep_expired

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListDue(ctx context.Context, today types.Date, nowMinutes int) ([]*domain.Booking, error)
	MarkExpired(ctx context.Context, id int64, now time.Time) (bool, error)
}

// SettingsRepository интерфейс чтения настроек бронирования
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.BookingSettings, error)
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// Metrics интерфейс метрик прогона
type Metrics interface {
	ObserveSweep(expired int, seconds float64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
