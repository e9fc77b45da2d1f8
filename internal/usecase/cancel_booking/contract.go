package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, now time.Time) error
}

// SettingsRepository интерфейс чтения настроек бронирования
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.BookingSettings, error)
}

// AvailabilityService интерфейс расчета доступных слотов
type AvailabilityService interface {
	Day(ctx context.Context, settings domain.BookingSettings, date types.Date, now time.Time) (domain.AvailableDay, error)
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// Metrics интерфейс счетчиков бронирований
type Metrics interface {
	ObserveBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
