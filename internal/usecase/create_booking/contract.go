package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindCancelled(ctx context.Context, subject domain.Subject, date types.Date, slot types.TimeLabel) (*domain.Booking, error)
	ListOpenBySubjectOnDate(ctx context.Context, subject domain.Subject, date types.Date) ([]*domain.Booking, error)
	Reactivate(ctx context.Context, booking *domain.Booking) error
}

// SettingsRepository интерфейс чтения настроек бронирования
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.BookingSettings, error)
}

// AvailabilityService интерфейс расчета доступных слотов
type AvailabilityService interface {
	Day(ctx context.Context, settings domain.BookingSettings, date types.Date, now time.Time) (domain.AvailableDay, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
