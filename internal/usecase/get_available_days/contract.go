package get_available_days

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// SettingsRepository интерфейс чтения настроек бронирования
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.BookingSettings, error)
}

// AvailabilityService интерфейс расчета доступных слотов
type AvailabilityService interface {
	Days(ctx context.Context, settings domain.BookingSettings, from types.Date, count int, now time.Time) ([]domain.AvailableDay, error)
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
