package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// CalendarRepository интерфейс репозитория правил календаря
type CalendarRepository interface {
	ListTemplates(ctx context.Context) ([]*domain.WorkingHoursTemplate, error)
	GetTemplate(ctx context.Context, weekday time.Weekday) (*domain.WorkingHoursTemplate, error)
	AppendSlot(ctx context.Context, weekday time.Weekday, slot types.TimeLabel) error
	ReplaceSlot(ctx context.Context, weekday time.Weekday, oldSlot, newSlot types.TimeLabel) error
	RemoveSlot(ctx context.Context, weekday time.Weekday, slot types.TimeLabel) error
	ClearTemplate(ctx context.Context, weekday time.Weekday) error

	ListHolidays(ctx context.Context, from *types.Date) ([]*domain.Holiday, error)
	GetHolidayByID(ctx context.Context, id int64) (*domain.Holiday, error)
	CreateHoliday(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error)
	UpdateHoliday(ctx context.Context, holiday *domain.Holiday) error
	DeleteHoliday(ctx context.Context, id int64) error

	GetSettings(ctx context.Context) (*domain.BookingSettings, error)
	SaveSettings(ctx context.Context, settings domain.BookingSettings) error
}

// BookingRepository интерфейс проверки открытых бронирований
type BookingRepository interface {
	CountOpenOnDate(ctx context.Context, date types.Date) (int, error)
	ListOpenDatesFrom(ctx context.Context, from types.Date) ([]types.Date, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
