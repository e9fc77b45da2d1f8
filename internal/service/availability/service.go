package availability

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Service загружает правила календаря и бронирования одним запросом на каждый вид данных
// и считает по ним доступные слоты
type Service struct {
	calendarRepo CalendarRepository
	bookingRepo  BookingRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(calendarRepo CalendarRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		bookingRepo:  bookingRepo,
		logger:       logger,
	}
}

// Load собирает снимок для диапазона дат [from, to]
// Вне транзакции три выборки идут параллельно; внутри транзакции - последовательно,
// так как соединение транзакции одно
func (s *Service) Load(ctx context.Context, settings domain.BookingSettings, from, to types.Date) (*Snapshot, error) {
	var (
		templates []*domain.WorkingHoursTemplate
		holidays  []*domain.Holiday
		bookings  []*domain.Booking
	)

	loadTemplates := func(ctx context.Context) error {
		var err error
		templates, err = s.calendarRepo.ListTemplates(ctx)
		if err != nil {
			return fmt.Errorf("%w: templates: %w", ErrLoadCalendar, err)
		}
		return nil
	}
	loadHolidays := func(ctx context.Context) error {
		var err error
		holidays, err = s.calendarRepo.ListHolidaysInRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("%w: holidays: %w", ErrLoadCalendar, err)
		}
		return nil
	}
	loadBookings := func(ctx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.ListActiveByDateRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLoadBookings, err)
		}
		return nil
	}

	loaders := []func(context.Context) error{loadTemplates, loadHolidays, loadBookings}

	if dbmetrics.IsInTransaction(ctx) {
		for _, load := range loaders {
			if err := load(ctx); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for _, load := range loaders {
			g.Go(func() error { return load(gctx) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return NewSnapshot(settings, templates, holidays, bookings), nil
}

// Day доступные слоты одной даты
func (s *Service) Day(ctx context.Context, settings domain.BookingSettings, date types.Date, now time.Time) (domain.AvailableDay, error) {
	snapshot, err := s.Load(ctx, settings, date, date)
	if err != nil {
		return domain.AvailableDay{}, err
	}

	day := snapshot.ComputeSlots(date, now)
	if day.Err != nil {
		s.logger.Error("Availability: date=%s has no slots due to configuration error: %v", date, day.Err)
	}

	return day, nil
}

// Days доступные слоты count последовательных дат начиная с from; пустые даты тоже возвращаются
// Ошибка конфигурации одной даты не прерывает расчет остальных
func (s *Service) Days(ctx context.Context, settings domain.BookingSettings, from types.Date, count int, now time.Time) ([]domain.AvailableDay, error) {
	if count <= 0 {
		return []domain.AvailableDay{}, nil
	}

	to := from.AddDays(count - 1)
	snapshot, err := s.Load(ctx, settings, from, to)
	if err != nil {
		return nil, err
	}

	days := make([]domain.AvailableDay, 0, count)
	for date := from; !date.After(to); date = date.AddDays(1) {
		day := snapshot.ComputeSlots(date, now)
		if day.Err != nil {
			s.logger.Error("Availability: date=%s has no slots due to configuration error: %v", date, day.Err)
		}
		days = append(days, day)
	}

	return days, nil
}
