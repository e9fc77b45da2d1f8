package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SlotBookingService/pkg/validator"
)

// Service сервис администрирования календаря: шаблоны рабочих часов, праздники, настройки
type Service struct {
	calendarRepo CalendarRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	calendarRepo CalendarRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// settings текущие настройки; нужны для "сегодня" и запрещенных дней
func (s *Service) settings(ctx context.Context, op string) (*domain.BookingSettings, error) {
	settings, err := s.calendarRepo.GetSettings(ctx)
	if err != nil {
		s.logger.Error("%s: failed to get settings: %v", op, err)
		return nil, fmt.Errorf("%w: %s - failed to get settings: %w", ErrInternal, op, err)
	}
	return settings, nil
}

func parseWeekday(weekday int) (time.Weekday, error) {
	if weekday < int(time.Sunday) || weekday > int(time.Saturday) {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWeekday, weekday)
	}
	return time.Weekday(weekday), nil
}

func validate(v interface{}) error {
	if violations := validator.Validate(v); violations != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, violations)
	}
	return nil
}

// repoError переводит ошибки репозитория в ошибки сервиса
func (s *Service) repoError(op string, err error) error {
	switch {
	case errors.Is(err, calendarRepo.ErrTemplateNotFound):
		return ErrTemplateNotFound
	case errors.Is(err, calendarRepo.ErrSlotNotFound):
		return ErrSlotNotFound
	case errors.Is(err, calendarRepo.ErrSlotExists):
		return ErrSlotAlreadyExists
	case errors.Is(err, calendarRepo.ErrHolidayNotFound):
		return ErrHolidayNotFound
	case errors.Is(err, calendarRepo.ErrHolidayExists):
		return ErrHolidayExists
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
