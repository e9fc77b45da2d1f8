package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	availability AvailabilityService
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	availability AvailabilityService,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		availability: availability,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отменяет бронирование и возвращает освободившиеся слоты его даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: id=%d, user=%q, visitor=%q, admin=%t",
		req.BookingID, req.Subject.UserID, req.Subject.VisitorID, req.IsAdmin)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, ErrInvalidInput
	}

	now := uc.timeProvider.Now()

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	// 3. Проверяем права доступа
	if !req.IsAdmin && !booking.Subject.Matches(req.Subject) {
		uc.logger.Warn("CancelBooking: access denied to booking id=%d", req.BookingID)
		return nil, ErrAccessDenied
	}

	if booking.IsCancelled {
		uc.logger.Warn("CancelBooking: booking id=%d is already cancelled", req.BookingID)
		return nil, ErrBookingNotFound
	}

	// 4. Настройки читаем до отмены: ошибка здесь не оставляет изменений в БД
	settings, err := uc.settingsRepo.GetSettings(ctx)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	// 5. Отменяем (условный UPDATE: повторная отмена не пройдет)
	if err := uc.bookingRepo.Cancel(ctx, booking.ID, now.UTC()); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d was cancelled concurrently", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
	}

	booking.IsCancelled = true
	booking.UpdatedAt = now.UTC()
	uc.metrics.ObserveBooking(metrics.OutcomeCancelled)
	uc.logger.Info("CancelBooking: booking id=%d cancelled, slot %s %s is free", booking.ID, booking.Date, booking.Slot)

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.TypeBookingCancelled, booking, now)); err != nil {
		uc.logger.Error("CancelBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	// 6. Пересчитываем слоты даты
	// Отмена уже сохранена, поэтому ошибка пересчета не возвращается клиенту
	day, err := uc.availability.Day(ctx, *settings, booking.Date, now)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to compute slots for %s: %v", booking.Date, err)
		day = domain.AvailableDay{
			Date:    booking.Date,
			Weekday: booking.Date.Weekday(),
			Err:     fmt.Errorf("%w: failed to compute slots: %w", ErrInternal, err),
		}
	}

	return &Response{Booking: booking, Day: day}, nil
}
