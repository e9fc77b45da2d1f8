package sweep_expired

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
)

// UseCase помечает просроченными бронирования, чей слот уже начался
// Время передается параметром: решение о просрочке не зависит от планировщика
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	publisher    EventPublisher
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute один прогон очистки. Идемпотентен: повторный вызов с тем же now ничего не меняет
// Ошибка по отдельной записи логируется и не прерывает прогон
func (uc *UseCase) Execute(ctx context.Context, now time.Time) (*Response, error) {
	started := time.Now()

	// 1. Получаем настройки бронирования
	settings, err := uc.settingsRepo.GetSettings(ctx)
	if err != nil {
		uc.logger.Error("SweepExpired: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	// 2. Выбираем бронирования, чей слот начался (по локальному времени)
	today := settings.Today(now)
	due, err := uc.bookingRepo.ListDue(ctx, today, settings.LocalMinutes(now))
	if err != nil {
		uc.logger.Error("SweepExpired: failed to list due bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list due bookings: %w", ErrInternal, err)
	}

	resp := &Response{Due: len(due)}

	// 3. Помечаем каждое условным UPDATE
	for _, booking := range due {
		changed, err := uc.bookingRepo.MarkExpired(ctx, booking.ID, now.UTC())
		if err != nil {
			resp.Failed++
			uc.logger.Error("SweepExpired: failed to expire booking id=%d: %v", booking.ID, err)
			continue
		}
		if !changed {
			continue
		}

		resp.Expired++
		booking.IsExpired = true
		uc.publish(ctx, booking, now)
	}

	uc.metrics.ObserveSweep(resp.Expired, time.Since(started).Seconds())
	uc.logger.Info("SweepExpired: today=%s, due=%d, expired=%d, failed=%d", today, resp.Due, resp.Expired, resp.Failed)

	return resp, nil
}

// ExpireIfDue ленивая просрочка одной записи при чтении
// Возвращает true, если запись помечена сейчас
func (uc *UseCase) ExpireIfDue(ctx context.Context, booking *domain.Booking, now time.Time) (bool, error) {
	if !booking.IsActive() {
		return false, nil
	}

	settings, err := uc.settingsRepo.GetSettings(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	if !booking.IsDue(now, settings.Location()) {
		return false, nil
	}

	changed, err := uc.bookingRepo.MarkExpired(ctx, booking.ID, now.UTC())
	if err != nil {
		return false, fmt.Errorf("%w: failed to expire booking id=%d: %w", ErrInternal, booking.ID, err)
	}

	if changed {
		booking.IsExpired = true
		booking.UpdatedAt = now.UTC()
		uc.logger.Info("SweepExpired: lazily expired booking id=%d", booking.ID)
		uc.publish(ctx, booking, now)
	}

	return changed, nil
}

func (uc *UseCase) publish(ctx context.Context, booking *domain.Booking, now time.Time) {
	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.TypeBookingExpired, booking, now)); err != nil {
		uc.logger.Error("SweepExpired: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}
