package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/sqlerr"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	availability AvailabilityService
	txManager    TransactionManager
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
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		availability: availability,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности слота и запись идут в одной сериализуемой транзакции;
// частичный уникальный индекс по (дата, слот) среди неотмененных бронирований не даёт занять слот дважды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%q, visitor=%q, date=%s, slot=%s, category=%s",
		req.Subject.UserID, req.Subject.VisitorID, req.Date, req.Slot, req.Category)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки бронирования (до транзакции)
	settings, err := uc.settingsRepo.GetSettings(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	// 4. Категория
	if err := validateCategory(req.Category, *settings); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5. Слот должен начинаться в будущем
	if err := validateNotInPast(req, now, *settings); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 6. Дата в пределах горизонта бронирования
	if err := validateWithinHorizon(req, now, *settings); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 7. Анонимному посетителю без токена выдаём новый
	subject := req.Subject
	if subject.IsZero() {
		subject.VisitorID = uuid.NewString()
		uc.logger.Info("CreateBooking: issued visitor token %s", subject.VisitorID)
	}

	var (
		result      *domain.Booking
		reactivated bool
	)

	// 8. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Порядок слотов в пределах дня (администратор не ограничен)
		if !req.IsAdmin && !subject.IsZero() {
			open, err := uc.bookingRepo.ListOpenBySubjectOnDate(txCtx, subject, req.Date)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get open bookings: %v", err)
				return fmt.Errorf("%w: failed to get open bookings: %w", ErrInternal, err)
			}
			if err := validateOrder(req, open); err != nil {
				uc.logger.Warn("CreateBooking: %v", err)
				return err
			}
		}

		// 8.2. Повторная проверка доступности слота
		day, err := uc.availability.Day(txCtx, *settings, req.Date, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute slots: %v", err)
			return fmt.Errorf("%w: failed to compute slots: %w", ErrInternal, err)
		}
		if !day.HasSlot(req.Slot) {
			uc.logger.Warn("CreateBooking: slot %s on %s is not available (closed=%q)", req.Slot, req.Date, day.ClosedReason)
			if day.ClosedReason != domain.ClosedNone {
				return fmt.Errorf("%w: date is closed: %s", ErrSlotUnavailable, day.ClosedReason)
			}
			return ErrSlotUnavailable
		}

		// 8.3. Восстанавливаем отмененное бронирование того же клиента на тот же слот
		cancelled, err := uc.bookingRepo.FindCancelled(txCtx, subject, req.Date, req.Slot)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to find cancelled booking: %v", err)
			return fmt.Errorf("%w: failed to find cancelled booking: %w", ErrInternal, err)
		}

		if cancelled != nil {
			cancelled.ContactName = req.ContactName
			cancelled.ContactPhone = req.ContactPhone
			cancelled.Category = req.Category
			cancelled.Notes = req.Notes
			cancelled.UpdatedAt = now.UTC()

			if err := uc.bookingRepo.Reactivate(txCtx, cancelled); err != nil {
				return uc.writeError("reactivate", err)
			}

			result = cancelled
			reactivated = true
			return nil
		}

		// 8.4. Создаем новое бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			Subject:      subject,
			ContactName:  req.ContactName,
			ContactPhone: req.ContactPhone,
			Date:         req.Date,
			Slot:         req.Slot,
			Category:     req.Category,
			Notes:        req.Notes,
			CreatedAt:    now.UTC(),
			UpdatedAt:    now.UTC(),
		})
		if err != nil {
			return uc.writeError("create", err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Postgres может отклонить фиксацию сериализуемой транзакции
		if sqlerr.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization failure on commit: %v", err)
			err = fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
		}
		if errors.Is(err, ErrSlotUnavailable) {
			uc.metrics.ObserveBooking(metrics.OutcomeConflict)
		}
		return nil, err
	}

	// 9. Метрики и событие после фиксации транзакции
	eventType := events.TypeBookingCreated
	if reactivated {
		uc.metrics.ObserveBooking(metrics.OutcomeReactivated)
		eventType = events.TypeBookingReactivated
		uc.logger.Info("CreateBooking: reactivated booking id=%d", result.ID)
	} else {
		uc.metrics.ObserveBooking(metrics.OutcomeCreated)
		uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	}

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(eventType, result, now)); err != nil {
		uc.logger.Error("CreateBooking: failed to publish %s for booking id=%d: %v", eventType, result.ID, err)
	}

	return &Response{Booking: result, Reactivated: reactivated}, nil
}

// writeError конфликт уникального индекса или гонка при восстановлении -> ErrSlotUnavailable
func (uc *UseCase) writeError(op string, err error) error {
	if errors.Is(err, bookingRepo.ErrSlotTaken) || errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Warn("CreateBooking: %s lost the race for the slot: %v", op, err)
		return fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
	}
	uc.logger.Error("CreateBooking: failed to %s booking: %v", op, err)
	return fmt.Errorf("%w: failed to %s booking: %w", ErrInternal, op, err)
}
