package get_available_slots

import (
	"context"
	"fmt"
)

// UseCase use case для получения доступных слотов на одну дату
type UseCase struct {
	settingsRepo SettingsRepository
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(settingsRepo SettingsRepository, availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		settingsRepo: settingsRepo,
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Закрытая дата (запрещенный день недели, праздник, нет шаблона) не ошибка: возвращается пустой список с причиной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки бронирования
	settings, err := uc.settingsRepo.GetSettings(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	// 4. Дата не должна быть в прошлом
	if err := validateDate(req.Date, now, *settings); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s is before today %s", req.Date, settings.Today(now))
		return nil, err
	}

	// 5. Считаем слоты
	day, err := uc.availability.Day(ctx, *settings, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to compute slots: %w", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: date=%s, slots=%d, closed=%q", req.Date, len(day.Slots), day.ClosedReason)

	return &Response{
		Date:         day.Date,
		Weekday:      day.Weekday,
		Slots:        day.Slots,
		ClosedReason: day.ClosedReason,
	}, nil
}
