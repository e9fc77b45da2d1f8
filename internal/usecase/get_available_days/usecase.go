package get_available_days

import (
	"context"
	"fmt"
)

// UseCase use case для получения доступных слотов на горизонт дней
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

// Execute возвращает horizonDays последовательных дат начиная с локального "сегодня"
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Получаем настройки бронирования
	settings, err := uc.settingsRepo.GetSettings(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableDays: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	// 3. Определяем горизонт
	horizon, err := resolveHorizon(req, *settings)
	if err != nil {
		uc.logger.Warn("GetAvailableDays: validation failed: %v", err)
		return nil, err
	}

	today := settings.Today(now)
	uc.logger.Info("GetAvailableDays: from=%s, horizon=%d", today, horizon)

	// 4. Считаем слоты по всем датам одним снимком
	days, err := uc.availability.Days(ctx, *settings, today, horizon, now)
	if err != nil {
		uc.logger.Error("GetAvailableDays: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %w", ErrInternal, err)
	}

	return &Response{Today: today, Days: days}, nil
}
