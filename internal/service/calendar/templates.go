package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/calendar/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// ListTemplates шаблоны всех дней недели, для которых заданы слоты
func (s *Service) ListTemplates(ctx context.Context) ([]*models.TemplateResponse, error) {
	templates, err := s.calendarRepo.ListTemplates(ctx)
	if err != nil {
		return nil, s.repoError("ListTemplates", err)
	}

	result := make([]*models.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		result = append(result, models.FromDomainTemplate(t))
	}
	return result, nil
}

// AddSlots добавляет слоты в конец шаблона, пропуская уже существующие и повторы
// Все метки проверяются до записи: одна неверная метка отклоняет весь запрос
func (s *Service) AddSlots(ctx context.Context, weekday int, req *models.AddSlotsRequest) (*models.TemplateResponse, error) {
	s.logger.Info("AddSlots: weekday=%d, slots=%v", weekday, req.Slots)

	// 1. Валидация
	day, err := parseWeekday(weekday)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	labels := make([]types.TimeLabel, 0, len(req.Slots))
	for _, raw := range req.Slots {
		label, err := types.ParseTimeLabel(raw)
		if err != nil {
			s.logger.Warn("AddSlots: invalid label %q", raw)
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlotLabel, raw)
		}
		labels = append(labels, label)
	}

	// 2. Дописываем новые слоты в одной транзакции
	var result *domain.WorkingHoursTemplate
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.calendarRepo.GetTemplate(txCtx, day)
		if err != nil && !errors.Is(err, calendarRepo.ErrTemplateNotFound) {
			return s.repoError("AddSlots", err)
		}
		if current == nil {
			current = &domain.WorkingHoursTemplate{Weekday: day}
		}

		for _, label := range labels {
			if current.IndexOf(label) >= 0 {
				continue
			}
			if err := s.calendarRepo.AppendSlot(txCtx, day, label); err != nil {
				return s.repoError("AddSlots", err)
			}
			current.Slots = append(current.Slots, label)
		}

		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AddSlots: %s now has %d slots", day, len(result.Slots))
	return models.FromDomainTemplate(result), nil
}

// ReplaceSlot заменяет слот на новый, сохраняя позицию
func (s *Service) ReplaceSlot(ctx context.Context, weekday int, req *models.ReplaceSlotRequest) (*models.TemplateResponse, error) {
	s.logger.Info("ReplaceSlot: weekday=%d, %q -> %q", weekday, req.OldSlot, req.NewSlot)

	day, err := parseWeekday(weekday)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	oldSlot, err := types.ParseTimeLabel(req.OldSlot)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlotLabel, req.OldSlot)
	}
	newSlot, err := types.ParseTimeLabel(req.NewSlot)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlotLabel, req.NewSlot)
	}

	var result *domain.WorkingHoursTemplate
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.calendarRepo.GetTemplate(txCtx, day)
		if err != nil {
			return s.repoError("ReplaceSlot", err)
		}
		if current.IndexOf(oldSlot) < 0 {
			return ErrSlotNotFound
		}
		if oldSlot.Minutes() == newSlot.Minutes() {
			result = current
			return nil
		}
		if current.IndexOf(newSlot) >= 0 {
			return ErrSlotAlreadyExists
		}

		if err := s.calendarRepo.ReplaceSlot(txCtx, day, oldSlot, newSlot); err != nil {
			return s.repoError("ReplaceSlot", err)
		}

		current.Slots[current.IndexOf(oldSlot)] = newSlot
		result = current
		return nil
	})
	if err != nil {
		s.logger.Warn("ReplaceSlot: %v", err)
		return nil, err
	}

	return models.FromDomainTemplate(result), nil
}

// RemoveSlot удаляет один слот из шаблона
func (s *Service) RemoveSlot(ctx context.Context, weekday int, label string) error {
	s.logger.Info("RemoveSlot: weekday=%d, slot=%q", weekday, label)

	day, err := parseWeekday(weekday)
	if err != nil {
		return err
	}
	slot, err := types.ParseTimeLabel(label)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSlotLabel, label)
	}

	if _, err := s.calendarRepo.GetTemplate(ctx, day); err != nil {
		return s.repoError("RemoveSlot", err)
	}
	if err := s.calendarRepo.RemoveSlot(ctx, day, slot); err != nil {
		return s.repoError("RemoveSlot", err)
	}
	return nil
}

// ClearTemplate удаляет все слоты дня недели
func (s *Service) ClearTemplate(ctx context.Context, weekday int) error {
	s.logger.Info("ClearTemplate: weekday=%d", weekday)

	day, err := parseWeekday(weekday)
	if err != nil {
		return err
	}
	if err := s.calendarRepo.ClearTemplate(ctx, day); err != nil {
		return s.repoError("ClearTemplate", err)
	}
	return nil
}
