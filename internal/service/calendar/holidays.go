package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/calendar/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// ListHolidays праздники по дате; fromToday - только начиная с сегодняшнего дня
func (s *Service) ListHolidays(ctx context.Context, fromToday bool) ([]*models.HolidayResponse, error) {
	var from *types.Date
	if fromToday {
		settings, err := s.settings(ctx, "ListHolidays")
		if err != nil {
			return nil, err
		}
		today := settings.Today(s.timeProvider.Now())
		from = &today
	}

	holidays, err := s.calendarRepo.ListHolidays(ctx, from)
	if err != nil {
		return nil, s.repoError("ListHolidays", err)
	}

	result := make([]*models.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		result = append(result, models.FromDomainHoliday(h))
	}
	return result, nil
}

// AddHoliday закрывает дату для бронирования
func (s *Service) AddHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("AddHoliday: date=%s", req.Date)

	// 1. Валидация
	if err := validate(req); err != nil {
		return nil, err
	}
	date, err := types.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	description := domain.DefaultHolidayDescription
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		description = strings.TrimSpace(*req.Description)
	}

	now := s.timeProvider.Now()

	// 2. Проверки даты
	if err := s.checkHolidayDate(ctx, "AddHoliday", date, now); err != nil {
		return nil, err
	}

	// 3. Создаем праздник (дубликат отсекает уникальный индекс)
	created, err := s.calendarRepo.CreateHoliday(ctx, &domain.Holiday{
		Date:        date,
		Description: description,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	})
	if err != nil {
		return nil, s.repoError("AddHoliday", err)
	}

	s.logger.Info("AddHoliday: created holiday id=%d on %s", created.ID, created.Date)
	return models.FromDomainHoliday(created), nil
}

// UpdateHoliday меняет дату и/или описание праздника
func (s *Service) UpdateHoliday(ctx context.Context, id int64, req *models.UpdateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("UpdateHoliday: id=%d", id)

	if err := validate(req); err != nil {
		return nil, err
	}

	holiday, err := s.calendarRepo.GetHolidayByID(ctx, id)
	if err != nil {
		return nil, s.repoError("UpdateHoliday", err)
	}

	now := s.timeProvider.Now()

	if req.Date != nil {
		date, err := types.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if date != holiday.Date {
			if err := s.checkHolidayDate(ctx, "UpdateHoliday", date, now); err != nil {
				return nil, err
			}
			holiday.Date = date
		}
	}

	if req.Description != nil {
		holiday.Description = strings.TrimSpace(*req.Description)
		if holiday.Description == "" {
			holiday.Description = domain.DefaultHolidayDescription
		}
	}

	holiday.UpdatedAt = now.UTC()
	if err := s.calendarRepo.UpdateHoliday(ctx, holiday); err != nil {
		return nil, s.repoError("UpdateHoliday", err)
	}

	return models.FromDomainHoliday(holiday), nil
}

// DeleteHoliday снова открывает дату
func (s *Service) DeleteHoliday(ctx context.Context, id int64) error {
	s.logger.Info("DeleteHoliday: id=%d", id)

	if err := s.calendarRepo.DeleteHoliday(ctx, id); err != nil {
		return s.repoError("DeleteHoliday", err)
	}
	return nil
}

// checkHolidayDate дата не в прошлом, не на запрещенном дне недели и без открытых бронирований
func (s *Service) checkHolidayDate(ctx context.Context, op string, date types.Date, now time.Time) error {
	settings, err := s.settings(ctx, op)
	if err != nil {
		return err
	}

	if date.Before(settings.Today(now)) {
		s.logger.Warn("%s: date %s is in the past", op, date)
		return fmt.Errorf("%w: %s", ErrHolidayInPast, date)
	}

	if settings.IsForbidden(date.Weekday()) {
		s.logger.Warn("%s: date %s is a forbidden %s", op, date, date.Weekday())
		return fmt.Errorf("%w: %s", ErrHolidayOnForbiddenDay, date.Weekday())
	}

	count, err := s.bookingRepo.CountOpenOnDate(ctx, date)
	if err != nil {
		s.logger.Error("%s: failed to count bookings on %s: %v", op, date, err)
		return fmt.Errorf("%w: %s - failed to count bookings: %w", ErrInternal, op, err)
	}
	if count > 0 {
		s.logger.Warn("%s: date %s has %d open bookings", op, date, count)
		return fmt.Errorf("%w: %d on %s", ErrHolidayHasBookings, count, date)
	}

	return nil
}
