package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/calendar/models"
)

// GetSettings текущие настройки бронирования
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.settings(ctx, "GetSettings")
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// UpdateSettings частичное обновление настроек
// Новый запрещенный день недели отклоняется, если на него есть открытые бронирования начиная с сегодня
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating booking settings")

	// 1. Валидация
	if err := validate(req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	current, err := s.settings(ctx, "UpdateSettings")
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения к копии
	updated := *current
	if err := applySettings(&updated, req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	now := s.timeProvider.Now()

	// 3. Проверяем новые запрещенные дни недели
	added := addedWeekdays(current.ForbiddenWeekdays, updated.ForbiddenWeekdays)
	if len(added) > 0 {
		dates, err := s.bookingRepo.ListOpenDatesFrom(ctx, updated.Today(now))
		if err != nil {
			s.logger.Error("UpdateSettings: failed to list booked dates: %v", err)
			return nil, fmt.Errorf("%w: UpdateSettings - failed to list booked dates: %w", ErrInternal, err)
		}
		for _, d := range dates {
			for _, w := range added {
				if d.Weekday() == w {
					s.logger.Warn("UpdateSettings: %s has open bookings on %s", w, d)
					return nil, fmt.Errorf("%w: %s (%s)", ErrForbiddenDayHasBookings, w, d)
				}
			}
		}
	}

	// 4. Сохраняем
	updated.UpdatedAt = now.UTC()
	if err := s.calendarRepo.SaveSettings(ctx, updated); err != nil {
		return nil, s.repoError("UpdateSettings", err)
	}

	s.logger.Info("UpdateSettings: horizon=%d, forbidden=%v, offset=%d, categories=%v",
		updated.HorizonDays, domain.WeekdayNames(updated.ForbiddenWeekdays), updated.TimezoneOffsetHours, updated.Categories)
	return models.FromDomainSettings(&updated), nil
}

func applySettings(settings *domain.BookingSettings, req *models.UpdateSettingsRequest) error {
	if req.HorizonDays != nil {
		if *req.HorizonDays < domain.MinHorizonDays || *req.HorizonDays > domain.MaxHorizonDays {
			return fmt.Errorf("%w: horizonDays must be between %d and %d",
				ErrInvalidInput, domain.MinHorizonDays, domain.MaxHorizonDays)
		}
		settings.HorizonDays = *req.HorizonDays
	}

	if req.TimezoneOffsetHours != nil {
		offset := *req.TimezoneOffsetHours
		if offset < domain.MinTimezoneOffsetHours || offset > domain.MaxTimezoneOffsetHours {
			return fmt.Errorf("%w: timezoneOffsetHours must be between %d and %d",
				ErrInvalidInput, domain.MinTimezoneOffsetHours, domain.MaxTimezoneOffsetHours)
		}
		settings.TimezoneOffsetHours = offset
	}

	if req.ForbiddenWeekdays != nil {
		weekdays := make([]time.Weekday, 0, len(*req.ForbiddenWeekdays))
		seen := make(map[time.Weekday]bool)
		for _, name := range *req.ForbiddenWeekdays {
			w, err := domain.ParseWeekday(name)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if !seen[w] {
				seen[w] = true
				weekdays = append(weekdays, w)
			}
		}
		settings.ForbiddenWeekdays = weekdays
	}

	if req.Categories != nil {
		categories := make([]string, 0, len(*req.Categories))
		seen := make(map[string]bool)
		for _, c := range *req.Categories {
			c = strings.TrimSpace(c)
			if len(c) < domain.MinCategoryLength || len(c) > domain.MaxCategoryLength {
				return fmt.Errorf("%w: category %q must be %d-%d characters",
					ErrInvalidInput, c, domain.MinCategoryLength, domain.MaxCategoryLength)
			}
			if !seen[c] {
				seen[c] = true
				categories = append(categories, c)
			}
		}
		if len(categories) == 0 || len(categories) > domain.MaxCategories {
			return fmt.Errorf("%w: 1-%d categories required", ErrInvalidInput, domain.MaxCategories)
		}
		settings.Categories = categories
	}

	return nil
}

// addedWeekdays дни недели из next, которых не было в prev
func addedWeekdays(prev, next []time.Weekday) []time.Weekday {
	had := make(map[time.Weekday]bool, len(prev))
	for _, w := range prev {
		had[w] = true
	}

	var added []time.Weekday
	for _, w := range next {
		if !had[w] {
			added = append(added, w)
		}
	}
	return added
}
