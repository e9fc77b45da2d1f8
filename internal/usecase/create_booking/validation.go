package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/validator"
)

// validateRequest валидирует формат входных данных
func validateRequest(req *Request) error {
	req.ContactName = strings.TrimSpace(req.ContactName)
	req.ContactPhone = strings.TrimSpace(req.ContactPhone)
	req.Category = strings.TrimSpace(req.Category)

	if violations := validator.Validate(req); violations != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, violations)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Slot.IsZero() {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}

	if req.Subject.UserID != "" && req.Subject.VisitorID != "" {
		return fmt.Errorf("%w: booking belongs either to a user or to a visitor", ErrInvalidInput)
	}

	if id := req.Subject.VisitorID; id != "" && (len(id) < domain.MinVisitorIDLength || len(id) > domain.MaxVisitorIDLength) {
		return fmt.Errorf("%w: visitor token must be %d-%d characters", ErrInvalidInput,
			domain.MinVisitorIDLength, domain.MaxVisitorIDLength)
	}

	return nil
}

// validateCategory категория должна быть одной из настроенных
func validateCategory(category string, settings domain.BookingSettings) error {
	if !settings.HasCategory(category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return nil
}

// validateNotInPast начало слота (в часовом поясе сервиса) должно быть строго позже now
func validateNotInPast(req *Request, now time.Time, settings domain.BookingSettings) error {
	start := req.Date.At(req.Slot.Minutes(), settings.Location())
	if !start.After(now) {
		return fmt.Errorf("%w: %s %s", ErrPastBooking, req.Date, req.Slot)
	}
	return nil
}

// validateOrder новый слот должен быть строго позже каждого открытого бронирования клиента на этот день
func validateOrder(req *Request, open []*domain.Booking) error {
	for _, b := range open {
		if !req.Slot.After(b.Slot) {
			return fmt.Errorf("%w: existing booking id=%d at %s", ErrOutOfOrder, b.ID, b.Slot)
		}
	}
	return nil
}

// validateWithinHorizon дата не дальше последнего дня горизонта (сегодня + HorizonDays - 1)
func validateWithinHorizon(req *Request, now time.Time, settings domain.BookingSettings) error {
	last := settings.Today(now).AddDays(settings.HorizonDays - 1)
	if req.Date.After(last) {
		return fmt.Errorf("%w: %s is after %s", ErrOutOfHorizon, req.Date, last)
	}
	return nil
}
