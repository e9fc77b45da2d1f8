package availability

import "errors"

var (
	// ErrLoadCalendar не удалось получить шаблоны или праздники
	ErrLoadCalendar = errors.New("availability: failed to load calendar rules")

	// ErrLoadBookings не удалось получить занятые слоты
	ErrLoadBookings = errors.New("availability: failed to load bookings")
)
