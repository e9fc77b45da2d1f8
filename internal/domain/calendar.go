package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// WorkingHoursTemplate slots offered on a weekday, in administrative order
type WorkingHoursTemplate struct {
	Weekday time.Weekday
	Slots   []types.TimeLabel

	// Malformed stored labels that failed to parse.
	// A template with malformed labels yields no slots for its dates.
	Malformed []string
}

// IsEmpty returns true if the template offers nothing
func (t *WorkingHoursTemplate) IsEmpty() bool {
	return len(t.Slots) == 0 && len(t.Malformed) == 0
}

// IndexOf returns the position of the slot with the same minutes, or -1
func (t *WorkingHoursTemplate) IndexOf(slot types.TimeLabel) int {
	for i, s := range t.Slots {
		if s.Minutes() == slot.Minutes() {
			return i
		}
	}
	return -1
}

// Holiday a calendar date closed for booking
type Holiday struct {
	ID          int64
	Date        types.Date
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
