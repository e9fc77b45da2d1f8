package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// BookingSettings calendar-wide booking rules.
// Fetched once per request and passed explicitly to the availability engine.
type BookingSettings struct {
	HorizonDays         int
	ForbiddenWeekdays   []time.Weekday
	TimezoneOffsetHours int
	Categories          []string
	UpdatedAt           time.Time
}

// Location returns the fixed-offset zone all calendar dates are interpreted in
func (s *BookingSettings) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", s.TimezoneOffsetHours), s.TimezoneOffsetHours*3600)
}

// Today returns the local calendar date at instant now
func (s *BookingSettings) Today(now time.Time) types.Date {
	return types.DateOf(now.In(s.Location()))
}

// LocalMinutes returns minutes since local midnight at instant now
func (s *BookingSettings) LocalMinutes(now time.Time) int {
	local := now.In(s.Location())
	return local.Hour()*60 + local.Minute()
}

// IsForbidden returns true if the weekday is always closed
func (s *BookingSettings) IsForbidden(weekday time.Weekday) bool {
	for _, w := range s.ForbiddenWeekdays {
		if w == weekday {
			return true
		}
	}
	return false
}

// HasCategory returns true if the category is one of the configured ones
func (s *BookingSettings) HasCategory(category string) bool {
	for _, c := range s.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ParseWeekday parses an English weekday name ("Friday", "fri" is not accepted)
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("domain: unknown weekday %q", name)
}

// WeekdayNames formats weekdays as English names
func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return names
}
