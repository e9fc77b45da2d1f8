package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// ClosedReason explains why a date offers no slots at all
type ClosedReason string

const (
	ClosedNone             ClosedReason = ""
	ClosedForbiddenWeekday ClosedReason = "ForbiddenWeekday"
	ClosedHoliday          ClosedReason = "Holiday"
	ClosedNoTemplate       ClosedReason = "NoTemplate"
)

// AvailableDay bookable slots of one calendar date
type AvailableDay struct {
	Date    types.Date
	Weekday time.Weekday
	Slots   []types.TimeLabel

	// ClosedReason is set when the date is closed as a whole
	ClosedReason ClosedReason

	// Err is a configuration error for this date only; Slots is empty then
	Err error
}

// HasSlot returns true if the slot is among the available ones
func (d *AvailableDay) HasSlot(slot types.TimeLabel) bool {
	for _, s := range d.Slots {
		if s.Minutes() == slot.Minutes() {
			return true
		}
	}
	return false
}
