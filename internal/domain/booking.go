package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Subject who owns a booking: a registered user or an anonymous visitor.
// Exactly one of the fields is set.
type Subject struct {
	UserID    string
	VisitorID string
}

// IsAnonymous returns true if the subject is not a registered user
func (s Subject) IsAnonymous() bool {
	return s.UserID == ""
}

// IsZero returns true if neither identity is set
func (s Subject) IsZero() bool {
	return s.UserID == "" && s.VisitorID == ""
}

// Matches reports whether both subjects refer to the same requester
func (s Subject) Matches(other Subject) bool {
	if s.UserID != "" {
		return s.UserID == other.UserID
	}
	return s.VisitorID != "" && s.VisitorID == other.VisitorID
}

// Booking represents a reserved slot on a calendar date
type Booking struct {
	ID           int64
	Subject      Subject
	ContactName  string
	ContactPhone string
	Date         types.Date
	Slot         types.TimeLabel
	Category     string
	Notes        *string

	IsCancelled bool
	IsExpired   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its slot and has not passed
func (b *Booking) IsActive() bool {
	return !b.IsCancelled && !b.IsExpired
}

// Instant returns the slot start as an absolute time in the given zone
func (b *Booking) Instant(loc *time.Location) time.Time {
	return b.Date.At(b.Slot.Minutes(), loc)
}

// IsDue returns true if the slot start is at or before now
func (b *Booking) IsDue(now time.Time, loc *time.Location) bool {
	return !b.Instant(loc).After(now)
}

// BookingsFilter admin listing filter
type BookingsFilter struct {
	Date          *types.Date // exact date
	From          *types.Date // inclusive
	To            *types.Date // inclusive
	ShowCancelled bool
	ShowExpired   bool
	Keyword       string // substring of contact name or phone
	Limit         int
	Offset        int
}
