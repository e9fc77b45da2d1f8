package events

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// Type тип события; используется как routing key
type Type string

const (
	TypeBookingCreated     Type = "booking.created"
	TypeBookingReactivated Type = "booking.reactivated"
	TypeBookingCancelled   Type = "booking.cancelled"
	TypeBookingExpired     Type = "booking.expired"
)

// BookingEvent сообщение для внешних потребителей (рассылка писем)
type BookingEvent struct {
	Type         Type      `json:"type"`
	OccurredAt   time.Time `json:"occurredAt"`
	BookingID    int64     `json:"bookingId"`
	UserID       *string   `json:"userId,omitempty"`
	VisitorID    *string   `json:"visitorId,omitempty"`
	ContactName  string    `json:"contactName"`
	ContactPhone string    `json:"contactPhone"`
	Date         string    `json:"date"`
	Slot         string    `json:"slot"`
	Category     string    `json:"category"`
	Notes        *string   `json:"notes,omitempty"`
}

// NewBookingEvent снимок бронирования на момент события
func NewBookingEvent(eventType Type, booking *domain.Booking, at time.Time) BookingEvent {
	event := BookingEvent{
		Type:         eventType,
		OccurredAt:   at.UTC(),
		BookingID:    booking.ID,
		ContactName:  booking.ContactName,
		ContactPhone: booking.ContactPhone,
		Date:         booking.Date.String(),
		Slot:         booking.Slot.String(),
		Category:     booking.Category,
		Notes:        booking.Notes,
	}

	if booking.Subject.UserID != "" {
		userID := booking.Subject.UserID
		event.UserID = &userID
	}
	if booking.Subject.VisitorID != "" {
		visitorID := booking.Subject.VisitorID
		event.VisitorID = &visitorID
	}

	return event
}
