package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Статусы бронирования в ответах
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Пагинация списка администратора
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Request модели

// ListBookingsRequest фильтр списка бронирований администратора
type ListBookingsRequest struct {
	Date          *string // YYYY-MM-DD, точная дата
	From          *string // YYYY-MM-DD, включительно
	To            *string // YYYY-MM-DD, включительно
	ShowCancelled bool
	ShowExpired   bool
	Keyword       string `validate:"omitempty,max=50"` // Подстрока имени или телефона
	Limit         int    `validate:"min=0,max=200"`
	Offset        int    `validate:"min=0"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		ShowCancelled: r.ShowCancelled,
		ShowExpired:   r.ShowExpired,
		Keyword:       r.Keyword,
		Limit:         r.Limit,
		Offset:        r.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultLimit
	}

	var err error
	if filter.Date, err = parseOptionalDate("date", r.Date); err != nil {
		return filter, err
	}
	if filter.From, err = parseOptionalDate("from", r.From); err != nil {
		return filter, err
	}
	if filter.To, err = parseOptionalDate("to", r.To); err != nil {
		return filter, err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, fmt.Errorf("to %s is before from %s", filter.To, filter.From)
	}

	return filter, nil
}

func parseOptionalDate(name string, value *string) (*types.Date, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	d, err := types.ParseDate(*value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &d, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64     `json:"id"`
	UserID       *string   `json:"userId,omitempty"`
	VisitorID    *string   `json:"visitorId,omitempty"`
	ContactName  string    `json:"contactName"`
	ContactPhone string    `json:"contactPhone"`
	Date         string    `json:"date"`    // "2025-10-15"
	Slot         string    `json:"slot"`    // "09:00 AM"
	Weekday      string    `json:"weekday"` // "Wednesday"
	Category     string    `json:"category"`
	Notes        *string   `json:"notes,omitempty"`
	Status       string    `json:"status"`
	IsCancelled  bool      `json:"isCancelled"`
	IsExpired    bool      `json:"isExpired"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		ContactName:  b.ContactName,
		ContactPhone: b.ContactPhone,
		Date:         b.Date.String(),
		Slot:         b.Slot.String(),
		Weekday:      b.Date.Weekday().String(),
		Category:     b.Category,
		Notes:        b.Notes,
		Status:       Status(b),
		IsCancelled:  b.IsCancelled,
		IsExpired:    b.IsExpired,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.Subject.UserID != "" {
		userID := b.Subject.UserID
		resp.UserID = &userID
	} else {
		visitorID := b.Subject.VisitorID
		resp.VisitorID = &visitorID
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, total int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    total,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// Status отмена важнее просрочки
func Status(b *domain.Booking) string {
	switch {
	case b.IsCancelled:
		return StatusCancelled
	case b.IsExpired:
		return StatusExpired
	default:
		return StatusActive
	}
}
