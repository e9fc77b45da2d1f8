package create_booking

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ContactName  string  `json:"contactName"`
	ContactPhone string  `json:"contactPhone"`
	Date         string  `json:"date"` // "2025-10-15"
	Slot         string  `json:"slot"` // "09:00 AM"
	Category     string  `json:"category"`
	Notes        *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
// VisitorID возвращается анонимному клиенту: с ним он может посмотреть и отменить бронирование
type CreateBookingResponse struct {
	Booking     *models.BookingResponse `json:"booking"`
	Reactivated bool                    `json:"reactivated"`
	VisitorID   *string                 `json:"visitorId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с разбором даты и метки слота)
func (r *CreateBookingRequest) ToUseCaseRequest(identity middleware.Identity) (*createBooking.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	slot, err := types.ParseTimeLabel(r.Slot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Subject:      identity.Subject,
		IsAdmin:      identity.IsAdmin(),
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		Date:         date,
		Slot:         slot,
		Category:     r.Category,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	result := &CreateBookingResponse{
		Booking:     models.FromDomainBooking(resp.Booking),
		Reactivated: resp.Reactivated,
	}
	if resp.Booking.Subject.IsAnonymous() {
		visitorID := resp.Booking.Subject.VisitorID
		result.VisitorID = &visitorID
	}
	return result
}
