package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidSlot        = "некорректный формат слота, ожидается HH:MM AM/PM"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// 201 - создано новое бронирование, 200 - восстановлено отмененное
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Без identity бронирует анонимный посетитель, токен выдаст use case
	identity, _ := middleware.IdentityFromContext(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(identity)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeLabel) {
			handlers.RespondBadRequest(w, msgInvalidSlot)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to create booking on %s %s: %s",
			req.Date, req.Slot, handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Reactivated {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings - Booking saved: booking_id=%d, date=%s, slot=%s, reactivated=%t",
		result.Booking.ID, result.Booking.Date, result.Booking.Slot, result.Reactivated)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
