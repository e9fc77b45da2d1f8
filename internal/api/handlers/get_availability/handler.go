package get_availability

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	getAvailableDays "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_days"
	getAvailableSlots "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidHorizonDays = "horizonDays должен быть целым числом"
	msgDateAndHorizon     = "укажите либо date, либо horizonDays"
)

type Handler struct {
	slotsUseCase AvailableSlotsUseCase
	daysUseCase  AvailableDaysUseCase
	logger       Logger
}

func NewHandler(slotsUseCase AvailableSlotsUseCase, daysUseCase AvailableDaysUseCase, logger Logger) *Handler {
	return &Handler{
		slotsUseCase: slotsUseCase,
		daysUseCase:  daysUseCase,
		logger:       logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD | ?horizonDays=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dateStr := query.Get("date")
	horizonStr := query.Get("horizonDays")

	if dateStr != "" && horizonStr != "" {
		handlers.RespondBadRequest(w, msgDateAndHorizon)
		return
	}

	if dateStr != "" {
		h.handleDate(w, r, dateStr)
		return
	}

	// Несколько дней начиная с сегодня
	req := &getAvailableDays.Request{}
	if horizonStr != "" {
		horizon, err := strconv.Atoi(horizonStr)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid horizonDays: %q", horizonStr)
			handlers.RespondBadRequest(w, msgInvalidHorizonDays)
			return
		}
		req.HorizonDays = &horizon
	}

	resp, err := h.daysUseCase.Execute(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /availability - Failed to get days: %s", handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDaysResponse(resp))
}

func (h *Handler) handleDate(w http.ResponseWriter, r *http.Request, dateStr string) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.slotsUseCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date})
	if err != nil {
		h.logger.Warn("GET /availability - Failed to get slots for %s: %s", date, handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSlotsResponse(resp))
}
