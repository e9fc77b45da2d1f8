package holidays

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/calendar/models"
)

const (
	msgInvalidHolidayID   = "некорректный ID праздника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFlag        = "upcoming должен быть true или false"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/holidays[?upcoming=true]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	upcoming := false
	if raw := r.URL.Query().Get("upcoming"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
		upcoming = parsed
	}

	resp, err := h.service.ListHolidays(r.Context(), upcoming)
	if err != nil {
		h.logger.Warn("GET /admin/holidays - Failed to list holidays: %s", handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/v1/admin/holidays
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.AddHoliday(r.Context(), &req)
	if err != nil {
		h.logger.Warn("POST /admin/holidays - Failed to add holiday on %s: %s", req.Date, handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PUT /api/v1/admin/holidays/{holidayId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.holidayID(w, r)
	if !ok {
		return
	}

	var req models.UpdateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/holidays/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateHoliday(r.Context(), id, &req)
	if err != nil {
		h.logger.Warn("PUT /admin/holidays/%d - Failed to update holiday: %s", id, handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/admin/holidays/{holidayId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.holidayID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteHoliday(r.Context(), id); err != nil {
		h.logger.Warn("DELETE /admin/holidays/%d - Failed to delete holiday: %s", id, handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondNoContent(w)
}

func (h *Handler) holidayID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["holidayId"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("%s /admin/holidays/{id} - Invalid holiday ID: %q", r.Method, mux.Vars(r)["holidayId"])
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return 0, false
	}
	return id, true
}
