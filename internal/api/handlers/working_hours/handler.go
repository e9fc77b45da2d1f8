package working_hours

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/calendar/models"
)

const (
	msgInvalidWeekday     = "день недели должен быть числом от 0 (воскресенье) до 6 (суббота)"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// List GET /api/v1/admin/working-hours
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates(r.Context())
	if err != nil {
		h.logger.Warn("GET /admin/working-hours - Failed to list templates: %s", handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, templates)
}

// Add POST /api/v1/admin/working-hours/{weekday}
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	weekday, ok := h.weekday(w, r)
	if !ok {
		return
	}

	var req models.AddSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/working-hours/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.AddSlots(r.Context(), weekday, &req)
	if err != nil {
		h.logger.Warn("POST /admin/working-hours/%d - Failed to add slots: %s", weekday, handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Replace PUT /api/v1/admin/working-hours/{weekday}
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	weekday, ok := h.weekday(w, r)
	if !ok {
		return
	}

	var req models.ReplaceSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/working-hours/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.ReplaceSlot(r.Context(), weekday, &req)
	if err != nil {
		h.logger.Warn("PUT /admin/working-hours/%d - Failed to replace slot: %s", weekday, handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/v1/admin/working-hours/{weekday}[?slot=09:00 AM]
// С параметром slot удаляется один слот, без него - весь шаблон дня
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	weekday, ok := h.weekday(w, r)
	if !ok {
		return
	}

	var err error
	if slot := r.URL.Query().Get("slot"); slot != "" {
		err = h.service.RemoveSlot(r.Context(), weekday, slot)
	} else {
		err = h.service.ClearTemplate(r.Context(), weekday)
	}
	if err != nil {
		h.logger.Warn("DELETE /admin/working-hours/%d - Failed: %s", weekday, handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondNoContent(w)
}

func (h *Handler) weekday(w http.ResponseWriter, r *http.Request) (int, bool) {
	weekday, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil || weekday < 0 || weekday > 6 {
		h.logger.Warn("%s /admin/working-hours/{weekday} - Invalid weekday: %q", r.Method, mux.Vars(r)["weekday"])
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return 0, false
	}
	return weekday, true
}
