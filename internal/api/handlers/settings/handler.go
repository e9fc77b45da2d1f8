package settings

import (
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/calendar/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/admin/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetSettings(r.Context())
	if err != nil {
		h.logger.Warn("GET /admin/settings - Failed to get settings: %s", handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Update PUT /api/v1/admin/settings - обновляются только переданные поля
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		h.logger.Warn("PUT /admin/settings - Failed to update settings: %s", handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /admin/settings - Settings updated")
	handlers.RespondJSON(w, http.StatusOK, resp)
}
