package get_user_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
)

const (
	msgMissingIdentity = "требуется токен пользователя или посетителя"
	msgInvalidFlag     = "includeInactive должен быть true или false"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	includeInactive := false
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
		includeInactive = parsed
	}

	resp, err := h.service.ListForSubject(r.Context(), identity.Subject, includeInactive)
	if err != nil {
		h.logger.Warn("GET /bookings - Failed to list bookings: %s", handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /bookings - Listed %d bookings", len(resp.Bookings))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
