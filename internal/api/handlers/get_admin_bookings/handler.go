package get_admin_bookings

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings/models"
)

const (
	msgInvalidQuery = "некорректные параметры запроса"
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

// Handle GET /api/v1/admin/bookings
//
// Параметры (все опциональны):
// - date=YYYY-MM-DD или from/to
// - showCancelled, showExpired
// - keyword - подстрока имени или телефона
// - limit, offset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Failed to list bookings: %s", handlers.Describe(err))
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func parseQuery(q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Keyword: q.Get("keyword")}

	for name, target := range map[string]**string{"date": &req.Date, "from": &req.From, "to": &req.To} {
		if v := q.Get(name); v != "" {
			value := v
			*target = &value
		}
	}

	for name, target := range map[string]*bool{"showCancelled": &req.ShowCancelled, "showExpired": &req.ShowExpired} {
		if v := q.Get(name); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return nil, err
			}
			*target = parsed
		}
	}

	for name, target := range map[string]*int{"limit": &req.Limit, "offset": &req.Offset} {
		if v := q.Get(name); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return nil, err
			}
			*target = parsed
		}
	}

	return req, nil
}
