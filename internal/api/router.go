// Package api собирает маршруты HTTP API
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	cancelBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_admin_bookings"
	getAvailabilityHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_user_bookings"
	holidaysHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/holidays"
	settingsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/settings"
	workingHoursHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/working_hours"
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
)

// Handlers обработчики всех маршрутов
type Handlers struct {
	Availability  *getAvailabilityHandler.Handler
	CreateBooking *createBookingHandler.Handler
	UserBookings  *getUserBookingsHandler.Handler
	GetBooking    *getBookingHandler.Handler
	CancelBooking *cancelBookingHandler.Handler
	AdminBookings *getAdminBookingsHandler.Handler
	Settings      *settingsHandler.Handler
	WorkingHours  *workingHoursHandler.Handler
	Holidays      *holidaysHandler.Handler
}

// Options настройки маршрутизатора
type Options struct {
	JWTSecret      []byte
	RequestTimeout time.Duration
	Metrics        middleware.HTTPMetrics // nil - без HTTP метрик
	MetricsPath    string                 // пусто - без /metrics
	MetricsHandler http.Handler
	Health         http.HandlerFunc
}

// NewRouter регистрирует маршруты /api/v1 и служебные эндпоинты
func NewRouter(h Handlers, opts Options, logger middleware.Logger) *mux.Router {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	// Служебные эндпоинты (без аутентификации и таймаута)
	if opts.MetricsPath != "" && opts.MetricsHandler != nil {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}
	if opts.Health != nil {
		r.HandleFunc("/healthz", opts.Health).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(opts.RequestTimeout))
	api.Use(middleware.Authenticate(opts.JWTSecret, logger))

	// ============================================================
	// PUBLIC ROUTES (identity опциональна)
	// ============================================================

	api.HandleFunc("/availability", h.Availability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", h.UserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", h.GetBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", h.CancelBooking.Handle).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES (JWT с role=admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(logger))

	admin.HandleFunc("/bookings", h.AdminBookings.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/settings", h.Settings.Get).Methods(http.MethodGet)
	admin.HandleFunc("/settings", h.Settings.Update).Methods(http.MethodPut)

	admin.HandleFunc("/working-hours", h.WorkingHours.List).Methods(http.MethodGet)
	admin.HandleFunc("/working-hours/{weekday}", h.WorkingHours.Add).Methods(http.MethodPost)
	admin.HandleFunc("/working-hours/{weekday}", h.WorkingHours.Replace).Methods(http.MethodPut)
	admin.HandleFunc("/working-hours/{weekday}", h.WorkingHours.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/holidays", h.Holidays.List).Methods(http.MethodGet)
	admin.HandleFunc("/holidays", h.Holidays.Create).Methods(http.MethodPost)
	admin.HandleFunc("/holidays/{holidayId}", h.Holidays.Update).Methods(http.MethodPut)
	admin.HandleFunc("/holidays/{holidayId}", h.Holidays.Delete).Methods(http.MethodDelete)

	return r
}
