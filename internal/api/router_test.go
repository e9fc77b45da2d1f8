package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/calendar"
	cancelBookingUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/create_booking"
	getAvailableDaysUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_days"
	getAvailableSlotsUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_slots"
	sweepExpiredUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/sweep_expired"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

var jwtSecret = []byte("router-test-secret")

// newTestRouter собирает весь стек на временной SQLite базе
// Часовой пояс UTC+0, запрещенных дней нет, у каждого дня недели слоты 09:00 AM и 10:00 AM
func newTestRouter(t *testing.T) http.Handler {
	ctx := context.Background()
	log := logger.NewDiscard()

	db := storagetest.NewSQLite(t)
	calendarRepository := calendarRepo.NewRepository(db, db.Builder)
	bookingRepository := bookingRepo.NewRepository(db, db.Builder)

	_, err := calendarRepository.EnsureSettings(ctx, domain.BookingSettings{
		HorizonDays:         3,
		TimezoneOffsetHours: 0,
		Categories:          []string{"consultation"},
	})
	require.NoError(t, err)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		for _, slot := range []string{"09:00 AM", "10:00 AM"} {
			require.NoError(t, calendarRepository.AppendSlot(ctx, weekday, types.MustParseTimeLabel(slot)))
		}
	}

	txManager := txmanager.NewDefaultIsolation(db)
	metricsCollector := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	publisher := events.Noop{}

	availabilitySvc := availability.NewService(calendarRepository, bookingRepository, log)
	sweeper := sweepExpiredUC.NewUseCase(bookingRepository, calendarRepository, publisher, metricsCollector, log)
	bookingSvc := bookings.NewService(bookingRepository, sweeper, log)
	calendarSvc := calendar.NewService(calendarRepository, bookingRepository, txManager, log)

	h := Handlers{
		Availability: getAvailabilityHandler.NewHandler(
			getAvailableSlotsUC.NewUseCase(calendarRepository, availabilitySvc, log),
			getAvailableDaysUC.NewUseCase(calendarRepository, availabilitySvc, log),
			log,
		),
		CreateBooking: createBookingHandler.NewHandler(
			createBookingUC.NewUseCase(bookingRepository, calendarRepository, availabilitySvc, txManager, publisher, metricsCollector, log),
			log,
		),
		UserBookings: getUserBookingsHandler.NewHandler(bookingSvc, log),
		GetBooking:   getBookingHandler.NewHandler(bookingSvc, log),
		CancelBooking: cancelBookingHandler.NewHandler(
			cancelBookingUC.NewUseCase(bookingRepository, calendarRepository, availabilitySvc, publisher, metricsCollector, log),
			log,
		),
		AdminBookings: getAdminBookingsHandler.NewHandler(bookingSvc, log),
		Settings:      settingsHandler.NewHandler(calendarSvc, log),
		WorkingHours:  workingHoursHandler.NewHandler(calendarSvc, log),
		Holidays:      holidaysHandler.NewHandler(calendarSvc, log),
	}

	return NewRouter(h, Options{
		JWTSecret:      jwtSecret,
		RequestTimeout: 5 * time.Second,
		Metrics:        metricsCollector,
		Health:         func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
	}, log)
}

func bearer(t *testing.T, sub, role string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwtSecret)
	require.NoError(t, err)
	return "Bearer " + token
}

type call struct {
	method  string
	path    string
	body    interface{}
	auth    string
	visitor string
}

func do(t *testing.T, router http.Handler, c call) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if c.body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &body)
	if c.auth != "" {
		req.Header.Set("Authorization", c.auth)
	}
	if c.visitor != "" {
		req.Header.Set(middleware.VisitorHeader, c.visitor)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func tomorrow() string {
	return types.DateOf(time.Now().UTC()).AddDays(1).String()
}

func bookingBody(date, slot string) map[string]interface{} {
	return map[string]interface{}{
		"contactName":  "Mona Adel",
		"contactPhone": "01012345678",
		"date":         date,
		"slot":         slot,
		"category":     "consultation",
	}
}

func TestRouter_BookingLifecycle(t *testing.T) {
	router := newTestRouter(t)
	date := tomorrow()

	// 1. Анонимный посетитель бронирует и получает токен
	rec := do(t, router, call{method: http.MethodPost, path: "/api/v1/bookings", body: bookingBody(date, "09:00 AM")})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created createBookingHandler.CreateBookingResponse
	decode(t, rec, &created)
	require.NotNil(t, created.VisitorID)
	visitorID := *created.VisitorID
	bookingID := created.Booking.ID
	assert.Equal(t, "active", created.Booking.Status)

	// 2. Слот исчез из доступных
	rec = do(t, router, call{method: http.MethodGet, path: "/api/v1/availability?date=" + date})
	require.Equal(t, http.StatusOK, rec.Code)
	var day struct {
		Slots []string `json:"slots"`
	}
	decode(t, rec, &day)
	assert.Equal(t, []string{"10:00 AM"}, day.Slots)

	// 3. Тот же слот для другого клиента - конфликт
	rec = do(t, router, call{method: http.MethodPost, path: "/api/v1/bookings",
		body: bookingBody(date, "09:00 AM"), auth: bearer(t, "user-1", domain.RoleUser)})
	require.Equal(t, http.StatusConflict, rec.Code)
	var conflict struct {
		Reason string `json:"reason"`
	}
	decode(t, rec, &conflict)
	assert.Equal(t, "SlotUnavailable", conflict.Reason)

	// 4. Владелец видит бронирование, чужой посетитель - нет
	path := fmt.Sprintf("/api/v1/bookings/%d", bookingID)
	assert.Equal(t, http.StatusOK, do(t, router, call{method: http.MethodGet, path: path, visitor: visitorID}).Code)
	assert.Equal(t, http.StatusForbidden, do(t, router, call{method: http.MethodGet, path: path, visitor: "someone-else"}).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, call{method: http.MethodGet, path: path}).Code)

	// 5. Отмена возвращает освободившийся слот
	rec = do(t, router, call{method: http.MethodDelete, path: path, visitor: visitorID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cancelled cancelBookingHandler.CancelBookingResponse
	decode(t, rec, &cancelled)
	assert.Equal(t, "cancelled", cancelled.Booking.Status)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, cancelled.Day.Slots)

	rec = do(t, router, call{method: http.MethodDelete, path: path, visitor: visitorID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// 6. Повторное бронирование восстанавливает ту же запись
	rec = do(t, router, call{method: http.MethodPost, path: "/api/v1/bookings",
		body: bookingBody(date, "09:00 AM"), visitor: visitorID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var reactivated createBookingHandler.CreateBookingResponse
	decode(t, rec, &reactivated)
	assert.True(t, reactivated.Reactivated)
	assert.Equal(t, bookingID, reactivated.Booking.ID)

	// 7. Список своих бронирований
	rec = do(t, router, call{method: http.MethodGet, path: "/api/v1/bookings", visitor: visitorID})
	require.Equal(t, http.StatusOK, rec.Code)
	var mine struct {
		Bookings []struct {
			ID int64 `json:"id"`
		} `json:"bookings"`
	}
	decode(t, rec, &mine)
	require.Len(t, mine.Bookings, 1)
	assert.Equal(t, bookingID, mine.Bookings[0].ID)
}

func TestRouter_Validation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		c          call
		wantStatus int
		wantReason string
	}{
		{
			name:       "bad slot format",
			c:          call{method: http.MethodPost, path: "/api/v1/bookings", body: bookingBody(tomorrow(), "9 am")},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown category",
			c: call{method: http.MethodPost, path: "/api/v1/bookings", body: map[string]interface{}{
				"contactName": "Mona Adel", "contactPhone": "01012345678",
				"date": tomorrow(), "slot": "09:00 AM", "category": "massage",
			}},
			wantStatus: http.StatusBadRequest,
			wantReason: "InvalidCategory",
		},
		{
			name: "booking beyond horizon",
			c: call{method: http.MethodPost, path: "/api/v1/bookings",
				body: bookingBody(types.DateOf(time.Now().UTC()).AddDays(10).String(), "09:00 AM")},
			wantStatus: http.StatusBadRequest,
			wantReason: "OutOfHorizon",
		},
		{
			name:       "past date",
			c:          call{method: http.MethodGet, path: "/api/v1/availability?date=2020-01-01"},
			wantStatus: http.StatusBadRequest,
			wantReason: "PastDate",
		},
		{
			name:       "horizon out of range",
			c:          call{method: http.MethodGet, path: "/api/v1/availability?horizonDays=31"},
			wantStatus: http.StatusBadRequest,
			wantReason: "OutOfHorizon",
		},
		{
			name:       "invalid token",
			c:          call{method: http.MethodGet, path: "/api/v1/availability", auth: "Bearer nope"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.c)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantReason != "" {
				var resp struct {
					Reason string `json:"reason"`
				}
				decode(t, rec, &resp)
				assert.Equal(t, tt.wantReason, resp.Reason)
			}
		})
	}
}

func TestRouter_Availability(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, call{method: http.MethodGet, path: "/api/v1/availability"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp getAvailabilityHandler.DaysResponse
	decode(t, rec, &resp)
	assert.Len(t, resp.Days, 3)
	assert.Equal(t, types.DateOf(time.Now().UTC()).String(), resp.Today)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, resp.Days[1].Slots)

	rec = do(t, router, call{method: http.MethodGet, path: "/api/v1/availability?horizonDays=7"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Len(t, resp.Days, 7)
}

func TestRouter_Admin(t *testing.T) {
	router := newTestRouter(t)
	admin := bearer(t, "admin-1", domain.RoleAdmin)
	user := bearer(t, "user-1", domain.RoleUser)
	date := tomorrow()

	require.Equal(t, http.StatusCreated, do(t, router, call{method: http.MethodPost, path: "/api/v1/bookings",
		body: bookingBody(date, "10:00 AM"), auth: user}).Code)

	// доступ
	assert.Equal(t, http.StatusForbidden, do(t, router, call{method: http.MethodGet, path: "/api/v1/admin/bookings", auth: user}).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, call{method: http.MethodGet, path: "/api/v1/admin/bookings"}).Code)

	// список бронирований
	rec := do(t, router, call{method: http.MethodGet, path: "/api/v1/admin/bookings?keyword=mona&date=" + date, auth: admin})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list struct {
		Total int `json:"total"`
	}
	decode(t, rec, &list)
	assert.Equal(t, 1, list.Total)

	// праздник на дату с бронированием
	rec = do(t, router, call{method: http.MethodPost, path: "/api/v1/admin/holidays",
		body: map[string]string{"date": date}, auth: admin})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// праздник на свободную дату закрывает ее
	free := types.DateOf(time.Now().UTC()).AddDays(2).String()
	rec = do(t, router, call{method: http.MethodPost, path: "/api/v1/admin/holidays",
		body: map[string]string{"date": free}, auth: admin})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, call{method: http.MethodGet, path: "/api/v1/availability?date=" + free})
	require.Equal(t, http.StatusOK, rec.Code)
	var day struct {
		Slots        []string `json:"slots"`
		ClosedReason string   `json:"closedReason"`
	}
	decode(t, rec, &day)
	assert.Empty(t, day.Slots)
	assert.Equal(t, "Holiday", day.ClosedReason)

	// шаблон рабочих часов
	rec = do(t, router, call{method: http.MethodPost, path: "/api/v1/admin/working-hours/1",
		body: map[string][]string{"slots": {"11:00 AM"}}, auth: admin})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusBadRequest, do(t, router, call{method: http.MethodPost, path: "/api/v1/admin/working-hours/9",
		body: map[string][]string{"slots": {"11:00 AM"}}, auth: admin}).Code)
	assert.Equal(t, http.StatusNoContent, do(t, router, call{method: http.MethodDelete,
		path: "/api/v1/admin/working-hours/1?slot=11:00%20AM", auth: admin}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, call{method: http.MethodDelete,
		path: "/api/v1/admin/working-hours/1?slot=11:00%20AM", auth: admin}).Code)

	// настройки
	rec = do(t, router, call{method: http.MethodPut, path: "/api/v1/admin/settings",
		body: map[string]int{"horizonDays": 5}, auth: admin})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, router, call{method: http.MethodGet, path: "/api/v1/availability"})
	var days getAvailabilityHandler.DaysResponse
	decode(t, rec, &days)
	assert.Len(t, days.Days, 5)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)
	assert.Equal(t, http.StatusOK, do(t, router, call{method: http.MethodGet, path: "/healthz"}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, call{method: http.MethodGet, path: "/api/v1/unknown"}).Code)
}
