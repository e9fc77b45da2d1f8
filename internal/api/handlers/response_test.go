package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

var (
	errConflict = domain.NewReasonError(domain.ErrConflict, domain.ReasonSlotUnavailable, "slot is not available")
	errPast     = domain.NewReasonError(domain.ErrValidation, domain.ReasonPastBooking, "slot start is not in the future")
	errInternal = errors.New("usecase: internal error")
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantReason  string
		wantDetails bool
	}{
		{name: "conflict", err: errConflict, wantStatus: http.StatusConflict, wantReason: "SlotUnavailable"},
		{name: "wrapped validation", err: fmt.Errorf("%w: at 09:00 AM", errPast), wantStatus: http.StatusBadRequest, wantReason: "PastBooking", wantDetails: true},
		{
			name:       "not found",
			err:        domain.NewReasonError(domain.ErrNotFound, domain.ReasonBookingNotFound, "booking not found"),
			wantStatus: http.StatusNotFound,
			wantReason: "BookingNotFound",
		},
		{
			name:       "access denied",
			err:        domain.NewReasonError(domain.ErrAccessDenied, domain.ReasonNotOwner, "access denied"),
			wantStatus: http.StatusForbidden,
			wantReason: "NotOwner",
		},
		{
			name:       "malformed calendar",
			err:        domain.NewReasonError(domain.ErrConfiguration, domain.ReasonMalformedSlot, "bad label"),
			wantStatus: http.StatusInternalServerError,
			wantReason: "MalformedSlot",
		},
		{name: "internal", err: errInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.wantDetails, resp.Details != "")
		})
	}
}

func TestRespondDomainError_StoreUnavailable(t *testing.T) {
	err := fmt.Errorf("%w: get settings: %w", errInternal, fmt.Errorf("exec: %w: timeout", domain.ErrStoreUnavailable))

	rec := httptest.NewRecorder()
	RespondDomainError(rec, err)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, RetryAfterSeconds, rec.Header().Get("Retry-After"))
	assert.NotContains(t, rec.Body.String(), "timeout")
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Mona"}`},
		{name: "unknown field", body: `{"name":"Mona","age":3}`, wantErr: true},
		{name: "trailing data", body: `{"name":"Mona"}{}`, wantErr: true},
		{name: "broken", body: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Mona", p.Name)
		})
	}
}

func TestFromAvailableDay(t *testing.T) {
	day := domain.AvailableDay{
		Date:    types.NewDate(2025, time.October, 15),
		Weekday: time.Wednesday,
		Slots:   []types.TimeLabel{types.MustParseTimeLabel("10:00 AM"), types.MustParseTimeLabel("09:00 AM")},
	}
	resp := FromAvailableDay(day)
	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Equal(t, "Wednesday", resp.Weekday)
	assert.Equal(t, []string{"10:00 AM", "09:00 AM"}, resp.Slots)
	assert.Empty(t, resp.ClosedReason)

	closed := FromAvailableDay(domain.AvailableDay{
		Date:         types.NewDate(2025, time.October, 17),
		Weekday:      time.Friday,
		ClosedReason: domain.ClosedForbiddenWeekday,
	})
	assert.Equal(t, "ForbiddenWeekday", closed.ClosedReason)
	assert.NotNil(t, closed.Slots)
	assert.Empty(t, closed.Slots)

	malformed := FromAvailableDay(domain.AvailableDay{
		Date:    types.NewDate(2025, time.October, 16),
		Weekday: time.Thursday,
		Err:     domain.NewReasonError(domain.ErrConfiguration, domain.ReasonMalformedSlot, "bad label"),
	})
	assert.Equal(t, "MalformedSlot", malformed.Error)

	failed := FromAvailableDay(domain.AvailableDay{
		Date:    types.NewDate(2025, time.October, 16),
		Weekday: time.Thursday,
		Err:     errors.New("store is down"),
	})
	assert.Equal(t, dayErrorInternal, failed.Error)
	assert.Empty(t, failed.Slots)
}
