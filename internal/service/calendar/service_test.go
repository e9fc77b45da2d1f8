package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/calendar/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SlotBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Monday 2025-10-13 10:00 at UTC+2
var testNow = time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	bookings *bookingRepo.Repository
	service  *Service
}

func newFixture(t *testing.T) *fixture {
	db := storagetest.NewSQLite(t)
	calendar := calendarRepo.NewRepository(db, db.Builder)
	bookings := bookingRepo.NewRepository(db, db.Builder)

	_, err := calendar.EnsureSettings(context.Background(), domain.BookingSettings{
		HorizonDays:         3,
		ForbiddenWeekdays:   []time.Weekday{time.Friday},
		TimezoneOffsetHours: 2,
		Categories:          []string{"consultation"},
		UpdatedAt:           testNow,
	})
	require.NoError(t, err)

	service := NewService(calendar, bookings, txmanager.NewDefaultIsolation(db), logger.NewDiscard())
	service.timeProvider = fixedTime{now: testNow}
	return &fixture{bookings: bookings, service: service}
}

func (f *fixture) book(t *testing.T, date string) {
	d, err := types.ParseDate(date)
	require.NoError(t, err)
	_, err = f.bookings.Create(context.Background(), &domain.Booking{
		Subject:      domain.Subject{VisitorID: "visitor-" + date},
		ContactName:  "Mona Adel",
		ContactPhone: "01012345678",
		Date:         d,
		Slot:         types.MustParseTimeLabel("09:00 AM"),
		Category:     "consultation",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	})
	require.NoError(t, err)
}

func TestService_Templates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tpl, err := f.service.AddSlots(ctx, 3, &models.AddSlotsRequest{Slots: []string{"10:00 AM", "9:00 am", "10:00 AM"}})
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", tpl.WeekdayName)
	assert.Equal(t, []string{"10:00 AM", "09:00 AM"}, tpl.Slots)

	// existing slots are skipped, new ones go to the end
	tpl, err = f.service.AddSlots(ctx, 3, &models.AddSlotsRequest{Slots: []string{"09:00 AM", "02:00 PM"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "09:00 AM", "02:00 PM"}, tpl.Slots)

	tpl, err = f.service.ReplaceSlot(ctx, 3, &models.ReplaceSlotRequest{OldSlot: "09:00 AM", NewSlot: "11:00 AM"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "11:00 AM", "02:00 PM"}, tpl.Slots)

	_, err = f.service.ReplaceSlot(ctx, 3, &models.ReplaceSlotRequest{OldSlot: "11:00 AM", NewSlot: "02:00 PM"})
	assert.ErrorIs(t, err, ErrSlotAlreadyExists)

	_, err = f.service.ReplaceSlot(ctx, 3, &models.ReplaceSlotRequest{OldSlot: "08:00 AM", NewSlot: "07:00 AM"})
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.service.RemoveSlot(ctx, 3, "10:00 AM"))
	assert.ErrorIs(t, f.service.RemoveSlot(ctx, 3, "10:00 AM"), ErrSlotNotFound)
	assert.ErrorIs(t, f.service.RemoveSlot(ctx, 4, "10:00 AM"), ErrTemplateNotFound)

	list, err := f.service.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"11:00 AM", "02:00 PM"}, list[0].Slots)

	require.NoError(t, f.service.ClearTemplate(ctx, 3))
	assert.ErrorIs(t, f.service.ClearTemplate(ctx, 3), ErrTemplateNotFound)
}

func TestService_Templates_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.AddSlots(ctx, 7, &models.AddSlotsRequest{Slots: []string{"10:00 AM"}})
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = f.service.AddSlots(ctx, 1, &models.AddSlotsRequest{Slots: []string{"10:00 AM", "25:00"}})
	assert.ErrorIs(t, err, ErrInvalidSlotLabel)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// nothing was written
	list, err := f.service.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.service.AddSlots(ctx, 1, &models.AddSlotsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Holidays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "2025-10-15")

	created, err := f.service.AddHoliday(ctx, &models.CreateHolidayRequest{Date: "2025-10-14"})
	require.NoError(t, err)
	assert.Equal(t, "Holiday", created.Description)

	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{name: "past", date: "2025-10-12", wantErr: ErrHolidayInPast},
		{name: "forbidden weekday", date: "2025-10-17", wantErr: ErrHolidayOnForbiddenDay},
		{name: "open bookings", date: "2025-10-15", wantErr: ErrHolidayHasBookings},
		{name: "duplicate", date: "2025-10-14", wantErr: ErrHolidayExists},
		{name: "bad format", date: "14.10.2025", wantErr: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.AddHoliday(ctx, &models.CreateHolidayRequest{Date: tt.date})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	updated, err := f.service.UpdateHoliday(ctx, created.ID, &models.UpdateHolidayRequest{
		Date:        ptr.Ptr("2025-10-16"),
		Description: ptr.Ptr("Staff training"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-16", updated.Date)
	assert.Equal(t, "Staff training", updated.Description)

	_, err = f.service.UpdateHoliday(ctx, created.ID, &models.UpdateHolidayRequest{Date: ptr.Ptr("2025-10-15")})
	assert.ErrorIs(t, err, ErrHolidayHasBookings)

	_, err = f.service.UpdateHoliday(ctx, 999, &models.UpdateHolidayRequest{Description: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrHolidayNotFound)

	list, err := f.service.ListHolidays(ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.service.DeleteHoliday(ctx, created.ID))
	assert.ErrorIs(t, f.service.DeleteHoliday(ctx, created.ID), ErrHolidayNotFound)
}

func TestService_Settings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	current, err := f.service.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Friday"}, current.ForbiddenWeekdays)

	updated, err := f.service.UpdateSettings(ctx, &models.UpdateSettingsRequest{
		HorizonDays: ptr.Ptr(7),
		Categories:  &[]string{"consultation", " follow-up ", "consultation"},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.HorizonDays)
	assert.Equal(t, []string{"consultation", "follow-up"}, updated.Categories)
	assert.Equal(t, 2, updated.TimezoneOffsetHours)
	assert.Equal(t, []string{"Friday"}, updated.ForbiddenWeekdays)

	stored, err := f.service.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.HorizonDays)
}

func TestService_Settings_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	// Wednesday
	f.book(t, "2025-10-15")

	tests := []struct {
		name    string
		req     *models.UpdateSettingsRequest
		wantErr error
	}{
		{name: "horizon zero", req: &models.UpdateSettingsRequest{HorizonDays: ptr.Ptr(0)}, wantErr: ErrInvalidInput},
		{name: "horizon too large", req: &models.UpdateSettingsRequest{HorizonDays: ptr.Ptr(31)}, wantErr: ErrInvalidInput},
		{name: "offset", req: &models.UpdateSettingsRequest{TimezoneOffsetHours: ptr.Ptr(15)}, wantErr: ErrInvalidInput},
		{name: "unknown weekday", req: &models.UpdateSettingsRequest{ForbiddenWeekdays: &[]string{"Fri"}}, wantErr: ErrInvalidInput},
		{name: "short category", req: &models.UpdateSettingsRequest{Categories: &[]string{"x"}}, wantErr: ErrInvalidInput},
		{name: "no categories", req: &models.UpdateSettingsRequest{Categories: &[]string{}}, wantErr: ErrInvalidInput},
		{
			name:    "weekday with bookings",
			req:     &models.UpdateSettingsRequest{ForbiddenWeekdays: &[]string{"Friday", "Wednesday"}},
			wantErr: ErrForbiddenDayHasBookings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.UpdateSettings(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	// a weekday without open bookings can be closed
	updated, err := f.service.UpdateSettings(ctx, &models.UpdateSettingsRequest{ForbiddenWeekdays: &[]string{"friday", "Sunday"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Friday", "Sunday"}, updated.ForbiddenWeekdays)
}
