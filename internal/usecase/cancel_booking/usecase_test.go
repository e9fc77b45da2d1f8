package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

var (
	// Wednesday 2025-10-15 08:00 at UTC+2
	testNow = time.Date(2025, 10, 15, 6, 0, 0, 0, time.UTC)
	today   = types.NewDate(2025, time.October, 15)
	owner   = domain.Subject{VisitorID: "visitor-owner"}
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingPublisher struct {
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.BookingEvent) error {
	p.events = append(p.events, event)
	return nil
}

type fixture struct {
	calendar  *calendarRepo.Repository
	bookings  *bookingRepo.Repository
	publisher *recordingPublisher
	metrics   *metrics.Metrics
	uc        *UseCase
}

func newFixture(t *testing.T) *fixture {
	ctx := context.Background()
	db := storagetest.NewSQLite(t)

	calendar := calendarRepo.NewRepository(db, db.Builder)
	bookings := bookingRepo.NewRepository(db, db.Builder)

	_, err := calendar.EnsureSettings(ctx, domain.BookingSettings{
		HorizonDays:         3,
		TimezoneOffsetHours: 2,
		Categories:          []string{"consultation"},
		UpdatedAt:           testNow,
	})
	require.NoError(t, err)
	for _, label := range []string{"09:00 AM", "10:00 AM"} {
		require.NoError(t, calendar.AppendSlot(ctx, time.Wednesday, types.MustParseTimeLabel(label)))
	}

	f := &fixture{
		calendar:  calendar,
		bookings:  bookings,
		publisher: &recordingPublisher{},
		metrics:   metrics.NewWithRegisterer("test", prometheus.NewRegistry()),
	}
	f.uc = NewUseCase(
		bookings,
		calendar,
		availability.NewService(calendar, bookings, logger.NewDiscard()),
		f.publisher,
		f.metrics,
		logger.NewDiscard(),
	)
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

func (f *fixture) book(t *testing.T, subject domain.Subject, slot string) *domain.Booking {
	b, err := f.bookings.Create(context.Background(), &domain.Booking{
		Subject:      subject,
		ContactName:  "Mona Adel",
		ContactPhone: "01012345678",
		Date:         today,
		Slot:         types.MustParseTimeLabel(slot),
		Category:     "consultation",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	})
	require.NoError(t, err)
	return b
}

func labels(day domain.AvailableDay) []string {
	out := make([]string, 0, len(day.Slots))
	for _, s := range day.Slots {
		out = append(out, s.String())
	}
	return out
}

// Scenario E: the freed slot shows up immediately without a sweep
func TestUseCase_Execute_FreesSlotToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, owner, "09:00 AM")

	resp, err := f.uc.Execute(ctx, &Request{BookingID: b.ID, Subject: owner})
	require.NoError(t, err)

	assert.True(t, resp.Booking.IsCancelled)
	assert.Equal(t, today, resp.Day.Date)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, labels(resp.Day))

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCancelled)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingCancelled, f.publisher.events[0].Type)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.BookingsTotal.WithLabelValues(metrics.OutcomeCancelled)))
}

func TestUseCase_Execute_TwiceIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, owner, "10:00 AM")

	_, err := f.uc.Execute(ctx, &Request{BookingID: b.ID, Subject: owner})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{BookingID: b.ID, Subject: owner})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUseCase_Execute_Access(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, owner, "10:00 AM")

	_, err := f.uc.Execute(ctx, &Request{BookingID: b.ID, Subject: domain.Subject{VisitorID: "visitor-other"}})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.uc.Execute(ctx, &Request{BookingID: b.ID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.uc.Execute(ctx, &Request{BookingID: b.ID, Subject: domain.Subject{UserID: "admin-1"}, IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, resp.Booking.IsCancelled)
}

func TestUseCase_Execute_Missing(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 404, Subject: owner})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: 0, Subject: owner})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// flakySettings отдает ошибку хранилища, пока задан err
type flakySettings struct {
	SettingsRepository
	err error
}

func (s *flakySettings) GetSettings(ctx context.Context) (*domain.BookingSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.SettingsRepository.GetSettings(ctx)
}

type failingAvailability struct{}

func (failingAvailability) Day(context.Context, domain.BookingSettings, types.Date, time.Time) (domain.AvailableDay, error) {
	return domain.AvailableDay{}, errors.New("store is down")
}

func TestUseCase_Execute_SettingsFailureLeavesBookingActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, owner, "09:00 AM")

	settings := &flakySettings{
		SettingsRepository: f.calendar,
		err:                fmt.Errorf("%w: GetSettings: timeout", domain.ErrStoreUnavailable),
	}
	uc := NewUseCase(f.bookings, settings, availability.NewService(f.calendar, f.bookings, logger.NewDiscard()),
		f.publisher, f.metrics, logger.NewDiscard())
	uc.timeProvider = fixedTime{now: testNow}

	_, err := uc.Execute(ctx, &Request{BookingID: b.ID, Subject: owner})
	require.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsCancelled)
	assert.Empty(t, f.publisher.events)

	// Повтор после восстановления хранилища проходит
	settings.err = nil
	resp, err := uc.Execute(ctx, &Request{BookingID: b.ID, Subject: owner})
	require.NoError(t, err)
	assert.True(t, resp.Booking.IsCancelled)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, labels(resp.Day))
}

func TestUseCase_Execute_RecomputeFailureStillCancels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, owner, "10:00 AM")

	uc := NewUseCase(f.bookings, f.calendar, failingAvailability{}, f.publisher, f.metrics, logger.NewDiscard())
	uc.timeProvider = fixedTime{now: testNow}

	resp, err := uc.Execute(ctx, &Request{BookingID: b.ID, Subject: owner})
	require.NoError(t, err)
	assert.True(t, resp.Booking.IsCancelled)
	assert.Equal(t, today, resp.Day.Date)
	assert.Equal(t, time.Wednesday, resp.Day.Weekday)
	assert.Empty(t, resp.Day.Slots)
	assert.ErrorIs(t, resp.Day.Err, ErrInternal)

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCancelled)
	require.Len(t, f.publisher.events, 1)
}
