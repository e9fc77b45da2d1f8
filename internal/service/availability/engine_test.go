package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// 2025-10-13 - понедельник, ближайшая среда 2025-10-15
var (
	monday    = types.NewDate(2025, time.October, 13)
	wednesday = types.NewDate(2025, time.October, 15)
	utc2      = domain.BookingSettings{
		HorizonDays:         3,
		ForbiddenWeekdays:   []time.Weekday{time.Friday},
		TimezoneOffsetHours: 2,
		Categories:          []string{"consultation"},
	}
)

// localTime строит момент времени по часам UTC+2
func localTime(d types.Date, hour, minute int) time.Time {
	return d.At(hour*60+minute, utc2.Location())
}

func slotLabels(day domain.AvailableDay) []string {
	out := make([]string, 0, len(day.Slots))
	for _, s := range day.Slots {
		out = append(out, s.String())
	}
	return out
}

func template(weekday time.Weekday, labels ...string) *domain.WorkingHoursTemplate {
	tpl := &domain.WorkingHoursTemplate{Weekday: weekday}
	for _, l := range labels {
		tpl.Slots = append(tpl.Slots, types.MustParseTimeLabel(l))
	}
	return tpl
}

func booking(date types.Date, slot string, cancelled bool) *domain.Booking {
	return &domain.Booking{Date: date, Slot: types.MustParseTimeLabel(slot), IsCancelled: cancelled}
}

func TestComputeSlots_Scenarios(t *testing.T) {
	now := localTime(monday, 12, 0)
	wedTemplate := template(time.Wednesday, "09:00 AM", "10:00 AM")

	tests := []struct {
		name     string
		holidays []*domain.Holiday
		bookings []*domain.Booking
		want     []string
		reason   domain.ClosedReason
	}{
		{
			name: "free template in order",
			want: []string{"09:00 AM", "10:00 AM"},
		},
		{
			name:     "booked slot removed",
			bookings: []*domain.Booking{booking(wednesday, "09:00 AM", false)},
			want:     []string{"10:00 AM"},
		},
		{
			name:     "cancelled booking frees the slot",
			bookings: []*domain.Booking{booking(wednesday, "09:00 AM", true)},
			want:     []string{"09:00 AM", "10:00 AM"},
		},
		{
			name:     "holiday closes the date",
			holidays: []*domain.Holiday{{Date: wednesday, Description: "Holiday"}},
			bookings: []*domain.Booking{booking(wednesday, "09:00 AM", false)},
			want:     []string{},
			reason:   domain.ClosedHoliday,
		},
		{
			name:     "booking on another date is ignored",
			bookings: []*domain.Booking{booking(wednesday.AddDays(7), "09:00 AM", false)},
			want:     []string{"09:00 AM", "10:00 AM"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := NewSnapshot(utc2, []*domain.WorkingHoursTemplate{wedTemplate}, tt.holidays, tt.bookings)
			day := snapshot.ComputeSlots(wednesday, now)

			assert.Equal(t, tt.want, slotLabels(day))
			assert.Equal(t, tt.reason, day.ClosedReason)
			assert.Equal(t, time.Wednesday, day.Weekday)
			assert.NoError(t, day.Err)
		})
	}
}

func TestComputeSlots_AdministrativeOrder(t *testing.T) {
	snapshot := NewSnapshot(utc2, []*domain.WorkingHoursTemplate{
		template(time.Wednesday, "02:00 PM", "09:00 AM", "11:00 AM"),
	}, nil, nil)

	day := snapshot.ComputeSlots(wednesday, localTime(monday, 8, 0))
	assert.Equal(t, []string{"02:00 PM", "09:00 AM", "11:00 AM"}, slotLabels(day))
}

func TestComputeSlots_ClosedReasons(t *testing.T) {
	friday := wednesday.AddDays(2)
	thursday := wednesday.AddDays(1)

	snapshot := NewSnapshot(utc2, []*domain.WorkingHoursTemplate{
		template(time.Friday, "09:00 AM"),
		{Weekday: time.Thursday},
	}, nil, nil)
	now := localTime(monday, 8, 0)

	day := snapshot.ComputeSlots(friday, now)
	assert.Equal(t, domain.ClosedForbiddenWeekday, day.ClosedReason)
	assert.Empty(t, day.Slots)

	day = snapshot.ComputeSlots(thursday, now)
	assert.Equal(t, domain.ClosedNoTemplate, day.ClosedReason)

	day = snapshot.ComputeSlots(wednesday, now)
	assert.Equal(t, domain.ClosedNoTemplate, day.ClosedReason)
}

func TestComputeSlots_TodayBoundary(t *testing.T) {
	snapshot := NewSnapshot(utc2, []*domain.WorkingHoursTemplate{
		template(time.Wednesday, "09:00 AM", "09:01 AM", "10:00 AM"),
	}, nil, nil)

	// слот, начинающийся ровно сейчас, уже недоступен, через минуту еще доступен
	day := snapshot.ComputeSlots(wednesday, localTime(wednesday, 9, 0))
	assert.Equal(t, []string{"09:01 AM", "10:00 AM"}, slotLabels(day))

	// секунды внутри текущей минуты не учитываются
	day = snapshot.ComputeSlots(wednesday, localTime(wednesday, 9, 0).Add(59*time.Second))
	assert.Equal(t, []string{"09:01 AM", "10:00 AM"}, slotLabels(day))

	day = snapshot.ComputeSlots(wednesday, localTime(wednesday, 23, 59))
	assert.Empty(t, day.Slots)
	assert.Equal(t, domain.ClosedNone, day.ClosedReason)
}

func TestComputeSlots_TodayUsesConfiguredOffset(t *testing.T) {
	snapshot := NewSnapshot(utc2, []*domain.WorkingHoursTemplate{
		template(time.Wednesday, "01:00 AM", "03:00 AM"),
	}, nil, nil)

	// 23:30 UTC во вторник это 01:30 среды в UTC+2
	now := time.Date(2025, 10, 14, 23, 30, 0, 0, time.UTC)
	day := snapshot.ComputeSlots(wednesday, now)
	assert.Equal(t, []string{"03:00 AM"}, slotLabels(day))
}

func TestComputeSlots_PastDate(t *testing.T) {
	snapshot := NewSnapshot(utc2, []*domain.WorkingHoursTemplate{
		template(time.Monday, "09:00 AM"),
	}, nil, nil)

	day := snapshot.ComputeSlots(monday, localTime(wednesday, 8, 0))
	assert.Empty(t, day.Slots)
}

func TestComputeSlots_MalformedTemplate(t *testing.T) {
	tpl := template(time.Wednesday, "09:00 AM")
	tpl.Malformed = []string{"9 o'clock"}
	snapshot := NewSnapshot(utc2, []*domain.WorkingHoursTemplate{tpl}, nil, nil)

	day := snapshot.ComputeSlots(wednesday, localTime(monday, 8, 0))
	assert.Empty(t, day.Slots)
	require.Error(t, day.Err)
	assert.True(t, errors.Is(day.Err, domain.ErrConfiguration))

	reason, ok := domain.ReasonOf(day.Err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonMalformedSlot, reason)
}
