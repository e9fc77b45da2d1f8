package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Snapshot правила календаря и занятость слотов для диапазона дат
// Собирается один раз на запрос пакетными выборками, ComputeSlots в хранилище не ходит
type Snapshot struct {
	Settings  domain.BookingSettings
	Templates map[time.Weekday]*domain.WorkingHoursTemplate
	Holidays  map[types.Date]*domain.Holiday

	// Booked занятые неотмененными бронированиями слоты (в минутах) по датам
	Booked map[types.Date]map[int]bool
}

// NewSnapshot индексирует загруженные строки
func NewSnapshot(
	settings domain.BookingSettings,
	templates []*domain.WorkingHoursTemplate,
	holidays []*domain.Holiday,
	bookings []*domain.Booking,
) *Snapshot {
	s := &Snapshot{
		Settings:  settings,
		Templates: make(map[time.Weekday]*domain.WorkingHoursTemplate, len(templates)),
		Holidays:  make(map[types.Date]*domain.Holiday, len(holidays)),
		Booked:    make(map[types.Date]map[int]bool),
	}

	for _, t := range templates {
		s.Templates[t.Weekday] = t
	}
	for _, h := range holidays {
		s.Holidays[h.Date] = h
	}
	for _, b := range bookings {
		if b.IsCancelled {
			continue
		}
		if s.Booked[b.Date] == nil {
			s.Booked[b.Date] = make(map[int]bool)
		}
		s.Booked[b.Date][b.Slot.Minutes()] = true
	}

	return s
}

// ComputeSlots возвращает доступные для записи слоты даты на момент now
//
// Запрещенный день недели, праздник или отсутствие шаблона закрывают дату целиком.
// Иначе слоты шаблона идут в заданном администратором порядке без занятых,
// а для сегодняшней даты остаются только слоты строго позже текущей локальной минуты.
// У дат раньше локального сегодня слотов нет
func (s *Snapshot) ComputeSlots(date types.Date, now time.Time) domain.AvailableDay {
	day := domain.AvailableDay{
		Date:    date,
		Weekday: date.Weekday(),
		Slots:   []types.TimeLabel{},
	}

	if s.Settings.IsForbidden(day.Weekday) {
		day.ClosedReason = domain.ClosedForbiddenWeekday
		return day
	}

	if _, ok := s.Holidays[date]; ok {
		day.ClosedReason = domain.ClosedHoliday
		return day
	}

	tpl, ok := s.Templates[day.Weekday]
	if !ok || tpl.IsEmpty() {
		day.ClosedReason = domain.ClosedNoTemplate
		return day
	}

	if len(tpl.Malformed) > 0 {
		day.Err = domain.NewReasonError(domain.ErrConfiguration, domain.ReasonMalformedSlot,
			fmt.Sprintf("%s template holds malformed labels: %s", day.Weekday, strings.Join(tpl.Malformed, ", ")))
		return day
	}

	today := s.Settings.Today(now)
	if date.Before(today) {
		return day
	}

	cutoff := -1
	if date == today {
		cutoff = s.Settings.LocalMinutes(now)
	}

	booked := s.Booked[date]
	for _, slot := range tpl.Slots {
		if booked[slot.Minutes()] {
			continue
		}
		if slot.Minutes() <= cutoff {
			continue
		}
		day.Slots = append(day.Slots, slot)
	}

	return day
}
