package models

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// Request модели

// AddSlotsRequest добавление слотов в шаблон дня недели
type AddSlotsRequest struct {
	Slots []string `json:"slots" validate:"required,min=1,dive,required"`
}

// ReplaceSlotRequest замена одного слота
type ReplaceSlotRequest struct {
	OldSlot string `json:"oldSlot" validate:"required"`
	NewSlot string `json:"newSlot" validate:"required"`
}

// CreateHolidayRequest новый праздник
type CreateHolidayRequest struct {
	Date        string  `json:"date" validate:"required"` // YYYY-MM-DD
	Description *string `json:"description,omitempty" validate:"omitempty,max=100"`
}

// UpdateHolidayRequest все поля опциональны
type UpdateHolidayRequest struct {
	Date        *string `json:"date,omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=100"`
}

// UpdateSettingsRequest обновляются только переданные поля
type UpdateSettingsRequest struct {
	HorizonDays         *int      `json:"horizonDays,omitempty" validate:"omitempty,min=1,max=30"`
	ForbiddenWeekdays   *[]string `json:"forbiddenWeekdays,omitempty" validate:"omitempty,max=7"`
	TimezoneOffsetHours *int      `json:"timezoneOffsetHours,omitempty" validate:"omitempty,min=-12,max=14"`
	Categories          *[]string `json:"categories,omitempty" validate:"omitempty,min=1,max=20,dive,min=2,max=30"`
}

// Response модели

// TemplateResponse шаблон дня недели
type TemplateResponse struct {
	Weekday     int      `json:"weekday"`
	WeekdayName string   `json:"weekdayName"`
	Slots       []string `json:"slots"`
	Malformed   []string `json:"malformed,omitempty"`
}

// HolidayResponse праздник
type HolidayResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SettingsResponse настройки бронирования
type SettingsResponse struct {
	HorizonDays         int       `json:"horizonDays"`
	ForbiddenWeekdays   []string  `json:"forbiddenWeekdays"`
	TimezoneOffsetHours int       `json:"timezoneOffsetHours"`
	Categories          []string  `json:"categories"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Конвертеры

// FromDomainTemplate конвертирует шаблон в ответ
func FromDomainTemplate(t *domain.WorkingHoursTemplate) *TemplateResponse {
	slots := make([]string, len(t.Slots))
	for i, s := range t.Slots {
		slots[i] = s.String()
	}
	return &TemplateResponse{
		Weekday:     int(t.Weekday),
		WeekdayName: t.Weekday.String(),
		Slots:       slots,
		Malformed:   t.Malformed,
	}
}

// FromDomainHoliday конвертирует праздник в ответ
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	return &HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.String(),
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

// FromDomainSettings конвертирует настройки в ответ
func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	categories := s.Categories
	if categories == nil {
		categories = []string{}
	}
	return &SettingsResponse{
		HorizonDays:         s.HorizonDays,
		ForbiddenWeekdays:   domain.WeekdayNames(s.ForbiddenWeekdays),
		TimezoneOffsetHours: s.TimezoneOffsetHours,
		Categories:          categories,
		UpdatedAt:           s.UpdatedAt,
	}
}
