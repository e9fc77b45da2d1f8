package holidays

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/calendar/models"
)

type CalendarService interface {
	ListHolidays(ctx context.Context, fromToday bool) ([]*models.HolidayResponse, error)
	AddHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error)
	UpdateHoliday(ctx context.Context, id int64, req *models.UpdateHolidayRequest) (*models.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
