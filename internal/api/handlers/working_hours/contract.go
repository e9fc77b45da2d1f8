package working_hours

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/calendar/models"
)

type CalendarService interface {
	ListTemplates(ctx context.Context) ([]*models.TemplateResponse, error)
	AddSlots(ctx context.Context, weekday int, req *models.AddSlotsRequest) (*models.TemplateResponse, error)
	ReplaceSlot(ctx context.Context, weekday int, req *models.ReplaceSlotRequest) (*models.TemplateResponse, error)
	RemoveSlot(ctx context.Context, weekday int, label string) error
	ClearTemplate(ctx context.Context, weekday int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
