package calendar

import (
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

const (
	tableWorkingHours = "working_hours"
	tableHolidays     = "holidays"
	tableSettings     = "booking_settings"
)

// Repository хранилище правил календаря: шаблоны рабочих часов, праздники и настройки бронирования
type Repository struct {
	db DBExecutor
	sb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor, sb psqlbuilder.Builder) *Repository {
	return &Repository{db: db, sb: sb}
}
