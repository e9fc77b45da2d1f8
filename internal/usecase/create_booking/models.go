package create_booking

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Subject domain.Subject // Пользователь или анонимный посетитель; пустой - будет выдан токен посетителя
	IsAdmin bool           // Администратор бронирует за клиента, порядок слотов не проверяется

	ContactName  string          `validate:"required,min=2,max=30"`
	ContactPhone string          `validate:"required,phone11"`
	Date         types.Date      // Календарная дата в часовом поясе сервиса
	Slot         types.TimeLabel // Метка слота из шаблона
	Category     string          `validate:"required"`
	Notes        *string         `validate:"omitempty,max=200"`
}

// Response модель ответа с созданным или восстановленным бронированием
type Response struct {
	Booking     *domain.Booking
	Reactivated bool // true - восстановлено отмененное бронирование того же клиента на тот же слот
}
