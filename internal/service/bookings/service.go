package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/validator"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	expirer      Expirer
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	expirer Expirer,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		expirer:      expirer,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может только владелец или администратор.
// Перед ответом прошедшее бронирование помечается просроченным, не дожидаясь фоновой очистки
func (s *Service) GetByID(ctx context.Context, id int64, subject domain.Subject, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%q, visitor=%q, admin=%t",
		id, subject.UserID, subject.VisitorID, isAdmin)

	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	// Проверяем права доступа
	if !isAdmin && !booking.Subject.Matches(subject) {
		s.logger.Warn("GetByID: access denied to booking id=%d", id)
		return nil, ErrAccessDenied
	}

	if _, err := s.expirer.ExpireIfDue(ctx, booking, s.timeProvider.Now()); err != nil {
		s.logger.Error("GetByID: lazy expiry failed for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - lazy expiry: %w", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// ListForSubject бронирования клиента, новые сначала
// Без includeInactive отмененные и просроченные (в том числе только что просроченные) не возвращаются
func (s *Service) ListForSubject(ctx context.Context, subject domain.Subject, includeInactive bool) (*models.BookingListResponse, error) {
	s.logger.Info("ListForSubject: user=%q, visitor=%q, includeInactive=%t",
		subject.UserID, subject.VisitorID, includeInactive)

	if subject.IsZero() {
		return nil, fmt.Errorf("%w: user or visitor identity required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListBySubject(ctx, subject, includeInactive)
	if err != nil {
		s.logger.Error("ListForSubject: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListForSubject - repository error: %w", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	result := make([]*domain.Booking, 0, len(bookings))
	for _, booking := range bookings {
		expired, err := s.expirer.ExpireIfDue(ctx, booking, now)
		if err != nil {
			s.logger.Error("ListForSubject: lazy expiry failed for booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: ListForSubject - lazy expiry: %w", ErrInternal, err)
		}
		if expired && !includeInactive {
			continue
		}
		result = append(result, booking)
	}

	s.logger.Info("ListForSubject: fetched %d bookings", len(result))
	return models.FromDomainBookingList(result, len(result)), nil
}

// List бронирования для администратора с фильтрацией и пагинацией
//
// Примеры:
// - Все активные: List(ctx, &ListBookingsRequest{})
// - На дату: Date = "2025-10-15"
// - За период: From и To
// - Включая отмененные и просроченные: ShowCancelled и ShowExpired
// - Поиск по имени или телефону: Keyword
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: date=%v, from=%v, to=%v, cancelled=%t, expired=%t, keyword=%q, limit=%d, offset=%d",
		deref(req.Date), deref(req.From), deref(req.To), req.ShowCancelled, req.ShowExpired, req.Keyword, req.Limit, req.Offset)

	if violations := validator.Validate(req); violations != nil {
		s.logger.Warn("List: validation failed: %v", violations)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, violations)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d bookings", len(bookings), total)
	return models.FromDomainBookingList(bookings, total), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
