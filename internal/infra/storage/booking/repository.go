package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"user_id",
	"visitor_id",
	"contact_name",
	"contact_phone",
	"booking_date",
	"slot_label",
	"slot_minutes",
	"category",
	"notes",
	"is_cancelled",
	"is_expired",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
// Все выборки, которым не нужны отмененные или просроченные записи, фильтруют их сами
type Repository struct {
	db DBExecutor
	sb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, sb psqlbuilder.Builder) *Repository {
	return &Repository{db: db, sb: sb}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Уникальный индекс (booking_date, slot_minutes) WHERE is_cancelled = false не даёт занять слот дважды:
// проигравшая конкурентная вставка получает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert(tableBookings).
		Columns(
			"user_id",
			"visitor_id",
			"contact_name",
			"contact_phone",
			"booking_date",
			"slot_label",
			"slot_minutes",
			"category",
			"notes",
			"is_cancelled",
			"is_expired",
			"created_at",
			"updated_at",
		).
		Values(
			nullString(booking.Subject.UserID),
			nullString(booking.Subject.VisitorID),
			booking.ContactName,
			booking.ContactPhone,
			booking.Date,
			booking.Slot.String(),
			booking.Slot.Minutes(),
			booking.Category,
			booking.Notes,
			false,
			false,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
		return nil, execError("Create - execute insert", err)
	}

	booking.IsCancelled = false
	booking.IsExpired = false

	return booking, nil
}

// GetByID получает бронирование по ID в любом состоянии
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, execError("GetByID - scan booking", err)
	}

	return booking, nil
}

// ListActiveByDateRange бронирования, занимающие слоты в диапазоне дат (включительно)
// Просроченные тоже занимают слот, исключаются только отмененные
func (r *Repository) ListActiveByDateRange(ctx context.Context, from, to types.Date) ([]*domain.Booking, error) {
	query, args, err := r.sb.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"is_cancelled": false}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		OrderBy("booking_date ASC", "slot_minutes ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListActiveByDateRange", query, args)
}

// FindCancelled последнее отмененное бронирование того же субъекта на тот же слот
// Просроченные не возвращаются: их нельзя вернуть к жизни
func (r *Repository) FindCancelled(ctx context.Context, subject domain.Subject, date types.Date, slot types.TimeLabel) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(bookingColumns...).
		From(tableBookings).
		Where(subjectCondition(subject)).
		Where(squirrel.Eq{
			"booking_date": date,
			"slot_minutes": slot.Minutes(),
			"is_cancelled": true,
			"is_expired":   false,
		}).
		OrderBy("updated_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindCancelled - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, execError("FindCancelled - scan booking", err)
	}

	return booking, nil
}

// ListOpenBySubjectOnDate открытые (не отмененные и не просроченные) бронирования субъекта на дату
func (r *Repository) ListOpenBySubjectOnDate(ctx context.Context, subject domain.Subject, date types.Date) ([]*domain.Booking, error) {
	query, args, err := r.sb.Select(bookingColumns...).
		From(tableBookings).
		Where(subjectCondition(subject)).
		Where(squirrel.Eq{
			"booking_date": date,
			"is_cancelled": false,
			"is_expired":   false,
		}).
		OrderBy("slot_minutes ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenBySubjectOnDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListOpenBySubjectOnDate", query, args)
}

// Reactivate возвращает отмененное бронирование в активное состояние, перезаписывая данные клиента
// Не найдено, если запись уже активна; ErrSlotTaken, если слот успели занять
func (r *Repository) Reactivate(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update(tableBookings).
		Set("contact_name", booking.ContactName).
		Set("contact_phone", booking.ContactPhone).
		Set("category", booking.Category).
		Set("notes", booking.Notes).
		Set("is_cancelled", false).
		Set("is_expired", false).
		Set("updated_at", booking.UpdatedAt).
		Where(squirrel.Eq{"id": booking.ID, "is_cancelled": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reactivate - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execOne(ctx, executor, "Reactivate", query, args); err != nil {
		return err
	}

	booking.IsCancelled = false
	booking.IsExpired = false
	return nil
}

// Cancel отменяет неотмененное бронирование
// Повторная отмена возвращает ErrBookingNotFound
func (r *Repository) Cancel(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update(tableBookings).
		Set("is_cancelled", true).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "is_cancelled": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Cancel", query, args)
}

// ListDue активные бронирования, чей слот уже начался:
// дата раньше today или дата = today и слот не позже nowMinutes (локальное время)
func (r *Repository) ListDue(ctx context.Context, today types.Date, nowMinutes int) ([]*domain.Booking, error) {
	query, args, err := r.sb.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"is_cancelled": false, "is_expired": false}).
		Where(squirrel.Or{
			squirrel.Lt{"booking_date": today},
			squirrel.And{
				squirrel.Eq{"booking_date": today},
				squirrel.LtOrEq{"slot_minutes": nowMinutes},
			},
		}).
		OrderBy("booking_date ASC", "slot_minutes ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDue - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListDue", query, args)
}

// MarkExpired помечает бронирование просроченным
// Возвращает false, если запись уже просрочена или отменена (ничего не изменилось)
func (r *Repository) MarkExpired(ctx context.Context, id int64, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update(tableBookings).
		Set("is_expired", true).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "is_expired": false, "is_cancelled": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkExpired - build update query: %v", ErrBuildQuery, err)
	}

	err = r.execOne(ctx, executor, "MarkExpired", query, args)
	if errors.Is(err, ErrBookingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List бронирования для администратора с фильтрацией и пагинацией
// Возвращает страницу и общее количество записей под фильтром
//
// По умолчанию отмененные и просроченные скрыты:
//
//	filter := domain.BookingsFilter{ShowCancelled: true, Keyword: "0100", Limit: 20}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := r.filterCondition(filter)

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").
		From(tableBookings).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, execError("List - count", err)
	}

	selectBuilder := r.sb.Select(bookingColumns...).
		From(tableBookings).
		Where(where).
		OrderBy("booking_date DESC", "slot_minutes DESC", "id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	bookings, err := r.query(ctx, "List", query, args)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListBySubject бронирования субъекта, новые сначала
func (r *Repository) ListBySubject(ctx context.Context, subject domain.Subject, includeInactive bool) ([]*domain.Booking, error) {
	selectBuilder := r.sb.Select(bookingColumns...).
		From(tableBookings).
		Where(subjectCondition(subject)).
		OrderBy("booking_date DESC", "slot_minutes DESC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_cancelled": false, "is_expired": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySubject - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListBySubject", query, args)
}

// CountOpenOnDate количество открытых бронирований на дату
func (r *Repository) CountOpenOnDate(ctx context.Context, date types.Date) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("COUNT(*)").
		From(tableBookings).
		Where(squirrel.Eq{"booking_date": date, "is_cancelled": false, "is_expired": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOpenOnDate - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, execError("CountOpenOnDate - count", err)
	}
	return count, nil
}

// ListOpenDatesFrom различные даты с открытыми бронированиями начиная с from
func (r *Repository) ListOpenDatesFrom(ctx context.Context, from types.Date) ([]types.Date, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("DISTINCT booking_date").
		From(tableBookings).
		Where(squirrel.Eq{"is_cancelled": false, "is_expired": false}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		OrderBy("booking_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenDatesFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("ListOpenDatesFrom - execute query", err)
	}
	defer rows.Close()

	dates := make([]types.Date, 0)
	for rows.Next() {
		var d types.Date
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: ListOpenDatesFrom - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, execError("ListOpenDatesFrom - rows error", err)
	}

	return dates, nil
}

func (r *Repository) filterCondition(filter domain.BookingsFilter) squirrel.And {
	where := squirrel.And{}

	if !filter.ShowCancelled {
		where = append(where, squirrel.Eq{"is_cancelled": false})
	}
	if !filter.ShowExpired {
		where = append(where, squirrel.Eq{"is_expired": false})
	}
	if filter.Date != nil {
		where = append(where, squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.From != nil {
		where = append(where, squirrel.GtOrEq{"booking_date": *filter.From})
	}
	if filter.To != nil {
		where = append(where, squirrel.LtOrEq{"booking_date": *filter.To})
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		where = append(where, squirrel.Or{
			r.sb.ILike("contact_name", pattern),
			r.sb.ILike("contact_phone", pattern),
		})
	}

	return where
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError(op+" - execute query", err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, execError(op+" - rows error", err)
	}

	return bookings, nil
}

// execOne выполняет UPDATE, который должен затронуть ровно одну строку
func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError(op+" - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		userID, visitorID    sql.NullString
		slotLabel            string
		slotMinutes          int
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&userID,
		&visitorID,
		&booking.ContactName,
		&booking.ContactPhone,
		&booking.Date,
		&slotLabel,
		&slotMinutes,
		&booking.Category,
		&booking.Notes,
		&booking.IsCancelled,
		&booking.IsExpired,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Subject = domain.Subject{UserID: userID.String, VisitorID: visitorID.String}
	booking.Slot = slotFromRow(slotLabel, slotMinutes)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// slotFromRow восстанавливает слот; при расхождении метки и минут источником истины считаются минуты
func slotFromRow(label string, minutes int) types.TimeLabel {
	if slot, err := types.ParseTimeLabel(label); err == nil && slot.Minutes() == minutes {
		return slot
	}
	slot, _ := types.TimeLabelFromMinutes(minutes)
	return slot
}

func subjectCondition(subject domain.Subject) squirrel.Sqlizer {
	if subject.UserID != "" {
		return squirrel.Eq{"user_id": subject.UserID}
	}
	return squirrel.Eq{"visitor_id": subject.VisitorID}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
