package calendar

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

var holidayColumns = []string{"id", "holiday_date", "description", "created_at", "updated_at"}

// ListHolidays праздники, отсортированные по дате; from != nil - только начиная с этой даты
func (r *Repository) ListHolidays(ctx context.Context, from *types.Date) ([]*domain.Holiday, error) {
	selectBuilder := r.sb.Select(holidayColumns...).
		From(tableHolidays).
		OrderBy("holiday_date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"holiday_date": *from})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryHolidays(ctx, "ListHolidays", query, args)
}

// ListHolidaysInRange праздники в диапазоне дат включительно
func (r *Repository) ListHolidaysInRange(ctx context.Context, from, to types.Date) ([]*domain.Holiday, error) {
	query, args, err := r.sb.Select(holidayColumns...).
		From(tableHolidays).
		Where(squirrel.GtOrEq{"holiday_date": from}).
		Where(squirrel.LtOrEq{"holiday_date": to}).
		OrderBy("holiday_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidaysInRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryHolidays(ctx, "ListHolidaysInRange", query, args)
}

// GetHolidayByID праздник по ID
func (r *Repository) GetHolidayByID(ctx context.Context, id int64) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(holidayColumns...).
		From(tableHolidays).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidayByID - build select query: %v", ErrBuildQuery, err)
	}

	holiday, err := scanHoliday(executor.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, execError("GetHolidayByID - scan holiday", err, nil)
	}

	return holiday, nil
}

// CreateHoliday создает праздник; ErrHolidayExists, если дата уже занята
func (r *Repository) CreateHoliday(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert(tableHolidays).
		Columns("holiday_date", "description", "created_at", "updated_at").
		Values(holiday.Date, holiday.Description, holiday.CreatedAt, holiday.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&holiday.ID); err != nil {
		return nil, execError("CreateHoliday - execute insert", err, ErrHolidayExists)
	}

	return holiday, nil
}

// UpdateHoliday перезаписывает дату и описание праздника
func (r *Repository) UpdateHoliday(ctx context.Context, holiday *domain.Holiday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update(tableHolidays).
		Set("holiday_date", holiday.Date).
		Set("description", holiday.Description).
		Set("updated_at", holiday.UpdatedAt).
		Where(squirrel.Eq{"id": holiday.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateHoliday - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("UpdateHoliday - execute update", err, ErrHolidayExists)
	}

	return expectRows(result, "UpdateHoliday", ErrHolidayNotFound)
}

// DeleteHoliday удаляет праздник
func (r *Repository) DeleteHoliday(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete(tableHolidays).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteHoliday - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("DeleteHoliday - execute delete", err, nil)
	}

	return expectRows(result, "DeleteHoliday", ErrHolidayNotFound)
}

func (r *Repository) queryHolidays(ctx context.Context, op, query string, args []interface{}) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError(op+" - execute query", err, nil)
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		holiday, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		holidays = append(holidays, holiday)
	}

	if err := rows.Err(); err != nil {
		return nil, execError(op+" - rows error", err, nil)
	}

	return holidays, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHoliday(row rowScanner) (*domain.Holiday, error) {
	var (
		holiday              domain.Holiday
		createdAt, updatedAt sql.NullTime
	)

	if err := row.Scan(&holiday.ID, &holiday.Date, &holiday.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	holiday.CreatedAt = createdAt.Time
	holiday.UpdatedAt = updatedAt.Time

	return &holiday, nil
}
