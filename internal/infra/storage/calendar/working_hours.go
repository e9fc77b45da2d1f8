package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// ListTemplates все настроенные шаблоны, слоты в порядке добавления администратором
func (r *Repository) ListTemplates(ctx context.Context) ([]*domain.WorkingHoursTemplate, error) {
	query, args, err := r.sb.Select("weekday", "slot_label", "slot_minutes").
		From(tableWorkingHours).
		OrderBy("weekday ASC", "position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryTemplates(ctx, "ListTemplates", query, args)
}

// GetTemplate шаблон дня недели; ErrTemplateNotFound, если слотов нет
func (r *Repository) GetTemplate(ctx context.Context, weekday time.Weekday) (*domain.WorkingHoursTemplate, error) {
	query, args, err := r.sb.Select("weekday", "slot_label", "slot_minutes").
		From(tableWorkingHours).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - build select query: %v", ErrBuildQuery, err)
	}

	templates, err := r.queryTemplates(ctx, "GetTemplate", query, args)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, ErrTemplateNotFound
	}

	return templates[0], nil
}

// AppendSlot добавляет слот в конец шаблона дня недели
func (r *Repository) AppendSlot(ctx context.Context, weekday time.Weekday, slot types.TimeLabel) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	position, err := r.nextPosition(ctx, weekday)
	if err != nil {
		return err
	}

	query, args, err := r.sb.Insert(tableWorkingHours).
		Columns("weekday", "position", "slot_label", "slot_minutes").
		Values(int(weekday), position, slot.String(), slot.Minutes()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AppendSlot - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return execError("AppendSlot - execute insert", err, ErrSlotExists)
	}

	return nil
}

// ReplaceSlot заменяет слот, сохраняя его позицию в шаблоне
func (r *Repository) ReplaceSlot(ctx context.Context, weekday time.Weekday, oldSlot, newSlot types.TimeLabel) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update(tableWorkingHours).
		Set("slot_label", newSlot.String()).
		Set("slot_minutes", newSlot.Minutes()).
		Where(squirrel.Eq{"weekday": int(weekday), "slot_minutes": oldSlot.Minutes()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("ReplaceSlot - execute update", err, ErrSlotExists)
	}

	return expectRows(result, "ReplaceSlot", ErrSlotNotFound)
}

// RemoveSlot удаляет слот из шаблона
func (r *Repository) RemoveSlot(ctx context.Context, weekday time.Weekday, slot types.TimeLabel) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete(tableWorkingHours).
		Where(squirrel.Eq{"weekday": int(weekday), "slot_minutes": slot.Minutes()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("RemoveSlot - execute delete", err, nil)
	}

	return expectRows(result, "RemoveSlot", ErrSlotNotFound)
}

// ClearTemplate удаляет все слоты дня недели
func (r *Repository) ClearTemplate(ctx context.Context, weekday time.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete(tableWorkingHours).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClearTemplate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("ClearTemplate - execute delete", err, nil)
	}

	return expectRows(result, "ClearTemplate", ErrTemplateNotFound)
}

func (r *Repository) nextPosition(ctx context.Context, weekday time.Weekday) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("COALESCE(MAX(position), 0)").
		From(tableWorkingHours).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: nextPosition - build select query: %v", ErrBuildQuery, err)
	}

	var position int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&position); err != nil {
		return 0, execError("nextPosition - scan", err, nil)
	}

	return position + 1, nil
}

// queryTemplates собирает строки working_hours в шаблоны по дням недели
// Метка, которая не разбирается или не совпадает с минутами, попадает в Malformed
func (r *Repository) queryTemplates(ctx context.Context, op, query string, args []interface{}) ([]*domain.WorkingHoursTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError(op+" - execute query", err, nil)
	}
	defer rows.Close()

	templates := make([]*domain.WorkingHoursTemplate, 0)
	var current *domain.WorkingHoursTemplate

	for rows.Next() {
		var (
			weekday int
			label   string
			minutes int
		)
		if err := rows.Scan(&weekday, &label, &minutes); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		if current == nil || int(current.Weekday) != weekday {
			current = &domain.WorkingHoursTemplate{Weekday: time.Weekday(weekday)}
			templates = append(templates, current)
		}

		slot, err := types.ParseTimeLabel(label)
		if err != nil || slot.Minutes() != minutes {
			current.Malformed = append(current.Malformed, label)
			continue
		}
		current.Slots = append(current.Slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, execError(op+" - rows error", err, nil)
	}

	return templates, nil
}

func expectRows(result sql.Result, op string, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

// isNoRows не нашлось ни одной строки
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
