package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
)

// settingsID единственная строка booking_settings
const settingsID = 1

// GetSettings настройки бронирования
func (r *Repository) GetSettings(ctx context.Context) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(
		"horizon_days",
		"forbidden_weekdays",
		"timezone_offset_hours",
		"categories",
		"updated_at",
	).
		From(tableSettings).
		Where(squirrel.Eq{"id": settingsID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings                     domain.BookingSettings
		weekdaysJSON, categoriesJSON string
		updatedAt                    sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.HorizonDays,
		&weekdaysJSON,
		&settings.TimezoneOffsetHours,
		&categoriesJSON,
		&updatedAt,
	)
	if isNoRows(err) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, execError("GetSettings - scan settings", err, nil)
	}

	var weekdays []int
	if err := json.Unmarshal([]byte(weekdaysJSON), &weekdays); err != nil {
		return nil, fmt.Errorf("%w: GetSettings - decode forbidden_weekdays: %v", ErrScanRow, err)
	}
	settings.ForbiddenWeekdays = make([]time.Weekday, 0, len(weekdays))
	for _, d := range weekdays {
		settings.ForbiddenWeekdays = append(settings.ForbiddenWeekdays, time.Weekday(d))
	}

	if err := json.Unmarshal([]byte(categoriesJSON), &settings.Categories); err != nil {
		return nil, fmt.Errorf("%w: GetSettings - decode categories: %v", ErrScanRow, err)
	}

	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// EnsureSettings создает строку настроек, если её еще нет; существующие настройки не трогает
// Возвращает true, если строка была создана
func (r *Repository) EnsureSettings(ctx context.Context, defaults domain.BookingSettings) (bool, error) {
	return r.writeSettings(ctx, "EnsureSettings", defaults, "ON CONFLICT (id) DO NOTHING")
}

// SaveSettings перезаписывает настройки целиком
func (r *Repository) SaveSettings(ctx context.Context, settings domain.BookingSettings) error {
	_, err := r.writeSettings(ctx, "SaveSettings", settings,
		"ON CONFLICT (id) DO UPDATE SET "+
			"horizon_days = excluded.horizon_days, "+
			"forbidden_weekdays = excluded.forbidden_weekdays, "+
			"timezone_offset_hours = excluded.timezone_offset_hours, "+
			"categories = excluded.categories, "+
			"updated_at = excluded.updated_at")
	return err
}

func (r *Repository) writeSettings(ctx context.Context, op string, settings domain.BookingSettings, onConflict string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekdays := make([]int, 0, len(settings.ForbiddenWeekdays))
	for _, d := range settings.ForbiddenWeekdays {
		weekdays = append(weekdays, int(d))
	}
	weekdaysJSON, err := json.Marshal(weekdays)
	if err != nil {
		return false, fmt.Errorf("%w: %s - encode forbidden_weekdays: %v", ErrBuildQuery, op, err)
	}

	categories := settings.Categories
	if categories == nil {
		categories = []string{}
	}
	catsJSON, err := json.Marshal(categories)
	if err != nil {
		return false, fmt.Errorf("%w: %s - encode categories: %v", ErrBuildQuery, op, err)
	}

	query, args, err := r.sb.Insert(tableSettings).
		Columns("id", "horizon_days", "forbidden_weekdays", "timezone_offset_hours", "categories", "updated_at").
		Values(settingsID, settings.HorizonDays, string(weekdaysJSON), settings.TimezoneOffsetHours, string(catsJSON), settings.UpdatedAt).
		Suffix(onConflict).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build upsert query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, execError(op+" - execute upsert", err, nil)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected > 0, nil
}
