// Package calendar загружает персистентную конфигурацию бизнес-календаря.
// Конфигурация читается один раз при старте процесса; в рантайме календарь
// не мутируется.
package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	"github.com/Serryudy/EAD-sub000/pkg/dbmetrics"
	"github.com/Serryudy/EAD-sub000/pkg/psqlbuilder"
	"github.com/Serryudy/EAD-sub000/pkg/types"
)

// Repository репозиторий конфигурации календаря
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Load читает актуальную конфигурацию календаря и заблокированные даты.
// Возвращает ErrCalendarNotFound, если строки конфигурации нет -
// в этом случае сервис стартует со значениями из config.toml.
func (r *Repository) Load(ctx context.Context) (*domain.BusinessCalendar, error) {
	query, args, err := psqlbuilder.Select(
		"operating_days",
		"open_time",
		"close_time",
		"lunch_enabled",
		"lunch_start",
		"lunch_end",
		"slot_duration_minutes",
		"max_concurrent_appointments",
		"advance_booking_days",
		"minimum_notice_hours",
	).
		From("business_calendar").
		OrderBy("updated_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var (
		operatingDays pq.Int64Array
		openTime      string
		closeTime     string
		lunchEnabled  bool
		lunchStart    sql.NullString
		lunchEnd      sql.NullString
		cal           domain.BusinessCalendar
	)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&operatingDays,
		&openTime,
		&closeTime,
		&lunchEnabled,
		&lunchStart,
		&lunchEnd,
		&cal.SlotDurationMinutes,
		&cal.MaxConcurrentAppointments,
		&cal.AdvanceBookingDays,
		&cal.MinimumNoticeHours,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - scan calendar: %v", ErrScanRow, err)
	}

	cal.OperatingDays = make(map[time.Weekday]bool, len(operatingDays))
	for _, d := range operatingDays {
		if d >= 0 && d <= 6 {
			cal.OperatingDays[time.Weekday(d)] = true
		}
	}

	cal.OperatingHours = domain.OperatingHours{
		Start: types.TimeString(openTime),
		End:   types.TimeString(closeTime),
	}
	cal.LunchBreak = domain.LunchBreak{
		Enabled: lunchEnabled,
		Start:   types.TimeString(lunchStart.String),
		End:     types.TimeString(lunchEnd.String),
	}

	blocked, err := r.loadBlockedDates(ctx)
	if err != nil {
		return nil, err
	}
	cal.BlockedDates = blocked

	return &cal, nil
}

// loadBlockedDates читает множество заблокированных дат (праздники, инвентаризация)
func (r *Repository) loadBlockedDates(ctx context.Context) (map[string]bool, error) {
	query, args, err := psqlbuilder.Select("blocked_date").
		From("blocked_dates").
		Where(squirrel.GtOrEq{"blocked_date": time.Now().AddDate(-1, 0, 0)}).
		OrderBy("blocked_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocked := make(map[string]bool)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: loadBlockedDates - scan row: %v", ErrScanRow, err)
		}
		blocked[d.Format(domain.DateFormat)] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return blocked, nil
}
