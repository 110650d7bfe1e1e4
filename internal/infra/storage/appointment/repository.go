package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	"github.com/Serryudy/EAD-sub000/pkg/dbmetrics"
	"github.com/Serryudy/EAD-sub000/pkg/psqlbuilder"
	"github.com/Serryudy/EAD-sub000/pkg/types"
)

var appointmentColumns = []string{
	"id",
	"user_id",
	"vehicle_id",
	"service_ids",
	"vehicle_count",
	"appointment_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"assigned_employee_id",
	"service_names",
	"total_price",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на обслуживание
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись на обслуживание.
// Если в контексте передана активная транзакция, использует её -
// именно так create_appointment получает атомарный check-and-reserve.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	endTime, durationMinutes := scheduleColumns(appt.Schedule)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"user_id",
			"vehicle_id",
			"service_ids",
			"vehicle_count",
			"appointment_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"assigned_employee_id",
			"service_names",
			"total_price",
			"notes",
		).
		Values(
			appt.UserID,
			appt.VehicleID,
			pq.Array(appt.ServiceIDs),
			appt.VehicleCount,
			appt.Date,
			appt.Schedule.Start,
			endTime,
			durationMinutes,
			appt.Status,
			appt.AssignedEmployeeID,
			appt.ServiceNames,
			appt.TotalPrice,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return appointments[0], nil
}

// GetByUserID получает историю записей пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("appointment_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetByDateWithFilter получает записи на календарный день.
// По умолчанию терминальные записи (cancelled, completed) исключаются -
// именно они не участвуют в подсчете занятости и конфликтов.
//
// Если вызов идет внутри транзакции, строки блокируются (FOR UPDATE):
// это последовательный этап check-and-reserve в create_appointment,
// защищающий слот от одновременного двойного бронирования.
func (r *Repository) GetByDateWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"appointment_date": filter.Date}).
		OrderBy("start_time ASC")

	// Фильтрация по назначенному технику (для проверки его занятости)
	if filter.EmployeeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"assigned_employee_id": *filter.EmployeeID})
	}

	if !filter.IncludeTerminal {
		terminalStatusStrings := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminalStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminalStatusStrings})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// AssignEmployee назначает техника на запись
func (r *Repository) AssignEmployee(ctx context.Context, id int64, employeeID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("assigned_employee_id", employeeID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignEmployee - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "AssignEmployee")
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel отменяет запись с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// execExpectingRow выполняет update и проверяет, что строка была затронута
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var (
			appt            domain.Appointment
			serviceIDs      pq.Int64Array
			startTime       string
			endTime         sql.NullString
			durationMinutes sql.NullInt64
			createdAt       sql.NullTime
			updatedAt       sql.NullTime
		)

		err := rows.Scan(
			&appt.ID,
			&appt.UserID,
			&appt.VehicleID,
			&serviceIDs,
			&appt.VehicleCount,
			&appt.Date,
			&startTime,
			&endTime,
			&durationMinutes,
			&appt.Status,
			&appt.AssignedEmployeeID,
			&appt.ServiceNames,
			&appt.TotalPrice,
			&appt.Notes,
			&appt.CancellationReason,
			&appt.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.ServiceIDs = serviceIDs
		appt.Schedule = scheduleFromColumns(startTime, endTime, durationMinutes)
		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// scheduleColumns раскладывает тегированное расписание в колонки БД
func scheduleColumns(s domain.Schedule) (endTime *string, durationMinutes *int) {
	switch s.Kind {
	case domain.ScheduleExplicitWindow:
		end := s.End.String()
		return &end, nil
	case domain.ScheduleStartWithDuration:
		if s.DurationMinutes > 0 {
			d := s.DurationMinutes
			return nil, &d
		}
		return nil, nil
	default:
		return nil, nil
	}
}

// scheduleFromColumns восстанавливает тегированное расписание из колонок.
// end_time имеет приоритет; иначе запись считается legacy (начало + длительность).
func scheduleFromColumns(startTime string, endTime sql.NullString, durationMinutes sql.NullInt64) domain.Schedule {
	start := types.TimeString(startTime)

	if endTime.Valid && endTime.String != "" {
		return domain.NewExplicitWindow(start, types.TimeString(endTime.String))
	}

	duration := 0
	if durationMinutes.Valid {
		duration = int(durationMinutes.Int64)
	}
	return domain.NewScheduledStart(start, duration)
}
