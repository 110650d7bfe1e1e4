package create_appointment

import (
	"fmt"
	"time"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	"github.com/Serryudy/EAD-sub000/pkg/types"
)

// validateRequest валидирует входные данные запроса.
// Нулевое количество автомобилей отклоняется явно.
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: too many services, max %d", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.VehicleCount < 1 {
		return fmt.Errorf("%w: vehicleCount must be at least 1", ErrInvalidInput)
	}

	if req.VehicleCount > domain.MaxVehiclesPerAppointment {
		return fmt.Errorf("%w: vehicleCount exceeds max %d", ErrInvalidInput, domain.MaxVehiclesPerAppointment)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет дату на уровне календарного дня
func validateDate(cal *domain.BusinessCalendar, date time.Time, now time.Time) error {
	if domain.IsDateInPast(date, now) {
		return ErrInvalidDate
	}

	if cal.IsBeyondBookingWindow(date, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, cal.AdvanceBookingDays)
	}

	return nil
}

// validateStartTime проверяет время начала: слот должен помещаться в рабочие
// часы, не попадать на обед и соблюдать минимальное время до записи
func validateStartTime(
	cal *domain.BusinessCalendar,
	date time.Time,
	startTime types.TimeString,
	durationMinutes int,
	now time.Time,
) error {
	if startTime.IsBefore(cal.OperatingHours.Start) {
		return fmt.Errorf("%w: before opening time", ErrInvalidInput)
	}

	if !cal.FitsBeforeClosing(startTime, durationMinutes) {
		return fmt.Errorf("%w: window does not fit before closing", ErrInvalidInput)
	}

	if cal.OverlapsLunchBreak(startTime, durationMinutes) {
		return fmt.Errorf("%w: window overlaps lunch break", ErrInvalidInput)
	}

	if cal.IsPastDateTime(date, startTime, now) {
		return ErrInvalidDate
	}

	if !cal.MeetsMinimumNotice(date, startTime, now) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, cal.MinimumNoticeHours)
	}

	return nil
}

// findFreeEmployee выбирает первого техника без конфликтующих записей.
// Работает по уже загруженному (и заблокированному FOR UPDATE) списку
// записей дня, поэтому назначение согласовано с проверкой занятости.
func findFreeEmployee(
	employees []*domain.Employee,
	dayAppointments []*domain.Appointment,
	start, end types.TimeString,
) *domain.Employee {
	for _, employee := range employees {
		if !employee.IsAssignable() {
			continue
		}

		busy := false
		for _, appt := range dayAppointments {
			if appt.AssignedEmployeeID == nil || *appt.AssignedEmployeeID != employee.ID {
				continue
			}
			if !appt.IsActive() {
				continue
			}
			windowStart, windowEnd, ok := appt.Schedule.Window()
			if !ok {
				// Legacy-запись с некорректным временем - пропускаем
				continue
			}
			if domain.Overlaps(windowStart, windowEnd, start, end) {
				busy = true
				break
			}
		}

		if !busy {
			return employee
		}
	}

	return nil
}
