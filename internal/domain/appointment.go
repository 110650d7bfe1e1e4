package domain

import (
	"time"
)

// AppointmentStatus represents the status of a service appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusInService AppointmentStatus = "in_service"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a vehicle service appointment
type Appointment struct {
	ID           int64
	UserID       int64
	VehicleID    int64
	ServiceIDs   []int64
	VehicleCount int
	Date         time.Time
	Schedule     Schedule
	Status       AppointmentStatus

	// Автоназначенный техник. nil = запись ждет назначения (pending)
	AssignedEmployeeID *int64

	// Denormalized data for history
	ServiceNames string
	TotalPrice   float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies capacity.
// Cancelled and completed appointments never count toward capacity or
// employee conflicts.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusCompleted
}

// IsTerminal returns true if the appointment reached a final state
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsAssigned returns true if a technician has been assigned
func (a *Appointment) IsAssigned() bool {
	return a.AssignedEmployeeID != nil
}

// CanTransitionTo validates a status transition performed by staff.
// Allowed chain: pending -> confirmed -> in_service -> completed;
// cancellation goes through Cancel, not through a plain status update.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusInService
	case StatusInService:
		return next == StatusCompleted
	default:
		return false
	}
}

// AppointmentsFilter фильтр для выборки записей на дату
type AppointmentsFilter struct {
	Date            time.Time // Обязательный параметр (календарный день)
	EmployeeID      *int64    // Фильтр по назначенному технику (опционально)
	IncludeTerminal bool      // Включать ли отмененные и завершенные записи
}
