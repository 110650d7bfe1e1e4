package assign_appointment_employee

import "context"

type AppointmentService interface {
	AssignEmployee(ctx context.Context, appointmentID int64, employeeID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
