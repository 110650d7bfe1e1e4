package assign_employee

import (
	"context"

	"github.com/Serryudy/EAD-sub000/internal/domain"
)

// EmployeeDirectory интерфейс справочника техников
type EmployeeDirectory interface {
	// ListActive возвращает активных техников в стабильном порядке
	ListActive(ctx context.Context) ([]*domain.Employee, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByDateWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
