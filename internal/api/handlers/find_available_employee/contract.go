package find_available_employee

import (
	"context"

	assignEmployee "github.com/Serryudy/EAD-sub000/internal/usecase/assign_employee"
)

type AssignEmployeeUseCase interface {
	Execute(ctx context.Context, req *assignEmployee.Request) (*assignEmployee.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
