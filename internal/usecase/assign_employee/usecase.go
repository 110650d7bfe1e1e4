package assign_employee

import (
	"context"
	"fmt"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	"github.com/Serryudy/EAD-sub000/pkg/ptr"
)

// UseCase use case автоподбора техника на запрошенное окно.
// Техники проверяются в порядке справочника, выбирается первый без
// конфликтующих записей на этот день (first-fit - осознанное упрощение,
// балансировка нагрузки не применяется).
type UseCase struct {
	employeeDirectory EmployeeDirectory
	appointmentRepo   AppointmentRepository
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	employeeDirectory EmployeeDirectory,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		employeeDirectory: employeeDirectory,
		appointmentRepo:   appointmentRepo,
		logger:            logger,
	}
}

// Execute выполняет подбор свободного техника
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 1. Парсим окно. Непарсящееся окно - не ошибка запроса:
	// назначение пропускается, запись остается pending
	start, end, err := ParseTimeWindow(req.TimeWindow)
	if err != nil {
		uc.logger.Warn("AssignEmployee: unparseable time window %q, skipping assignment: %v", req.TimeWindow, err)
		return &Response{Employee: nil}, nil
	}

	// 2. Получаем активных техников
	employees, err := uc.employeeDirectory.ListActive(ctx)
	if err != nil {
		uc.logger.Error("AssignEmployee: failed to list employees: %v", err)
		return nil, fmt.Errorf("%w: failed to list employees: %v", ErrInternal, err)
	}

	// 3. Первый техник без пересечений выигрывает
	for _, employee := range employees {
		if !employee.IsAssignable() {
			continue
		}

		appointments, err := uc.appointmentRepo.GetByDateWithFilter(ctx, domain.AppointmentsFilter{
			Date:       req.Date,
			EmployeeID: ptr.Ptr(employee.ID),
		})
		if err != nil {
			uc.logger.Error("AssignEmployee: failed to get appointments for employee=%d: %v", employee.ID, err)
			return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		if !domain.HasConflict(appointments, start, end) {
			uc.logger.Info("AssignEmployee: employee=%d is free for %s-%s on %s",
				employee.ID, start, end, req.Date.Format(domain.DateFormat))
			return &Response{Employee: employee}, nil
		}
	}

	// 4. Свободных техников нет - валидный результат, не ошибка
	uc.logger.Info("AssignEmployee: no free employee for %s-%s on %s",
		start, end, req.Date.Format(domain.DateFormat))
	return &Response{Employee: nil}, nil
}
