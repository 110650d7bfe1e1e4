package find_available_employee

import (
	"time"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	assignEmployee "github.com/Serryudy/EAD-sub000/internal/usecase/assign_employee"
)

// AvailableEmployeeResponse HTTP response model.
// Employee == null - свободных техников нет, это не ошибка.
type AvailableEmployeeResponse struct {
	Employee *EmployeeInfo `json:"employee"`
}

// EmployeeInfo данные техника
type EmployeeInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, timeWindow string) (*assignEmployee.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &assignEmployee.Request{
		Date:       date,
		TimeWindow: timeWindow,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignEmployee.Response) *AvailableEmployeeResponse {
	if resp.Employee == nil {
		return &AvailableEmployeeResponse{Employee: nil}
	}

	return &AvailableEmployeeResponse{
		Employee: &EmployeeInfo{
			ID:   resp.Employee.ID,
			Name: resp.Employee.Name,
			Role: resp.Employee.Role,
		},
	}
}
