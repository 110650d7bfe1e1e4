package domain

import "time"

// RoleEmployee роль техника в справочнике сотрудников
const RoleEmployee = "employee"

// Employee represents a technician from the employee directory
type Employee struct {
	ID       int64
	Name     string
	Role     string
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAssignable returns true if the employee is an assignment candidate
func (e *Employee) IsAssignable() bool {
	return e.IsActive && e.Role == RoleEmployee
}
