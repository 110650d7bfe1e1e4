package assign_appointment_employee

// AssignEmployeeRequest HTTP request model
type AssignEmployeeRequest struct {
	EmployeeID int64 `json:"employeeId"`
}
