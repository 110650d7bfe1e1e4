package create_appointment

import (
	"time"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	createAppointment "github.com/Serryudy/EAD-sub000/internal/usecase/create_appointment"
	"github.com/Serryudy/EAD-sub000/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	VehicleID    int64   `json:"vehicleId"`
	ServiceIDs   []int64 `json:"serviceIds"`
	VehicleCount int     `json:"vehicleCount"` // По умолчанию 1
	Date         string  `json:"date"`         // "2026-09-15"
	StartTime    string  `json:"startTime"`    // "10:00"
	Notes        *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"userId"`
	VehicleID          int64   `json:"vehicleId"`
	ServiceIDs         []int64 `json:"serviceIds"`
	VehicleCount       int     `json:"vehicleCount"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	AssignedEmployeeID *int64  `json:"assignedEmployeeId,omitempty"`
	ServiceNames       string  `json:"serviceNames"`
	TotalPrice         float64 `json:"totalPrice"`
	Notes              *string `json:"notes,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	vehicleCount := r.VehicleCount
	if vehicleCount == 0 {
		vehicleCount = 1
	}

	return &createAppointment.Request{
		UserID:       userID,
		VehicleID:    r.VehicleID,
		ServiceIDs:   r.ServiceIDs,
		VehicleCount: vehicleCount,
		Date:         date,
		StartTime:    startTime,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 resp.ID,
		UserID:             resp.UserID,
		VehicleID:          resp.VehicleID,
		ServiceIDs:         resp.ServiceIDs,
		VehicleCount:       resp.VehicleCount,
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		EndTime:            resp.EndTime.String(),
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		AssignedEmployeeID: resp.AssignedEmployeeID,
		ServiceNames:       resp.ServiceNames,
		TotalPrice:         resp.TotalPrice,
		Notes:              resp.Notes,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
