package models

import (
	"errors"
	"time"

	"github.com/Serryudy/EAD-sub000/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetDayScheduleRequest запрос на расписание дня (для персонала)
type GetDayScheduleRequest struct {
	UserID          int64     `json:"userId"`
	Date            time.Time `json:"date"`
	EmployeeID      *int64    `json:"employeeId,omitempty"`      // Фильтр по технику (опционально)
	IncludeTerminal bool      `json:"includeTerminal,omitempty"` // Включить отмененные и завершенные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDayScheduleRequest) ToDomainFilter() domain.AppointmentsFilter {
	return domain.AppointmentsFilter{
		Date:            r.Date,
		EmployeeID:      r.EmployeeID,
		IncludeTerminal: r.IncludeTerminal,
	}
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	VehicleID    int64   `json:"vehicleId"`
	ServiceIDs   []int64 `json:"serviceIds"`
	VehicleCount int     `json:"vehicleCount"`
	Date         string  `json:"date"`      // "2026-09-15"
	StartTime    string  `json:"startTime"` // "10:00"
	EndTime      string  `json:"endTime"`   // "12:00"
	Status       string  `json:"status"`

	AssignedEmployeeID *int64 `json:"assignedEmployeeId,omitempty"`

	// Денормализованные данные
	ServiceNames string  `json:"serviceNames"`
	TotalPrice   float64 `json:"totalPrice"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		UserID:             a.UserID,
		VehicleID:          a.VehicleID,
		ServiceIDs:         a.ServiceIDs,
		VehicleCount:       a.VehicleCount,
		Date:               a.Date.Format(domain.DateFormat),
		Status:             string(a.Status),
		AssignedEmployeeID: a.AssignedEmployeeID,
		ServiceNames:       a.ServiceNames,
		TotalPrice:         a.TotalPrice,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Окно отдаем уже разрешенным: legacy-записи получают длительность
	// по умолчанию, некорректные - пустое время окончания
	if start, end, ok := a.Schedule.Window(); ok {
		resp.StartTime = start.String()
		resp.EndTime = end.String()
	} else {
		resp.StartTime = a.Schedule.Start.String()
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appointment := range appointments {
		if apptResp := FromDomainAppointment(appointment); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInService,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
