package get_day_schedule

import (
	"context"

	"github.com/Serryudy/EAD-sub000/internal/service/appointments/models"
)

type AppointmentService interface {
	GetDaySchedule(ctx context.Context, req *models.GetDayScheduleRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
