package check_slot_capacity

import (
	"context"
	"fmt"

	"github.com/Serryudy/EAD-sub000/internal/domain"
)

// UseCase use case проверки занятости слота.
// Чисто читающая операция без резервирования: два конкурентных запроса
// могут оба увидеть IsAvailable = true. Атомарный check-and-reserve
// выполняется в create_appointment.
type UseCase struct {
	appointmentRepo AppointmentRepository
	calendar        *domain.BusinessCalendar
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendar *domain.BusinessCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendar:        calendar,
		logger:          logger,
	}
}

// Execute выполняет проверку занятости слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlotCapacity: validation failed: %v", err)
		return nil, err
	}

	// Запрос без длительности трактуется как legacy-проверка:
	// подставляем длительность по умолчанию
	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultAppointmentDurationMinutes
	}

	end, wrapped := req.StartTime.AddMinutes(duration)
	if wrapped {
		return nil, fmt.Errorf("%w: window crosses midnight", ErrInvalidInput)
	}

	// Загружаем активные записи на дату; окно каждой записи восстанавливается
	// из тегированного расписания (legacy-записи получают длительность по умолчанию)
	appointments, err := uc.appointmentRepo.GetByDateWithFilter(ctx, domain.AppointmentsFilter{
		Date: req.Date,
	})
	if err != nil {
		uc.logger.Error("CheckSlotCapacity: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	used := domain.CountOverlapping(appointments, req.StartTime, end)

	total := uc.calendar.MaxConcurrentAppointments
	remaining := total - used
	if remaining < 0 {
		remaining = 0
	}

	uc.logger.Info("CheckSlotCapacity: date=%s, time=%s, duration=%d: %d/%d spots taken",
		req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes, used, total)

	return &Response{
		IsAvailable:       remaining > 0,
		CapacityUsed:      used,
		CapacityRemaining: remaining,
		CapacityTotal:     total,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	// 0 допустим: означает "длительность не указана"
	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}

	return nil
}
