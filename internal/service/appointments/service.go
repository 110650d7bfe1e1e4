package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	appointmentRepo "github.com/Serryudy/EAD-sub000/internal/infra/storage/appointment"
	employeeRepo "github.com/Serryudy/EAD-sub000/internal/infra/storage/employee"
	"github.com/Serryudy/EAD-sub000/internal/service/appointments/models"
)

// Service сервис для работы с записями на обслуживание
type Service struct {
	appointmentRepo   AppointmentRepository
	employeeDirectory EmployeeDirectory
	logger            Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	employeeDirectory EmployeeDirectory,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:   appointmentRepo,
		employeeDirectory: employeeDirectory,
		logger:            logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - пользователь может видеть только свою запись
// или если он является сотрудником сервиса
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appointment, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments получает историю записей пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetDaySchedule получает расписание дня с фильтрацией по технику
// Доступно только сотрудникам сервиса
func (s *Service) GetDaySchedule(ctx context.Context, req *models.GetDayScheduleRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetDaySchedule: fetching schedule for date=%s, user=%d",
		req.Date.Format(domain.DateFormat), req.UserID)
	if req.EmployeeID != nil {
		logMsg += fmt.Sprintf(", employee=%d", *req.EmployeeID)
	}
	if req.IncludeTerminal {
		logMsg += ", includeTerminal=true"
	}
	s.logger.Info(logMsg)

	if req.Date.IsZero() {
		s.logger.Warn("GetDaySchedule: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем права доступа сотрудника
	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.GetByDateWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetDaySchedule: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDaySchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDaySchedule: successfully fetched %d appointments for date=%s",
		len(appointments), req.Date.Format(domain.DateFormat))
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Пользователь может отменить только свою запись в статусе pending или confirmed;
// сотрудник сервиса может отменить любую запись
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить запись
	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	// Владелец отменяет свою запись, любой другой должен быть сотрудником
	if appointment.UserID != req.UserID {
		if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
			return ErrAccessDenied
		}
	}

	// Отменяем запись
	if err := s.appointmentRepo.Cancel(ctx, appointmentID, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только сотрудникам сервиса; переходы ограничены цепочкой
// pending -> confirmed -> in_service -> completed
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только сотрудник сервиса)
	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Отмена идет через Cancel, не через смену статуса
	if !appointment.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d",
			appointment.Status, newStatus, appointmentID)
		return ErrInvalidTransition
	}

	// Обновляем статус
	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// AssignEmployee назначает техника на запись вручную
// Доступно только сотрудникам сервиса
func (s *Service) AssignEmployee(ctx context.Context, appointmentID int64, employeeID int64, userID int64) error {
	s.logger.Info("AssignEmployee: assigning employee=%d to appointment id=%d by user=%d",
		employeeID, appointmentID, userID)

	if err := s.checkStaffAccess(ctx, userID); err != nil {
		return err
	}

	employee, err := s.employeeDirectory.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("AssignEmployee: employee id=%d not found", employeeID)
			return ErrEmployeeNotFound
		}
		s.logger.Error("AssignEmployee: failed to get employee id=%d: %v", employeeID, err)
		return fmt.Errorf("%w: AssignEmployee - failed to get employee: %v", ErrInternal, err)
	}

	if !employee.IsAssignable() {
		s.logger.Warn("AssignEmployee: employee id=%d is not assignable", employeeID)
		return fmt.Errorf("%w: employee is not assignable", ErrInvalidInput)
	}

	if err := s.appointmentRepo.AssignEmployee(ctx, appointmentID, employeeID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("AssignEmployee: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("AssignEmployee: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: AssignEmployee - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AssignEmployee: successfully assigned employee=%d to appointment id=%d", employeeID, appointmentID)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Пользователь может видеть свою запись или если он сотрудник сервиса
func (s *Service) checkUserAccess(ctx context.Context, appointment *domain.Appointment, userID int64) error {
	// Если пользователь владелец записи - доступ разрешен
	if appointment.UserID == userID {
		return nil
	}

	if err := s.checkStaffAccess(ctx, userID); err != nil {
		// Ошибка уже залогирована в checkStaffAccess
		return ErrAccessDenied
	}

	return nil
}

// checkStaffAccess проверяет, что пользователь является активным сотрудником сервиса
func (s *Service) checkStaffAccess(ctx context.Context, userID int64) error {
	employee, err := s.employeeDirectory.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("checkStaffAccess: user=%d is not a staff member", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkStaffAccess: failed to get employee id=%d: %v", userID, err)
		return fmt.Errorf("%w: checkStaffAccess - failed to get employee: %v", ErrInternal, err)
	}

	if !employee.IsActive {
		s.logger.Warn("checkStaffAccess: employee id=%d is inactive", userID)
		return ErrAccessDenied
	}

	s.logger.Info("checkStaffAccess: user=%d is an active staff member", userID)
	return nil
}
