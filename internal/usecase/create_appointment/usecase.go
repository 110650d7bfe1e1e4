package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	catalogClient "github.com/Serryudy/EAD-sub000/internal/integrations/catalogservice"
)

// UseCase use case создания записи на обслуживание.
// Проверка занятости, подбор техника и вставка выполняются в одной
// serializable-транзакции с блокировкой записей дня (FOR UPDATE), чтобы
// два конкурирующих запроса не переполнили слот.
type UseCase struct {
	appointmentRepo   AppointmentRepository
	employeeDirectory EmployeeDirectory
	catalogClient     CatalogServiceClient
	txManager         TransactionManager
	calendar          *domain.BusinessCalendar
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	employeeDirectory EmployeeDirectory,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	calendar *domain.BusinessCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:   appointmentRepo,
		employeeDirectory: employeeDirectory,
		catalogClient:     catalogClient,
		txManager:         txManager,
		calendar:          calendar,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute выполняет создание записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, vehicle=%d, date=%s, start=%s, services=%v, vehicles=%d",
		req.UserID, req.VehicleID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs, req.VehicleCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты (прошлое, окно бронирования)
	if err := validateDate(uc.calendar, req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 4. Нерабочий или заблокированный день
	if !uc.calendar.IsWorkingDay(req.Date) || uc.calendar.IsBlockedDate(req.Date) {
		uc.logger.Warn("CreateAppointment: shop closed on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrShopClosed
	}

	// 5. Получаем услуги из каталога (вне транзакции - внешний вызов)
	services, err := uc.catalogClient.GetServices(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: one of services %v not found", req.ServiceIDs)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	baseDuration := 0
	totalPrice := 0.0
	serviceNames := make([]string, 0, len(services))
	for _, service := range services {
		baseDuration += service.EstimatedDurationMinutes
		if service.Price != nil {
			totalPrice += *service.Price
		}
		serviceNames = append(serviceNames, service.Name)
	}
	if baseDuration <= 0 {
		uc.logger.Warn("CreateAppointment: services %v have zero total duration", req.ServiceIDs)
		return nil, fmt.Errorf("%w: total service duration must be positive", ErrInvalidInput)
	}

	// 6. Эффективная длительность: автомобили обслуживаются последовательно
	effectiveDuration := baseDuration * req.VehicleCount
	totalPrice *= float64(req.VehicleCount)

	endTime, wrapped := req.StartTime.AddMinutes(effectiveDuration)
	if wrapped {
		uc.logger.Warn("CreateAppointment: window %s+%dmin crosses midnight", req.StartTime, effectiveDuration)
		return nil, fmt.Errorf("%w: appointment window crosses midnight", ErrInvalidInput)
	}

	// 7. Проверка времени начала относительно рабочих часов и обеда
	if err := validateStartTime(uc.calendar, req.Date, req.StartTime, effectiveDuration, now); err != nil {
		uc.logger.Warn("CreateAppointment: start time validation failed: %v", err)
		return nil, err
	}

	// 8. Атомарная проверка занятости, подбор техника и вставка
	var created *domain.Appointment
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Записи дня блокируются FOR UPDATE до конца транзакции
		dayAppointments, err := uc.appointmentRepo.GetByDateWithFilter(txCtx, domain.AppointmentsFilter{
			Date: req.Date,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// Повторная проверка занятости внутри транзакции
		overlapping := domain.CountOverlapping(dayAppointments, req.StartTime, endTime)
		if overlapping >= uc.calendar.MaxConcurrentAppointments {
			uc.logger.Warn("CreateAppointment: slot %s-%s on %s is full (%d/%d)",
				req.StartTime, endTime, req.Date.Format(domain.DateFormat),
				overlapping, uc.calendar.MaxConcurrentAppointments)
			return ErrSlotNotAvailable
		}

		// Подбор техника по тому же заблокированному состоянию
		employees, err := uc.employeeDirectory.ListActive(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to list employees: %v", ErrInternal, err)
		}
		free := findFreeEmployee(employees, dayAppointments, req.StartTime, endTime)

		appointment := &domain.Appointment{
			UserID:       req.UserID,
			VehicleID:    req.VehicleID,
			ServiceIDs:   req.ServiceIDs,
			VehicleCount: req.VehicleCount,
			Date:         req.Date,
			Schedule:     domain.NewExplicitWindow(req.StartTime, endTime),
			Status:       domain.StatusPending,
			ServiceNames: strings.Join(serviceNames, ", "),
			TotalPrice:   totalPrice,
			Notes:        req.Notes,
		}
		if free != nil {
			appointment.AssignedEmployeeID = &free.ID
			appointment.Status = domain.StatusConfirmed
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrSlotNotAvailable) {
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", txErr)
		return nil, txErr
	}

	if created.AssignedEmployeeID != nil {
		uc.logger.Info("CreateAppointment: created id=%d, employee=%d, status=%s",
			created.ID, *created.AssignedEmployeeID, created.Status)
	} else {
		uc.logger.Info("CreateAppointment: created id=%d, no free employee, status=%s",
			created.ID, created.Status)
	}

	startTime, finishTime, _ := created.Schedule.Window()
	return &Response{
		ID:                 created.ID,
		UserID:             created.UserID,
		VehicleID:          created.VehicleID,
		ServiceIDs:         created.ServiceIDs,
		VehicleCount:       created.VehicleCount,
		Date:               created.Date,
		StartTime:          startTime,
		EndTime:            finishTime,
		DurationMinutes:    effectiveDuration,
		Status:             string(created.Status),
		AssignedEmployeeID: created.AssignedEmployeeID,
		ServiceNames:       created.ServiceNames,
		TotalPrice:         created.TotalPrice,
		Notes:              created.Notes,
		CreatedAt:          created.CreatedAt,
		UpdatedAt:          created.UpdatedAt,
	}, nil
}
