package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	catalogClient "github.com/Serryudy/EAD-sub000/internal/integrations/catalogservice"
	"github.com/Serryudy/EAD-sub000/pkg/ptr"
)

const (
	msgNonWorkingDay = "автосервис не работает в выбранную дату"
	msgBlockedDate   = "выбранная дата недоступна для записи"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogServiceClient
	calendar        *domain.BusinessCalendar
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogServiceClient,
	calendar *domain.BusinessCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		calendar:        calendar,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, date=%s, services=%v, vehicles=%d",
		req.UserID, req.Date.Format(domain.DateFormat), req.ServiceIDs, req.VehicleCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты (прошлое, окно бронирования)
	if err := validateDate(uc.calendar, req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услуги из каталога и считаем базовую длительность
	services, err := uc.catalogClient.GetServices(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: one of services %v not found", req.ServiceIDs)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	baseDuration := 0
	for _, service := range services {
		baseDuration += service.EstimatedDurationMinutes
	}
	if baseDuration <= 0 {
		uc.logger.Warn("GetAvailableSlots: services %v have zero total duration", req.ServiceIDs)
		return nil, fmt.Errorf("%w: total service duration must be positive", ErrInvalidInput)
	}

	// 5. Эффективная длительность: автомобили обслуживаются последовательно
	effectiveDuration := calculateMultiVehicleDuration(baseDuration, req.VehicleCount)

	// 6. Нерабочий или заблокированный день - пустой список с пояснением, не ошибка
	if !uc.calendar.IsWorkingDay(req.Date) {
		uc.logger.Info("GetAvailableSlots: %s is not a working day", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:            req.Date,
			DurationMinutes: effectiveDuration,
			Slots:           []domain.TimeSlot{},
			Message:         ptr.Ptr(msgNonWorkingDay),
		}, nil
	}
	if uc.calendar.IsBlockedDate(req.Date) {
		uc.logger.Info("GetAvailableSlots: %s is blocked", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:            req.Date,
			DurationMinutes: effectiveDuration,
			Slots:           []domain.TimeSlot{},
			Message:         ptr.Ptr(msgBlockedDate),
		}, nil
	}

	// 7. Генерируем кандидатов-слотов
	candidates := generateTimeSlots(uc.calendar, req.Date, effectiveDuration)

	// 8. Получаем активные записи на дату (терминальные исключены репозиторием)
	appointments, err := uc.appointmentRepo.GetByDateWithFilter(ctx, domain.AppointmentsFilter{
		Date: req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 9. Вычисляем занятость и классифицируем слоты
	slots, summary := buildSlots(uc.calendar, candidates, effectiveDuration, appointments, req.Date, now)

	uc.logger.Info("GetAvailableSlots: %d slots (full=%d, limited=%d, booked=%d) for date=%s, duration=%d",
		len(slots), summary.FullyAvailable, summary.LimitedAvailability, summary.FullyBooked,
		req.Date.Format(domain.DateFormat), effectiveDuration)

	return &Response{
		Date:            req.Date,
		DurationMinutes: effectiveDuration,
		Slots:           slots,
		Summary:         summary,
	}, nil
}
