package get_available_slots

import (
	"fmt"
	"time"

	"github.com/Serryudy/EAD-sub000/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Нулевое количество автомобилей и пустой список услуг отклоняются явно -
// из них нельзя получить осмысленную длительность.
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: too many services, max %d", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.VehicleCount < 1 {
		return fmt.Errorf("%w: vehicleCount must be at least 1", ErrInvalidInput)
	}

	if req.VehicleCount > domain.MaxVehiclesPerAppointment {
		return fmt.Errorf("%w: vehicleCount exceeds max %d", ErrInvalidInput, domain.MaxVehiclesPerAppointment)
	}

	return nil
}

// validateDate проверяет дату на уровне календарного дня:
// прошедшие даты и даты за пределами окна бронирования отклоняются
func validateDate(cal *domain.BusinessCalendar, date time.Time, now time.Time) error {
	if domain.IsDateInPast(date, now) {
		return ErrDateInPast
	}

	if cal.IsBeyondBookingWindow(date, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, cal.AdvanceBookingDays)
	}

	return nil
}
