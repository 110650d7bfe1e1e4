package get_available_slots

import (
	"time"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	"github.com/Serryudy/EAD-sub000/pkg/types"
)

// calculateMultiVehicleDuration вычисляет эффективную длительность записи.
// Автомобили обслуживаются последовательно, поэтому длительность
// умножается на их количество.
func calculateMultiVehicleDuration(baseDurationMinutes, vehicleCount int) int {
	return baseDurationMinutes * vehicleCount
}

// generateTimeSlots генерирует упорядоченный список кандидатов-слотов на день.
// Слоты идут от открытия с шагом SlotDurationMinutes; кандидат должен
// полностью помещаться до закрытия и не пересекаться с обеденным перерывом.
//
// Для нерабочего или заблокированного дня возвращается пустой список.
// Последовательность конечна и детерминирована для одинаковых входов.
func generateTimeSlots(cal *domain.BusinessCalendar, date time.Time, durationMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if !cal.IsWorkingDay(date) || cal.IsBlockedDate(date) {
		return slots
	}

	current := cal.OperatingHours.Start

	for current.IsBefore(cal.OperatingHours.End) {
		// Окно должно полностью помещаться до закрытия
		if !cal.FitsBeforeClosing(current, durationMinutes) {
			break
		}

		if !cal.OverlapsLunchBreak(current, durationMinutes) {
			slots = append(slots, current)
		}

		next, wrapped := current.AddMinutes(cal.SlotDurationMinutes)
		if wrapped {
			break
		}
		current = next
	}

	return slots
}

// buildSlots вычисляет занятость каждого кандидата и классифицирует слоты.
// Кандидаты, нарушающие минимальное время до записи, отбрасываются.
// Полностью занятые слоты не попадают в список, но учитываются в summary.
func buildSlots(
	cal *domain.BusinessCalendar,
	candidates []types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
	date time.Time,
	now time.Time,
) ([]domain.TimeSlot, domain.SlotsSummary) {
	slots := make([]domain.TimeSlot, 0, len(candidates))
	var summary domain.SlotsSummary

	for _, start := range candidates {
		if !cal.MeetsMinimumNotice(date, start, now) {
			continue
		}

		end, wrapped := start.AddMinutes(durationMinutes)
		if wrapped {
			continue
		}

		used := domain.CountOverlapping(appointments, start, end)

		remaining := cal.MaxConcurrentAppointments - used
		if remaining < 0 {
			remaining = 0
		}

		switch {
		case remaining == 0:
			summary.FullyBooked++
			// Занятый слот не показываем, но считаем
			continue
		case remaining == 1:
			summary.LimitedAvailability++
		default:
			summary.FullyAvailable++
		}

		slots = append(slots, domain.TimeSlot{
			StartTime:         start,
			EndTime:           end,
			DisplayStart:      start.Display(),
			DisplayEnd:        end.Display(),
			CapacityUsed:      used,
			CapacityTotal:     cal.MaxConcurrentAppointments,
			CapacityRemaining: remaining,
			IsAvailable:       remaining > 0,
		})
	}

	return slots, summary
}
