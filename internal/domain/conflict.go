package domain

import "github.com/Serryudy/EAD-sub000/pkg/types"

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. A window that ends exactly when the other
// begins does NOT overlap.
//
// This is the only interval-overlap test in the system. Capacity counting
// and employee conflict checks must call it instead of comparing times
// inline: duplicated boundary handling is the classic source of
// off-by-one-slot bugs.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// CountOverlapping подсчитывает количество активных записей, окна которых
// пересекаются с [start, end). Записи с некорректным расписанием пропускаются.
func CountOverlapping(appointments []*Appointment, start, end types.TimeString) int {
	count := 0

	for _, appointment := range appointments {
		// Отмененные и завершенные записи не занимают слот
		if !appointment.IsActive() {
			continue
		}

		windowStart, windowEnd, ok := appointment.Schedule.Window()
		if !ok {
			// Legacy-запись с некорректным временем - пропускаем
			continue
		}

		if Overlaps(windowStart, windowEnd, start, end) {
			count++
		}
	}

	return count
}

// HasConflict возвращает true, если хотя бы одна активная запись пересекается с [start, end)
func HasConflict(appointments []*Appointment, start, end types.TimeString) bool {
	return CountOverlapping(appointments, start, end) > 0
}
