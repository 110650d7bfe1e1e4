package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Serryudy/EAD-sub000/pkg/types"
)

func activeAppt(start, end types.TimeString) *Appointment {
	return &Appointment{
		Status:   StatusConfirmed,
		Schedule: NewExplicitWindow(start, end),
	}
}

func TestOverlaps(t *testing.T) {
	// Полуоткрытые интервалы: касание границами - не пересечение
	assert.False(t, Overlaps("08:00", "10:00", "10:00", "12:00"))
	assert.False(t, Overlaps("10:00", "12:00", "08:00", "10:00"))

	// Частичное пересечение
	assert.True(t, Overlaps("08:00", "10:00", "09:00", "11:00"))
	assert.True(t, Overlaps("09:00", "11:00", "08:00", "10:00"))

	// Вложенность
	assert.True(t, Overlaps("08:00", "12:00", "09:00", "10:00"))
	assert.True(t, Overlaps("09:00", "10:00", "08:00", "12:00"))

	// Идентичные окна
	assert.True(t, Overlaps("08:00", "10:00", "08:00", "10:00"))

	// Непересекающиеся с зазором
	assert.False(t, Overlaps("08:00", "09:00", "10:00", "11:00"))
}

func TestOverlapsSymmetry(t *testing.T) {
	windows := [][2]types.TimeString{
		{"08:00", "10:00"},
		{"09:30", "11:00"},
		{"10:00", "12:00"},
		{"11:59", "12:01"},
	}

	for _, a := range windows {
		for _, b := range windows {
			assert.Equal(t,
				Overlaps(a[0], a[1], b[0], b[1]),
				Overlaps(b[0], b[1], a[0], a[1]),
				"overlap must be symmetric for %v and %v", a, b)
		}
	}
}

func TestCountOverlapping(t *testing.T) {
	appointments := []*Appointment{
		activeAppt("08:00", "10:00"),
		activeAppt("09:00", "11:00"),
		activeAppt("10:00", "12:00"),
	}

	assert.Equal(t, 2, CountOverlapping(appointments, "09:30", "10:30"))
	assert.Equal(t, 1, CountOverlapping(appointments, "08:00", "09:00"))
	assert.Equal(t, 0, CountOverlapping(appointments, "12:00", "13:00"))
}

func TestCountOverlappingSkipsTerminal(t *testing.T) {
	cancelled := activeAppt("09:00", "11:00")
	cancelled.Status = StatusCancelled
	completed := activeAppt("09:00", "11:00")
	completed.Status = StatusCompleted

	appointments := []*Appointment{
		cancelled,
		completed,
		activeAppt("09:00", "11:00"),
	}

	// Отмененные и завершенные записи не занимают слот
	assert.Equal(t, 1, CountOverlapping(appointments, "09:00", "10:00"))
}

func TestCountOverlappingSkipsMalformed(t *testing.T) {
	malformed := &Appointment{
		Status:   StatusConfirmed,
		Schedule: NewExplicitWindow("11:00", "09:00"), // инвертированное окно
	}
	badTime := &Appointment{
		Status:   StatusConfirmed,
		Schedule: NewExplicitWindow("garbage", "10:00"),
	}

	appointments := []*Appointment{
		malformed,
		badTime,
		activeAppt("09:00", "10:00"),
	}

	assert.Equal(t, 1, CountOverlapping(appointments, "09:00", "10:00"))
}

func TestCountOverlappingLegacyDefaultDuration(t *testing.T) {
	// Legacy-запись без длительности: окно 10:00 + 120 минут по умолчанию
	legacy := &Appointment{
		Status:   StatusPending,
		Schedule: NewScheduledStart("10:00", 0),
	}

	appointments := []*Appointment{legacy}

	assert.Equal(t, 1, CountOverlapping(appointments, "11:00", "11:30"))
	assert.Equal(t, 0, CountOverlapping(appointments, "12:00", "12:30"))
}

func TestHasConflict(t *testing.T) {
	appointments := []*Appointment{activeAppt("10:00", "12:00")}

	assert.True(t, HasConflict(appointments, "11:00", "13:00"))
	assert.False(t, HasConflict(appointments, "12:00", "14:00"))
	assert.False(t, HasConflict(nil, "08:00", "09:00"))
}
