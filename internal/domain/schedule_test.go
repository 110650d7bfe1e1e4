package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowExplicit(t *testing.T) {
	start, end, ok := NewExplicitWindow("09:00", "11:00").Window()
	assert.True(t, ok)
	assert.Equal(t, "09:00", start.String())
	assert.Equal(t, "11:00", end.String())
}

func TestWindowExplicitMalformed(t *testing.T) {
	// Инвертированное окно
	_, _, ok := NewExplicitWindow("11:00", "09:00").Window()
	assert.False(t, ok)

	// Пустое окно
	_, _, ok = NewExplicitWindow("09:00", "09:00").Window()
	assert.False(t, ok)

	// Некорректное время
	_, _, ok = NewExplicitWindow("garbage", "11:00").Window()
	assert.False(t, ok)
}

func TestWindowScheduledStart(t *testing.T) {
	start, end, ok := NewScheduledStart("10:00", 90).Window()
	assert.True(t, ok)
	assert.Equal(t, "10:00", start.String())
	assert.Equal(t, "11:30", end.String())
}

func TestWindowScheduledStartLegacyDefault(t *testing.T) {
	// Без длительности - подставляются 120 минут по умолчанию
	start, end, ok := NewScheduledStart("10:00", 0).Window()
	assert.True(t, ok)
	assert.Equal(t, "10:00", start.String())
	assert.Equal(t, "12:00", end.String())
}

func TestWindowScheduledStartWrapsMidnight(t *testing.T) {
	_, _, ok := NewScheduledStart("23:30", 60).Window()
	assert.False(t, ok)
}

func TestCanTransitionTo(t *testing.T) {
	appt := &Appointment{Status: StatusPending}
	assert.True(t, appt.CanTransitionTo(StatusConfirmed))
	assert.False(t, appt.CanTransitionTo(StatusInService))
	assert.False(t, appt.CanTransitionTo(StatusCancelled))

	appt.Status = StatusConfirmed
	assert.True(t, appt.CanTransitionTo(StatusInService))
	assert.False(t, appt.CanTransitionTo(StatusCompleted))

	appt.Status = StatusInService
	assert.True(t, appt.CanTransitionTo(StatusCompleted))

	appt.Status = StatusCompleted
	assert.False(t, appt.CanTransitionTo(StatusConfirmed))
}

func TestCanBeCancelled(t *testing.T) {
	for status, want := range map[AppointmentStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusInService: false,
		StatusCompleted: false,
		StatusCancelled: false,
	} {
		appt := &Appointment{Status: status}
		assert.Equal(t, want, appt.CanBeCancelled(), "status %s", status)
	}
}
