package check_slot_capacity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serryudy/EAD-sub000/internal/domain"
)

type stubAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (s *stubAppointmentRepo) GetByDateWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return s.appointments, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func TestExecuteEmptyDay(t *testing.T) {
	uc := NewUseCase(&stubAppointmentRepo{}, domain.DefaultCalendar(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsAvailable)
	assert.Equal(t, 0, resp.CapacityUsed)
	assert.Equal(t, 3, resp.CapacityRemaining)
	assert.Equal(t, 3, resp.CapacityTotal)
}

func TestExecuteCountsOverlapping(t *testing.T) {
	appointments := []*domain.Appointment{
		{Status: domain.StatusConfirmed, Schedule: domain.NewExplicitWindow("09:00", "11:00")},
		{Status: domain.StatusPending, Schedule: domain.NewExplicitWindow("10:30", "12:00")},
		// Касается границей - не пересекается
		{Status: domain.StatusConfirmed, Schedule: domain.NewExplicitWindow("11:00", "13:00")},
	}
	uc := NewUseCase(&stubAppointmentRepo{appointments: appointments}, domain.DefaultCalendar(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.CapacityUsed)
	assert.Equal(t, 1, resp.CapacityRemaining)
	assert.True(t, resp.IsAvailable)
}

func TestExecuteFullSlot(t *testing.T) {
	appointments := make([]*domain.Appointment, 0, 3)
	for i := 0; i < 3; i++ {
		appointments = append(appointments, &domain.Appointment{
			Status:   domain.StatusConfirmed,
			Schedule: domain.NewExplicitWindow("10:00", "12:00"),
		})
	}
	uc := NewUseCase(&stubAppointmentRepo{appointments: appointments}, domain.DefaultCalendar(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		StartTime:       "10:00",
		DurationMinutes: 120,
	})
	require.NoError(t, err)

	assert.False(t, resp.IsAvailable)
	assert.Equal(t, 3, resp.CapacityUsed)
	assert.Equal(t, 0, resp.CapacityRemaining)
}

func TestExecuteLegacyDefaultDuration(t *testing.T) {
	// Запись 11:30-12:30: при нулевой длительности окно проверки 10:00 + 120
	// минут по умолчанию должно её зацепить
	appointments := []*domain.Appointment{
		{Status: domain.StatusConfirmed, Schedule: domain.NewExplicitWindow("11:30", "12:30")},
	}
	uc := NewUseCase(&stubAppointmentRepo{appointments: appointments}, domain.DefaultCalendar(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		StartTime: "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.CapacityUsed)
}

func TestExecuteValidation(t *testing.T) {
	uc := NewUseCase(&stubAppointmentRepo{}, domain.DefaultCalendar(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{StartTime: "10:00", DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: testDate, DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: testDate, StartTime: "25:00", DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: testDate, StartTime: "10:00", DurationMinutes: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Окно через полночь
	_, err = uc.Execute(context.Background(), &Request{Date: testDate, StartTime: "23:30", DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
