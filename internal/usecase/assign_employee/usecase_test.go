package assign_employee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serryudy/EAD-sub000/internal/domain"
)

type stubEmployeeDirectory struct {
	employees []*domain.Employee
	err       error
}

func (s *stubEmployeeDirectory) ListActive(_ context.Context) ([]*domain.Employee, error) {
	return s.employees, s.err
}

// stubAppointmentRepo отдает записи по назначенному технику
type stubAppointmentRepo struct {
	byEmployee map[int64][]*domain.Appointment
}

func (s *stubAppointmentRepo) GetByDateWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if filter.EmployeeID == nil {
		return nil, nil
	}
	return s.byEmployee[*filter.EmployeeID], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func employee(id int64, name string) *domain.Employee {
	return &domain.Employee{ID: id, Name: name, Role: domain.RoleEmployee, IsActive: true}
}

func TestParseTimeWindow(t *testing.T) {
	cases := []struct {
		input string
		start string
		end   string
	}{
		{"10:00 AM - 11:00 AM", "10:00", "11:00"},
		{"12:00 AM - 1:00 AM", "00:00", "01:00"},
		{"11:30 AM - 12:30 PM", "11:30", "12:30"},
		{"12:00 PM - 2:00 PM", "12:00", "14:00"},
		{"1:15 PM - 3:45 PM", "13:15", "15:45"},
		{"10:00 - 11:00", "10:00", "11:00"},
		{"09:00-17:30", "09:00", "17:30"},
	}

	for _, tc := range cases {
		start, end, err := ParseTimeWindow(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.start, start.String(), "input %q", tc.input)
		assert.Equal(t, tc.end, end.String(), "input %q", tc.input)
	}
}

func TestParseTimeWindowErrors(t *testing.T) {
	for _, invalid := range []string{
		"",
		"10:00 AM",
		"10:00 AM - 11:00 AM - 12:00 PM",
		"13:00 PM - 2:00 PM",
		"0:30 AM - 2:00 AM",
		"25:00 - 26:00",
		"11:00 AM - 10:00 AM", // инвертированное окно
		"10:00 AM - 10:00 AM", // пустое окно
		"ten - eleven",
	} {
		_, _, err := ParseTimeWindow(invalid)
		assert.ErrorIs(t, err, ErrInvalidTimeWindow, "input %q", invalid)
	}
}

func TestExecutePicksFirstFreeEmployee(t *testing.T) {
	// Техник 1 занят в окне, техник 2 свободен
	repo := &stubAppointmentRepo{byEmployee: map[int64][]*domain.Appointment{
		1: {{Status: domain.StatusConfirmed, Schedule: domain.NewExplicitWindow("10:00", "12:00")}},
	}}
	directory := &stubEmployeeDirectory{employees: []*domain.Employee{
		employee(1, "Alex"),
		employee(2, "Sam"),
	}}

	uc := NewUseCase(directory, repo, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{
		Date:       testDate,
		TimeWindow: "10:00 AM - 11:00 AM",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Employee)
	assert.Equal(t, int64(2), resp.Employee.ID)
}

func TestExecuteAdjacentWindowIsFree(t *testing.T) {
	// Запись 10:00-11:00 не конфликтует с окном 11:00-12:00
	repo := &stubAppointmentRepo{byEmployee: map[int64][]*domain.Appointment{
		1: {{Status: domain.StatusConfirmed, Schedule: domain.NewExplicitWindow("10:00", "11:00")}},
	}}
	directory := &stubEmployeeDirectory{employees: []*domain.Employee{employee(1, "Alex")}}

	uc := NewUseCase(directory, repo, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{
		Date:       testDate,
		TimeWindow: "11:00 AM - 12:00 PM",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Employee)
	assert.Equal(t, int64(1), resp.Employee.ID)
}

func TestExecuteNoFreeEmployee(t *testing.T) {
	busy := []*domain.Appointment{
		{Status: domain.StatusConfirmed, Schedule: domain.NewExplicitWindow("09:00", "12:00")},
	}
	repo := &stubAppointmentRepo{byEmployee: map[int64][]*domain.Appointment{1: busy, 2: busy}}
	directory := &stubEmployeeDirectory{employees: []*domain.Employee{
		employee(1, "Alex"),
		employee(2, "Sam"),
	}}

	uc := NewUseCase(directory, repo, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{
		Date:       testDate,
		TimeWindow: "10:00 AM - 11:00 AM",
	})

	// Отсутствие свободного техника - валидный результат, не ошибка
	require.NoError(t, err)
	assert.Nil(t, resp.Employee)
}

func TestExecuteUnparseableWindowSkipsAssignment(t *testing.T) {
	directory := &stubEmployeeDirectory{employees: []*domain.Employee{employee(1, "Alex")}}
	uc := NewUseCase(directory, &stubAppointmentRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:       testDate,
		TimeWindow: "not a window",
	})

	require.NoError(t, err)
	assert.Nil(t, resp.Employee)
}

func TestExecuteMissingDate(t *testing.T) {
	uc := NewUseCase(&stubEmployeeDirectory{}, &stubAppointmentRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TimeWindow: "10:00 AM - 11:00 AM"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
