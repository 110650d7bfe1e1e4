package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	appointmentRepo "github.com/Serryudy/EAD-sub000/internal/infra/storage/appointment"
	employeeRepo "github.com/Serryudy/EAD-sub000/internal/infra/storage/employee"
	"github.com/Serryudy/EAD-sub000/internal/service/appointments/models"
)

type stubAppointmentRepo struct {
	byID map[int64]*domain.Appointment

	cancelledID     int64
	cancelReason    string
	updatedStatus   domain.AppointmentStatus
	assignedAppt    int64
	assignedWorker  int64
	assignmentError error
}

func (s *stubAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := s.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (s *stubAppointmentRepo) GetByUserID(_ context.Context, userID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range s.byID {
		if appt.UserID != userID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (s *stubAppointmentRepo) GetByDateWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range s.byID {
		if !domain.IsSameDay(appt.Date, filter.Date) {
			continue
		}
		if !filter.IncludeTerminal && !appt.IsActive() {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (s *stubAppointmentRepo) AssignEmployee(_ context.Context, appointmentID int64, employeeID int64) error {
	if s.assignmentError != nil {
		return s.assignmentError
	}
	s.assignedAppt = appointmentID
	s.assignedWorker = employeeID
	return nil
}

func (s *stubAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := s.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	s.updatedStatus = status
	return nil
}

func (s *stubAppointmentRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := s.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	s.cancelledID = id
	s.cancelReason = reason
	return nil
}

type stubEmployeeDirectory struct {
	byID map[int64]*domain.Employee
}

func (s *stubEmployeeDirectory) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	employee, ok := s.byID[id]
	if !ok {
		return nil, employeeRepo.ErrEmployeeNotFound
	}
	return employee, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	ownerID    = int64(7)
	staffID    = int64(100)
	strangerID = int64(999)
)

func testAppointment(id int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:           id,
		UserID:       ownerID,
		VehicleID:    3,
		ServiceIDs:   []int64{1},
		VehicleCount: 1,
		Date:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Schedule:     domain.NewExplicitWindow("10:00", "11:00"),
		Status:       status,
	}
}

func newTestService(appointments ...*domain.Appointment) (*Service, *stubAppointmentRepo) {
	repo := &stubAppointmentRepo{byID: map[int64]*domain.Appointment{}}
	for _, appt := range appointments {
		repo.byID[appt.ID] = appt
	}
	directory := &stubEmployeeDirectory{byID: map[int64]*domain.Employee{
		staffID: {ID: staffID, Name: "Max", Role: domain.RoleEmployee, IsActive: true},
	}}
	return NewService(repo, directory, nopLogger{}), repo
}

func TestGetByIDOwner(t *testing.T) {
	svc, _ := newTestService(testAppointment(1, domain.StatusConfirmed))

	resp, err := svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
}

func TestGetByIDStaff(t *testing.T) {
	svc, _ := newTestService(testAppointment(1, domain.StatusConfirmed))

	_, err := svc.GetByID(context.Background(), 1, staffID)
	assert.NoError(t, err)
}

func TestGetByIDStrangerDenied(t *testing.T) {
	svc, _ := newTestService(testAppointment(1, domain.StatusConfirmed))

	_, err := svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 404, ownerID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetUserAppointmentsStatusFilter(t *testing.T) {
	svc, _ := newTestService(
		testAppointment(1, domain.StatusConfirmed),
		testAppointment(2, domain.StatusCancelled),
	)

	status := "cancelled"
	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: ownerID,
		Status: &status,
	})
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(2), resp.Appointments[0].ID)
}

func TestGetUserAppointmentsInvalidStatus(t *testing.T) {
	svc, _ := newTestService()

	status := "teleported"
	_, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: ownerID,
		Status: &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDayScheduleStaffOnly(t *testing.T) {
	svc, _ := newTestService(testAppointment(1, domain.StatusConfirmed))
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetDaySchedule(context.Background(), &models.GetDayScheduleRequest{
		UserID: staffID,
		Date:   date,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.GetDaySchedule(context.Background(), &models.GetDayScheduleRequest{
		UserID: ownerID,
		Date:   date,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetDayScheduleRequiresDate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetDaySchedule(context.Background(), &models.GetDayScheduleRequest{UserID: staffID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancelByOwner(t *testing.T) {
	svc, repo := newTestService(testAppointment(1, domain.StatusPending))

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             ownerID,
		CancellationReason: "plans changed",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.cancelledID)
	assert.Equal(t, "plans changed", repo.cancelReason)
}

func TestCancelByStaff(t *testing.T) {
	svc, repo := newTestService(testAppointment(1, domain.StatusConfirmed))

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             staffID,
		CancellationReason: "no parts in stock",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.cancelledID)
}

func TestCancelByStrangerDenied(t *testing.T) {
	svc, repo := newTestService(testAppointment(1, domain.StatusPending))

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: strangerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestCancelTerminalStatusRejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusInService,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		svc, _ := newTestService(testAppointment(1, status))

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: ownerID})
		assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
	}
}

func TestUpdateStatusAllowedTransition(t *testing.T) {
	svc, repo := newTestService(testAppointment(1, domain.StatusConfirmed))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: staffID,
		Status: "in_service",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInService, repo.updatedStatus)
}

func TestUpdateStatusSkippedStepRejected(t *testing.T) {
	svc, _ := newTestService(testAppointment(1, domain.StatusPending))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: staffID,
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusCancelledViaStatusRejected(t *testing.T) {
	svc, _ := newTestService(testAppointment(1, domain.StatusPending))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: staffID,
		Status: "cancelled",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusRequiresStaff(t *testing.T) {
	svc, _ := newTestService(testAppointment(1, domain.StatusPending))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	svc, _ := newTestService(testAppointment(1, domain.StatusPending))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: staffID,
		Status: "frozen",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAssignEmployee(t *testing.T) {
	svc, repo := newTestService(testAppointment(1, domain.StatusPending))

	err := svc.AssignEmployee(context.Background(), 1, staffID, staffID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.assignedAppt)
	assert.Equal(t, staffID, repo.assignedWorker)
}

func TestAssignEmployeeUnknownEmployee(t *testing.T) {
	svc, _ := newTestService(testAppointment(1, domain.StatusPending))

	err := svc.AssignEmployee(context.Background(), 1, int64(12345), staffID)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestAssignEmployeeRequiresStaff(t *testing.T) {
	svc, _ := newTestService(testAppointment(1, domain.StatusPending))

	err := svc.AssignEmployee(context.Background(), 1, staffID, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
