package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	"github.com/Serryudy/EAD-sub000/internal/integrations/catalogservice"
	"github.com/Serryudy/EAD-sub000/pkg/ptr"
)

type stubAppointmentRepo struct {
	dayAppointments []*domain.Appointment
	created         *domain.Appointment
	createErr       error
}

func (s *stubAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	appt.ID = 42
	appt.CreatedAt = time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	appt.UpdatedAt = appt.CreatedAt
	s.created = appt
	return appt, nil
}

func (s *stubAppointmentRepo) GetByDateWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return s.dayAppointments, nil
}

type stubEmployeeDirectory struct {
	employees []*domain.Employee
}

func (s *stubEmployeeDirectory) ListActive(_ context.Context) ([]*domain.Employee, error) {
	return s.employees, nil
}

type stubCatalogClient struct {
	services []*catalogservice.Service
	err      error
}

func (s *stubCatalogClient) GetServices(_ context.Context, _ []int64) ([]*catalogservice.Service, error) {
	return s.services, s.err
}

// passthroughTxManager выполняет fn без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC) // вторник
	testNow  = time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
)

func service60() *catalogservice.Service {
	return &catalogservice.Service{
		ID:                       1,
		Name:                     "Oil Change",
		Price:                    ptr.Ptr(49.99),
		EstimatedDurationMinutes: 60,
		IsActive:                 true,
	}
}

func employee(id int64, name string) *domain.Employee {
	return &domain.Employee{ID: id, Name: name, Role: domain.RoleEmployee, IsActive: true}
}

func newTestUseCase(repo *stubAppointmentRepo, directory *stubEmployeeDirectory, catalog *stubCatalogClient) *UseCase {
	uc := NewUseCase(repo, directory, catalog, passthroughTxManager{}, domain.DefaultCalendar(), nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:       7,
		VehicleID:    3,
		ServiceIDs:   []int64{1},
		VehicleCount: 1,
		Date:         testDate,
		StartTime:    "10:00",
	}
}

func TestExecuteCreatesConfirmedWithEmployee(t *testing.T) {
	repo := &stubAppointmentRepo{}
	directory := &stubEmployeeDirectory{employees: []*domain.Employee{employee(1, "Alex")}}
	uc := newTestUseCase(repo, directory, &stubCatalogClient{services: []*catalogservice.Service{service60()}})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "11:00", resp.EndTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, resp.AssignedEmployeeID)
	assert.Equal(t, int64(1), *resp.AssignedEmployeeID)
	assert.Equal(t, "Oil Change", resp.ServiceNames)
	assert.InDelta(t, 49.99, resp.TotalPrice, 0.001)
}

func TestExecutePendingWhenNoFreeEmployee(t *testing.T) {
	busyID := int64(1)
	repo := &stubAppointmentRepo{dayAppointments: []*domain.Appointment{
		{
			Status:             domain.StatusConfirmed,
			Schedule:           domain.NewExplicitWindow("09:00", "12:00"),
			AssignedEmployeeID: &busyID,
		},
	}}
	directory := &stubEmployeeDirectory{employees: []*domain.Employee{employee(1, "Alex")}}
	uc := newTestUseCase(repo, directory, &stubCatalogClient{services: []*catalogservice.Service{service60()}})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Запись создается без техника и ждет назначения
	assert.Nil(t, resp.AssignedEmployeeID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecuteRejectsFullSlot(t *testing.T) {
	full := make([]*domain.Appointment, 0, 3)
	for i := 0; i < 3; i++ {
		full = append(full, &domain.Appointment{
			Status:   domain.StatusConfirmed,
			Schedule: domain.NewExplicitWindow("10:00", "11:00"),
		})
	}
	repo := &stubAppointmentRepo{dayAppointments: full}
	uc := newTestUseCase(repo, &stubEmployeeDirectory{}, &stubCatalogClient{services: []*catalogservice.Service{service60()}})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
}

func TestExecuteMultiVehiclePriceAndDuration(t *testing.T) {
	repo := &stubAppointmentRepo{}
	directory := &stubEmployeeDirectory{employees: []*domain.Employee{employee(1, "Alex")}}
	uc := newTestUseCase(repo, directory, &stubCatalogClient{services: []*catalogservice.Service{service60()}})

	req := validRequest()
	req.VehicleCount = 3
	req.StartTime = "13:00"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 180, resp.DurationMinutes)
	assert.Equal(t, "16:00", resp.EndTime.String())
	assert.InDelta(t, 149.97, resp.TotalPrice, 0.001)
}

func TestExecuteShopClosed(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubEmployeeDirectory{},
		&stubCatalogClient{services: []*catalogservice.Service{service60()}})

	req := validRequest()
	req.Date = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC) // воскресенье

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrShopClosed)
}

func TestExecuteBlockedDate(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubEmployeeDirectory{},
		&stubCatalogClient{services: []*catalogservice.Service{service60()}})
	uc.calendar.BlockedDates[testDate.Format(domain.DateFormat)] = true

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrShopClosed)
}

func TestExecuteTooLateToBook(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubEmployeeDirectory{},
		&stubCatalogClient{services: []*catalogservice.Service{service60()}})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)}

	// Старт через час при требуемых двух часах
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecuteLunchOverlapRejected(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubEmployeeDirectory{},
		&stubCatalogClient{services: []*catalogservice.Service{service60()}})

	req := validRequest()
	req.StartTime = "11:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteValidationErrors(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubEmployeeDirectory{},
		&stubCatalogClient{services: []*catalogservice.Service{service60()}})

	cases := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"zero vehicles", func(r *Request) { r.VehicleCount = 0 }, ErrInvalidInput},
		{"no services", func(r *Request) { r.ServiceIDs = nil }, ErrInvalidInput},
		{"missing start time", func(r *Request) { r.StartTime = "" }, ErrInvalidInput},
		{"bad start time", func(r *Request) { r.StartTime = "8:00" }, ErrInvalidInput},
		{"date in past", func(r *Request) { r.Date = testNow.AddDate(0, 0, -1) }, ErrInvalidDate},
		{"date too far", func(r *Request) { r.Date = testNow.AddDate(0, 0, 31) }, ErrDateTooFarInFuture},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestExecuteServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubEmployeeDirectory{},
		&stubCatalogClient{err: catalogservice.ErrServiceNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestFindFreeEmployeeSkipsBusyAndTerminal(t *testing.T) {
	busyID := int64(1)
	cancelledID := int64(2)
	dayAppointments := []*domain.Appointment{
		{
			Status:             domain.StatusConfirmed,
			Schedule:           domain.NewExplicitWindow("10:00", "11:00"),
			AssignedEmployeeID: &busyID,
		},
		// Отмененная запись не блокирует техника
		{
			Status:             domain.StatusCancelled,
			Schedule:           domain.NewExplicitWindow("10:00", "11:00"),
			AssignedEmployeeID: &cancelledID,
		},
	}
	employees := []*domain.Employee{employee(1, "Alex"), employee(2, "Sam")}

	free := findFreeEmployee(employees, dayAppointments, "10:00", "11:00")
	require.NotNil(t, free)
	assert.Equal(t, int64(2), free.ID)
}
