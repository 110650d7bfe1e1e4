package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes       = 30
	DefaultMaxConcurrentAppointments = 3
	DefaultAdvanceBookingDays        = 30
	DefaultMinimumNoticeHours        = 2

	// DefaultAppointmentDurationMinutes длительность, которую мы предполагаем
	// для legacy-записей, у которых указано только время начала без длительности
	DefaultAppointmentDurationMinutes = 120
)

// Business validation constants
const (
	MinSlotDurationMinutes       = 5
	MaxSlotDurationMinutes       = 480 // 8 hours
	MinConcurrentAppointments    = 1
	MaxConcurrentAppointmentsCap = 100
	MaxAdvanceBookingDays        = 365 // 1 year
	MaxMinimumNoticeHours        = 168 // 1 week
	MaxVehiclesPerAppointment    = 10
	MaxNotesLength               = 500
	MaxCancellationReasonLength  = 500
	MaxServicesPerAppointment    = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses статусы, не участвующие в подсчете занятости и конфликтов.
// Используется при фильтрации записей в репозитории.
var TerminalStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
}

// ActiveStatuses список статусов записей, занимающих слот
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInService,
}
