package domain

import "github.com/Serryudy/EAD-sub000/pkg/types"

// ScheduleKind tags how an appointment stores its time.
type ScheduleKind int

const (
	// ScheduleExplicitWindow запись с явным окном [start, end)
	ScheduleExplicitWindow ScheduleKind = iota + 1

	// ScheduleStartWithDuration запись с временем начала и длительностью.
	// Legacy-записи без длительности получают DefaultAppointmentDurationMinutes.
	ScheduleStartWithDuration
)

// Schedule is the tagged time representation of an appointment. Older records
// carry only a scheduled start (sometimes without a duration); newer records
// carry an explicit window. Window resolves both forms to one half-open
// interval so that every capacity/conflict check works on the same shape.
type Schedule struct {
	Kind            ScheduleKind
	Start           types.TimeString
	End             types.TimeString // только для ScheduleExplicitWindow
	DurationMinutes int              // только для ScheduleStartWithDuration, 0 = legacy без длительности
}

// NewExplicitWindow создает расписание с явным окном
func NewExplicitWindow(start, end types.TimeString) Schedule {
	return Schedule{
		Kind:  ScheduleExplicitWindow,
		Start: start,
		End:   end,
	}
}

// NewScheduledStart создает расписание по времени начала и длительности.
// durationMinutes = 0 означает legacy-запись: длительность будет подставлена
// по умолчанию при вычислении окна.
func NewScheduledStart(start types.TimeString, durationMinutes int) Schedule {
	return Schedule{
		Kind:            ScheduleStartWithDuration,
		Start:           start,
		DurationMinutes: durationMinutes,
	}
}

// Window resolves the effective half-open window of the appointment.
// ok is false for malformed records (bad time strings, inverted windows,
// windows that would wrap past midnight); such records are skipped from
// overlap consideration instead of aborting the whole computation.
func (s Schedule) Window() (start, end types.TimeString, ok bool) {
	if err := s.Start.Validate(); err != nil {
		return "", "", false
	}

	switch s.Kind {
	case ScheduleExplicitWindow:
		if err := s.End.Validate(); err != nil {
			return "", "", false
		}
		if !s.Start.IsBefore(s.End) {
			return "", "", false
		}
		return s.Start, s.End, true

	case ScheduleStartWithDuration:
		duration := s.DurationMinutes
		if duration <= 0 {
			duration = DefaultAppointmentDurationMinutes
		}
		end, wrapped := s.Start.AddMinutes(duration)
		if wrapped {
			return "", "", false
		}
		return s.Start, end, true

	default:
		return "", "", false
	}
}
