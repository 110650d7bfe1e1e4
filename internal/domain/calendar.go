package domain

import (
	"time"

	"github.com/Serryudy/EAD-sub000/pkg/types"
)

// LunchBreak обеденный перерыв, в течение которого слоты не выдаются
type LunchBreak struct {
	Enabled bool
	Start   types.TimeString
	End     types.TimeString
}

// OperatingHours рабочие часы сервиса
type OperatingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// BusinessCalendar is the immutable scheduling configuration of the shop.
// It is loaded once at process start and passed explicitly into every
// component that needs it; nothing mutates it at runtime, so it is safe
// to share across goroutines.
type BusinessCalendar struct {
	OperatingDays             map[time.Weekday]bool
	OperatingHours            OperatingHours
	LunchBreak                LunchBreak
	SlotDurationMinutes       int
	MaxConcurrentAppointments int
	AdvanceBookingDays        int
	MinimumNoticeHours        int
	BlockedDates              map[string]bool // ключи в формате DateFormat (YYYY-MM-DD)
}

// DefaultCalendar возвращает календарь с дефолтными значениями (Пн-Сб, 08:00-18:00)
func DefaultCalendar() *BusinessCalendar {
	return &BusinessCalendar{
		OperatingDays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
			time.Saturday:  true,
		},
		OperatingHours: OperatingHours{
			Start: "08:00",
			End:   "18:00",
		},
		LunchBreak: LunchBreak{
			Enabled: true,
			Start:   "12:00",
			End:     "13:00",
		},
		SlotDurationMinutes:       DefaultSlotDurationMinutes,
		MaxConcurrentAppointments: DefaultMaxConcurrentAppointments,
		AdvanceBookingDays:        DefaultAdvanceBookingDays,
		MinimumNoticeHours:        DefaultMinimumNoticeHours,
		BlockedDates:              map[string]bool{},
	}
}

// IsWorkingDay returns true if the shop operates on the date's weekday
func (c *BusinessCalendar) IsWorkingDay(date time.Time) bool {
	return c.OperatingDays[date.Weekday()]
}

// IsBlockedDate returns true if the calendar date is blocked
// (holiday, inventory day). Time of day is ignored.
func (c *BusinessCalendar) IsBlockedDate(date time.Time) bool {
	return c.BlockedDates[date.Format(DateFormat)]
}

// IsPastDateTime returns true if date is strictly before today, or is today
// and t is not after the current clock time.
func (c *BusinessCalendar) IsPastDateTime(date time.Time, t types.TimeString, now time.Time) bool {
	dateOnly := truncateToDay(date)
	nowOnly := truncateToDay(now)

	if dateOnly.Before(nowOnly) {
		return true
	}
	if dateOnly.After(nowOnly) {
		return false
	}

	// Сегодня: сравниваем только время
	return !t.IsAfter(types.NewTimeString(now))
}

// IsBeyondBookingWindow returns true if date is more than AdvanceBookingDays
// after today. AdvanceBookingDays = 0 means no limit.
func (c *BusinessCalendar) IsBeyondBookingWindow(date time.Time, now time.Time) bool {
	if c.AdvanceBookingDays <= 0 {
		return false
	}
	maxDate := truncateToDay(now).AddDate(0, 0, c.AdvanceBookingDays)
	return truncateToDay(date).After(maxDate)
}

// MeetsMinimumNotice returns true if the candidate start instant is at least
// MinimumNoticeHours hours after now.
func (c *BusinessCalendar) MeetsMinimumNotice(date time.Time, t types.TimeString, now time.Time) bool {
	if c.MinimumNoticeHours <= 0 {
		return true
	}

	minutes, err := t.ToMinutes()
	if err != nil {
		return false
	}

	startInstant := truncateToDay(date).Add(time.Duration(minutes) * time.Minute)
	earliest := now.Add(time.Duration(c.MinimumNoticeHours) * time.Hour)

	return !startInstant.Before(earliest)
}

// FitsBeforeClosing returns true if a window of durationMinutes starting at t
// ends no later than closing time (without crossing midnight).
func (c *BusinessCalendar) FitsBeforeClosing(t types.TimeString, durationMinutes int) bool {
	end, wrapped := t.AddMinutes(durationMinutes)
	if wrapped {
		return false
	}
	return !end.IsAfter(c.OperatingHours.End)
}

// OverlapsLunchBreak returns true if a window of durationMinutes starting at t
// intersects the lunch break. Always false when the break is disabled.
func (c *BusinessCalendar) OverlapsLunchBreak(t types.TimeString, durationMinutes int) bool {
	if !c.LunchBreak.Enabled {
		return false
	}
	end, wrapped := t.AddMinutes(durationMinutes)
	if wrapped {
		return false
	}
	return Overlaps(t, end, c.LunchBreak.Start, c.LunchBreak.End)
}

// IsSameDay returns true if both instants fall on the same calendar day
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast returns true if date's calendar day is strictly before now's
func IsDateInPast(date, now time.Time) bool {
	return truncateToDay(date).Before(truncateToDay(now))
}

// truncateToDay обнуляет время, чтобы сравнивать только календарные даты
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
