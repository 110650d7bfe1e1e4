package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestIsWorkingDay(t *testing.T) {
	cal := DefaultCalendar()

	// Пн-Сб рабочие, воскресенье - нет
	assert.True(t, cal.IsWorkingDay(date(2026, 9, 14)))  // Monday
	assert.True(t, cal.IsWorkingDay(date(2026, 9, 19)))  // Saturday
	assert.False(t, cal.IsWorkingDay(date(2026, 9, 20))) // Sunday
}

func TestIsBlockedDate(t *testing.T) {
	cal := DefaultCalendar()
	cal.BlockedDates["2026-09-15"] = true

	assert.True(t, cal.IsBlockedDate(date(2026, 9, 15)))
	assert.False(t, cal.IsBlockedDate(date(2026, 9, 16)))
}

func TestIsPastDateTime(t *testing.T) {
	cal := DefaultCalendar()
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, cal.IsPastDateTime(date(2026, 9, 14), "18:00", now))
	assert.False(t, cal.IsPastDateTime(date(2026, 9, 16), "08:00", now))

	// Сегодня: время должно быть строго позже текущего
	assert.True(t, cal.IsPastDateTime(date(2026, 9, 15), "11:00", now))
	assert.True(t, cal.IsPastDateTime(date(2026, 9, 15), "12:00", now))
	assert.False(t, cal.IsPastDateTime(date(2026, 9, 15), "12:01", now))
}

func TestIsBeyondBookingWindow(t *testing.T) {
	cal := DefaultCalendar() // 30 дней
	now := date(2026, 9, 1)

	assert.False(t, cal.IsBeyondBookingWindow(date(2026, 9, 30), now))
	assert.False(t, cal.IsBeyondBookingWindow(date(2026, 10, 1), now)) // ровно 30 дней
	assert.True(t, cal.IsBeyondBookingWindow(date(2026, 10, 2), now))

	// 0 = без ограничения
	cal.AdvanceBookingDays = 0
	assert.False(t, cal.IsBeyondBookingWindow(date(2030, 1, 1), now))
}

func TestMeetsMinimumNotice(t *testing.T) {
	cal := DefaultCalendar() // 2 часа
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	assert.False(t, cal.MeetsMinimumNotice(date(2026, 9, 15), "11:00", now))
	assert.True(t, cal.MeetsMinimumNotice(date(2026, 9, 15), "12:00", now)) // ровно 2 часа
	assert.True(t, cal.MeetsMinimumNotice(date(2026, 9, 15), "12:30", now))
	assert.True(t, cal.MeetsMinimumNotice(date(2026, 9, 16), "08:00", now))

	// 0 = без ограничения
	cal.MinimumNoticeHours = 0
	assert.True(t, cal.MeetsMinimumNotice(date(2026, 9, 15), "10:01", now))
}

func TestFitsBeforeClosing(t *testing.T) {
	cal := DefaultCalendar() // закрытие 18:00

	assert.True(t, cal.FitsBeforeClosing("16:00", 120)) // ровно к закрытию
	assert.False(t, cal.FitsBeforeClosing("16:30", 120))
	assert.False(t, cal.FitsBeforeClosing("23:00", 120)) // переход через полночь
}

func TestOverlapsLunchBreak(t *testing.T) {
	cal := DefaultCalendar() // обед 12:00-13:00

	assert.True(t, cal.OverlapsLunchBreak("11:30", 60))
	assert.True(t, cal.OverlapsLunchBreak("12:30", 30))
	assert.False(t, cal.OverlapsLunchBreak("11:00", 60)) // заканчивается ровно к обеду
	assert.False(t, cal.OverlapsLunchBreak("13:00", 60)) // начинается сразу после

	cal.LunchBreak.Enabled = false
	assert.False(t, cal.OverlapsLunchBreak("12:00", 60))
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(date(2026, 9, 14), now))
	assert.False(t, IsDateInPast(date(2026, 9, 15), now))
	assert.False(t, IsDateInPast(date(2026, 9, 16), now))
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2026, 9, 15, 0, 1, 0, 0, time.UTC)
	b := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)

	assert.True(t, IsSameDay(a, b))
	assert.False(t, IsSameDay(a, b.AddDate(0, 0, 1)))
}
