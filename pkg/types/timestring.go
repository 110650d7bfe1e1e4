// Package types содержит общие типы-значения, используемые во всех слоях сервиса
package types

import (
	"errors"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// ErrInvalidTimeFormat возвращается при некорректном формате времени
var ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

// TimeString represents a clock time as a "HH:MM" string (24-hour, zero-padded).
// It is the wire and storage representation for all slot and appointment times.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывая секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит и валидирует строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes конвертирует минуты с начала суток в TimeString.
// Минуты должны быть в диапазоне [0, 1440).
func FromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= minutesPerDay {
		return "", fmt.Errorf("%w: minutes out of range: %d", ErrInvalidTimeFormat, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate проверяет формат "HH:MM" (24-часовой)
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	h, m, ok := t.parts()
	if !ok || h < 0 || h > 23 || m < 0 || m > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// ToMinutes конвертирует время в минуты с начала суток
func (t TimeString) ToMinutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	h, m, _ := t.parts()
	return h*60 + m, nil
}

// AddMinutes adds delta minutes to the clock time. The result wraps modulo
// 24 hours; wrapped is true when the result crossed midnight (a time on the
// next day). Callers that must not cross midnight check the flag themselves.
func (t TimeString) AddMinutes(delta int) (TimeString, bool) {
	total, err := t.ToMinutes()
	if err != nil {
		return "", false
	}

	total += delta
	wrapped := total >= minutesPerDay || total < 0

	total %= minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}

	result, _ := FromMinutes(total)
	return result, wrapped
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.ToMinutes()
	b, errB := other.ToMinutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.ToMinutes()
	b, errB := other.ToMinutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Display formats the time on a 12-hour clock: "00:00" -> "12:00 AM",
// "12:00" -> "12:00 PM", "13:30" -> "1:30 PM". Invalid values are returned
// as-is so a broken legacy record stays visible instead of panicking.
func (t TimeString) Display() string {
	if err := t.Validate(); err != nil {
		return string(t)
	}

	h, m, _ := t.parts()

	period := "AM"
	if h >= 12 {
		period = "PM"
	}

	displayHour := h % 12
	if displayHour == 0 {
		displayHour = 12
	}

	return fmt.Sprintf("%d:%02d %s", displayHour, m, period)
}

// parts разбирает "HH:MM" на часы и минуты без аллокаций
func (t TimeString) parts() (hour, minute int, ok bool) {
	if len(t) != 5 || t[2] != ':' {
		return 0, 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, 0, false
		}
	}
	hour = int(t[0]-'0')*10 + int(t[1]-'0')
	minute = int(t[3]-'0')*10 + int(t[4]-'0')
	return hour, minute, true
}
