package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 15, 9, 5, 42, 0, time.UTC))
	assert.Equal(t, TimeString("09:05"), ts)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("08:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:30"), ts)

	for _, invalid := range []string{"8:30", "24:00", "12:60", "0830", "12-30", "ab:cd", ""} {
		_, err := NewTimeStringFromString(invalid)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", invalid)
	}
}

func TestToMinutesRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 59, 60, 719, 720, 1439} {
		ts, err := FromMinutes(m)
		require.NoError(t, err)

		back, err := ts.ToMinutes()
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}

	_, err := FromMinutes(-1)
	assert.Error(t, err)
	_, err = FromMinutes(1440)
	assert.Error(t, err)
}

func TestAddMinutes(t *testing.T) {
	result, wrapped := TimeString("10:00").AddMinutes(90)
	assert.Equal(t, TimeString("11:30"), result)
	assert.False(t, wrapped)

	// Переход через полночь помечается флагом
	result, wrapped = TimeString("23:30").AddMinutes(60)
	assert.Equal(t, TimeString("00:30"), result)
	assert.True(t, wrapped)

	// Ровно до полуночи следующего дня - тоже wrap
	result, wrapped = TimeString("23:00").AddMinutes(60)
	assert.Equal(t, TimeString("00:00"), result)
	assert.True(t, wrapped)

	result, wrapped = TimeString("01:00").AddMinutes(-90)
	assert.Equal(t, TimeString("23:30"), result)
	assert.True(t, wrapped)
}

func TestIsBeforeIsAfter(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:01").IsBefore("09:00"))

	assert.True(t, TimeString("18:00").IsAfter("08:00"))
	assert.False(t, TimeString("08:00").IsAfter("08:00"))
}

func TestDisplay(t *testing.T) {
	cases := map[TimeString]string{
		"00:00": "12:00 AM",
		"00:30": "12:30 AM",
		"01:05": "1:05 AM",
		"11:59": "11:59 AM",
		"12:00": "12:00 PM",
		"12:30": "12:30 PM",
		"13:30": "1:30 PM",
		"23:45": "11:45 PM",
	}
	for ts, want := range cases {
		assert.Equal(t, want, ts.Display(), "time %s", ts)
	}

	// Некорректное значение возвращается как есть
	assert.Equal(t, "garbage", TimeString("garbage").Display())
}

func TestIsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("00:00").IsZero())
}
