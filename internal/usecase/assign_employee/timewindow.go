package assign_employee

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Serryudy/EAD-sub000/pkg/types"
)

// ParseTimeWindow парсит текстовое окно вида "10:00 AM - 11:00 AM".
// Принимается и 24-часовой вариант "10:00 - 11:00". Окно должно быть
// в пределах одних суток, начало строго раньше конца.
func ParseTimeWindow(window string) (start, end types.TimeString, err error) {
	parts := strings.Split(window, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: expected \"start - end\", got %q", ErrInvalidTimeWindow, window)
	}

	start, err = parseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", "", err
	}

	end, err = parseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", err
	}

	if !start.IsBefore(end) {
		return "", "", fmt.Errorf("%w: start %s is not before end %s", ErrInvalidTimeWindow, start, end)
	}

	return start, end, nil
}

// parseClock парсит "HH:MM", "H:MM AM" или "HH:MM PM" в 24-часовой TimeString
func parseClock(s string) (types.TimeString, error) {
	upper := strings.ToUpper(s)

	period := ""
	switch {
	case strings.HasSuffix(upper, "AM"):
		period = "AM"
		upper = strings.TrimSpace(strings.TrimSuffix(upper, "AM"))
	case strings.HasSuffix(upper, "PM"):
		period = "PM"
		upper = strings.TrimSpace(strings.TrimSuffix(upper, "PM"))
	}

	hmParts := strings.Split(upper, ":")
	if len(hmParts) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeWindow, s)
	}

	hour, errH := strconv.Atoi(hmParts[0])
	minute, errM := strconv.Atoi(hmParts[1])
	if errH != nil || errM != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeWindow, s)
	}

	switch period {
	case "AM":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeWindow, s)
		}
		// 12 AM = полночь
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeWindow, s)
		}
		// 12 PM = полдень, остальные сдвигаются на 12 часов
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeWindow, s)
		}
	}

	return types.NewTimeStringFromString(fmt.Sprintf("%02d:%02d", hour, minute))
}
