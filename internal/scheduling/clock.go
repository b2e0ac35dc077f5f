// Package scheduling holds the appointment engine: clock arithmetic, the
// weekly business calendar, service durations, conflict detection,
// availability filtering and the per-day occupancy map.
//
// Everything in here is pure. Callers pass snapshots in and get values back,
// so the package can be shared by the HTTP services, the reminder worker and
// tests without any I/O or locking.
package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour

	DateLayout = "2006-01-02"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// TimeToMinutes converts "HH:MM" (hour may be a single digit) into minutes
// since midnight.
func TimeToMinutes(value string) (int, error) {
	hh, mm, ok := strings.Cut(value, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	hours, err := parseDigits(hh)
	if err != nil || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	minutes, err := parseDigits(mm)
	if err != nil || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	return hours*MinutesPerHour + minutes, nil
}

// MinutesToTime renders minutes since midnight as zero padded "HH:MM".
// Values past midnight are not wrapped.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/MinutesPerHour, minutes%MinutesPerHour)
}

// EndTime returns the clock time at which an appointment starting at start
// and lasting duration minutes ends.
func EndTime(start string, duration int) (string, error) {
	minutes, err := TimeToMinutes(start)
	if err != nil {
		return "", err
	}

	return MinutesToTime(minutes + duration), nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
	}

	return date, nil
}

// IsValidTime reports whether value is a well formed "HH:MM".
func IsValidTime(value string) bool {
	_, err := TimeToMinutes(value)

	return err == nil
}

// IsValidDate reports whether value is a well formed YYYY-MM-DD date.
func IsValidDate(value string) bool {
	_, err := ParseDate(value)

	return err == nil
}

func parseDigits(value string) (int, error) {
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}

	return strconv.Atoi(value)
}
