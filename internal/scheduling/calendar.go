package scheduling

import (
	"errors"
	"fmt"
	"time"
)

const DefaultGranularity = 30

var (
	ErrInvalidBusinessHours = errors.New("invalid business hours")
)

var dayNames = [...]string{
	"Domingo",
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
}

// DayHours is the opening window of one calendar bucket.
type DayHours struct {
	Open   string `json:"open"   yaml:"open"`
	Close  string `json:"close"  yaml:"close"`
	Closed bool   `json:"closed" yaml:"closed"`
}

// BusinessHours groups the three weekly buckets. Monday to Friday share the
// weekdays bucket.
type BusinessHours struct {
	Weekdays DayHours `json:"weekdays" yaml:"weekdays"`
	Saturday DayHours `json:"saturday" yaml:"saturday"`
	Sunday   DayHours `json:"sunday"   yaml:"sunday"`
}

func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Weekdays: DayHours{Open: "08:00", Close: "18:00"},
		Saturday: DayHours{Open: "08:00", Close: "14:00"},
		Sunday:   DayHours{Closed: true},
	}
}

// Validate rejects open buckets with missing, malformed or inverted times.
// The calendar itself never fails on bad hours, it just offers no slots.
func (b BusinessHours) Validate() error {
	buckets := []struct {
		name  string
		hours DayHours
	}{
		{"weekdays", b.Weekdays},
		{"saturday", b.Saturday},
		{"sunday", b.Sunday},
	}

	for _, bucket := range buckets {
		if bucket.hours.Closed {
			continue
		}

		open, err := TimeToMinutes(bucket.hours.Open)
		if err != nil {
			return fmt.Errorf("%w: %s open: %w", ErrInvalidBusinessHours, bucket.name, err)
		}

		closing, err := TimeToMinutes(bucket.hours.Close)
		if err != nil {
			return fmt.Errorf("%w: %s close: %w", ErrInvalidBusinessHours, bucket.name, err)
		}

		if open >= closing {
			return fmt.Errorf("%w: %s opens at %s but closes at %s", ErrInvalidBusinessHours, bucket.name, bucket.hours.Open, bucket.hours.Close)
		}
	}

	return nil
}

// Calendar answers business hour questions for concrete dates.
type Calendar struct {
	hours       BusinessHours
	granularity int
}

func NewCalendar(hours BusinessHours, granularity int) *Calendar {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}

	return &Calendar{
		hours:       hours,
		granularity: granularity,
	}
}

func (c *Calendar) Hours() BusinessHours {
	return c.hours
}

func (c *Calendar) Granularity() int {
	return c.granularity
}

// DayHoursFor selects the bucket that applies to date.
func (c *Calendar) DayHoursFor(date time.Time) DayHours {
	switch date.Weekday() {
	case time.Sunday:
		return c.hours.Sunday
	case time.Saturday:
		return c.hours.Saturday
	default:
		return c.hours.Weekdays
	}
}

func (c *Calendar) IsClosedOnDate(date time.Time) bool {
	return c.DayHoursFor(date).Closed
}

// SlotsForDate lists every bookable start time for date in ascending order.
// Closed or misconfigured days yield no slots.
func (c *Calendar) SlotsForDate(date time.Time) []string {
	open, closing, ok := c.window(date)
	if !ok {
		return []string{}
	}

	slots := make([]string, 0, (closing-open)/c.granularity+1)
	for minute := open; minute < closing; minute += c.granularity {
		slots = append(slots, MinutesToTime(minute))
	}

	return slots
}

// IsTimeWithinBusinessHours reports whether clock falls in [open, close) on date.
func (c *Calendar) IsTimeWithinBusinessHours(date time.Time, clock string) bool {
	open, closing, ok := c.window(date)
	if !ok {
		return false
	}

	minutes, err := TimeToMinutes(clock)
	if err != nil {
		return false
	}

	return minutes >= open && minutes < closing
}

// ClosingTime returns the close time for date when the salon opens that day.
func (c *Calendar) ClosingTime(date time.Time) (string, bool) {
	if _, _, ok := c.window(date); !ok {
		return "", false
	}

	return c.DayHoursFor(date).Close, true
}

// DayGrid returns every slot of the day with whatever occupies it.
func (c *Calendar) DayGrid(date time.Time, occupancy map[string]Occupancy) []GridSlot {
	slots := c.SlotsForDate(date)
	grid := make([]GridSlot, len(slots))

	for i, slot := range slots {
		grid[i].Time = slot

		if occ, ok := occupancy[slot]; ok {
			grid[i].Occupancy = &occ
		}
	}

	return grid
}

func (c *Calendar) window(date time.Time) (open, closing int, ok bool) {
	hours := c.DayHoursFor(date)
	if hours.Closed || hours.Open == "" || hours.Close == "" {
		return 0, 0, false
	}

	open, err := TimeToMinutes(hours.Open)
	if err != nil {
		return 0, 0, false
	}

	closing, err = TimeToMinutes(hours.Close)
	if err != nil || closing <= open {
		return 0, 0, false
	}

	return open, closing, true
}

// DayName returns the Portuguese weekday name used across the salon UI.
func DayName(weekday time.Weekday) string {
	if weekday < time.Sunday || weekday > time.Saturday {
		return ""
	}

	return dayNames[weekday]
}
