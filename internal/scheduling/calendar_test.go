package scheduling_test

import (
	"salon/internal/scheduling"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday   = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2024, time.January, 21, 0, 0, 0, 0, time.UTC)
)

func TestCalendar_DayHoursFor(t *testing.T) {
	hours := scheduling.DefaultBusinessHours()
	calendar := scheduling.NewCalendar(hours, 0)

	assert.Equal(t, scheduling.DefaultGranularity, calendar.Granularity())
	assert.Equal(t, hours.Weekdays, calendar.DayHoursFor(monday))
	assert.Equal(t, hours.Weekdays, calendar.DayHoursFor(monday.AddDate(0, 0, 4)))
	assert.Equal(t, hours.Saturday, calendar.DayHoursFor(saturday))
	assert.Equal(t, hours.Sunday, calendar.DayHoursFor(sunday))
}

func TestCalendar_SlotsForDate(t *testing.T) {
	calendar := scheduling.NewCalendar(scheduling.DefaultBusinessHours(), 30)

	weekday := calendar.SlotsForDate(monday)
	require.Len(t, weekday, 20)
	assert.Equal(t, "08:00", weekday[0])
	assert.Equal(t, "17:30", weekday[len(weekday)-1])

	sat := calendar.SlotsForDate(saturday)
	require.Len(t, sat, 12)
	assert.Equal(t, "13:30", sat[len(sat)-1])

	assert.Equal(t, weekday, calendar.SlotsForDate(monday))
}

func TestCalendar_SlotsStayInsideOpeningWindow(t *testing.T) {
	hours := scheduling.BusinessHours{
		Weekdays: scheduling.DayHours{Open: "09:15", Close: "12:00"},
		Saturday: scheduling.DayHours{Closed: true},
		Sunday:   scheduling.DayHours{Closed: true},
	}

	for _, granularity := range []int{10, 15, 20, 30, 45, 60} {
		calendar := scheduling.NewCalendar(hours, granularity)

		for _, slot := range calendar.SlotsForDate(monday) {
			minutes, err := scheduling.TimeToMinutes(slot)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, minutes, 555)
			assert.Less(t, minutes, 720)
		}
	}
}

func TestCalendar_ClosedDay(t *testing.T) {
	calendar := scheduling.NewCalendar(scheduling.DefaultBusinessHours(), 30)

	assert.True(t, calendar.IsClosedOnDate(sunday))
	assert.Empty(t, calendar.SlotsForDate(sunday))
	assert.False(t, calendar.IsClosedOnDate(monday))

	_, ok := calendar.ClosingTime(sunday)
	assert.False(t, ok)
}

func TestCalendar_MisconfiguredHours(t *testing.T) {
	tests := []struct {
		name  string
		hours scheduling.DayHours
	}{
		{name: "missing open", hours: scheduling.DayHours{Close: "18:00"}},
		{name: "missing close", hours: scheduling.DayHours{Open: "08:00"}},
		{name: "garbage open", hours: scheduling.DayHours{Open: "eight", Close: "18:00"}},
		{name: "inverted window", hours: scheduling.DayHours{Open: "18:00", Close: "08:00"}},
		{name: "empty window", hours: scheduling.DayHours{Open: "10:00", Close: "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := scheduling.DefaultBusinessHours()
			hours.Weekdays = tt.hours

			calendar := scheduling.NewCalendar(hours, 30)

			assert.NotPanics(t, func() {
				assert.Empty(t, calendar.DayGrid(monday, nil))
			})
			assert.Empty(t, calendar.SlotsForDate(monday))
			assert.False(t, calendar.IsTimeWithinBusinessHours(monday, "10:00"))

			_, ok := calendar.ClosingTime(monday)
			assert.False(t, ok)
			assert.False(t, calendar.IsClosedOnDate(monday))
			assert.Error(t, hours.Validate())
		})
	}
}

func TestCalendar_IsTimeWithinBusinessHours(t *testing.T) {
	calendar := scheduling.NewCalendar(scheduling.DefaultBusinessHours(), 30)

	assert.True(t, calendar.IsTimeWithinBusinessHours(monday, "08:00"))
	assert.True(t, calendar.IsTimeWithinBusinessHours(monday, "17:59"))
	assert.False(t, calendar.IsTimeWithinBusinessHours(monday, "18:00"))
	assert.False(t, calendar.IsTimeWithinBusinessHours(monday, "07:59"))
	assert.False(t, calendar.IsTimeWithinBusinessHours(saturday, "14:00"))
	assert.False(t, calendar.IsTimeWithinBusinessHours(sunday, "10:00"))
	assert.False(t, calendar.IsTimeWithinBusinessHours(monday, "10h00"))

	closing, ok := calendar.ClosingTime(saturday)
	assert.True(t, ok)
	assert.Equal(t, "14:00", closing)
}

func TestBusinessHours_Validate(t *testing.T) {
	assert.NoError(t, scheduling.DefaultBusinessHours().Validate())

	inverted := scheduling.DefaultBusinessHours()
	inverted.Saturday = scheduling.DayHours{Open: "14:00", Close: "08:00"}
	assert.ErrorIs(t, inverted.Validate(), scheduling.ErrInvalidBusinessHours)

	closedWithoutTimes := scheduling.DefaultBusinessHours()
	closedWithoutTimes.Weekdays = scheduling.DayHours{Closed: true}
	assert.NoError(t, closedWithoutTimes.Validate())
}

func TestCalendar_DayGrid(t *testing.T) {
	calendar := scheduling.NewCalendar(scheduling.DefaultBusinessHours(), 30)
	appointment := scheduling.Appointment{ID: "a1", Service: "Corte", Date: "2024-01-15", Time: "09:00", Status: scheduling.StatusConfirmed}
	registry := scheduling.NewDurationRegistry([]scheduling.ServiceInfo{{Name: "Corte", Duration: 30}})

	grid := calendar.DayGrid(monday, scheduling.BuildOccupancy([]scheduling.Appointment{appointment}, registry, "2024-01-15", 30))

	require.Len(t, grid, 20)
	assert.Nil(t, grid[0].Occupancy)
	require.NotNil(t, grid[2].Occupancy)
	assert.Equal(t, "09:00", grid[2].Time)
	assert.Equal(t, "a1", grid[2].Occupancy.Appointment.ID)
	assert.Nil(t, grid[3].Occupancy)
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Domingo", scheduling.DayName(time.Sunday))
	assert.Equal(t, "Segunda-feira", scheduling.DayName(time.Monday))
	assert.Equal(t, "Sábado", scheduling.DayName(time.Saturday))
	assert.Equal(t, "", scheduling.DayName(time.Weekday(9)))
}
