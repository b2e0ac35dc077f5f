package scheduling_test

import (
	"salon/internal/scheduling"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = "2024-01-15"

func catalog() *scheduling.DurationRegistry {
	return scheduling.NewDurationRegistry([]scheduling.ServiceInfo{
		{ID: "s1", Name: "Corte", Duration: 30},
		{ID: "s2", Name: "Coloração", Duration: 90},
		{ID: "s3", Name: "Escova", Duration: 60},
	})
}

func TestDurationRegistry(t *testing.T) {
	registry := catalog()

	assert.Equal(t, 30, registry.Duration("Corte"))
	assert.Equal(t, 90, registry.Duration("Coloração"))
	assert.Equal(t, scheduling.FallbackDuration, registry.Duration("NonexistentService"))
	assert.Equal(t, 3, registry.Len())

	_, ok := registry.Lookup("NonexistentService")
	assert.False(t, ok)

	duration, ok := registry.DurationByID("s3")
	assert.True(t, ok)
	assert.Equal(t, 60, duration)

	_, ok = registry.DurationByID("missing")
	assert.False(t, ok)
}

func TestDurationRegistry_NormalisesEntries(t *testing.T) {
	registry := scheduling.NewDurationRegistry([]scheduling.ServiceInfo{
		{Name: "Manicure", Duration: 0},
		{Name: "Pedicure", Duration: 40},
		{Name: "Pedicure", Duration: 50},
	})

	assert.Equal(t, 30, registry.Duration("Manicure"))
	assert.Equal(t, 50, registry.Duration("Pedicure"))

	var empty *scheduling.DurationRegistry
	assert.Equal(t, scheduling.FallbackDuration, empty.Duration("Corte"))
}

func TestDetector_HasConflict(t *testing.T) {
	existing := []scheduling.Appointment{
		{ID: "a1", Service: "Corte", Date: day, Time: "09:00", Status: scheduling.StatusConfirmed},
		{ID: "a2", Service: "Coloração", Date: day, Time: "14:00", Status: scheduling.StatusCompleted},
		{ID: "a3", Service: "Corte", Date: day, Time: "11:00", Status: scheduling.StatusCancelled},
		{ID: "a4", Service: "Corte", Date: "2024-01-16", Time: "10:00", Status: scheduling.StatusPending},
		{ID: "a5", Service: "Corte", Date: day, Time: "broken", Status: scheduling.StatusPending},
	}

	tests := []struct {
		name      string
		excludeID string
		start     string
		duration  int
		want      bool
	}{
		{name: "same slot", start: "09:00", duration: 30, want: true},
		{name: "starts inside", start: "09:15", duration: 30, want: true},
		{name: "wraps existing", start: "08:30", duration: 90, want: true},
		{name: "ends where existing starts", start: "08:30", duration: 30, want: false},
		{name: "starts where existing ends", start: "09:30", duration: 30, want: false},
		{name: "completed still blocks", start: "15:00", duration: 30, want: true},
		{name: "after completed", start: "15:30", duration: 30, want: false},
		{name: "cancelled does not block", start: "11:00", duration: 30, want: false},
		{name: "other date ignored", start: "10:00", duration: 30, want: false},
		{name: "self exclusion", excludeID: "a1", start: "09:00", duration: 30, want: false},
		{name: "exclusion only skips itself", excludeID: "a1", start: "14:30", duration: 30, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := scheduling.NewDetector(existing, catalog(), tt.excludeID)

			got, err := detector.HasConflict(tt.start, tt.duration, day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetector_InvalidProposal(t *testing.T) {
	detector := scheduling.NewDetector(nil, catalog(), "")

	_, err := detector.HasConflict("25:00", 30, day)
	assert.ErrorIs(t, err, scheduling.ErrInvalidTimeFormat)

	_, err = detector.Conflicts("", 30, day)
	assert.ErrorIs(t, err, scheduling.ErrInvalidTimeFormat)
}

func TestDetector_ConflictIsSymmetric(t *testing.T) {
	registry := catalog()
	pairs := []struct {
		first, second scheduling.Appointment
	}{
		{
			first:  scheduling.Appointment{ID: "x", Service: "Escova", Date: day, Time: "10:00", Status: scheduling.StatusPending},
			second: scheduling.Appointment{ID: "y", Service: "Corte", Date: day, Time: "10:30", Status: scheduling.StatusPending},
		},
		{
			first:  scheduling.Appointment{ID: "x", Service: "Corte", Date: day, Time: "10:00", Status: scheduling.StatusPending},
			second: scheduling.Appointment{ID: "y", Service: "Corte", Date: day, Time: "10:30", Status: scheduling.StatusPending},
		},
		{
			first:  scheduling.Appointment{ID: "x", Service: "Coloração", Date: day, Time: "08:00", Status: scheduling.StatusPending},
			second: scheduling.Appointment{ID: "y", Service: "Escova", Date: day, Time: "09:00", Status: scheduling.StatusPending},
		},
	}

	for _, pair := range pairs {
		forward, err := scheduling.NewDetector([]scheduling.Appointment{pair.first}, registry, "").
			HasConflict(pair.second.Time, registry.Duration(pair.second.Service), day)
		require.NoError(t, err)

		backward, err := scheduling.NewDetector([]scheduling.Appointment{pair.second}, registry, "").
			HasConflict(pair.first.Time, registry.Duration(pair.first.Service), day)
		require.NoError(t, err)

		assert.Equal(t, forward, backward)
	}
}

func TestDetector_Conflicts(t *testing.T) {
	existing := []scheduling.Appointment{
		{ID: "a1", Service: "Corte", Date: day, Time: "09:00", Status: scheduling.StatusConfirmed},
		{ID: "a2", Service: "Corte", Date: day, Time: "09:30", Status: scheduling.StatusPending},
		{ID: "a3", Service: "Corte", Date: day, Time: "10:00", Status: scheduling.StatusCancelled},
	}

	conflicts, err := scheduling.NewDetector(existing, catalog(), "").Conflicts("09:00", 90, day)
	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "a1", conflicts[0].ID)
	assert.Equal(t, "a2", conflicts[1].ID)
}

func TestDetector_AvailableSlots(t *testing.T) {
	calendar := scheduling.NewCalendar(scheduling.DefaultBusinessHours(), 30)
	slots := calendar.SlotsForDate(monday)
	closing, _ := calendar.ClosingTime(monday)

	t.Run("existing appointment removes its slot only", func(t *testing.T) {
		existing := []scheduling.Appointment{
			{ID: "a1", Service: "Corte", Date: day, Time: "10:00", Status: scheduling.StatusConfirmed},
		}

		available, err := scheduling.NewDetector(existing, catalog(), "").AvailableSlots(slots, 30, day, closing)
		require.NoError(t, err)

		assert.NotContains(t, available, "10:00")
		assert.Contains(t, available, "09:30")
		assert.Contains(t, available, "10:30")
		assert.Len(t, available, len(slots)-1)
	})

	t.Run("service must finish before closing", func(t *testing.T) {
		available, err := scheduling.NewDetector(nil, catalog(), "").AvailableSlots(slots, 60, day, closing)
		require.NoError(t, err)

		assert.NotContains(t, available, "17:30")
		assert.Contains(t, available, "17:00")
	})

	t.Run("no closing bound", func(t *testing.T) {
		available, err := scheduling.NewDetector(nil, catalog(), "").AvailableSlots(slots, 60, day, "")
		require.NoError(t, err)

		assert.Equal(t, slots, available)
	})

	t.Run("closed day has nothing to filter", func(t *testing.T) {
		existing := []scheduling.Appointment{
			{ID: "a1", Service: "Corte", Date: "2024-01-21", Time: "10:00", Status: scheduling.StatusConfirmed},
		}

		available, err := scheduling.NewDetector(existing, catalog(), "").AvailableSlots(calendar.SlotsForDate(sunday), 30, "2024-01-21", "")
		require.NoError(t, err)

		assert.Empty(t, available)
	})

	t.Run("long service is blocked by a later appointment", func(t *testing.T) {
		existing := []scheduling.Appointment{
			{ID: "a1", Service: "Corte", Date: day, Time: "12:00", Status: scheduling.StatusPending},
		}

		available, err := scheduling.NewDetector(existing, catalog(), "").AvailableSlots(slots, 90, day, closing)
		require.NoError(t, err)

		assert.Contains(t, available, "10:30")
		assert.NotContains(t, available, "11:00")
		assert.NotContains(t, available, "11:30")
		assert.Contains(t, available, "12:30")
	})

	t.Run("invalid closing", func(t *testing.T) {
		_, err := scheduling.NewDetector(nil, catalog(), "").AvailableSlots(slots, 30, day, "late")
		assert.ErrorIs(t, err, scheduling.ErrInvalidTimeFormat)
	})
}

func TestStatus(t *testing.T) {
	assert.True(t, scheduling.StatusPending.Valid())
	assert.False(t, scheduling.Status("archived").Valid())
	assert.True(t, scheduling.StatusCompleted.Blocks())
	assert.False(t, scheduling.StatusCancelled.Blocks())
}
