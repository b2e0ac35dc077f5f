package scheduling

// Occupancy describes which appointment covers a slot and where the slot
// sits inside that appointment.
type Occupancy struct {
	Appointment Appointment `json:"appointment"`
	Duration    int         `json:"duration"`
	IsStart     bool        `json:"is_start"`
	IsEnd       bool        `json:"is_end"`
}

// GridSlot is one row of a rendered day.
type GridSlot struct {
	Time      string     `json:"time"`
	Occupancy *Occupancy `json:"occupancy,omitempty"`
}

// BuildOccupancy maps every granularity tick covered by a blocking
// appointment on date to that appointment. When appointments overlap the
// one processed last owns the shared ticks.
func BuildOccupancy(appointments []Appointment, registry *DurationRegistry, date string, granularity int) map[string]Occupancy {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}

	occupied := map[string]Occupancy{}

	for _, appointment := range appointments {
		if appointment.Date != date || !appointment.Status.Blocks() {
			continue
		}

		start, err := TimeToMinutes(appointment.Time)
		if err != nil {
			continue
		}

		duration := registry.Duration(appointment.Service)
		end := start + duration

		for minute := start; minute < end; minute += granularity {
			occupied[MinutesToTime(minute)] = Occupancy{
				Appointment: appointment,
				Duration:    duration,
				IsStart:     minute == start,
				IsEnd:       minute+granularity >= end,
			}
		}
	}

	return occupied
}
