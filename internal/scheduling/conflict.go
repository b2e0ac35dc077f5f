package scheduling

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Blocks reports whether an appointment in this status occupies its time.
// Completed appointments still do.
func (s Status) Blocks() bool {
	return s != StatusCancelled
}

// Appointment is the engine's view of a booking. Duration is never stored,
// it is always resolved through the registry by service name.
type Appointment struct {
	ID         string `json:"id"`
	ClientName string `json:"client_name"`
	Service    string `json:"service"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     Status `json:"status"`
}

// Detector checks a proposed time range against a snapshot of appointments.
type Detector struct {
	appointments []Appointment
	registry     *DurationRegistry
	excludeID    string
}

// NewDetector builds a detector. excludeID names the appointment being
// edited so it never conflicts with itself; pass "" when creating.
func NewDetector(appointments []Appointment, registry *DurationRegistry, excludeID string) *Detector {
	return &Detector{
		appointments: appointments,
		registry:     registry,
		excludeID:    excludeID,
	}
}

// HasConflict reports whether [start, start+duration) on date intersects any
// blocking appointment. Touching ranges do not conflict.
func (d *Detector) HasConflict(start string, duration int, date string) (bool, error) {
	proposed, err := TimeToMinutes(start)
	if err != nil {
		return false, err
	}

	for _, appointment := range d.appointments {
		if d.overlaps(appointment, proposed, proposed+duration, date) {
			return true, nil
		}
	}

	return false, nil
}

// Conflicts returns every blocking appointment that intersects the proposed range.
func (d *Detector) Conflicts(start string, duration int, date string) ([]Appointment, error) {
	proposed, err := TimeToMinutes(start)
	if err != nil {
		return nil, err
	}

	conflicts := []Appointment{}

	for _, appointment := range d.appointments {
		if d.overlaps(appointment, proposed, proposed+duration, date) {
			conflicts = append(conflicts, appointment)
		}
	}

	return conflicts, nil
}

// AvailableSlots keeps the slots a service of duration minutes can start at:
// no conflict, and finishing no later than closing. An empty closing means
// no upper bound. Order is preserved.
func (d *Detector) AvailableSlots(slots []string, duration int, date, closing string) ([]string, error) {
	limit := -1

	if closing != "" {
		minutes, err := TimeToMinutes(closing)
		if err != nil {
			return nil, err
		}

		limit = minutes
	}

	available := make([]string, 0, len(slots))

	for _, slot := range slots {
		start, err := TimeToMinutes(slot)
		if err != nil {
			return nil, err
		}

		if limit >= 0 && start+duration > limit {
			continue
		}

		conflict, err := d.HasConflict(slot, duration, date)
		if err != nil {
			return nil, err
		}

		if !conflict {
			available = append(available, slot)
		}
	}

	return available, nil
}

func (d *Detector) overlaps(appointment Appointment, start, end int, date string) bool {
	if d.excludeID != "" && appointment.ID == d.excludeID {
		return false
	}

	if appointment.Date != date || !appointment.Status.Blocks() {
		return false
	}

	existingStart, err := TimeToMinutes(appointment.Time)
	if err != nil {
		return false
	}

	existingEnd := existingStart + d.registry.Duration(appointment.Service)

	return start < existingEnd && end > existingStart
}
