package scheduling

// FallbackDuration is used for any service the registry does not know.
const FallbackDuration = 30

// ServiceInfo is the slice of a catalog entry the engine cares about.
type ServiceInfo struct {
	ID       string
	Name     string
	Duration int
}

// DurationRegistry maps service names (and ids) to durations in minutes.
type DurationRegistry struct {
	byName map[string]int
	byID   map[string]int
}

// NewDurationRegistry indexes a catalog snapshot. Non-positive durations are
// replaced by FallbackDuration and a later service wins over an earlier one
// with the same name.
func NewDurationRegistry(services []ServiceInfo) *DurationRegistry {
	registry := &DurationRegistry{
		byName: make(map[string]int, len(services)),
		byID:   make(map[string]int, len(services)),
	}

	for _, service := range services {
		duration := service.Duration
		if duration <= 0 {
			duration = FallbackDuration
		}

		registry.byName[service.Name] = duration

		if service.ID != "" {
			registry.byID[service.ID] = duration
		}
	}

	return registry
}

// Duration never fails: unknown names silently degrade to FallbackDuration.
func (r *DurationRegistry) Duration(name string) int {
	if duration, ok := r.Lookup(name); ok {
		return duration
	}

	return FallbackDuration
}

func (r *DurationRegistry) Lookup(name string) (int, bool) {
	if r == nil {
		return 0, false
	}

	duration, ok := r.byName[name]

	return duration, ok
}

func (r *DurationRegistry) DurationByID(id string) (int, bool) {
	if r == nil {
		return 0, false
	}

	duration, ok := r.byID[id]

	return duration, ok
}

func (r *DurationRegistry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.byName)
}
