package config

import (
	"errors"
	"fmt"
	"os"
	"salon/internal/scheduling"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"
)

// hoursFile mirrors config/business_hours.yaml. Each bucket may be overridden
// through the environment, e.g. HOURS_SATURDAY_CLOSE=13:00.
type hoursFile struct {
	Weekdays dayFile `yaml:"weekdays" env-prefix:"HOURS_WEEKDAYS_"`
	Saturday dayFile `yaml:"saturday" env-prefix:"HOURS_SATURDAY_"`
	Sunday   dayFile `yaml:"sunday"   env-prefix:"HOURS_SUNDAY_"`
}

type dayFile struct {
	Open   string `yaml:"open"   env:"OPEN"`
	Close  string `yaml:"close"  env:"CLOSE"`
	Closed bool   `yaml:"closed" env:"CLOSED"`
}

// DefaultBusinessHours loads the opening hours the salon starts with before
// an admin edits them. A missing file falls back to the built-in week.
func DefaultBusinessHours(path string) (scheduling.BusinessHours, error) {
	if path == "" {
		return scheduling.DefaultBusinessHours(), nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("business hours file not found, using built-in defaults")

		return scheduling.DefaultBusinessHours(), nil
	}

	var file hoursFile
	if err := cleanenv.ReadConfig(path, &file); err != nil {
		return scheduling.BusinessHours{}, fmt.Errorf("failed to read business hours file: %w", err)
	}

	hours := scheduling.BusinessHours{
		Weekdays: scheduling.DayHours(file.Weekdays),
		Saturday: scheduling.DayHours(file.Saturday),
		Sunday:   scheduling.DayHours(file.Sunday),
	}

	if err := hours.Validate(); err != nil {
		return scheduling.BusinessHours{}, fmt.Errorf("business hours file %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("Loaded default business hours")

	return hours, nil
}
