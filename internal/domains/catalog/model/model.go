package model

import (
	"salon/internal/scheduling"
	"salon/shared/model"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldDuration    = "duration"
	FieldActive      = "active"
)

// Service is an offering of the salon. Duration is in minutes.
type Service struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Price       float64 `db:"price"`
	Duration    int     `db:"duration"`
	Active      bool    `db:"active"`
	model.Metadata
}

func (s Service) Info() scheduling.ServiceInfo {
	return scheduling.ServiceInfo{
		ID:       s.ID,
		Name:     s.Name,
		Duration: s.Duration,
	}
}

// Registry builds the duration lookup used by the scheduling engine.
func Registry(services []Service) *scheduling.DurationRegistry {
	infos := make([]scheduling.ServiceInfo, len(services))
	for i, service := range services {
		infos[i] = service.Info()
	}

	return scheduling.NewDurationRegistry(infos)
}
