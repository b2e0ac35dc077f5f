package model

import (
	"salon/internal/scheduling"
	"salon/shared/model"
	"time"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID          = "id"
	FieldClientName  = "client_name"
	FieldClientPhone = "client_phone"
	FieldService     = "service"
	FieldDate        = "appointment_date"
	FieldTime        = "appointment_time"
	FieldStatus      = "status"
	FieldNotes       = "notes"
)

type Appointment struct {
	ID          string  `db:"id"`
	ClientName  string  `db:"client_name"`
	ClientPhone *string `db:"client_phone"`
	Service     string  `db:"service"`
	Date        string  `db:"appointment_date"`
	Time        string  `db:"appointment_time"`
	Status      string  `db:"status"`
	Notes       *string `db:"notes"`
	model.Metadata
}

func (a Appointment) Engine() scheduling.Appointment {
	return scheduling.Appointment{
		ID:         a.ID,
		ClientName: a.ClientName,
		Service:    a.Service,
		Date:       a.Date,
		Time:       a.Time,
		Status:     scheduling.Status(a.Status),
	}
}

func Engine(appointments []Appointment) []scheduling.Appointment {
	res := make([]scheduling.Appointment, len(appointments))
	for i, appointment := range appointments {
		res[i] = appointment.Engine()
	}

	return res
}

const (
	EventCreated   = "appointment.created"
	EventUpdated   = "appointment.updated"
	EventCompleted = "appointment.completed"
	EventCancelled = "appointment.cancelled"
	EventDeleted   = "appointment.deleted"
)

const (
	SourceStaff  = "staff"
	SourcePortal = "portal"
)

// Event is published on every appointment write.
type Event struct {
	Type        string                 `json:"type"`
	Source      string                 `json:"source"`
	Appointment scheduling.Appointment `json:"appointment"`
	Actor       string                 `json:"actor"`
	OccurredAt  time.Time              `json:"occurred_at"`
}
