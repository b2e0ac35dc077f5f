package model

import "salon/shared/model"

const (
	TableName  = "clients"
	EntityName = "client"

	FieldID         = "id"
	FieldName       = "name"
	FieldPhone      = "phone"
	FieldEmail      = "email"
	FieldNotes      = "notes"
	FieldVisits     = "visits"
	FieldTotalSpent = "total_spent"
)

type Client struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	Phone      string  `db:"phone"`
	Email      string  `db:"email"`
	Notes      *string `db:"notes"`
	Visits     int     `db:"visits"`
	TotalSpent float64 `db:"total_spent"`
	model.Metadata
}
