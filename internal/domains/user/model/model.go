package model

import (
	"salon/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldName      = "name"
	FieldLevel     = "level"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

// User is a login account. Level is what the account was registered as; the
// role a session gets is derived at sign-in.
type User struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Name      string     `db:"name"`
	Level     string     `db:"level"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
