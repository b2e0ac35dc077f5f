package dto

import (
	"salon/internal/domains/client/model"
	"salon/shared"
	gDto "salon/shared/dto"
	gModel "salon/shared/model"
	"salon/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreateClientRequest struct {
	Name  string  `json:"name"  validate:"required,max=100"`
	Phone string  `json:"phone" validate:"omitempty,max=20"`
	Email string  `json:"email" validate:"omitempty,email,max=255"`
	Notes *string `json:"notes" validate:"omitempty,max=1000"`
}

func (c *CreateClientRequest) ToModel(user string) model.Client {
	return model.Client{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(c.Name),
		Phone:    c.Phone,
		Email:    strings.TrimSpace(c.Email),
		Notes:    c.Notes,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateClientRequest struct {
	Name       string   `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Phone      string   `db:"phone"       json:"phone"       validate:"omitempty,max=20"`
	Email      string   `db:"email"       json:"email"       validate:"omitempty,email,max=255"`
	Notes      *string  `db:"notes"       json:"notes"       validate:"omitempty,max=1000"`
	Visits     *int     `db:"visits"      json:"visits"      validate:"omitempty,gte=0"`
	TotalSpent *float64 `db:"total_spent" json:"total_spent" validate:"omitempty,gte=0"`
}

// UpdateProfileRequest is what a client may change about themselves. The
// email is left out because it ties the account to the client record.
type UpdateProfileRequest struct {
	Name  string  `db:"name"  json:"name"  validate:"omitempty,max=100"`
	Phone string  `db:"phone" json:"phone" validate:"omitempty,max=20"`
	Notes *string `db:"notes" json:"notes" validate:"omitempty,max=1000"`
}

type ClientResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Notes      *string `json:"notes,omitempty"`
	Visits     int     `json:"visits"`
	TotalSpent float64 `json:"total_spent"`
	gDto.Metadata
}

func (r *ClientResponse) FromModel(model model.Client) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Email = model.Email
	r.Notes = model.Notes
	r.Visits = model.Visits
	r.TotalSpent = model.TotalSpent
	r.Metadata.FromModel(model.Metadata)
}

type GetClientsResponse struct {
	Clients   []ClientResponse `json:"clients"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetClientsResponse) FromModels(models []model.Client, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Clients = make([]ClientResponse, len(models))
	for i, mod := range models {
		r.Clients[i].FromModel(mod)
	}
}
