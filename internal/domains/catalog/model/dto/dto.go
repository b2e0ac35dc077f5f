package dto

import (
	"salon/internal/domains/catalog/model"
	"salon/shared"
	gDto "salon/shared/dto"
	gModel "salon/shared/model"
	"salon/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Duration    int     `json:"duration"    validate:"required,gt=0,lte=720"`
	Active      *bool   `json:"active"`
}

func (c *CreateServiceRequest) ToModel(user string) model.Service {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Service{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Duration:    c.Duration,
		Active:      active,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateServiceRequest struct {
	Name        string   `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description *string  `db:"description" json:"description" validate:"omitempty,max=255"`
	Price       *float64 `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	Duration    *int     `db:"duration"    json:"duration"    validate:"omitempty,gt=0,lte=720"`
	Active      *bool    `db:"active"      json:"active"`
}

type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Active      bool    `json:"active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Duration = model.Duration
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}
