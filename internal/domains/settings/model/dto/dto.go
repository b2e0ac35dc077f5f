package dto

import (
	"salon/internal/domains/settings/model"
	"salon/internal/scheduling"
	gDto "salon/shared/dto"
	gModel "salon/shared/model"
	"time"
)

const DefaultSalonName = "Salão do Ratinho"

type DayHoursRequest struct {
	Open   string `json:"open"   validate:"required_if=Closed false,omitempty,clock"`
	Close  string `json:"close"  validate:"required_if=Closed false,omitempty,clock"`
	Closed bool   `json:"closed"`
}

func (d DayHoursRequest) toEngine() scheduling.DayHours {
	return scheduling.DayHours{Open: d.Open, Close: d.Close, Closed: d.Closed}
}

type BusinessHoursRequest struct {
	Weekdays DayHoursRequest `json:"weekdays" validate:"required"`
	Saturday DayHoursRequest `json:"saturday" validate:"required"`
	Sunday   DayHoursRequest `json:"sunday"   validate:"required"`
}

func (r *BusinessHoursRequest) ToEngine() scheduling.BusinessHours {
	return scheduling.BusinessHours{
		Weekdays: r.Weekdays.toEngine(),
		Saturday: r.Saturday.toEngine(),
		Sunday:   r.Sunday.toEngine(),
	}
}

// ToModels splits the weekly hours into one row per bucket.
func ToModels(hours scheduling.BusinessHours, user string, now time.Time) []model.Hours {
	buckets := []struct {
		name  string
		hours scheduling.DayHours
	}{
		{model.BucketWeekdays, hours.Weekdays},
		{model.BucketSaturday, hours.Saturday},
		{model.BucketSunday, hours.Sunday},
	}

	rows := make([]model.Hours, len(buckets))
	for i, bucket := range buckets {
		rows[i] = model.Hours{
			Bucket:   bucket.name,
			Open:     bucket.hours.Open,
			Close:    bucket.hours.Close,
			Closed:   bucket.hours.Closed,
			Metadata: gModel.NewMetadata(user, now),
		}
	}

	return rows
}

type SalonInfoRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Owner string `json:"owner" validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
}

func (r *SalonInfoRequest) ToModel(user string, now time.Time) model.Info {
	return model.Info{
		ID:       model.InfoID,
		Name:     r.Name,
		Owner:    r.Owner,
		Email:    r.Email,
		Phone:    r.Phone,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type SalonInfoResponse struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	*gDto.Metadata
}

func (r *SalonInfoResponse) FromModel(model model.Info) {
	r.Name = model.Name
	r.Owner = model.Owner
	r.Email = model.Email
	r.Phone = model.Phone
	r.Metadata = &gDto.Metadata{}
	r.Metadata.FromModel(model.Metadata)
}

// DefaultSalonInfo is served until the salon saves its own details.
func DefaultSalonInfo() SalonInfoResponse {
	return SalonInfoResponse{Name: DefaultSalonName}
}
