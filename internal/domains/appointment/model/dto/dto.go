package dto

import (
	"salon/internal/domains/appointment/model"
	"salon/internal/scheduling"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	gModel "salon/shared/model"
	"salon/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	ClientName  string  `json:"client_name"  validate:"required,max=100"`
	ClientPhone *string `json:"client_phone" validate:"omitempty,max=20"`
	Service     string  `json:"service"      validate:"required,max=100"`
	Date        string  `json:"date"         validate:"required,day"`
	Time        string  `json:"time"         validate:"required,clock"`
	Status      string  `json:"status"       validate:"omitempty,status"`
	Notes       *string `json:"notes"        validate:"omitempty,max=1000"`
}

func (c *CreateAppointmentRequest) ToModel(user string) model.Appointment {
	status := c.Status
	if status == constant.Empty {
		status = string(scheduling.StatusPending)
	}

	return model.Appointment{
		ID:          uuid.NewString(),
		ClientName:  strings.TrimSpace(c.ClientName),
		ClientPhone: c.ClientPhone,
		Service:     c.Service,
		Date:        c.Date,
		Time:        NormalizeTime(c.Time),
		Status:      status,
		Notes:       c.Notes,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateAppointmentRequest struct {
	ClientName  string  `db:"client_name"      json:"client_name"  validate:"omitempty,max=100"`
	ClientPhone *string `db:"client_phone"     json:"client_phone" validate:"omitempty,max=20"`
	Service     string  `db:"service"          json:"service"      validate:"omitempty,max=100"`
	Date        string  `db:"appointment_date" json:"date"         validate:"omitempty,day"`
	Time        string  `db:"appointment_time" json:"time"         validate:"omitempty,clock"`
	Status      string  `db:"status"           json:"status"       validate:"omitempty,status"`
	Notes       *string `db:"notes"            json:"notes"        validate:"omitempty,max=1000"`
}

// Apply returns current with every field set on the request overlaid.
func (u *UpdateAppointmentRequest) Apply(current model.Appointment) model.Appointment {
	next := current

	if u.ClientName != constant.Empty {
		next.ClientName = u.ClientName
	}

	if u.ClientPhone != nil {
		next.ClientPhone = u.ClientPhone
	}

	if u.Service != constant.Empty {
		next.Service = u.Service
	}

	if u.Date != constant.Empty {
		next.Date = u.Date
	}

	if u.Time != constant.Empty {
		next.Time = NormalizeTime(u.Time)
	}

	if u.Status != constant.Empty {
		next.Status = u.Status
	}

	if u.Notes != nil {
		next.Notes = u.Notes
	}

	return next
}

// BookAppointmentRequest is what a client sends from the portal. The name and
// phone come from their own client record.
type BookAppointmentRequest struct {
	Service string  `json:"service" validate:"required,max=100"`
	Date    string  `json:"date"    validate:"required,day"`
	Time    string  `json:"time"    validate:"required,clock"`
	Notes   *string `json:"notes"   validate:"omitempty,max=1000"`
}

func (b *BookAppointmentRequest) ToCreate(clientName, clientPhone string) CreateAppointmentRequest {
	req := CreateAppointmentRequest{
		ClientName: clientName,
		Service:    b.Service,
		Date:       b.Date,
		Time:       b.Time,
		Status:     string(scheduling.StatusPending),
		Notes:      b.Notes,
	}

	if clientPhone != constant.Empty {
		req.ClientPhone = &clientPhone
	}

	return req
}

type ListQuery struct {
	Date   string `json:"date"   validate:"omitempty,day"`
	Status string `json:"status" validate:"omitempty,status"`
	Search string `json:"search" validate:"omitempty,max=100"`
}

func (q ListQuery) Filter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.Date != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldDate, Operator: gDto.FilterOperatorEq, Value: q.Date, Table: model.TableName,
		})
	}

	if q.Status != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: q.Status, Table: model.TableName,
		})
	}

	if q.Search != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldClientName, Operator: gDto.FilterOperatorLike, Value: q.Search, Table: model.TableName,
		})
	}

	return filter
}

type AvailabilityRequest struct {
	Date      string `json:"date"       validate:"required,day"`
	Service   string `json:"service"    validate:"omitempty,max=100"`
	ServiceID string `json:"service_id" validate:"omitempty,uuid"`
	ExcludeID string `json:"exclude_id" validate:"omitempty,uuid"`
}

type AvailabilityResponse struct {
	Date        string   `json:"date"`
	DayName     string   `json:"day_name"`
	Closed      bool     `json:"closed"`
	ClosingTime string   `json:"closing_time,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	Filtered    bool     `json:"filtered"`
	Slots       []string `json:"slots"`
}

type ConflictCheckRequest struct {
	Date      string `json:"date"       validate:"required,day"`
	Time      string `json:"time"       validate:"required,clock"`
	Service   string `json:"service"    validate:"omitempty,max=100"`
	ServiceID string `json:"service_id" validate:"omitempty,uuid"`
	Duration  int    `json:"duration"   validate:"omitempty,gt=0,lte=720"`
	ExcludeID string `json:"exclude_id" validate:"omitempty,uuid"`
}

type ConflictingAppointment struct {
	ID         string `json:"id"`
	ClientName string `json:"client_name"`
	Service    string `json:"service"`
	Time       string `json:"time"`
}

type ConflictCheckResponse struct {
	Conflict  bool                     `json:"conflict"`
	Duration  int                      `json:"duration"`
	EndTime   string                   `json:"end_time"`
	Conflicts []ConflictingAppointment `json:"conflicts"`
}

func Conflicting(appointments []scheduling.Appointment) []ConflictingAppointment {
	res := make([]ConflictingAppointment, len(appointments))
	for i, appointment := range appointments {
		res[i] = ConflictingAppointment{
			ID:         appointment.ID,
			ClientName: appointment.ClientName,
			Service:    appointment.Service,
			Time:       appointment.Time,
		}
	}

	return res
}

type OccupancyResponse struct {
	Date        string                `json:"date"`
	DayName     string                `json:"day_name"`
	Closed      bool                  `json:"closed"`
	Granularity int                   `json:"granularity"`
	Slots       []scheduling.GridSlot `json:"slots"`
}

type AppointmentResponse struct {
	ID          string  `json:"id"`
	ClientName  string  `json:"client_name"`
	ClientPhone *string `json:"client_phone,omitempty"`
	Service     string  `json:"service"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	EndTime     string  `json:"end_time,omitempty"`
	Duration    int     `json:"duration"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	gDto.Metadata
}

// FromModel fills the response, resolving the duration through registry.
func (r *AppointmentResponse) FromModel(model model.Appointment, registry *scheduling.DurationRegistry) {
	r.ID = model.ID
	r.ClientName = model.ClientName
	r.ClientPhone = model.ClientPhone
	r.Service = model.Service
	r.Date = model.Date
	r.Time = model.Time
	r.Duration = registry.Duration(model.Service)
	r.EndTime, _ = scheduling.EndTime(model.Time, r.Duration)
	r.Status = model.Status
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, registry *scheduling.DurationRegistry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod, registry)
	}
}

// NormalizeTime zero pads the hour so "9:00" and "09:00" store alike.
// Malformed input is returned untouched for validation to reject.
func NormalizeTime(value string) string {
	minutes, err := scheduling.TimeToMinutes(value)
	if err != nil {
		return value
	}

	return scheduling.MinutesToTime(minutes)
}
