package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon/internal/domains/appointment/model"
	"salon/internal/domains/appointment/model/dto"
	"salon/internal/scheduling"
	gDto "salon/shared/dto"
	"salon/shared/validator"
)

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "09:00", dto.NormalizeTime("9:00"))
	assert.Equal(t, "14:30", dto.NormalizeTime("14:30"))
	assert.Equal(t, "9h", dto.NormalizeTime("9h"))
}

func TestCreateAppointmentRequest_ToModel(t *testing.T) {
	req := dto.CreateAppointmentRequest{ClientName: "  Maria ", Service: "Corte", Date: "2024-01-15", Time: "9:00"}

	appointment := req.ToModel("admin")
	assert.NotEmpty(t, appointment.ID)
	assert.Equal(t, "Maria", appointment.ClientName)
	assert.Equal(t, "09:00", appointment.Time)
	assert.Equal(t, string(scheduling.StatusPending), appointment.Status)
	assert.Equal(t, "admin", appointment.CreatedBy)
}

func TestCreateAppointmentRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateAppointmentRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  dto.CreateAppointmentRequest{ClientName: "Maria", Service: "Corte", Date: "2024-01-15", Time: "9:00"},
		},
		{
			name:    "bad time",
			req:     dto.CreateAppointmentRequest{ClientName: "Maria", Service: "Corte", Date: "2024-01-15", Time: "25:00"},
			wantErr: true,
		},
		{
			name:    "bad date",
			req:     dto.CreateAppointmentRequest{ClientName: "Maria", Service: "Corte", Date: "2024-02-30", Time: "10:00"},
			wantErr: true,
		},
		{
			name: "unknown status",
			req: dto.CreateAppointmentRequest{
				ClientName: "Maria", Service: "Corte", Date: "2024-01-15", Time: "10:00", Status: "done",
			},
			wantErr: true,
		},
		{
			name:    "missing client",
			req:     dto.CreateAppointmentRequest{Service: "Corte", Date: "2024-01-15", Time: "10:00"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUpdateAppointmentRequest_Apply(t *testing.T) {
	notes := "bring photo"
	current := model.Appointment{
		ID: "a1", ClientName: "Maria", Service: "Corte", Date: "2024-01-15", Time: "10:00",
		Status: string(scheduling.StatusPending),
	}

	req := dto.UpdateAppointmentRequest{Time: "9:30", Status: string(scheduling.StatusConfirmed), Notes: &notes}

	next := req.Apply(current)
	assert.Equal(t, "09:30", next.Time)
	assert.Equal(t, string(scheduling.StatusConfirmed), next.Status)
	assert.Equal(t, "Corte", next.Service)
	assert.Equal(t, "2024-01-15", next.Date)
	assert.Equal(t, &notes, next.Notes)
	assert.Equal(t, "10:00", current.Time)
}

func TestBookAppointmentRequest_ToCreate(t *testing.T) {
	req := dto.BookAppointmentRequest{Service: "Corte", Date: "2024-01-15", Time: "10:00"}

	create := req.ToCreate("Maria", "")
	assert.Equal(t, "Maria", create.ClientName)
	assert.Nil(t, create.ClientPhone)
	assert.Equal(t, string(scheduling.StatusPending), create.Status)

	create = req.ToCreate("Maria", "11 99999-0000")
	require.NotNil(t, create.ClientPhone)
	assert.Equal(t, "11 99999-0000", *create.ClientPhone)
}

func TestListQuery_Filter(t *testing.T) {
	assert.Empty(t, dto.ListQuery{}.Filter().Filters)

	filter := dto.ListQuery{Date: "2024-01-15", Status: "pending", Search: "mar"}.Filter()
	require.Len(t, filter.Filters, 3)
	assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)

	search, ok := filter.Filters[2].(gDto.Filter)
	require.True(t, ok)
	assert.Equal(t, model.FieldClientName, search.Field)
	assert.Equal(t, gDto.FilterOperatorLike, search.Operator)
}

func TestAppointmentResponse_FromModel(t *testing.T) {
	registry := scheduling.NewDurationRegistry([]scheduling.ServiceInfo{{ID: "s1", Name: "Escova", Duration: 60}})

	var res dto.AppointmentResponse
	res.FromModel(model.Appointment{ID: "a1", Service: "Escova", Time: "09:30"}, registry)

	assert.Equal(t, 60, res.Duration)
	assert.Equal(t, "10:30", res.EndTime)
}
