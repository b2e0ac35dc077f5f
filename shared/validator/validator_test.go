package validator_test

import (
	"net/http"
	"salon/shared/failure"
	"salon/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingRequest struct {
	ClientName string `json:"client_name" validate:"required,max=100"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Date       string `json:"date"        validate:"required,day"`
	Time       string `json:"time"        validate:"required,clock"`
	Status     string `json:"status"      validate:"omitempty,status"`
	Price      int    `json:"price"       validate:"gte=0"`
}

func TestValidateStruct(t *testing.T) {
	valid := bookingRequest{ClientName: "Ana", Date: "2024-01-15", Time: "09:30", Status: "pending"}

	tests := []struct {
		name    string
		mutate  func(r *bookingRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(_ *bookingRequest) {}},
		{name: "missing client", mutate: func(r *bookingRequest) { r.ClientName = "" }, wantErr: "ClientName is required"},
		{name: "bad email", mutate: func(r *bookingRequest) { r.Email = "ana" }, wantErr: "Email must be a valid email address"},
		{name: "bad date", mutate: func(r *bookingRequest) { r.Date = "15/01/2024" }, wantErr: "Date must be a date in YYYY-MM-DD format"},
		{name: "bad time", mutate: func(r *bookingRequest) { r.Time = "25:00" }, wantErr: "Time must be a time in HH:MM format"},
		{name: "bad status", mutate: func(r *bookingRequest) { r.Status = "archived" }, wantErr: "Status must be one of pending confirmed completed cancelled"},
		{name: "negative price", mutate: func(r *bookingRequest) { r.Price = -1 }, wantErr: "Price must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	req := bookingRequest{}
	err := validator.Validate(strings.NewReader(`{"client_name":"Ana","date":"2024-01-15","time":"9:00"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "9:00", req.Time)

	err = validator.Validate(strings.NewReader(`{"client_name":`), &bookingRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2024-02-29", "day"))
	assert.Error(t, validator.ValidateVar("2024-02-30", "day"))
	assert.NoError(t, validator.ValidateVar("", "empty"))
	assert.Error(t, validator.ValidateVar("x", "empty"))
}

func TestNotBefore(t *testing.T) {
	type period struct {
		From string `validate:"omitempty,day"`
		To   string `validate:"omitempty,day,notbefore=From"`
	}

	assert.NoError(t, validator.ValidateStruct(&period{From: "2024-01-01", To: "2024-01-31"}))
	assert.NoError(t, validator.ValidateStruct(&period{From: "2024-01-01", To: "2024-01-01"}))
	assert.NoError(t, validator.ValidateStruct(&period{To: "2024-01-31"}))

	err := validator.ValidateStruct(&period{From: "2024-02-01", To: "2024-01-31"})
	require.Error(t, err)
	assert.Equal(t, "To must not be before From", err.Error())
}
