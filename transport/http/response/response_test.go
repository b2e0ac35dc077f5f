package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"salon/shared/failure"
	"salon/transport/http/response"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "failure",
			err:      failure.NotFound("appointment not found"),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"appointment not found"}`,
		},
		{
			name:     "conflict with details",
			err:      fmt.Errorf("wrap: %w", failure.ConflictWithDetails("time no longer available", []string{"a1"})),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"time no longer available","details":["a1"]}`,
		},
		{
			name:     "unexpected error is masked",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWithJSONAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusOK, map[string]int{"count": 2})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"count":2}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.WithMessage(rec, http.StatusCreated, "Client created successfully")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Client created successfully"}`, rec.Body.String())
}
