package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"salon/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad")), wantCode: http.StatusBadRequest, wantMsg: "bad"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid date"), wantCode: http.StatusBadRequest, wantMsg: "invalid date"},
		{name: "unauthorized", err: failure.Unauthorized("no token"), wantCode: http.StatusUnauthorized, wantMsg: "no token"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), wantCode: http.StatusInternalServerError, wantMsg: "boom"},
		{name: "unimplemented", err: failure.Unimplemented("Export"), wantCode: http.StatusNotImplemented, wantMsg: "Export"},
		{name: "not found", err: failure.NotFound("client not found"), wantCode: http.StatusNotFound, wantMsg: "client not found"},
		{name: "conflict", err: failure.Conflict("time no longer available"), wantCode: http.StatusConflict, wantMsg: "time no longer available"},
		{name: "forbidden", err: failure.Forbidden("clients only"), wantCode: http.StatusForbidden, wantMsg: "clients only"},
		{name: "predefined forbidden", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("create appointment: %w", failure.Conflict("taken"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
}

func TestConflictWithDetails(t *testing.T) {
	err := failure.ConflictWithDetails("time no longer available", []string{"a1", "a2"})

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, []string{"a1", "a2"}, failure.GetDetails(fmt.Errorf("wrap: %w", err)))
	assert.Nil(t, failure.GetDetails(errors.New("plain")))
}
