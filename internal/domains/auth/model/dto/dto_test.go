package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"salon/infras/jwt"
	"salon/internal/domains/auth/model/dto"
	"salon/shared/constant"
	"salon/shared/validator"
)

func TestTokenResponse_FromTokenPair(t *testing.T) {
	expiresAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	pair := &jwt.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900, ExpiresAt: expiresAt}

	var res dto.TokenResponse
	res.FromTokenPair(pair, constant.RoleClient)

	assert.Equal(t, "a", res.AccessToken)
	assert.Equal(t, "r", res.RefreshToken)
	assert.Equal(t, int64(900), res.ExpiresIn)
	assert.Equal(t, expiresAt, res.ExpiresAt)
	assert.Equal(t, constant.RoleClient, res.Role)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{Email: " Maria@Mail.com ", Password: "secret123"}

	user := req.ToUserModel("Maria", "hashed")
	assert.Equal(t, "maria@mail.com", user.Email)
	assert.Equal(t, constant.RoleClient, user.Level)
	assert.True(t, user.Active)
	assert.NotEmpty(t, user.ID)
}

func TestChangePasswordRequest_Validation(t *testing.T) {
	same := dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"}
	assert.Error(t, validator.ValidateStruct(&same))

	short := dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "short"}
	assert.Error(t, validator.ValidateStruct(&short))

	valid := dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"}
	assert.NoError(t, validator.ValidateStruct(&valid))
}
