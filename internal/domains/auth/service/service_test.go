package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/config"
	"salon/infras/jwt"
	jwtMocks "salon/infras/jwt/mocks"
	"salon/infras/otel/mocks"
	"salon/internal/domains/auth/model/dto"
	"salon/internal/domains/auth/service"
	clientMocks "salon/internal/domains/client/mocks"
	clientModel "salon/internal/domains/client/model"
	userMocks "salon/internal/domains/user/mocks"
	userModel "salon/internal/domains/user/model"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/password"
)

const secret = "password123"

type fixture struct {
	svc     service.Auth
	users   *userMocks.MockUser
	clients *clientMocks.MockClientService
	jwt     *jwtMocks.MockJWT
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		users:   userMocks.NewMockUser(ctrl),
		clients: clientMocks.NewMockClientService(ctrl),
		jwt:     jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.users, f.clients, f.jwt, &config.Config{}, mocks.NewOtel())

	return f
}

func account(t *testing.T, level string, active bool) userModel.User {
	t.Helper()

	hashed, err := password.Hash(secret)
	require.NoError(t, err)

	return userModel.User{ID: "user-1", Email: "ana@salon.com", Password: hashed, Name: "Ana", Level: level, Active: active}
}

func tokens() *jwt.TokenPair {
	return &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f *fixture)
		wantRole  string
		wantCode  int
	}{
		{
			name: "staff account",
			req:  dto.LoginRequest{Email: "ana@salon.com", Password: secret},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleAdmin, true), nil)
				f.clients.EXPECT().FindByEmail(gomock.Any(), "ana@salon.com").Return(clientModel.Client{}, false, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.jwt.EXPECT().
					GenerateTokenPair(jwt.Identity{UserID: "user-1", Email: "ana@salon.com", Role: constant.RoleAdmin}).
					Return(tokens(), nil)
			},
			wantRole: constant.RoleAdmin,
		},
		{
			name: "email on the client roster signs in as client",
			req:  dto.LoginRequest{Email: "ana@salon.com", Password: secret},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleAdmin, true), nil)
				f.clients.EXPECT().FindByEmail(gomock.Any(), "ana@salon.com").Return(clientModel.Client{ID: "c1"}, true, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.jwt.EXPECT().
					GenerateTokenPair(jwt.Identity{UserID: "user-1", Email: "ana@salon.com", Role: constant.RoleClient}).
					Return(tokens(), nil)
			},
			wantRole: constant.RoleClient,
		},
		{
			name: "last login failure does not block",
			req:  dto.LoginRequest{Email: "ana@salon.com", Password: secret},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleStaff, true), nil)
				f.clients.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(clientModel.Client{}, false, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any()).Return(tokens(), nil)
			},
			wantRole: constant.RoleStaff,
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@salon.com", Password: secret},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "ana@salon.com", Password: "wrong-password"},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleAdmin, true), nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "ana@salon.com", Password: secret},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleAdmin, false), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "client account whose record was removed",
			req:  dto.LoginRequest{Email: "ana@salon.com", Password: secret},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleClient, true), nil)
				f.clients.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(clientModel.Client{}, false, nil)
			},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, tt.wantRole, res.Role)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Email: "Maria@Mail.com", Password: secret}

	t.Run("client on the roster", func(t *testing.T) {
		f := newFixture(t)
		f.clients.EXPECT().FindByEmail(gomock.Any(), req.Email).Return(clientModel.Client{ID: "c1", Name: "Maria"}, true, nil)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
			assert.Equal(t, "maria@mail.com", user.Email)
			assert.Equal(t, "Maria", user.Name)
			assert.Equal(t, constant.RoleClient, user.Level)
			assert.NoError(t, password.Verify(secret, user.Password))

			return nil
		})
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any()).Return(tokens(), nil)

		res, err := f.svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, constant.RoleClient, res.Role)
	})

	t.Run("email not on the roster", func(t *testing.T) {
		f := newFixture(t)
		f.clients.EXPECT().FindByEmail(gomock.Any(), req.Email).Return(clientModel.Client{}, false, nil)

		_, err := f.svc.Register(context.Background(), req)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("already registered", func(t *testing.T) {
		f := newFixture(t)
		f.clients.EXPECT().FindByEmail(gomock.Any(), req.Email).Return(clientModel.Client{ID: "c1", Name: "Maria"}, true, nil)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Register(context.Background(), req)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	req := dto.RefreshTokenRequest{RefreshToken: "refresh"}
	claims := &jwt.Claims{Identity: jwt.Identity{UserID: "user-1", Email: "ana@salon.com", Role: constant.RoleAdmin}}

	t.Run("re-derives the role", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleStaff, true), nil)
		f.clients.EXPECT().FindByEmail(gomock.Any(), "ana@salon.com").Return(clientModel.Client{}, false, nil)
		f.jwt.EXPECT().
			GenerateTokenPair(jwt.Identity{UserID: "user-1", Email: "ana@salon.com", Role: constant.RoleStaff}).
			Return(tokens(), nil)

		res, err := f.svc.RefreshToken(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, constant.RoleStaff, res.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(nil, jwt.ErrExpiredToken)

		_, err := f.svc.RefreshToken(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
		assert.Equal(t, "refresh token has expired", err.Error())
	})

	t.Run("deactivated since sign-in", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleAdmin, false), nil)

		_, err := f.svc.RefreshToken(context.Background(), req)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("account deleted", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := f.svc.RefreshToken(context.Background(), req)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleAdmin, true), nil)
		f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hashed, ok := fields[userModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("new-password", hashed))

				return nil
			})

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: secret, NewPassword: "new-password"})
		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleAdmin, true), nil)

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAuthService_Session(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleAdmin, true), nil)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleClient)

	res, err := f.svc.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", res.Name)
	assert.Equal(t, constant.RoleClient, res.Role)
}
