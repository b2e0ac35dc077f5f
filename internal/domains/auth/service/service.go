package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Auth=MockAuth

import (
	"context"
	"errors"
	"fmt"
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/otel"
	"salon/internal/domains/auth/model/dto"
	clientService "salon/internal/domains/client/service"
	userModel "salon/internal/domains/user/model"
	userRepo "salon/internal/domains/user/repository"
	"salon/shared"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/password"
	"salon/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	msgInvalidCredentials = "invalid email or password"
	msgNotAClient         = "email not found among the salon's clients, ask the salon to register you first"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.TokenResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	Session(ctx context.Context) (dto.SessionResponse, error)
}

type serviceImpl struct {
	users      userRepo.User
	clients    clientService.Client
	jwtService jwt.JWT
	cfg        *config.Config
	otel       otel.Otel
}

func New(users userRepo.User, clients clientService.Client, jwt jwt.JWT, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		users:      users,
		clients:    clients,
		jwtService: jwt,
		cfg:        cfg,
		otel:       otel,
	}
}

// Register opens a portal account for someone already on the client roster
// and signs them in.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	client, found, err := s.clients.FindByEmail(ctx, req.Email)
	if err != nil {
		return res, fmt.Errorf("failed to look up client: %w", err)
	}

	if !found {
		return res, failure.BadRequestFromString(msgNotAClient) // nolint:wrapcheck
	}

	exists, err := s.users.Exist(ctx, userRepo.ByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(client.Name, hashedPassword)

	if err = s.users.Insert(ctx, user); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("email already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user, constant.RoleClient)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := userRepo.ByEmail(req.Email)

	user, err := s.users.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")

		return res, failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.Forbidden("user account is deactivated") // nolint:wrapcheck
	}

	role, err := s.role(ctx, user)
	if err != nil {
		return res, err
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}

	if err := s.users.Update(ctx, shared.TransformFields(lastLogin, user.ID), filter); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	return s.issue(user, role)
}

// RefreshToken trades a refresh token for a new pair. The account is read
// again so deactivation and role changes apply from the next refresh.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh with invalid token")

		if errors.Is(err, jwt.ErrExpiredToken) {
			return res, failure.Unauthorized("refresh token has expired") // nolint:wrapcheck
		}

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	user, err := s.find(ctx, claims.UserID)
	if err != nil {
		return res, err
	}

	if !user.Active {
		return res, failure.Unauthorized("user account is deactivated") // nolint:wrapcheck
	}

	role, err := s.role(ctx, user)
	if err != nil {
		return res, err
	}

	return s.issue(user, role)
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.find(ctx, userID)
	if err != nil {
		return err
	}

	if err = password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, userID)

	if err = s.users.Update(ctx, updatedFields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// Session reports the identity behind the current access token.
func (s *serviceImpl) Session(ctx context.Context) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Session")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.find(ctx, userID)
	if err != nil {
		return res, err
	}

	res.UserID = user.ID
	res.Email = user.Email
	res.Name = user.Name
	res.Role, _ = ctx.Value(constant.ContextKeyUserRole).(string)
	res.LastLogin = user.LastLogin

	return res, nil
}

// role prefers the client role whenever the email is on the roster, so a
// client never signs in with staff rights.
func (s *serviceImpl) role(ctx context.Context, user userModel.User) (string, error) {
	_, isClient, err := s.clients.FindByEmail(ctx, user.Email)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to derive role: %w", err)
	}

	if isClient {
		return constant.RoleClient, nil
	}

	if user.Level == constant.RoleClient {
		return constant.Empty, failure.Forbidden("client account no longer linked to a client record") // nolint:wrapcheck
	}

	return user.Level, nil
}

func (s *serviceImpl) issue(user userModel.User, role string) (res dto.TokenResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(jwt.Identity{UserID: user.ID, Email: user.Email, Role: role})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair, role)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (userModel.User, error) {
	user, err := s.users.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}
