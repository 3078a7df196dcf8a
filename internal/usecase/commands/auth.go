package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"campsite-booking/internal/domain/user"
	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/pkg/jwt"
	"campsite-booking/internal/pkg/password"
	"campsite-booking/internal/usecase/queries"
)

var (
	ErrUserNotFound       = errs.New("user not found")
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrUserInactive       = errs.New("user inactive")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type LoginResult struct {
	UserID uuid.UUID
	Token  string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	readStore  queries.UserReadStore
	users      UserRepository
	jwtService *jwt.Service
}

func NewAuthCommands(readStore queries.UserReadStore, users UserRepository, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		readStore:  readStore,
		users:      users,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	view, err := a.validateUser(ctx, email, plainPassword)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	if err := a.users.UpdateLastLogin(ctx, view.ID); err != nil {
		// Not critical; the login itself succeeded.
		slog.Warn("failed to update last login", "user_id", view.ID, "error", err.Error())
	}

	return &LoginResult{UserID: view.ID, Token: token}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, email, plainPassword string) (*queries.AuthorizedUserView, error) {
	view, hashedPassword, err := a.readStore.FindByEmail(ctx, email)
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration.
		return nil, ErrInvalidCredentials
	}
	if view == nil {
		return nil, ErrUserNotFound
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}
	if err := password.ComparePassword(hashedPassword, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return view, nil
}
