package commands

import (
	"context"

	"printmarket/internal/domain/user"
	"printmarket/internal/infra"
	"printmarket/internal/pkg/errs"
	"printmarket/internal/pkg/jwt"
	"printmarket/internal/pkg/password"
	"printmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResult struct {
	UserID      uuid.UUID
	AccessToken string
}

type RegisterParams struct {
	Email    string
	Password string
	Role     string
}

type AuthCommands interface {
	Login(ctx context.Context, credentials user.Credentials) (*LoginResult, error)
	Register(ctx context.Context, params RegisterParams) (*queries.UserView, error)
}

type authCommandsImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthCommands(userRepo UserRepository, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, credentials user.Credentials) (*LoginResult, error) {
	view, hash, err := a.userRepo.FindByEmail(ctx, credentials.Email().String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrInvalidCredentials)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !view.IsActive {
		return nil, errs.ErrUserInactive
	}

	if err := password.ComparePassword(hash, credentials.Password().Value()); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "token generation failed")
	}

	if err := a.userRepo.UpdateLastLogin(ctx, view.ID); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &LoginResult{
		UserID:      view.ID,
		AccessToken: token,
	}, nil
}

func (a *authCommandsImpl) Register(ctx context.Context, params RegisterParams) (*queries.UserView, error) {
	credentials, err := user.NewCredentials(params.Email, params.Password)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	role, err := user.NewRole(params.Role)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return nil, errs.Wrap(err, "password hashing failed")
	}

	view := queries.UserView{
		ID:       uuid.New(),
		Email:    credentials.Email().String(),
		Role:     role.String(),
		IsActive: true,
	}

	if err := a.userRepo.Create(ctx, view, hash); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrDuplicateEmail)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &view, nil
}
