//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"printmarket/internal/domain/user"
	"printmarket/internal/infra"
	"printmarket/internal/pkg/errs"
	"printmarket/internal/pkg/jwt"
	"printmarket/internal/pkg/password"
	"printmarket/internal/usecase/commands"
	"printmarket/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	byEmail map[string]*userRecord
	byID    map[uuid.UUID]*userRecord
}

type userRecord struct {
	view queries.UserView
	hash string
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byEmail: make(map[string]*userRecord),
		byID:    make(map[uuid.UUID]*userRecord),
	}
}

func (r *memoryUserRepo) Create(_ context.Context, view queries.UserView, hash string) error {
	if _, ok := r.byEmail[view.Email]; ok {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "email taken", nil)
	}
	rec := &userRecord{view: view, hash: hash}
	r.byEmail[view.Email] = rec
	r.byID[view.ID] = rec
	return nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*queries.UserView, string, error) {
	rec, ok := r.byEmail[email]
	if !ok {
		return nil, "", infra.WrapRepoErr(infra.KindNotFound, "user not found", nil)
	}
	view := rec.view
	return &view, rec.hash, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	rec, ok := r.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "user not found", nil)
	}
	view := rec.view
	return &view, nil
}

func (r *memoryUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID) error {
	return nil
}

func newAuthFixture(t *testing.T) (commands.AuthCommands, *memoryUserRepo, *jwt.Service) {
	t.Helper()
	repo := newMemoryUserRepo()
	jwtService := jwt.NewService("test-secret", time.Hour)
	return commands.NewAuthCommands(repo, jwtService), repo, jwtService
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active account with a hashed password", func(t *testing.T) {
		cmds, repo, _ := newAuthFixture(t)

		view, err := cmds.Register(ctx, commands.RegisterParams{
			Email:    "Maker@Example.com",
			Password: "password123",
			Role:     "provider",
		})
		require.NoError(t, err)
		assert.Equal(t, "maker@example.com", view.Email, "email is normalized")
		assert.Equal(t, "provider", view.Role)
		assert.True(t, view.IsActive)

		_, hash, err := repo.FindByEmail(ctx, "maker@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "password123", hash)
		assert.NoError(t, password.ComparePassword(hash, "password123"))
	})

	t.Run("duplicate email", func(t *testing.T) {
		cmds, _, _ := newAuthFixture(t)
		params := commands.RegisterParams{Email: "maker@example.com", Password: "password123", Role: "customer"}

		_, err := cmds.Register(ctx, params)
		require.NoError(t, err)

		_, err = cmds.Register(ctx, params)
		assert.ErrorIs(t, err, errs.ErrDuplicateEmail)
	})

	t.Run("validation failures", func(t *testing.T) {
		cmds, _, _ := newAuthFixture(t)

		_, err := cmds.Register(ctx, commands.RegisterParams{Email: "bad", Password: "password123", Role: "customer"})
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = cmds.Register(ctx, commands.RegisterParams{Email: "a@b.co", Password: "short", Role: "customer"})
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = cmds.Register(ctx, commands.RegisterParams{Email: "a@b.co", Password: "password123", Role: "admin"})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, cmds commands.AuthCommands) *queries.UserView {
		t.Helper()
		view, err := cmds.Register(ctx, commands.RegisterParams{
			Email:    "maker@example.com",
			Password: "password123",
			Role:     "customer",
		})
		require.NoError(t, err)
		return view
	}

	credentials := func(t *testing.T, email, pass string) user.Credentials {
		t.Helper()
		creds, err := user.NewCredentials(email, pass)
		require.NoError(t, err)
		return creds
	}

	t.Run("issues a valid token", func(t *testing.T) {
		cmds, _, jwtService := newAuthFixture(t)
		registered := register(t, cmds)

		result, err := cmds.Login(ctx, credentials(t, "maker@example.com", "password123"))
		require.NoError(t, err)
		assert.Equal(t, registered.ID, result.UserID)

		claims, err := jwtService.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.UserID)
		assert.Equal(t, user.RoleCustomer.String(), claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		cmds, _, _ := newAuthFixture(t)
		register(t, cmds)

		_, err := cmds.Login(ctx, credentials(t, "maker@example.com", "wrong-password"))
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("unknown email reads as invalid credentials", func(t *testing.T) {
		cmds, _, _ := newAuthFixture(t)

		_, err := cmds.Login(ctx, credentials(t, "nobody@example.com", "password123"))
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		cmds, repo, _ := newAuthFixture(t)
		registered := register(t, cmds)
		repo.byID[registered.ID].view.IsActive = false

		_, err := cmds.Login(ctx, credentials(t, "maker@example.com", "password123"))
		assert.ErrorIs(t, err, errs.ErrUserInactive)
	})
}
