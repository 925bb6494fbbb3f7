//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"printmarket/internal/domain/request"
	"printmarket/internal/infra"
	"printmarket/internal/infra/repository"
	"printmarket/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRequestRepository()

	notes := "support structures please"
	req, err := builder.NewRequestBuilder().WithNotes(notes).BuildDomain()
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, req))

	t.Run("round trip preserves the aggregate", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)

		assert.Equal(t, req.ID(), loaded.ID())
		assert.Equal(t, req.CustomerID(), loaded.CustomerID())
		assert.Equal(t, req.Status(), loaded.Status())
		assert.Equal(t, req.Version(), loaded.Version())
		assert.Empty(t, cmp.Diff(req.Spec(), loaded.Spec()))
		assert.Empty(t, cmp.Diff(req.Files(), loaded.Files()))
	})

	t.Run("duplicate create is a duplicate key error", func(t *testing.T) {
		err := repo.Create(ctx, req)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("stored state is isolated from the caller's copy", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)

		provider := request.Actor{ID: uuid.New(), Provider: true}
		now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
		require.NoError(t, loaded.ApplyAction(provider, request.ActionSubmitQuote, builder.QuotePayload("15.00", 2), now))

		reloaded, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)
		assert.Equal(t, request.StatusRequested, reloaded.Status(),
			"mutation without Update must not leak into the store")
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestMemoryRepository_UpdateVersioning(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	newStored := func(t *testing.T) (*repository.MemoryRequestRepository, *request.PrintRequest) {
		t.Helper()
		repo := repository.NewMemoryRequestRepository()
		req, err := builder.NewRequestBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, req))
		return repo, req
	}

	t.Run("update bumps the stored version", func(t *testing.T) {
		repo, req := newStored(t)
		loaded, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)

		provider := request.Actor{ID: uuid.New(), Provider: true}
		require.NoError(t, loaded.ApplyAction(provider, request.ActionSubmitQuote, builder.QuotePayload("15.00", 2), now))
		require.NoError(t, repo.Update(ctx, loaded, loaded.Version()))

		reloaded, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)
		assert.Equal(t, request.StatusQuoted, reloaded.Status())
		assert.Equal(t, int64(2), reloaded.Version())
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		repo, req := newStored(t)
		first, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)

		providerA := request.Actor{ID: uuid.New(), Provider: true}
		providerB := request.Actor{ID: uuid.New(), Provider: true}
		require.NoError(t, first.ApplyAction(providerA, request.ActionSubmitQuote, builder.QuotePayload("15.00", 2), now))
		require.NoError(t, second.ApplyAction(providerB, request.ActionSubmitQuote, builder.QuotePayload("18.00", 1), now))

		require.NoError(t, repo.Update(ctx, first, first.Version()))

		err = repo.Update(ctx, second, second.Version())
		assert.True(t, infra.IsKind(err, infra.KindConflict))

		reloaded, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)
		require.NotNil(t, reloaded.ProviderID())
		assert.Equal(t, providerA.ID, *reloaded.ProviderID(), "first writer wins")
	})

	t.Run("update of a missing request is not found", func(t *testing.T) {
		repo, _ := newStored(t)
		ghost, err := builder.NewRequestBuilder().BuildDomain()
		require.NoError(t, err)
		err = repo.Update(ctx, ghost, ghost.Version())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
