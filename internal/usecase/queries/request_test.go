//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"printmarket/internal/domain/request"
	"printmarket/internal/infra/repository"
	"printmarket/internal/pkg/errs"
	"printmarket/internal/usecase/queries"
	"printmarket/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver struct{}

func (staticResolver) ResolveFileURL(requestID uuid.UUID, name string) string {
	return "http://files.test/" + requestID.String() + "/" + name
}

func seed(t *testing.T, repo *repository.MemoryRequestRepository, b *builder.RequestBuilder) *request.PrintRequest {
	t.Helper()
	req, err := b.BuildDomain()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), req))
	return req
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	repo := repository.NewMemoryRequestRepository()
	q := queries.NewRequestQueries(repo, staticResolver{})

	customerID := uuid.New()
	req := seed(t, repo, builder.NewRequestBuilder().WithCustomerID(customerID))

	t.Run("owning customer sees it", func(t *testing.T) {
		view, err := q.GetByID(ctx, request.Actor{ID: customerID}, req.ID())
		require.NoError(t, err)
		assert.Equal(t, req.ID(), view.ID)
		require.Len(t, view.Files, 1)
		assert.Equal(t, "http://files.test/"+req.ID().String()+"/bracket.stl", view.Files[0].URL)
	})

	t.Run("any provider sees the open pool", func(t *testing.T) {
		_, err := q.GetByID(ctx, request.Actor{ID: uuid.New(), Provider: true}, req.ID())
		assert.NoError(t, err)
	})

	t.Run("other customers get not found, not forbidden", func(t *testing.T) {
		_, err := q.GetByID(ctx, request.Actor{ID: uuid.New()}, req.ID())
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := q.GetByID(ctx, request.Actor{ID: customerID}, uuid.New())
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})

	t.Run("after assignment unrelated providers lose access", func(t *testing.T) {
		provider := request.Actor{ID: uuid.New(), Provider: true}
		loaded, err := repo.FindByID(ctx, req.ID())
		require.NoError(t, err)
		require.NoError(t, loaded.ApplyAction(provider, request.ActionSubmitQuote, builder.QuotePayload("12.00", 2), now))
		require.NoError(t, repo.Update(ctx, loaded, loaded.Version()))

		_, err = q.GetByID(ctx, provider, req.ID())
		assert.NoError(t, err)

		_, err = q.GetByID(ctx, request.Actor{ID: uuid.New(), Provider: true}, req.ID())
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})
}

func TestListScopes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	repo := repository.NewMemoryRequestRepository()
	q := queries.NewRequestQueries(repo, staticResolver{})

	customerID := uuid.New()
	provider := request.Actor{ID: uuid.New(), Provider: true}

	mine := seed(t, repo, builder.NewRequestBuilder().WithCustomerID(customerID).WithMaterial("PLA"))
	seed(t, repo, builder.NewRequestBuilder().WithCustomerID(customerID).WithMaterial("PETG").WithCreatedAt(now))
	other := seed(t, repo, builder.NewRequestBuilder().WithMaterial("PLA"))

	// Assign one of the customer's requests to the provider.
	loaded, err := repo.FindByID(ctx, mine.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.ApplyAction(provider, request.ActionSubmitQuote, builder.QuotePayload("20.00", 3), now))
	require.NoError(t, repo.Update(ctx, loaded, loaded.Version()))

	t.Run("mine lists only the customer's requests", func(t *testing.T) {
		items, err := q.ListMine(ctx, customerID, queries.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("material filter narrows the listing", func(t *testing.T) {
		material := "petg"
		items, err := q.ListMine(ctx, customerID, queries.ListFilter{Material: &material})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "PETG", items[0].Material)
	})

	t.Run("status filter narrows the listing", func(t *testing.T) {
		status := request.StatusQuoted
		items, err := q.ListMine(ctx, customerID, queries.ListFilter{Status: &status})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, mine.ID(), items[0].ID)
		require.NotNil(t, items[0].QuoteAmount)
		assert.Equal(t, "20", items[0].QuoteAmount.String())
	})

	t.Run("assigned lists the provider's orders", func(t *testing.T) {
		items, err := q.ListAssigned(ctx, provider.ID, queries.ListFilter{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, mine.ID(), items[0].ID)
	})

	t.Run("available excludes assigned and own requests", func(t *testing.T) {
		items, err := q.ListAvailable(ctx, provider.ID, queries.ListFilter{})
		require.NoError(t, err)
		require.Len(t, items, 2, "the quoted request left the pool")

		items, err = q.ListAvailable(ctx, other.CustomerID(), queries.ListFilter{})
		require.NoError(t, err)
		require.Len(t, items, 1, "a customer's own request never shows as available to them")
	})
}
