//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"printmarket/internal/domain/request"
	"printmarket/internal/infra"
	"printmarket/internal/infra/repository"
	"printmarket/tests/common/builder"
	"printmarket/tests/common/dbtest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RequestRepositorySuite struct {
	SharedSuite
	repo *repository.PostgresRequestRepository
}

func TestRequestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RequestRepositorySuite))
}

func (s *RequestRepositorySuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.repo = repository.NewPostgresRequestRepository(s.DB)
}

func (s *RequestRepositorySuite) seedCustomer() uuid.UUID {
	id := uuid.New()
	s.Require().NoError(dbtest.SeedUser(s.DB, id, id.String()+"@example.com", "customer"))
	return id
}

func (s *RequestRepositorySuite) seedProvider() request.Actor {
	id := uuid.New()
	s.Require().NoError(dbtest.SeedUser(s.DB, id, id.String()+"@example.com", "provider"))
	return request.Actor{ID: id, Provider: true}
}

func (s *RequestRepositorySuite) TestCreateAndFindByID() {
	ctx := context.Background()

	s.Run("round trip preserves the aggregate", func() {
		customerID := s.seedCustomer()
		req, err := builder.NewRequestBuilder().WithCustomerID(customerID).BuildDomain()
		s.Require().NoError(err)
		s.Require().NoError(s.repo.Create(ctx, req))

		loaded, err := s.repo.FindByID(ctx, req.ID())
		s.Require().NoError(err)

		s.Empty(cmp.Diff(req.Spec(), loaded.Spec()))
		s.Empty(cmp.Diff(req.Files(), loaded.Files()))
		s.Equal(customerID, loaded.CustomerID())
		s.Equal(request.StatusRequested, loaded.Status())
		s.Equal(int64(1), loaded.Version())
		s.Require().Len(loaded.History(), 1)
		s.True(loaded.CreatedAt().Equal(req.CreatedAt()))
	})

	s.Run("missing id reports not found", func() {
		_, err := s.repo.FindByID(ctx, uuid.New())
		s.True(infra.IsKind(err, infra.KindNotFound))
	})

	s.Run("duplicate insert reports duplicate key", func() {
		customerID := s.seedCustomer()
		req, err := builder.NewRequestBuilder().WithCustomerID(customerID).BuildDomain()
		s.Require().NoError(err)
		s.Require().NoError(s.repo.Create(ctx, req))

		err = s.repo.Create(ctx, req)
		s.True(infra.IsKind(err, infra.KindDuplicateKey))
	})
}

func (s *RequestRepositorySuite) TestUpdateCAS() {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	s.Run("update bumps the version and persists the quote", func() {
		customerID := s.seedCustomer()
		provider := s.seedProvider()

		req, err := builder.NewRequestBuilder().WithCustomerID(customerID).BuildDomain()
		s.Require().NoError(err)
		s.Require().NoError(s.repo.Create(ctx, req))

		loaded, err := s.repo.FindByID(ctx, req.ID())
		s.Require().NoError(err)
		s.Require().NoError(loaded.ApplyAction(provider, request.ActionSubmitQuote, builder.QuotePayload("12.50", 3), now))
		s.Require().NoError(s.repo.Update(ctx, loaded, loaded.Version()))

		stored, err := s.repo.FindByID(ctx, req.ID())
		s.Require().NoError(err)
		s.Equal(request.StatusQuoted, stored.Status())
		s.Equal(int64(2), stored.Version())
		s.Require().NotNil(stored.Quote())
		s.True(stored.Quote().Amount.Equal(decimal.RequireFromString("12.50")))
		s.Equal(3, stored.Quote().EstimatedDeliveryDays)
		s.Equal(provider.ID, stored.Quote().ProviderID)
		s.True(stored.Quote().SubmittedAt.Equal(now))
		s.Require().Len(stored.History(), 2)
		s.Equal(request.StatusQuoted, stored.History()[1].Status)
	})

	s.Run("stale version loses the race", func() {
		customerID := s.seedCustomer()
		winner := s.seedProvider()
		loser := s.seedProvider()

		req, err := builder.NewRequestBuilder().WithCustomerID(customerID).BuildDomain()
		s.Require().NoError(err)
		s.Require().NoError(s.repo.Create(ctx, req))

		first, err := s.repo.FindByID(ctx, req.ID())
		s.Require().NoError(err)
		second, err := s.repo.FindByID(ctx, req.ID())
		s.Require().NoError(err)

		s.Require().NoError(first.ApplyAction(winner, request.ActionSubmitQuote, builder.QuotePayload("10.00", 2), now))
		s.Require().NoError(s.repo.Update(ctx, first, first.Version()))

		s.Require().NoError(second.ApplyAction(loser, request.ActionSubmitQuote, builder.QuotePayload("11.00", 4), now))
		err = s.repo.Update(ctx, second, second.Version())
		s.True(infra.IsKind(err, infra.KindConflict))

		// The winner's quote is untouched by the losing write.
		stored, err := s.repo.FindByID(ctx, req.ID())
		s.Require().NoError(err)
		s.Require().NotNil(stored.Quote())
		s.Equal(winner.ID, stored.Quote().ProviderID)
		s.Equal(int64(2), stored.Version())
	})
}

func (s *RequestRepositorySuite) TestListScopes() {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	s.Run("assigned and available partition the pool", func() {
		customerID := s.seedCustomer()
		provider := s.seedProvider()

		quoted, err := builder.NewRequestBuilder().WithCustomerID(customerID).BuildDomain()
		s.Require().NoError(err)
		s.Require().NoError(s.repo.Create(ctx, quoted))

		open, err := builder.NewRequestBuilder().WithCustomerID(customerID).WithMaterial("PETG").BuildDomain()
		s.Require().NoError(err)
		s.Require().NoError(s.repo.Create(ctx, open))

		loaded, err := s.repo.FindByID(ctx, quoted.ID())
		s.Require().NoError(err)
		s.Require().NoError(loaded.ApplyAction(provider, request.ActionSubmitQuote, builder.QuotePayload("15.00", 5), now))
		s.Require().NoError(s.repo.Update(ctx, loaded, loaded.Version()))

		mine, err := s.repo.ListForCustomer(ctx, customerID)
		s.Require().NoError(err)
		s.Len(mine, 2)

		assigned, err := s.repo.ListForProvider(ctx, provider.ID)
		s.Require().NoError(err)
		s.Require().Len(assigned, 1)
		s.Equal(quoted.ID(), assigned[0].ID())

		available, err := s.repo.ListAvailable(ctx, provider.ID)
		s.Require().NoError(err)
		s.Require().Len(available, 1)
		s.Equal(open.ID(), available[0].ID())

		// The customer's own requests never show up in their pool.
		available, err = s.repo.ListAvailable(ctx, customerID)
		s.Require().NoError(err)
		s.Empty(available)
	})
}
