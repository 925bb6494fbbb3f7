package queries

import (
	"context"

	"printmarket/internal/domain/request"
	"printmarket/internal/infra"
	"printmarket/internal/pkg/errs"

	"github.com/google/uuid"
)

type RequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*request.PrintRequest, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*request.PrintRequest, error)
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*request.PrintRequest, error)
	ListAvailable(ctx context.Context, excludeCustomerID uuid.UUID) ([]*request.PrintRequest, error)
}

// ListFilter narrows a role-scoped listing; nil fields are ignored.
type ListFilter struct {
	Material *string
	Status   *request.Status
}

type RequestQueries interface {
	GetByID(ctx context.Context, actor request.Actor, id uuid.UUID) (*RequestView, error)
	ListMine(ctx context.Context, customerID uuid.UUID, filter ListFilter) ([]*RequestListItem, error)
	ListAssigned(ctx context.Context, providerID uuid.UUID, filter ListFilter) ([]*RequestListItem, error)
	ListAvailable(ctx context.Context, actorID uuid.UUID, filter ListFilter) ([]*RequestListItem, error)
}

type requestQueriesImpl struct {
	store RequestReadStore
	urls  FileURLResolver
}

func NewRequestQueries(store RequestReadStore, urls FileURLResolver) RequestQueries {
	return &requestQueriesImpl{store: store, urls: urls}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, actor request.Actor, id uuid.UUID) (*RequestView, error) {
	req, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Hidden requests are reported as absent rather than forbidden.
	if !req.IsVisibleTo(actor) {
		return nil, errs.ErrRequestNotFound
	}

	return NewRequestView(req, q.urls), nil
}

func (q *requestQueriesImpl) ListMine(ctx context.Context, customerID uuid.UUID, filter ListFilter) ([]*RequestListItem, error) {
	requests, err := q.store.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return toListItems(applyFilter(requests, filter)), nil
}

func (q *requestQueriesImpl) ListAssigned(ctx context.Context, providerID uuid.UUID, filter ListFilter) ([]*RequestListItem, error) {
	requests, err := q.store.ListForProvider(ctx, providerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return toListItems(applyFilter(requests, filter)), nil
}

func (q *requestQueriesImpl) ListAvailable(ctx context.Context, actorID uuid.UUID, filter ListFilter) ([]*RequestListItem, error) {
	requests, err := q.store.ListAvailable(ctx, actorID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return toListItems(applyFilter(requests, filter)), nil
}

func applyFilter(requests []*request.PrintRequest, filter ListFilter) []*request.PrintRequest {
	result := requests
	if filter.Material != nil {
		result = FilterByMaterial(result, *filter.Material)
	}
	if filter.Status != nil {
		result = FilterByStatus(result, *filter.Status)
	}
	return SortByCreatedAtDesc(result)
}

func toListItems(requests []*request.PrintRequest) []*RequestListItem {
	items := make([]*RequestListItem, 0, len(requests))
	for _, r := range requests {
		items = append(items, NewRequestListItem(r))
	}
	return items
}
