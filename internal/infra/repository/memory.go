package repository

import (
	"context"
	"sort"
	"sync"

	"printmarket/internal/domain/request"
	"printmarket/internal/infra"

	"github.com/google/uuid"
)

// MemoryRequestRepository is a mutex-guarded in-memory adapter with the
// same version semantics as the Postgres one. It backs the unit suite
// and local development without a database.
type MemoryRequestRepository struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*request.PrintRequest
}

func NewMemoryRequestRepository() *MemoryRequestRepository {
	return &MemoryRequestRepository{
		requests: make(map[uuid.UUID]*request.PrintRequest),
	}
}

func (r *MemoryRequestRepository) Create(_ context.Context, req *request.PrintRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[req.ID()]; ok {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "print request already exists", nil)
	}
	r.requests[req.ID()] = clone(req, req.Version())
	return nil
}

func (r *MemoryRequestRepository) FindByID(_ context.Context, id uuid.UUID) (*request.PrintRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "print request not found", nil)
	}
	return clone(stored, stored.Version()), nil
}

func (r *MemoryRequestRepository) Update(_ context.Context, req *request.PrintRequest, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[req.ID()]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "print request not found", nil)
	}
	if stored.Version() != expectedVersion {
		return infra.WrapRepoErr(infra.KindConflict, "print request version mismatch", nil)
	}
	r.requests[req.ID()] = clone(req, expectedVersion+1)
	return nil
}

func (r *MemoryRequestRepository) ListForCustomer(_ context.Context, customerID uuid.UUID) ([]*request.PrintRequest, error) {
	return r.list(func(req *request.PrintRequest) bool {
		return req.CustomerID() == customerID
	}), nil
}

func (r *MemoryRequestRepository) ListForProvider(_ context.Context, providerID uuid.UUID) ([]*request.PrintRequest, error) {
	return r.list(func(req *request.PrintRequest) bool {
		p := req.ProviderID()
		return p != nil && *p == providerID
	}), nil
}

func (r *MemoryRequestRepository) ListAvailable(_ context.Context, excludeCustomerID uuid.UUID) ([]*request.PrintRequest, error) {
	return r.list(func(req *request.PrintRequest) bool {
		return req.Status() == request.StatusRequested &&
			req.ProviderID() == nil &&
			req.CustomerID() != excludeCustomerID
	}), nil
}

func (r *MemoryRequestRepository) list(match func(*request.PrintRequest) bool) []*request.PrintRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*request.PrintRequest
	for _, stored := range r.requests {
		if match(stored) {
			result = append(result, clone(stored, stored.Version()))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result
}

func clone(req *request.PrintRequest, version int64) *request.PrintRequest {
	return request.ReconstructPrintRequest(
		req.ID(),
		req.CustomerID(),
		req.ProviderID(),
		req.Files(),
		req.Spec(),
		req.Status(),
		req.Quote(),
		req.History(),
		req.CreatedAt(),
		req.UpdatedAt(),
		version,
	)
}
