package commands

import (
	"context"

	"printmarket/internal/domain/request"
	"printmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

// RequestRepository is the write-side persistence port. Update carries
// the optimistic-concurrency guard: it must fail with a conflict kind
// when the stored version differs from expectedVersion.
type RequestRepository interface {
	Create(ctx context.Context, req *request.PrintRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*request.PrintRequest, error)
	Update(ctx context.Context, req *request.PrintRequest, expectedVersion int64) error
}

// TransitionEvent is handed to the notification hook after a persisted
// transition.
type TransitionEvent struct {
	RequestID uuid.UUID
	OldStatus request.Status
	NewStatus request.Status
	ActorID   uuid.UUID
}

// NotificationHook is the side-effect port invoked on transitions
// (email, toast, push). Failures are logged and never roll back the
// transition.
type NotificationHook interface {
	Notify(ctx context.Context, event TransitionEvent) error
}

// UserRepository is the identity persistence port.
type UserRepository interface {
	Create(ctx context.Context, view queries.UserView, passwordHash string) error
	FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
