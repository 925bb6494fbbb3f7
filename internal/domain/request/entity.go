package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition    = errors.New("action is not legal for the current status")
	ErrActorNotAllowed      = errors.New("actor fails the transition guard")
	ErrInvalidQuote         = errors.New("invalid quote payload")
	ErrQuoteRequired        = errors.New("quote payload required")
	ErrInvalidSpecification = errors.New("invalid specification")
)

// PrintRequest is the marketplace aggregate. It is mutated only through
// ApplyAction; direct field writes do not exist outside this package.
type PrintRequest struct {
	id         uuid.UUID
	customerID ActorID
	providerID *ActorID
	files      []FileDescriptor
	spec       Specification
	status     Status
	quote      *Quote
	history    []HistoryEntry
	createdAt  time.Time
	updatedAt  time.Time
	version    int64
}

// NewPrintRequest creates a request in the requested status with the
// creation event already recorded in the history.
func NewPrintRequest(customerID ActorID, spec Specification, files []FileDescriptor, now time.Time) (*PrintRequest, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}

	return &PrintRequest{
		id:         uuid.New(),
		customerID: customerID,
		files:      append([]FileDescriptor(nil), files...),
		spec:       spec,
		status:     StatusRequested,
		history: []HistoryEntry{{
			Status:    StatusRequested,
			Timestamp: now,
			ActorID:   customerID,
			Notes:     spec.Notes,
		}},
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// ReconstructPrintRequest rebuilds an aggregate from persisted state.
func ReconstructPrintRequest(
	id uuid.UUID,
	customerID ActorID,
	providerID *ActorID,
	files []FileDescriptor,
	spec Specification,
	status Status,
	quote *Quote,
	history []HistoryEntry,
	createdAt, updatedAt time.Time,
	version int64,
) *PrintRequest {
	return &PrintRequest{
		id:         id,
		customerID: customerID,
		providerID: providerID,
		files:      files,
		spec:       spec,
		status:     status,
		quote:      quote,
		history:    history,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		version:    version,
	}
}

// ApplyAction runs one step of the state machine. On any error the
// aggregate is left untouched.
func (r *PrintRequest) ApplyAction(actor Actor, action Action, payload ActionPayload, now time.Time) error {
	t, ok := transitions[r.status][action]
	if !ok {
		return ErrInvalidTransition
	}
	if !t.guard(r, actor) {
		return ErrActorNotAllowed
	}

	if action == ActionSubmitQuote {
		if payload.Quote == nil {
			return ErrQuoteRequired
		}
		if err := payload.Quote.Validate(); err != nil {
			return err
		}
		providerID := actor.ID
		r.providerID = &providerID
		r.quote = &Quote{
			Amount:                payload.Quote.Amount,
			EstimatedDeliveryDays: payload.Quote.EstimatedDeliveryDays,
			Notes:                 payload.Quote.Notes,
			SubmittedAt:           now,
			ProviderID:            providerID,
		}
	}

	r.status = t.next
	r.history = append(r.history, HistoryEntry{
		Status:    t.next,
		Timestamp: now,
		ActorID:   actor.ID,
		Notes:     payload.Notes,
	})
	r.updatedAt = now
	return nil
}

func (r *PrintRequest) isAssignedTo(actorID ActorID) bool {
	return r.providerID != nil && *r.providerID == actorID
}

// IsVisibleTo reports whether an actor may read this request: the owning
// customer, the assigned provider, or any provider while the request is
// still in the unassigned pool.
func (r *PrintRequest) IsVisibleTo(actor Actor) bool {
	if actor.ID == r.customerID || r.isAssignedTo(actor.ID) {
		return true
	}
	return actor.Provider && r.status == StatusRequested && r.providerID == nil
}

func (r *PrintRequest) ID() uuid.UUID        { return r.id }
func (r *PrintRequest) CustomerID() ActorID  { return r.customerID }
func (r *PrintRequest) Spec() Specification  { return r.spec }
func (r *PrintRequest) Status() Status       { return r.status }
func (r *PrintRequest) CreatedAt() time.Time { return r.createdAt }
func (r *PrintRequest) UpdatedAt() time.Time { return r.updatedAt }
func (r *PrintRequest) Version() int64       { return r.version }

func (r *PrintRequest) ProviderID() *ActorID {
	if r.providerID == nil {
		return nil
	}
	id := *r.providerID
	return &id
}

func (r *PrintRequest) Quote() *Quote {
	if r.quote == nil {
		return nil
	}
	q := *r.quote
	return &q
}

func (r *PrintRequest) Files() []FileDescriptor {
	return append([]FileDescriptor(nil), r.files...)
}

func (r *PrintRequest) History() []HistoryEntry {
	return append([]HistoryEntry(nil), r.history...)
}
