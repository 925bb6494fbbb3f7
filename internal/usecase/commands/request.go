package commands

import (
	"context"
	"errors"
	"log/slog"

	"printmarket/internal/domain/request"
	"printmarket/internal/infra"
	"printmarket/internal/pkg/clock"
	"printmarket/internal/pkg/errs"
	"printmarket/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRequestParams struct {
	Material string
	Quality  string
	Quantity int
	Notes    *string
	Location *string
	Files    []FileParams
}

type FileParams struct {
	Name     string
	Size     int64
	MimeType string
}

type ActionParams struct {
	Action                string
	Amount                *decimal.Decimal
	EstimatedDeliveryDays *int
	Notes                 *string
}

// RequestCommands is the lifecycle service: the only mutation path for
// print requests. ApplyAction serializes concurrent actors per request
// through the repository's version guard.
type RequestCommands interface {
	CreateRequest(ctx context.Context, customerID uuid.UUID, params CreateRequestParams) (*queries.RequestView, error)
	ApplyAction(ctx context.Context, requestID uuid.UUID, actor request.Actor, params ActionParams) (*queries.RequestView, error)
}

type requestCommandsImpl struct {
	repo  RequestRepository
	hook  NotificationHook
	urls  queries.FileURLResolver
	clock clock.Clock
}

func NewRequestCommands(
	repo RequestRepository,
	hook NotificationHook,
	urls queries.FileURLResolver,
	clk clock.Clock,
) RequestCommands {
	return &requestCommandsImpl{
		repo:  repo,
		hook:  hook,
		urls:  urls,
		clock: clk,
	}
}

func (u *requestCommandsImpl) CreateRequest(ctx context.Context, customerID uuid.UUID, params CreateRequestParams) (*queries.RequestView, error) {
	spec := request.Specification{
		Material: params.Material,
		Quality:  request.Quality(params.Quality),
		Quantity: params.Quantity,
		Notes:    params.Notes,
		Location: params.Location,
	}
	files := make([]request.FileDescriptor, 0, len(params.Files))
	for _, f := range params.Files {
		files = append(files, request.FileDescriptor{
			Name:     f.Name,
			Size:     f.Size,
			MimeType: f.MimeType,
		})
	}

	req, err := request.NewPrintRequest(customerID, spec, files, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	if err := u.repo.Create(ctx, req); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.notify(ctx, TransitionEvent{
		RequestID: req.ID(),
		NewStatus: req.Status(),
		ActorID:   customerID,
	})

	return queries.NewRequestView(req, u.urls), nil
}

// ApplyAction runs load → transition lookup → guard → payload validation
// → persist with version CAS. A single conflict triggers one re-read and
// re-apply; a second collision surfaces Conflict.
func (u *requestCommandsImpl) ApplyAction(ctx context.Context, requestID uuid.UUID, actor request.Actor, params ActionParams) (*queries.RequestView, error) {
	action := request.Action(params.Action)
	if !action.IsValid() {
		return nil, errs.ErrValidation
	}
	payload := buildPayload(action, params)

	const maxAttempts = 2
	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := u.repo.FindByID(ctx, requestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, errs.ErrRequestNotFound)
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		oldStatus := req.Status()
		if err := req.ApplyAction(actor, action, payload, u.clock.Now()); err != nil {
			return nil, markDomainError(err)
		}

		if err := u.repo.Update(ctx, req, req.Version()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				if attempt+1 < maxAttempts {
					continue
				}
				return nil, errs.Mark(err, errs.ErrConflict)
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		u.notify(ctx, TransitionEvent{
			RequestID: req.ID(),
			OldStatus: oldStatus,
			NewStatus: req.Status(),
			ActorID:   actor.ID,
		})

		return queries.NewRequestView(req, u.urls), nil
	}

	return nil, errs.ErrConflict
}

func buildPayload(action request.Action, params ActionParams) request.ActionPayload {
	payload := request.ActionPayload{Notes: params.Notes}
	if action == request.ActionSubmitQuote && params.Amount != nil && params.EstimatedDeliveryDays != nil {
		payload.Quote = &request.QuotePayload{
			Amount:                *params.Amount,
			EstimatedDeliveryDays: *params.EstimatedDeliveryDays,
			Notes:                 params.Notes,
		}
	}
	return payload
}

func markDomainError(err error) error {
	switch {
	case errors.Is(err, request.ErrInvalidTransition):
		return errs.Mark(err, errs.ErrInvalidTransition)
	case errors.Is(err, request.ErrActorNotAllowed):
		return errs.Mark(err, errs.ErrForbidden)
	default:
		return errs.Mark(err, errs.ErrValidation)
	}
}

// notify is best-effort: a failed notification never undoes a persisted
// transition.
func (u *requestCommandsImpl) notify(ctx context.Context, event TransitionEvent) {
	if err := u.hook.Notify(ctx, event); err != nil {
		slog.Warn("notification hook failed",
			"request_id", event.RequestID,
			"new_status", event.NewStatus.String(),
			"error", err.Error())
	}
}
