package queries

import (
	"time"

	"printmarket/internal/domain/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type RequestView struct {
	ID         uuid.UUID          `json:"id"`
	CustomerID uuid.UUID          `json:"customer_id"`
	ProviderID *uuid.UUID         `json:"provider_id,omitempty"`
	Material   string             `json:"material"`
	Quality    string             `json:"quality"`
	Quantity   int                `json:"quantity"`
	Notes      *string            `json:"notes,omitempty"`
	Location   *string            `json:"location,omitempty"`
	Status     string             `json:"status"`
	Files      []FileView         `json:"files"`
	Quote      *QuoteView         `json:"quote,omitempty"`
	History    []HistoryEntryView `json:"history"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type FileView struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
}

type QuoteView struct {
	Amount                decimal.Decimal `json:"amount"`
	EstimatedDeliveryDays int             `json:"estimated_delivery_days"`
	Notes                 *string         `json:"notes,omitempty"`
	SubmittedAt           time.Time       `json:"submitted_at"`
	ProviderID            uuid.UUID       `json:"provider_id"`
}

type HistoryEntryView struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   uuid.UUID `json:"actor_id"`
	Notes     *string   `json:"notes,omitempty"`
}

type RequestListItem struct {
	ID          uuid.UUID        `json:"id"`
	Material    string           `json:"material"`
	Quality     string           `json:"quality"`
	Quantity    int              `json:"quantity"`
	Status      string           `json:"status"`
	QuoteAmount *decimal.Decimal `json:"quote_amount,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type UserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// FileURLResolver is the object storage adapter: it maps stored file
// metadata to retrievable URLs.
type FileURLResolver interface {
	ResolveFileURL(requestID uuid.UUID, name string) string
}

// NewRequestView builds the detail read model from the aggregate.
func NewRequestView(req *request.PrintRequest, urls FileURLResolver) *RequestView {
	files := req.Files()
	fileViews := make([]FileView, 0, len(files))
	for _, f := range files {
		fileViews = append(fileViews, FileView{
			Name:     f.Name,
			Size:     f.Size,
			MimeType: f.MimeType,
			URL:      urls.ResolveFileURL(req.ID(), f.Name),
		})
	}

	history := req.History()
	historyViews := make([]HistoryEntryView, 0, len(history))
	for _, h := range history {
		historyViews = append(historyViews, HistoryEntryView{
			Status:    h.Status.String(),
			Timestamp: h.Timestamp,
			ActorID:   h.ActorID,
			Notes:     h.Notes,
		})
	}

	var quote *QuoteView
	if q := req.Quote(); q != nil {
		quote = &QuoteView{
			Amount:                q.Amount,
			EstimatedDeliveryDays: q.EstimatedDeliveryDays,
			Notes:                 q.Notes,
			SubmittedAt:           q.SubmittedAt,
			ProviderID:            q.ProviderID,
		}
	}

	spec := req.Spec()
	return &RequestView{
		ID:         req.ID(),
		CustomerID: req.CustomerID(),
		ProviderID: req.ProviderID(),
		Material:   spec.Material,
		Quality:    spec.Quality.String(),
		Quantity:   spec.Quantity,
		Notes:      spec.Notes,
		Location:   spec.Location,
		Status:     req.Status().String(),
		Files:      fileViews,
		Quote:      quote,
		History:    historyViews,
		CreatedAt:  req.CreatedAt(),
		UpdatedAt:  req.UpdatedAt(),
	}
}

// NewRequestListItem builds the list read model from the aggregate.
func NewRequestListItem(req *request.PrintRequest) *RequestListItem {
	item := &RequestListItem{
		ID:        req.ID(),
		Material:  req.Spec().Material,
		Quality:   req.Spec().Quality.String(),
		Quantity:  req.Spec().Quantity,
		Status:    req.Status().String(),
		CreatedAt: req.CreatedAt(),
	}
	if q := req.Quote(); q != nil {
		amount := q.Amount
		item.QuoteAmount = &amount
	}
	return item
}
