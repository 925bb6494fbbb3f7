package response

import (
	"time"

	"printmarket/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RequestResponse struct {
	ID         uuid.UUID         `json:"id"`
	CustomerID uuid.UUID         `json:"customerId"`
	ProviderID *uuid.UUID        `json:"providerId,omitempty"`
	Material   string            `json:"material"`
	Quality    string            `json:"quality"`
	Quantity   int               `json:"quantity"`
	Notes      *string           `json:"notes,omitempty"`
	Location   *string           `json:"location,omitempty"`
	Status     string            `json:"status"`
	Files      []FileResponse    `json:"files"`
	Quote      *QuoteResponse    `json:"quote,omitempty"`
	History    []HistoryResponse `json:"history"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

type FileResponse struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url"`
}

type QuoteResponse struct {
	Amount                decimal.Decimal `json:"amount"`
	EstimatedDeliveryDays int             `json:"estimatedDeliveryDays"`
	Notes                 *string         `json:"notes,omitempty"`
	SubmittedAt           time.Time       `json:"submittedAt"`
	ProviderID            uuid.UUID       `json:"providerId"`
}

type HistoryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   uuid.UUID `json:"actorId"`
	Notes     *string   `json:"notes,omitempty"`
}

type RequestListResponse struct {
	ID          uuid.UUID        `json:"id"`
	Material    string           `json:"material"`
	Quality     string           `json:"quality"`
	Quantity    int              `json:"quantity"`
	Status      string           `json:"status"`
	QuoteAmount *decimal.Decimal `json:"quoteAmount,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func FromRequestView(view *queries.RequestView) *RequestResponse {
	files := make([]FileResponse, 0, len(view.Files))
	for _, f := range view.Files {
		files = append(files, FileResponse{
			Name:     f.Name,
			Size:     f.Size,
			MimeType: f.MimeType,
			URL:      f.URL,
		})
	}

	history := make([]HistoryResponse, 0, len(view.History))
	for _, h := range view.History {
		history = append(history, HistoryResponse{
			Status:    h.Status,
			Timestamp: h.Timestamp,
			ActorID:   h.ActorID,
			Notes:     h.Notes,
		})
	}

	var quote *QuoteResponse
	if view.Quote != nil {
		quote = &QuoteResponse{
			Amount:                view.Quote.Amount,
			EstimatedDeliveryDays: view.Quote.EstimatedDeliveryDays,
			Notes:                 view.Quote.Notes,
			SubmittedAt:           view.Quote.SubmittedAt,
			ProviderID:            view.Quote.ProviderID,
		}
	}

	return &RequestResponse{
		ID:         view.ID,
		CustomerID: view.CustomerID,
		ProviderID: view.ProviderID,
		Material:   view.Material,
		Quality:    view.Quality,
		Quantity:   view.Quantity,
		Notes:      view.Notes,
		Location:   view.Location,
		Status:     view.Status,
		Files:      files,
		Quote:      quote,
		History:    history,
		CreatedAt:  view.CreatedAt,
		UpdatedAt:  view.UpdatedAt,
	}
}

func FromRequestListItem(item *queries.RequestListItem) *RequestListResponse {
	return &RequestListResponse{
		ID:          item.ID,
		Material:    item.Material,
		Quality:     item.Quality,
		Quantity:    item.Quantity,
		Status:      item.Status,
		QuoteAmount: item.QuoteAmount,
		CreatedAt:   item.CreatedAt,
	}
}
