//go:build unit || e2e

package builder

import (
	"time"

	domrequest "printmarket/internal/domain/request"
	reqdto "printmarket/internal/handler/dto/request"
	"printmarket/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RequestBuilder struct {
	CustomerID uuid.UUID
	Material   string
	Quality    string
	Quantity   int
	Notes      *string
	Location   *string
	Files      []domrequest.FileDescriptor
	CreatedAt  time.Time
}

func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		CustomerID: uuid.New(),
		Material:   "PLA",
		Quality:    "standard",
		Quantity:   2,
		Files: []domrequest.FileDescriptor{
			{Name: "bracket.stl", Size: 20480, MimeType: "model/stl"},
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *RequestBuilder) BuildDomain() (*domrequest.PrintRequest, error) {
	return domrequest.NewPrintRequest(b.CustomerID, b.Spec(), b.Files, b.CreatedAt)
}

func (b *RequestBuilder) Spec() domrequest.Specification {
	return domrequest.Specification{
		Material: b.Material,
		Quality:  domrequest.Quality(b.Quality),
		Quantity: b.Quantity,
		Notes:    b.Notes,
		Location: b.Location,
	}
}

func (b *RequestBuilder) BuildCreateRequestDTO() reqdto.CreateRequestRequest {
	files := make([]reqdto.FileInput, 0, len(b.Files))
	for _, f := range b.Files {
		files = append(files, reqdto.FileInput{
			Name:     f.Name,
			Size:     f.Size,
			MimeType: f.MimeType,
		})
	}
	return reqdto.CreateRequestRequest{
		Material: b.Material,
		Quality:  b.Quality,
		Quantity: b.Quantity,
		Notes:    b.Notes,
		Location: b.Location,
		Files:    files,
	}
}

func (b *RequestBuilder) BuildView() *queries.RequestView {
	id := uuid.New()
	return &queries.RequestView{
		ID:         id,
		CustomerID: b.CustomerID,
		Material:   b.Material,
		Quality:    b.Quality,
		Quantity:   b.Quantity,
		Notes:      b.Notes,
		Location:   b.Location,
		Status:     domrequest.StatusRequested.String(),
		Files:      []queries.FileView{},
		History: []queries.HistoryEntryView{
			{Status: domrequest.StatusRequested.String(), Timestamp: b.CreatedAt, ActorID: b.CustomerID},
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

func (b *RequestBuilder) BuildListItem() *queries.RequestListItem {
	return &queries.RequestListItem{
		ID:        uuid.New(),
		Material:  b.Material,
		Quality:   b.Quality,
		Quantity:  b.Quantity,
		Status:    domrequest.StatusRequested.String(),
		CreatedAt: b.CreatedAt,
	}
}

// Fluent builder methods
func (b *RequestBuilder) WithCustomerID(id uuid.UUID) *RequestBuilder {
	b.CustomerID = id
	return b
}

func (b *RequestBuilder) WithMaterial(material string) *RequestBuilder {
	b.Material = material
	return b
}

func (b *RequestBuilder) WithQuality(quality string) *RequestBuilder {
	b.Quality = quality
	return b
}

func (b *RequestBuilder) WithQuantity(quantity int) *RequestBuilder {
	b.Quantity = quantity
	return b
}

func (b *RequestBuilder) WithNotes(notes string) *RequestBuilder {
	b.Notes = &notes
	return b
}

func (b *RequestBuilder) WithFiles(files ...domrequest.FileDescriptor) *RequestBuilder {
	b.Files = files
	return b
}

func (b *RequestBuilder) WithCreatedAt(createdAt time.Time) *RequestBuilder {
	b.CreatedAt = createdAt
	return b
}

// QuotePayload returns a valid quote payload for submit_quote tests.
func QuotePayload(amount string, days int) domrequest.ActionPayload {
	return domrequest.ActionPayload{
		Quote: &domrequest.QuotePayload{
			Amount:                decimal.RequireFromString(amount),
			EstimatedDeliveryDays: days,
		},
	}
}
