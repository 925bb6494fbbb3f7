package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActorID is an opaque reference into external identity records.
type ActorID = uuid.UUID

// Quality is the requested print quality tier.
type Quality string

const (
	QualityDraft    Quality = "draft"
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
)

func (q Quality) String() string {
	return string(q)
}

func (q Quality) IsValid() bool {
	switch q {
	case QualityDraft, QualityStandard, QualityHigh:
		return true
	default:
		return false
	}
}

// Specification describes what the customer wants printed.
type Specification struct {
	Material string
	Quality  Quality
	Quantity int
	Notes    *string
	Location *string
}

func (s Specification) Validate() error {
	if strings.TrimSpace(s.Material) == "" {
		return ErrInvalidSpecification
	}
	if !s.Quality.IsValid() {
		return ErrInvalidSpecification
	}
	if s.Quantity < 1 {
		return ErrInvalidSpecification
	}
	return nil
}

// FileDescriptor is metadata for a model file; the bytes live in
// external object storage.
type FileDescriptor struct {
	Name     string
	Size     int64
	MimeType string
}

func (f FileDescriptor) Validate() error {
	if strings.TrimSpace(f.Name) == "" || f.Size < 0 {
		return ErrInvalidSpecification
	}
	return nil
}

// Quote is a provider's price and delivery offer.
type Quote struct {
	Amount                decimal.Decimal
	EstimatedDeliveryDays int
	Notes                 *string
	SubmittedAt           time.Time
	ProviderID            ActorID
}

// QuotePayload carries the caller-supplied part of a quote.
type QuotePayload struct {
	Amount                decimal.Decimal
	EstimatedDeliveryDays int
	Notes                 *string
}

func (p QuotePayload) Validate() error {
	if p.Amount.IsNegative() {
		return ErrInvalidQuote
	}
	if p.EstimatedDeliveryDays < 0 {
		return ErrInvalidQuote
	}
	return nil
}

// ActionPayload is the optional body of an ApplyAction call. Quote is
// required for submit_quote and ignored elsewhere; Notes lands in the
// history entry.
type ActionPayload struct {
	Quote *QuotePayload
	Notes *string
}

// HistoryEntry is one element of the append-only status history.
type HistoryEntry struct {
	Status    Status
	Timestamp time.Time
	ActorID   ActorID
	Notes     *string
}
