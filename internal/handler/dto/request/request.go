package request

import (
	"printmarket/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type CreateRequestRequest struct {
	Material string      `json:"material" binding:"required"`
	Quality  string      `json:"quality" binding:"required,oneof=draft standard high"`
	Quantity int         `json:"quantity" binding:"required,min=1"`
	Notes    *string     `json:"notes,omitempty"`
	Location *string     `json:"location,omitempty"`
	Files    []FileInput `json:"files" binding:"omitempty,dive"`
}

type FileInput struct {
	Name     string `json:"name" binding:"required"`
	Size     int64  `json:"size" binding:"required,min=0"`
	MimeType string `json:"mime_type" binding:"required"`
}

func (r CreateRequestRequest) ToParams() commands.CreateRequestParams {
	files := make([]commands.FileParams, 0, len(r.Files))
	for _, f := range r.Files {
		files = append(files, commands.FileParams{
			Name:     f.Name,
			Size:     f.Size,
			MimeType: f.MimeType,
		})
	}
	return commands.CreateRequestParams{
		Material: r.Material,
		Quality:  r.Quality,
		Quantity: r.Quantity,
		Notes:    r.Notes,
		Location: r.Location,
		Files:    files,
	}
}

type RequestActionRequest struct {
	Action  string         `json:"action" binding:"required,oneof=submit_quote accept_quote reject start_print complete"`
	Payload *ActionPayload `json:"payload,omitempty"`
}

type ActionPayload struct {
	Amount                *decimal.Decimal `json:"amount,omitempty"`
	EstimatedDeliveryDays *int             `json:"estimated_delivery_days,omitempty" binding:"omitempty,min=0"`
	Notes                 *string          `json:"notes,omitempty"`
}

func (r RequestActionRequest) ToParams() commands.ActionParams {
	params := commands.ActionParams{Action: r.Action}
	if r.Payload != nil {
		params.Amount = r.Payload.Amount
		params.EstimatedDeliveryDays = r.Payload.EstimatedDeliveryDays
		params.Notes = r.Payload.Notes
	}
	return params
}
