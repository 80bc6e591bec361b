package quotations

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ClientDetailsInput mirrors the intake payload. ValidityDays rides along with
// the client block the way the public API has always accepted it.
type ClientDetailsInput struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Company      string `json:"company"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ValidityDays int    `json:"validityDays" validate:"gte=0"`
}

// ServiceInput is one requested line item. Price is deliberately loose: a
// missing or non-numeric value is coerced to zero during normalization
// instead of rejecting the request.
type ServiceInput struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Price    any    `json:"price"`
	Category string `json:"category"`
}

// CreateQuotationRequest is the intake body for a new quotation.
type CreateQuotationRequest struct {
	ClientDetails ClientDetailsInput `json:"clientDetails" validate:"required"`
	Services      []ServiceInput     `json:"services" validate:"required,min=1,dive"`
}

// UpdateStatusRequest changes the lifecycle status of a quotation.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// Normalize trims client fields and default-fills line items so the pricing
// computation downstream stays pure. Missing validity falls back to 30 days.
func (r CreateQuotationRequest) Normalize() (ClientDetails, []ServiceItem, int) {
	details := ClientDetails{
		FullName: strings.TrimSpace(r.ClientDetails.FullName),
		Email:    strings.TrimSpace(r.ClientDetails.Email),
		Company:  strings.TrimSpace(r.ClientDetails.Company),
		Phone:    strings.TrimSpace(r.ClientDetails.Phone),
		Address:  strings.TrimSpace(r.ClientDetails.Address),
	}

	services := make([]ServiceItem, 0, len(r.Services))
	for _, in := range r.Services {
		services = append(services, ServiceItem{
			ID:       in.ID,
			Name:     strings.TrimSpace(in.Name),
			Price:    coercePrice(in.Price),
			Category: in.Category,
		})
	}

	validity := r.ClientDetails.ValidityDays
	if validity <= 0 {
		validity = defaultValidityDays
	}
	return details, services, validity
}

// defaultValidityDays applies when the caller does not override it.
const defaultValidityDays = 30

// coercePrice mirrors the long-standing behavior of the intake endpoint:
// anything that does not parse as a number counts as zero.
func coercePrice(v any) float64 {
	switch p := v.(type) {
	case float64:
		return p
	case int:
		return float64(p)
	case int64:
		return float64(p)
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
