// Package quotations implements the quotation lifecycle: intake validation,
// pricing, sequence-numbered persistence and lookups.
package quotations

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a quotation. Transitions are free-form;
// any status may move to any other via the status-update operation. Expiry is
// never applied automatically.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// ValidStatus reports whether s is one of the five allowed values.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// ClientDetails identifies the requesting client. FullName and Email are
// required; everything else is free text.
type ClientDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Company  string `json:"company,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// ServiceItem is one priced line item. Insertion order is the display order.
type ServiceItem struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}

// Quotation is the persisted record. Number, Series, the monetary fields,
// ExpiryDate and CreatedAt are immutable once created; only Status and Notes
// may change afterwards.
type Quotation struct {
	ID                 uuid.UUID     `json:"id"`
	Number             string        `json:"quotationNumber"`
	Series             int64         `json:"series"`
	ClientDetails      ClientDetails `json:"clientDetails"`
	Services           []ServiceItem     `json:"services"`
	Subtotal           float64       `json:"subtotal"`
	DiscountPercentage int           `json:"discountPercentage"`
	Discount           float64       `json:"discount"`
	Total              float64       `json:"total"`
	ValidityDays       int           `json:"validityDays"`
	ExpiryDate         time.Time     `json:"expiryDate"`
	Status             Status        `json:"status"`
	Notes              string        `json:"notes,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
}
