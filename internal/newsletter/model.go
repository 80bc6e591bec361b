// Package newsletter manages mailing-list subscriptions.
package newsletter

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is one mailing-list entry. Unsubscribing flips IsActive instead
// of deleting the row, so a returning subscriber keeps their original id.
type Subscriber struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"isActive"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
