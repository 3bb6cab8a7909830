package listing

import (
	"time"

	"github.com/google/uuid"
)

// Listing is the read-only view of a deal offered by a business.
// Bookings consume it to decide whether redemption is slot-based or
// redeem-anytime; this service never mutates listings.
type Listing struct {
	ID            uuid.UUID `json:"id"`
	BusinessID    uuid.UUID `json:"business_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	RedeemAnytime bool      `json:"redeem_anytime"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}
