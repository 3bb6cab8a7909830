package booking

import "github.com/google/uuid"

// BusinessSummary is the slice of the owning business joined into a
// hydrated booking read.
type BusinessSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	City  string    `json:"city,omitempty"`
	State string    `json:"state,omitempty"`
}

// CreatorSummary is the slice of the applying creator, including their
// linked social profile, joined into a hydrated booking read.
type CreatorSummary struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	InstagramHandle string    `json:"instagram_handle,omitempty"`
}

// BookingDetail is the fully-hydrated booking read model returned to callers
// after every successful mutation.
type BookingDetail struct {
	Booking  *Booking
	Business BusinessSummary
	Creator  CreatorSummary
}
