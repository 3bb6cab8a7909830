package listing

import (
	"context"

	"github.com/google/uuid"
)

// ListingRepository defines the read-only lookup contract for listings.
type ListingRepository interface {
	// FindByID retrieves a listing by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
}
