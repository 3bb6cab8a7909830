package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier, hydrated with
	// its listing snapshot.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindDetailByID retrieves a booking joined with its business and the
	// creator's profile.
	FindDetailByID(ctx context.Context, id uuid.UUID) (*BookingDetail, error)

	// FindByCreatorID retrieves bookings created by a specific creator with pagination.
	FindByCreatorID(ctx context.Context, creatorID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindByBusinessID retrieves bookings against a specific business's listings with pagination.
	FindByBusinessID(ctx context.Context, businessID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	// The write only lands if the row still carries the version the booking
	// was loaded with; otherwise a conflict error is returned.
	Update(ctx context.Context, booking *Booking) error
}
