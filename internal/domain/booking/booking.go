package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/greet-marketplace/service-bookings/internal/domain/listing"
	"github.com/greet-marketplace/service-bookings/internal/domain/shared"
)

// Booking is the aggregate root for the booking domain. It tracks a creator's
// application to a business listing from pending through approval to
// completion, and enforces every lifecycle rule in its behavior methods.
type Booking struct {
	id         uuid.UUID
	listingID  uuid.UUID
	businessID uuid.UUID
	creatorID  uuid.UUID
	listing    listing.Listing

	status        BookingStatus
	confirmedSlot *string
	timeSlots     TimeSlots
	redeemed      bool

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking aggregate with status=pending for a
// creator applying to the given listing. Listings that require scheduling
// must come with at least one proposed time slot.
func NewBooking(creatorID uuid.UUID, lst listing.Listing, timeSlots TimeSlots) (*Booking, error) {
	if creatorID == uuid.Nil {
		return nil, shared.NewValidationError("creator ID is required")
	}
	if lst.ID == uuid.Nil {
		return nil, shared.NewValidationError("listing ID is required")
	}
	if lst.BusinessID == uuid.Nil {
		return nil, shared.NewValidationError("listing has no owning business")
	}
	if !lst.Active {
		return nil, shared.NewValidationError("listing is no longer active")
	}
	if !lst.RedeemAnytime && timeSlots.IsEmpty() {
		return nil, shared.NewValidationError("at least one proposed time slot is required for this listing")
	}

	now := time.Now().UTC()
	return &Booking{
		id:         uuid.New(),
		listingID:  lst.ID,
		businessID: lst.BusinessID,
		creatorID:  creatorID,
		listing:    lst,
		status:     StatusPending,
		timeSlots:  timeSlots,
		redeemed:   false,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	listingID uuid.UUID,
	businessID uuid.UUID,
	creatorID uuid.UUID,
	lst listing.Listing,
	status BookingStatus,
	confirmedSlot *string,
	timeSlots TimeSlots,
	redeemed bool,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		listingID:     listingID,
		businessID:    businessID,
		creatorID:     creatorID,
		listing:       lst,
		status:        status,
		confirmedSlot: confirmedSlot,
		timeSlots:     timeSlots,
		redeemed:      redeemed,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ListingID returns the listing this booking applies to.
func (b *Booking) ListingID() uuid.UUID { return b.listingID }

// BusinessID returns the business that owns the listing.
func (b *Booking) BusinessID() uuid.UUID { return b.businessID }

// CreatorID returns the creator who applied.
func (b *Booking) CreatorID() uuid.UUID { return b.creatorID }

// Listing returns the read-only listing snapshot this booking was loaded with.
func (b *Booking) Listing() listing.Listing { return b.listing }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// ConfirmedSlot returns the business-confirmed slot, or nil if none was set.
func (b *Booking) ConfirmedSlot() *string { return b.confirmedSlot }

// TimeSlots returns the creator's proposed time slots.
func (b *Booking) TimeSlots() TimeSlots { return b.timeSlots }

// Redeemed returns true once the creator has started their redemption window.
func (b *Booking) Redeemed() bool { return b.redeemed }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// Approve transitions the booking from pending to approved. Listings that
// require scheduling must be approved with a confirmed slot; redeem-anytime
// listings must not carry one.
func (b *Booking) Approve(confirmedSlot *string) error {
	if !b.status.CanTransitionTo(StatusApproved) {
		return shared.NewInvalidStateError(string(b.status), string(StatusApproved))
	}
	if b.listing.RedeemAnytime {
		if confirmedSlot != nil && *confirmedSlot != "" {
			return shared.NewValidationError("redeem-anytime listings do not take a confirmed slot")
		}
	} else {
		if confirmedSlot == nil || *confirmedSlot == "" {
			return shared.NewValidationError("a confirmed slot is required to approve this booking")
		}
		slot := *confirmedSlot
		b.confirmedSlot = &slot
	}
	b.status = StatusApproved
	b.updatedAt = time.Now().UTC()
	return nil
}

// Decline transitions a pending booking to unsuccessful (business rejects
// the application).
func (b *Booking) Decline() error {
	if b.status != StatusPending || !b.status.CanTransitionTo(StatusUnsuccessful) {
		return shared.NewInvalidStateError(string(b.status), string(StatusUnsuccessful))
	}
	b.status = StatusUnsuccessful
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions an approved booking to unsuccessful. The last confirmed
// slot and the redeemed flag are retained for record-keeping.
func (b *Booking) Cancel() error {
	if b.status != StatusApproved || !b.status.CanTransitionTo(StatusUnsuccessful) {
		return shared.NewInvalidStateError(string(b.status), string(StatusUnsuccessful))
	}
	b.status = StatusUnsuccessful
	b.updatedAt = time.Now().UTC()
	return nil
}

// Redeem marks the creator's redemption window as started. This is a flag
// flip, not a status transition: the booking must be approved, the listing
// must allow redeem-anytime, and the flag must not already be set.
func (b *Booking) Redeem() error {
	if b.status != StatusApproved {
		return shared.NewInvalidStateError(string(b.status), "redeemed")
	}
	if !b.listing.RedeemAnytime {
		return shared.NewValidationError("this listing cannot be redeemed anytime")
	}
	if b.redeemed {
		return shared.NewValidationError("booking is already redeemed")
	}
	b.redeemed = true
	b.updatedAt = time.Now().UTC()
	return nil
}

// Complete transitions the booking from approved to completed.
func (b *Booking) Complete() error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return shared.NewInvalidStateError(string(b.status), string(StatusCompleted))
	}
	b.status = StatusCompleted
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
