package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/greet-marketplace/service-bookings/internal/domain/booking"
)

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicContentEvents = "content.events"
)

// Booking event types, one per lifecycle transition.
const (
	BookingCreated   = "booking.created"
	BookingApproved  = "booking.approved"
	BookingDeclined  = "booking.declined"
	BookingCanceled  = "booking.canceled"
	BookingRedeemed  = "booking.redeemed"
	BookingCompleted = "booking.completed"
)

// Content event types consumed from the content service.
const (
	ContentCollabVerified = "content.collab.verified"
)

// BookingSnapshot is the booking state carried by every booking event.
type BookingSnapshot struct {
	BookingID     uuid.UUID         `json:"booking_id"`
	ListingID     uuid.UUID         `json:"listing_id"`
	BusinessID    uuid.UUID         `json:"business_id"`
	CreatorID     uuid.UUID         `json:"creator_id"`
	Status        string            `json:"status"`
	ConfirmedSlot *string           `json:"confirmed_slot,omitempty"`
	TimeSlots     booking.TimeSlots `json:"time_slots,omitempty"`
	Redeemed      bool              `json:"redeemed"`
}

// NewBookingSnapshot captures the current state of a booking aggregate.
func NewBookingSnapshot(bk *booking.Booking) BookingSnapshot {
	return BookingSnapshot{
		BookingID:     bk.ID(),
		ListingID:     bk.ListingID(),
		BusinessID:    bk.BusinessID(),
		CreatorID:     bk.CreatorID(),
		Status:        string(bk.Status()),
		ConfirmedSlot: bk.ConfirmedSlot(),
		TimeSlots:     bk.TimeSlots(),
		Redeemed:      bk.Redeemed(),
	}
}

// BookingCreatedEvent is emitted when a creator applies to a listing.
type BookingCreatedEvent struct {
	Booking    BookingSnapshot `json:"booking"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// BookingApprovedEvent is emitted when a business approves a pending booking.
type BookingApprovedEvent struct {
	Booking    BookingSnapshot `json:"booking"`
	ApprovedBy uuid.UUID       `json:"approved_by"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// BookingDeclinedEvent is emitted when a business declines a pending booking.
type BookingDeclinedEvent struct {
	Booking    BookingSnapshot `json:"booking"`
	DeclinedBy uuid.UUID       `json:"declined_by"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// BookingCanceledEvent is emitted when an approved booking is canceled,
// whether by the business, the creator, or an admin.
type BookingCanceledEvent struct {
	Booking    BookingSnapshot `json:"booking"`
	CanceledBy uuid.UUID       `json:"canceled_by"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// BookingRedeemedEvent is emitted when a creator starts their redemption window.
type BookingRedeemedEvent struct {
	Booking    BookingSnapshot `json:"booking"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// BookingCompletedEvent is emitted when an approved booking is completed.
type BookingCompletedEvent struct {
	Booking    BookingSnapshot `json:"booking"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// CollabVerifiedEvent is published by the content service once a creator's
// posted collaboration content has been verified.
type CollabVerifiedEvent struct {
	ContentID    uuid.UUID `json:"content_id"`
	BookingID    uuid.UUID `json:"booking_id"`
	CreatorID    uuid.UUID `json:"creator_id"`
	PermalinkURL string    `json:"permalink_url,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
