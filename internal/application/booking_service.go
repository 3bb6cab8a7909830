package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/greet-marketplace/service-bookings/internal/domain/booking"
	listingDomain "github.com/greet-marketplace/service-bookings/internal/domain/listing"
	"github.com/greet-marketplace/service-bookings/internal/domain/shared"
	"github.com/greet-marketplace/service-bookings/internal/notifier"
)

// CreateBookingRequest holds the data needed for a creator to apply to a listing.
type CreateBookingRequest struct {
	ListingID uuid.UUID               `json:"listing_id" binding:"required"`
	TimeSlots bookingDomain.TimeSlots `json:"time_slots"`
}

// UpdateBookingRequest is the partial-update payload for booking mutations.
// Every field is a pointer so "absent" and "explicitly set" are
// distinguishable; an absent field means "no change".
type UpdateBookingRequest struct {
	Status   *string `json:"status"`
	Slot     *string `json:"slot"`
	Redeemed *bool   `json:"redeemed"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID            uuid.UUID                      `json:"id"`
	ListingID     uuid.UUID                      `json:"listing_id"`
	BusinessID    uuid.UUID                      `json:"business_id"`
	CreatorID     uuid.UUID                      `json:"creator_id"`
	Status        string                         `json:"status"`
	ConfirmedSlot *string                        `json:"confirmed_slot,omitempty"`
	TimeSlots     bookingDomain.TimeSlots        `json:"time_slots,omitempty"`
	Redeemed      bool                           `json:"redeemed"`
	Listing       listingDomain.Listing          `json:"listing"`
	Business      *bookingDomain.BusinessSummary `json:"business,omitempty"`
	Creator       *bookingDomain.CreatorSummary  `json:"creator,omitempty"`
	Version       int64                          `json:"version"`
	CreatedAt     time.Time                      `json:"created_at"`
	UpdatedAt     time.Time                      `json:"updated_at"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo     bookingDomain.BookingRepository
	listings listingDomain.ListingRepository
	notifier notifier.Notifier
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	listings listingDomain.ListingRepository,
	n notifier.Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		listings: listings,
		notifier: n,
		logger:   logger,
	}
}

// CreateBooking creates a pending booking for a creator applying to a listing.
func (s *BookingService) CreateBooking(ctx context.Context, actor Actor, req CreateBookingRequest) (*BookingDTO, error) {
	lst, err := s.listings.FindByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(actor.UserID, *lst, req.TimeSlots)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.notifier.BookingCreated(ctx, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// UpdateBooking applies a partial-update payload against the booking
// lifecycle: redeem, approve, decline, cancel, or complete, depending on the
// payload and the booking's prior status. Invalid combinations are rejected
// before any write.
func (s *BookingService) UpdateBooking(ctx context.Context, actor Actor, bookingID uuid.UUID, req UpdateBookingRequest) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.MayAccess(bk) {
		return nil, shared.NewForbiddenError("you are not a party to this booking")
	}

	priorStatus := bk.Status()

	notify, err := s.applyUpdate(actor, bk, req)
	if err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	notify(ctx, bk)

	s.logger.Info("booking updated",
		zap.String("booking_id", bk.ID().String()),
		zap.String("prior_status", string(priorStatus)),
		zap.String("status", string(bk.Status())),
		zap.Bool("redeemed", bk.Redeemed()),
	)

	return s.detailDTO(ctx, bk.ID())
}

// applyUpdate validates the payload against the transition table, mutates
// the aggregate, and returns the notification to fire after the write lands.
func (s *BookingService) applyUpdate(actor Actor, bk *bookingDomain.Booking, req UpdateBookingRequest) (func(context.Context, *bookingDomain.Booking), error) {
	switch {
	case req.Redeemed != nil:
		if req.Status != nil {
			return nil, shared.NewValidationError("redeemed cannot be combined with a status change")
		}
		if !*req.Redeemed {
			return nil, shared.NewValidationError("redeemed can only be set to true")
		}
		if !actor.IsAdmin() && !actor.IsBookingCreator(bk) {
			return nil, shared.NewForbiddenError("only the booking's creator can redeem it")
		}
		if err := bk.Redeem(); err != nil {
			return nil, err
		}
		return s.notifier.BookingRedeemed, nil

	case req.Status != nil:
		target, err := bookingDomain.ParseBookingStatus(*req.Status)
		if err != nil {
			return nil, shared.NewValidationError("unknown status")
		}
		return s.applyStatusChange(actor, bk, target, req.Slot)

	default:
		return nil, shared.NewValidationError("no changes requested")
	}
}

func (s *BookingService) applyStatusChange(actor Actor, bk *bookingDomain.Booking, target bookingDomain.BookingStatus, slot *string) (func(context.Context, *bookingDomain.Booking), error) {
	switch target {
	case bookingDomain.StatusApproved:
		if !actor.IsAdmin() && !actor.IsBookingBusiness(bk) {
			return nil, shared.NewForbiddenError("only the business can approve a booking")
		}
		if err := bk.Approve(slot); err != nil {
			return nil, err
		}
		approvedBy := actor.UserID
		return func(ctx context.Context, b *bookingDomain.Booking) {
			s.notifier.BookingApproved(ctx, b, approvedBy)
		}, nil

	case bookingDomain.StatusUnsuccessful:
		// The prior status picks both the legality check and the event:
		// declining a pending application vs canceling an approved booking.
		switch bk.Status() {
		case bookingDomain.StatusPending:
			if !actor.IsAdmin() && !actor.IsBookingBusiness(bk) {
				return nil, shared.NewForbiddenError("only the business can decline a pending booking")
			}
			if err := bk.Decline(); err != nil {
				return nil, err
			}
			declinedBy := actor.UserID
			return func(ctx context.Context, b *bookingDomain.Booking) {
				s.notifier.BookingDeclined(ctx, b, declinedBy)
			}, nil
		case bookingDomain.StatusApproved:
			// Business, admin, and the owning creator may all cancel.
			if err := bk.Cancel(); err != nil {
				return nil, err
			}
			canceledBy := actor.UserID
			return func(ctx context.Context, b *bookingDomain.Booking) {
				s.notifier.BookingCanceled(ctx, b, canceledBy)
			}, nil
		default:
			return nil, shared.NewInvalidStateError(string(bk.Status()), string(target))
		}

	case bookingDomain.StatusCompleted:
		if !actor.IsAdmin() && !actor.IsBookingBusiness(bk) {
			return nil, shared.NewForbiddenError("only the business can complete a booking")
		}
		if err := bk.Complete(); err != nil {
			return nil, err
		}
		return s.notifier.BookingCompleted, nil

	default:
		// No transition targets pending; re-sending the current status is
		// rejected the same way.
		return nil, shared.NewInvalidStateError(string(bk.Status()), string(target))
	}
}

// CompleteFromContent completes an approved booking on behalf of the content
// service once collaboration content has been verified.
func (s *BookingService) CompleteFromContent(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Complete(); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.notifier.BookingCompleted(ctx, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single hydrated booking, visible only to its parties.
func (s *BookingService) GetBooking(ctx context.Context, actor Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.MayAccess(bk) {
		return nil, shared.NewForbiddenError("you are not a party to this booking")
	}
	return s.detailDTO(ctx, bookingID)
}

// GetCreatorBookings retrieves paginated bookings for a specific creator.
func (s *BookingService) GetCreatorBookings(ctx context.Context, creatorID uuid.UUID, page, limit int) (*shared.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByCreatorID(ctx, creatorID, page, limit)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetBusinessBookings retrieves paginated bookings against a business's listings.
func (s *BookingService) GetBusinessBookings(ctx context.Context, businessID uuid.UUID, page, limit int) (*shared.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByBusinessID(ctx, businessID, page, limit)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

func (s *BookingService) detailDTO(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	detail, err := s.repo.FindDetailByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(detail.Booking)
	business := detail.Business
	creator := detail.Creator
	dto.Business = &business
	dto.Creator = &creator
	return &dto, nil
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:            bk.ID(),
		ListingID:     bk.ListingID(),
		BusinessID:    bk.BusinessID(),
		CreatorID:     bk.CreatorID(),
		Status:        string(bk.Status()),
		ConfirmedSlot: bk.ConfirmedSlot(),
		TimeSlots:     bk.TimeSlots(),
		Redeemed:      bk.Redeemed(),
		Listing:       bk.Listing(),
		Version:       bk.Version(),
		CreatedAt:     bk.CreatedAt(),
		UpdatedAt:     bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
