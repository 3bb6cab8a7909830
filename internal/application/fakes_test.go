package application_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	bookingDomain "github.com/greet-marketplace/service-bookings/internal/domain/booking"
	listingDomain "github.com/greet-marketplace/service-bookings/internal/domain/listing"
	"github.com/greet-marketplace/service-bookings/internal/domain/shared"
)

// memoryBookingRepo is an in-memory BookingRepository with the same
// version-checked update semantics as the GORM implementation.
type memoryBookingRepo struct {
	mu         sync.Mutex
	bookings   map[uuid.UUID]*bookingDomain.Booking
	failUpdate error
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func cloneBooking(bk *bookingDomain.Booking) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(
		bk.ID(),
		bk.ListingID(),
		bk.BusinessID(),
		bk.CreatorID(),
		bk.Listing(),
		bk.Status(),
		bk.ConfirmedSlot(),
		bk.TimeSlots(),
		bk.Redeemed(),
		bk.Version(),
		bk.CreatedAt(),
		bk.UpdatedAt(),
	)
}

func (r *memoryBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[bk.ID()] = cloneBooking(bk)
	return nil
}

func (r *memoryBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, shared.NewNotFoundError("Booking", id.String())
	}
	return cloneBooking(bk), nil
}

func (r *memoryBookingRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*bookingDomain.BookingDetail, error) {
	bk, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &bookingDomain.BookingDetail{
		Booking:  bk,
		Business: bookingDomain.BusinessSummary{ID: bk.BusinessID(), Name: "Test Business"},
		Creator:  bookingDomain.CreatorSummary{ID: bk.CreatorID(), Name: "Test Creator", InstagramHandle: "@testcreator"},
	}, nil
}

func (r *memoryBookingRepo) FindByCreatorID(_ context.Context, creatorID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.filter(func(bk *bookingDomain.Booking) bool { return bk.CreatorID() == creatorID })
}

func (r *memoryBookingRepo) FindByBusinessID(_ context.Context, businessID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.filter(func(bk *bookingDomain.Booking) bool { return bk.BusinessID() == businessID })
}

func (r *memoryBookingRepo) ListAll(_ context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.filter(func(*bookingDomain.Booking) bool { return true })
}

func (r *memoryBookingRepo) filter(keep func(*bookingDomain.Booking) bool) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if keep(bk) {
			out = append(out, cloneBooking(bk))
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range r.bookings {
		counts[string(bk.Status())]++
	}
	return counts, nil
}

func (r *memoryBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate != nil {
		return r.failUpdate
	}
	stored, ok := r.bookings[bk.ID()]
	if !ok {
		return shared.NewNotFoundError("Booking", bk.ID().String())
	}
	if stored.Version() != bk.Version()-1 {
		return shared.NewConflictError("booking was modified by another transaction")
	}
	r.bookings[bk.ID()] = cloneBooking(bk)
	return nil
}

// memoryListingRepo is an in-memory ListingRepository.
type memoryListingRepo struct {
	listings map[uuid.UUID]listingDomain.Listing
}

func newMemoryListingRepo(listings ...listingDomain.Listing) *memoryListingRepo {
	r := &memoryListingRepo{listings: make(map[uuid.UUID]listingDomain.Listing)}
	for _, lst := range listings {
		r.listings[lst.ID] = lst
	}
	return r
}

func (r *memoryListingRepo) FindByID(_ context.Context, id uuid.UUID) (*listingDomain.Listing, error) {
	lst, ok := r.listings[id]
	if !ok {
		return nil, shared.NewNotFoundError("Listing", id.String())
	}
	return &lst, nil
}

// recordingNotifier records the kind of every notification it receives.
type recordingNotifier struct {
	mu    sync.Mutex
	kinds []string
}

func (n *recordingNotifier) record(kind string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
}

func (n *recordingNotifier) Kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.kinds))
	copy(out, n.kinds)
	return out
}

func (n *recordingNotifier) BookingCreated(context.Context, *bookingDomain.Booking) { n.record("created") }
func (n *recordingNotifier) BookingApproved(context.Context, *bookingDomain.Booking, uuid.UUID) {
	n.record("approved")
}
func (n *recordingNotifier) BookingDeclined(context.Context, *bookingDomain.Booking, uuid.UUID) {
	n.record("declined")
}
func (n *recordingNotifier) BookingCanceled(context.Context, *bookingDomain.Booking, uuid.UUID) {
	n.record("canceled")
}
func (n *recordingNotifier) BookingRedeemed(context.Context, *bookingDomain.Booking) { n.record("redeemed") }
func (n *recordingNotifier) BookingCompleted(context.Context, *bookingDomain.Booking) {
	n.record("completed")
}
