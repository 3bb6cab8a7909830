package application

import (
	"github.com/google/uuid"

	bookingDomain "github.com/greet-marketplace/service-bookings/internal/domain/booking"
	"github.com/greet-marketplace/service-bookings/internal/platform/auth"
)

// Actor is the caller identity attached to every request, taken verbatim
// from the verified token claims.
type Actor struct {
	UserID     uuid.UUID
	Role       string
	BusinessID *uuid.UUID
}

// IsAdmin returns true if the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == auth.RoleAdmin
}

// IsBookingCreator returns true if the actor is the creator who owns the booking.
func (a Actor) IsBookingCreator(bk *bookingDomain.Booking) bool {
	return a.Role == auth.RoleCreator && a.UserID == bk.CreatorID()
}

// IsBookingBusiness returns true if the actor belongs to the business that
// owns the booking's listing.
func (a Actor) IsBookingBusiness(bk *bookingDomain.Booking) bool {
	return a.Role == auth.RoleBusiness && a.BusinessID != nil && *a.BusinessID == bk.BusinessID()
}

// MayAccess returns true if the actor is any of the parties allowed to see
// or act on the booking: the owning creator, a member of the owning
// business, or an admin.
func (a Actor) MayAccess(bk *bookingDomain.Booking) bool {
	return a.IsAdmin() || a.IsBookingCreator(bk) || a.IsBookingBusiness(bk)
}
