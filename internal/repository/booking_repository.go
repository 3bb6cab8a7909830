package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/greet-marketplace/service-bookings/internal/domain/booking"
	"github.com/greet-marketplace/service-bookings/internal/domain/listing"
	"github.com/greet-marketplace/service-bookings/internal/domain/shared"
)

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier with its listing.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Preload("Listing").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindDetailByID retrieves a booking joined with its business and creator.
func (r *GormBookingRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*bookingDomain.BookingDetail, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Business").
		Preload("Creator").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking detail: %w", err)
	}

	bk, err := toDomainBooking(&model)
	if err != nil {
		return nil, err
	}

	return &bookingDomain.BookingDetail{
		Booking: bk,
		Business: bookingDomain.BusinessSummary{
			ID:    model.Business.ID,
			Name:  model.Business.Name,
			City:  model.Business.City,
			State: model.Business.State,
		},
		Creator: bookingDomain.CreatorSummary{
			ID:              model.Creator.ID,
			Name:            model.Creator.Name,
			InstagramHandle: model.Creator.InstagramHandle,
		},
	}, nil
}

// FindByCreatorID retrieves bookings for a specific creator with pagination.
func (r *GormBookingRepository) FindByCreatorID(ctx context.Context, creatorID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPaginated(ctx, "creator_id = ?", creatorID, page, limit)
}

// FindByBusinessID retrieves bookings against a specific business with pagination.
func (r *GormBookingRepository) FindByBusinessID(ctx context.Context, businessID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPaginated(ctx, "business_id = ?", businessID, page, limit)
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Preload("Listing").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

func (r *GormBookingRepository) findPaginated(ctx context.Context, cond string, arg uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where(cond, arg).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Preload("Listing").
		Where(cond, arg).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
// Only lifecycle fields are writable; listing, business, and creator IDs are
// immutable after creation.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	// Conditional write: only lands if no other transaction moved the row
	// since this aggregate was loaded (version was bumped in memory).
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"confirmed_slot": model.ConfirmedSlot,
			"time_slots":     model.TimeSlots,
			"redeemed":       model.Redeemed,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return shared.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) (*BookingModel, error) {
	var timeSlotsJSON json.RawMessage
	if bk.TimeSlots() != nil {
		data, err := json.Marshal(bk.TimeSlots())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal time slots: %w", err)
		}
		timeSlotsJSON = data
	}

	return &BookingModel{
		ID:            bk.ID(),
		ListingID:     bk.ListingID(),
		BusinessID:    bk.BusinessID(),
		CreatorID:     bk.CreatorID(),
		Status:        string(bk.Status()),
		ConfirmedSlot: bk.ConfirmedSlot(),
		TimeSlots:     timeSlotsJSON,
		Redeemed:      bk.Redeemed(),
		Version:       bk.Version(),
		CreatedAt:     bk.CreatedAt(),
		UpdatedAt:     bk.UpdatedAt(),
	}, nil
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	var timeSlots bookingDomain.TimeSlots
	if len(m.TimeSlots) > 0 {
		if err := json.Unmarshal(m.TimeSlots, &timeSlots); err != nil {
			return nil, fmt.Errorf("failed to unmarshal time slots: %w", err)
		}
	}

	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	lst := listing.Listing{
		ID:            m.Listing.ID,
		BusinessID:    m.Listing.BusinessID,
		Title:         m.Listing.Title,
		Description:   m.Listing.Description,
		RedeemAnytime: m.Listing.RedeemAnytime,
		Active:        m.Listing.Active,
		CreatedAt:     m.Listing.CreatedAt,
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.ListingID,
		m.BusinessID,
		m.CreatorID,
		lst,
		status,
		m.ConfirmedSlot,
		timeSlots,
		m.Redeemed,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel, total int64) ([]*bookingDomain.Booking, int64, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}
