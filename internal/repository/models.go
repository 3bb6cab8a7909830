package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ListingID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	BusinessID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	CreatorID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Status        string          `gorm:"not null;size:30;index"`
	ConfirmedSlot *string         `gorm:"size:100"`
	TimeSlots     json.RawMessage `gorm:"type:jsonb"`
	Redeemed      bool            `gorm:"not null;default:false"`
	Version       int64           `gorm:"not null;default:1"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Listing  ListingModel  `gorm:"foreignKey:ListingID"`
	Business BusinessModel `gorm:"foreignKey:BusinessID"`
	Creator  UserModel     `gorm:"foreignKey:CreatorID"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// ListingModel is the GORM model for the listings table, consumed read-only.
type ListingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Title         string    `gorm:"not null;size:200"`
	Description   string    `gorm:"size:2000"`
	RedeemAnytime bool      `gorm:"not null;default:false"`
	Active        bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ListingModel) TableName() string {
	return "listings"
}

// BusinessModel is the GORM model for the businesses table, consumed read-only.
type BusinessModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;size:200"`
	City      string    `gorm:"size:100"`
	State     string    `gorm:"size:100"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BusinessModel) TableName() string {
	return "businesses"
}

// UserModel is the GORM model for the users table, consumed read-only. The
// instagram handle is the creator's linked social profile.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null;size:200"`
	Email           string    `gorm:"size:200"`
	InstagramHandle string    `gorm:"size:100"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string {
	return "users"
}
