package models

import (
	"time"
)

// Booking is a studio session reservation. The booking flow itself lives
// outside this service; the record is kept here so the daily janitor can
// purge reservations whose payment never arrived.
type Booking struct {
	ID        uint  `gorm:"primarykey" json:"-"`
	BookingID int64 `gorm:"uniqueIndex;not null" json:"booking_id"`
	StudioID  uint  `gorm:"not null;index" json:"studio_id"`
	UserID    uint  `gorm:"not null;index" json:"user_id"`

	BookingDate   time.Time     `gorm:"not null" json:"booking_date"`
	Amount        float64       `gorm:"not null" json:"amount"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}
