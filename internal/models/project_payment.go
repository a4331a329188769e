package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentReleased PaymentStatus = "released"
)

// Rank orders payment statuses; the status only ever moves forward.
func (s PaymentStatus) Rank() int {
	switch s {
	case PaymentPending:
		return 0
	case PaymentVerified:
		return 1
	case PaymentReleased:
		return 2
	}
	return -1
}

// ProjectPayment is the escrow record created exactly once at finalization.
// FinalAmount + AdminCut == BidAmount (both rounded to whole units).
type ProjectPayment struct {
	ID        uint  `gorm:"primarykey" json:"-"`
	PaymentID int64 `gorm:"uniqueIndex;not null" json:"payment_id"`
	ProjectID int64 `gorm:"not null;index" json:"project_id"`
	BidderID  uint  `gorm:"not null;index" json:"bidder_id"`
	OwnerID   uint  `gorm:"not null;index" json:"owner_id"`

	BidAmount   float64 `gorm:"not null" json:"bid_amount"`
	AdminCut    float64 `gorm:"not null" json:"admin_cut"`
	FinalAmount float64 `gorm:"not null" json:"final_amount"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	TransactionID string        `gorm:"type:varchar(100)" json:"transaction_id,omitempty"`
	VerifiedAt    *time.Time    `json:"verified_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Bidder User `gorm:"foreignKey:BidderID" json:"bidder,omitempty"`
	Owner  User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (ProjectPayment) TableName() string {
	return "project_payments"
}
