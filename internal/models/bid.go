package models

import (
	"time"
)

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// Bid is one user's offer on an open project. At most one bid may exist per
// (project, bidder) pair; that is checked before insert, bids are never deleted.
type Bid struct {
	ID        uint  `gorm:"primarykey" json:"-"`
	BidID     int64 `gorm:"uniqueIndex;not null" json:"bid_id"`
	ProjectID int64 `gorm:"not null;index" json:"project_id"`
	BidderID  uint  `gorm:"not null;index" json:"bidder_id"`

	Amount   float64   `gorm:"not null" json:"amount"`
	Proposal string    `gorm:"type:text;not null" json:"proposal"`
	Status   BidStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Bidder User `gorm:"foreignKey:BidderID" json:"bidder,omitempty"`
}

func (Bid) TableName() string {
	return "bids"
}
