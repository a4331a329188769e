package models

import (
	"time"
)

// SubscriptionPlan is a purchasable tier (Basic, Pro, Premium).
type SubscriptionPlan struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	PlanName       string  `gorm:"uniqueIndex;not null" json:"plan_name"`
	Price          float64 `gorm:"not null" json:"price"`
	PostLimit      int     `gorm:"not null" json:"post_limit"`
	BidLimit       int     `gorm:"not null" json:"bid_limit"`
	ValidityMonths int     `gorm:"not null" json:"validity_months"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionVerified SubscriptionStatus = "verified"
	SubscriptionFailed   SubscriptionStatus = "failed"
	SubscriptionExpired  SubscriptionStatus = "expired"
)

// UserSubscription is a user's purchase of a plan. Plan fields are copied in
// at purchase time so later plan edits never change what was bought.
type UserSubscription struct {
	ID             uint  `gorm:"primarykey" json:"-"`
	SubscriptionID int64 `gorm:"uniqueIndex;not null" json:"subscription_id"`
	UserID         uint  `gorm:"not null;index" json:"user_id"`
	PlanID         uint  `gorm:"not null" json:"plan_id"`

	PlanName           string  `gorm:"not null" json:"plan_name"`
	PlanPrice          float64 `gorm:"not null" json:"plan_price"`
	PlanPostLimit      int     `gorm:"not null" json:"plan_post_limit"`
	PlanBidLimit       int     `gorm:"not null" json:"plan_bid_limit"`
	PlanValidityMonths int     `gorm:"not null" json:"plan_validity_months"`

	PaymentStatus SubscriptionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	TransactionID string             `gorm:"type:varchar(100)" json:"transaction_id,omitempty"`
	UPIID         string             `gorm:"column:upi_id;type:varchar(100)" json:"upi_id,omitempty"`

	PostsUsed int       `gorm:"default:0" json:"posts_used"`
	BidsUsed  int       `gorm:"default:0" json:"bids_used"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Plan SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

// Active reports whether the subscription is verified and not yet past endDate.
func (s *UserSubscription) Active(now time.Time) bool {
	return s.PaymentStatus == SubscriptionVerified && !s.EndDate.Before(now)
}
