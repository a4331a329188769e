package models

import (
	"time"
)

type NotificationType string

const (
	NotificationBidAccepted     NotificationType = "bid_accepted"
	NotificationPaymentVerified NotificationType = "payment_verified"
	NotificationWorkSubmitted   NotificationType = "work_submitted"
	NotificationWorkAccepted    NotificationType = "work_accepted"
	NotificationWorkRejected    NotificationType = "work_rejected"
	NotificationDisputeResolved NotificationType = "dispute_resolved"
)

type Notification struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	ProjectID int64            `gorm:"index" json:"project_id,omitempty"`
	Read      bool             `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
