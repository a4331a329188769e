package models

// Counter hands out monotonically increasing ids per entity type. Sequences
// are never decremented or reused, even when the owning entity is deleted.
type Counter struct {
	Name     string `gorm:"primarykey" json:"name"`
	Sequence int64  `gorm:"not null;default:0" json:"sequence"`
}

func (Counter) TableName() string {
	return "counters"
}

// Counter names used across the platform.
const (
	CounterProjectID      = "projectId"
	CounterBidID          = "bidId"
	CounterPaymentID      = "paymentId"
	CounterWorkID         = "workId"
	CounterSubmissionID   = "submissionId"
	CounterSubscriptionID = "subscriptionId"
)
