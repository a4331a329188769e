package models

import (
	"time"
)

type WorkStatus string

const (
	WorkPending          WorkStatus = "pending"
	WorkAccepted         WorkStatus = "accepted"
	WorkNeedsImprovement WorkStatus = "needs_improvement"
	WorkWelldone         WorkStatus = "welldone"
	WorkRejected         WorkStatus = "rejected"
)

type DisputeStatus string

const (
	DisputeNone             DisputeStatus = "none"
	DisputeRaised           DisputeStatus = "raised"
	DisputeResolvedAccepted DisputeStatus = "resolved_accepted"
	DisputeResolvedRejected DisputeStatus = "resolved_rejected"
)

// ProjectWork is one submission attempt by the assigned bidder. A rejected
// submission is terminal for resubmission; the only way forward is a dispute.
type ProjectWork struct {
	ID           uint  `gorm:"primarykey" json:"-"`
	WorkID       int64 `gorm:"uniqueIndex;not null" json:"work_id"`
	SubmissionID int64 `gorm:"uniqueIndex;not null" json:"submission_id"`
	ProjectID    int64 `gorm:"not null;index" json:"project_id"`
	BidderID     uint  `gorm:"not null;index" json:"bidder_id"`
	OwnerID      uint  `gorm:"not null;index" json:"owner_id"`

	FileURL       string     `gorm:"type:text;not null" json:"file_url"`
	AttemptNumber int        `gorm:"not null;default:1" json:"attempt_number"`
	WorkStatus    WorkStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"work_status"`
	OwnerComment  string     `gorm:"type:text" json:"owner_comment,omitempty"`

	DisputeStatus DisputeStatus `gorm:"type:varchar(20);not null;default:'none'" json:"dispute_status"`
	DisputeReason string        `gorm:"type:text" json:"dispute_reason,omitempty"`
	AdminDecision string        `gorm:"type:text" json:"admin_decision,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectWork) TableName() string {
	return "project_works"
}
