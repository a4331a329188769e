package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectOpen          ProjectStatus = "open"
	ProjectAssigned      ProjectStatus = "assigned"
	ProjectWorkSubmitted ProjectStatus = "work_submitted"
	ProjectCompleted     ProjectStatus = "completed"
	ProjectClosed        ProjectStatus = "closed"
	ProjectRejected      ProjectStatus = "rejected"
)

type Project struct {
	ID        uint  `gorm:"primarykey" json:"-"`
	ProjectID int64 `gorm:"uniqueIndex;not null" json:"project_id"`
	OwnerID   uint  `gorm:"not null;index" json:"owner_id"`

	ProjectName    string   `gorm:"not null" json:"project_name"`
	Description    string   `gorm:"type:text;not null" json:"description"`
	Skills         []string `gorm:"serializer:json" json:"skills"`
	MinBudget      float64  `gorm:"not null" json:"min_budget"`
	MaxBudget      float64  `gorm:"not null" json:"max_budget"`
	DurationDays   int      `gorm:"not null" json:"duration_days"`
	AdditionalInfo string   `gorm:"type:text" json:"additional_info,omitempty"`

	Status          ProjectStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	AssignedTo      *uint         `gorm:"index" json:"assigned_to,omitempty"`
	WorkURL         string        `gorm:"type:text" json:"work_url,omitempty"`
	ChatRoomID      string        `gorm:"type:varchar(50)" json:"chat_room_id"`
	ReviewSubmitted bool          `gorm:"default:false" json:"review_submitted"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Bids  []Bid `gorm:"foreignKey:ProjectID;references:ProjectID" json:"bids,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// BeforeCreate hook derives the chat room id from the numeric project id.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ChatRoomID == "" {
		p.ChatRoomID = ChatRoomID(p.ProjectID)
	}
	return nil
}

// ChatRoomID returns the deterministic chat room identifier for a project.
func ChatRoomID(projectID int64) string {
	return fmt.Sprintf("chat_%d", projectID)
}
