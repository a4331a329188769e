package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage lives in its own table keyed by the project's chat room; the
// payment gate is re-checked on every read and send, not cached here.
type ChatMessage struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	MessageID  string    `gorm:"uniqueIndex;not null" json:"message_id"`
	ProjectID  int64     `gorm:"not null;index" json:"project_id"`
	ChatRoomID string    `gorm:"not null;index" json:"chat_room_id"`
	SenderID   uint      `gorm:"not null" json:"sender_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == "" {
		m.MessageID = uuid.NewString()
	}
	return nil
}
