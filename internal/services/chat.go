package services

import (
	"fmt"

	"gorm.io/gorm"

	"musiclancer/internal/models"
)

// ChatRoom is one entry in a user's chat list.
type ChatRoom struct {
	ProjectID   int64  `json:"project_id"`
	ProjectName string `json:"project_name"`
	ChatRoomID  string `json:"chat_room_id"`
	Category    string `json:"category"` // "Project" for owned, "Bid" for won
}

// ChatState is the room id plus message history returned on initiate.
type ChatState struct {
	ChatRoomID string               `json:"chat_room_id"`
	Messages   []models.ChatMessage `json:"messages"`
}

// ChatService gates project chat behind the payment verification predicate.
// Rooms exist only for assigned projects whose escrow payment is verified.
type ChatService struct {
	db       *gorm.DB
	payments *PaymentService
}

func NewChatService(db *gorm.DB, payments *PaymentService) *ChatService {
	return &ChatService{db: db, payments: payments}
}

// List returns the rooms the user may join: projects they own and projects
// they won, in both cases assigned with a verified payment.
func (s *ChatService) List(userID uint) ([]ChatRoom, error) {
	rooms := []ChatRoom{}

	var owned []models.Project
	err := s.db.
		Joins("JOIN project_payments ON project_payments.project_id = projects.project_id AND project_payments.payment_status = ?", models.PaymentVerified).
		Where("projects.owner_id = ? AND projects.status = ?", userID, models.ProjectAssigned).
		Find(&owned).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list owned chat rooms: %w", err)
	}
	for _, project := range owned {
		rooms = append(rooms, ChatRoom{
			ProjectID:   project.ProjectID,
			ProjectName: project.ProjectName,
			ChatRoomID:  project.ChatRoomID,
			Category:    "Project",
		})
	}

	var won []models.Project
	err = s.db.
		Joins("JOIN project_payments ON project_payments.project_id = projects.project_id AND project_payments.payment_status = ? AND project_payments.bidder_id = ?", models.PaymentVerified, userID).
		Where("projects.status = ?", models.ProjectAssigned).
		Find(&won).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bid chat rooms: %w", err)
	}
	for _, project := range won {
		rooms = append(rooms, ChatRoom{
			ProjectID:   project.ProjectID,
			ProjectName: project.ProjectName,
			ChatRoomID:  project.ChatRoomID,
			Category:    "Bid",
		})
	}

	return rooms, nil
}

// authorize re-checks the gate and the caller's standing on every call.
func (s *ChatService) authorize(userID uint, projectID int64) (*models.Project, error) {
	var project models.Project
	err := s.db.Where("project_id = ?", projectID).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Project not found")
		}
		return nil, fmt.Errorf("failed to load project %d: %w", projectID, err)
	}

	unlocked, err := s.payments.IsUnlocked(projectID)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, forbidden("Payment not verified")
	}

	isOwner := project.OwnerID == userID
	isBidder := project.AssignedTo != nil && *project.AssignedTo == userID
	if !isOwner && !isBidder {
		return nil, forbidden("Unauthorized to access this chat")
	}
	return &project, nil
}

// Initiate opens (or re-opens) the project chat and returns its history.
func (s *ChatService) Initiate(userID uint, projectID int64) (*ChatState, error) {
	project, err := s.authorize(userID, projectID)
	if err != nil {
		return nil, err
	}

	// Backfill the room id for projects created before it was derived.
	if project.ChatRoomID == "" {
		project.ChatRoomID = models.ChatRoomID(projectID)
		if err := s.db.Save(project).Error; err != nil {
			return nil, fmt.Errorf("failed to assign chat room: %w", err)
		}
	}

	messages, err := s.history(projectID, 30, 0)
	if err != nil {
		return nil, err
	}
	return &ChatState{ChatRoomID: project.ChatRoomID, Messages: messages}, nil
}

// Messages returns a page of chat history, latest first.
func (s *ChatService) Messages(userID uint, projectID int64, limit, skip int) ([]models.ChatMessage, error) {
	if _, err := s.authorize(userID, projectID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 30
	}
	return s.history(projectID, limit, skip)
}

// Post persists a message in the project's room.
func (s *ChatService) Post(userID uint, projectID int64, content string) (*models.ChatMessage, error) {
	if content == "" {
		return nil, validation("Message content is required")
	}
	project, err := s.authorize(userID, projectID)
	if err != nil {
		return nil, err
	}

	message := models.ChatMessage{
		ProjectID:  projectID,
		ChatRoomID: project.ChatRoomID,
		SenderID:   userID,
		Content:    content,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}
	return &message, nil
}

func (s *ChatService) history(projectID int64, limit, skip int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chat messages: %w", err)
	}
	return messages, nil
}
