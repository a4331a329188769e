package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"musiclancer/internal/models"
)

// NotificationService persists in-app notifications and sends best-effort
// email. A notification or email failure never rolls back the state
// transition that triggered it.
type NotificationService struct {
	db    *gorm.DB
	email *EmailService
}

func NewNotificationService(db *gorm.DB, email *EmailService) *NotificationService {
	return &NotificationService{db: db, email: email}
}

func (s *NotificationService) Create(userID uint, notifType models.NotificationType, message string, projectID int64) error {
	notification := models.Notification{
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		ProjectID: projectID,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// NotifyBidAccepted tells the bidder their payment was verified and work may
// commence. Email failure is logged and swallowed.
func (s *NotificationService) NotifyBidAccepted(bidder *models.User, projectName string, projectID int64, bidAmount float64) {
	message := fmt.Sprintf(
		"Your bid for project %q (Project ID: %d) has been accepted. Payment will be released after work verification.",
		projectName, projectID,
	)
	if err := s.Create(bidder.ID, models.NotificationBidAccepted, message, projectID); err != nil {
		log.Printf("Failed to store bid-accepted notification for user %d: %v", bidder.ID, err)
	}

	if s.email == nil {
		return
	}
	if err := s.email.SendBidAcceptedEmail(bidder.Email, projectName, projectID, bidAmount); err != nil {
		log.Printf("Failed to send bid-accepted email to %s, continuing: %v", bidder.Email, err)
	}
}

// NotifyWorkEvent records a work lifecycle notification for the given user.
func (s *NotificationService) NotifyWorkEvent(userID uint, notifType models.NotificationType, message string, projectID int64) {
	if err := s.Create(userID, notifType, message, projectID); err != nil {
		log.Printf("Failed to store %s notification for user %d: %v", notifType, userID, err)
	}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read; caller must own it.
func (s *NotificationService) MarkRead(userID uint, notificationID uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("Notification not found")
	}
	return nil
}
