package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"musiclancer/internal/models"
)

// PaymentDetails is a payment plus a freshly rendered collection request so
// the owner can retry the transfer from any screen.
type PaymentDetails struct {
	Payment *models.ProjectPayment `json:"payment"`
	Request *PaymentRequest        `json:"payment_request"`
}

// PaymentService is the manual verification gate. Owners submit a transaction
// reference; only an administrator can move a payment to verified, and a
// verified payment is what unlocks chat and work submission.
type PaymentService struct {
	db       *gorm.DB
	upi      *UPIService
	notifier *NotificationService
}

func NewPaymentService(db *gorm.DB, upi *UPIService, notifier *NotificationService) *PaymentService {
	return &PaymentService{db: db, upi: upi, notifier: notifier}
}

func (s *PaymentService) get(paymentID int64) (*models.ProjectPayment, error) {
	var payment models.ProjectPayment
	err := s.db.Where("payment_id = ?", paymentID).First(&payment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Payment not found")
		}
		return nil, fmt.Errorf("failed to load payment %d: %w", paymentID, err)
	}
	return &payment, nil
}

// SubmitTransactionRef stores the owner-submitted transaction reference. No
// state transition happens here; the owner cannot self-verify.
func (s *PaymentService) SubmitTransactionRef(ownerID uint, paymentID int64, transactionID string) (*models.ProjectPayment, error) {
	if transactionID == "" {
		return nil, validation("Transaction ID is required")
	}

	payment, err := s.get(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.OwnerID != ownerID {
		return nil, forbidden("Unauthorized to submit transaction ID")
	}

	payment.TransactionID = transactionID
	if err := s.db.Save(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to store transaction reference: %w", err)
	}
	return payment, nil
}

// AdminVerify advances the payment status. The status only moves forward
// (pending -> verified -> released); verification stamps verifiedAt and
// notifies the bidder that work may commence.
func (s *PaymentService) AdminVerify(paymentID int64, status models.PaymentStatus) (*models.ProjectPayment, error) {
	if status.Rank() < 0 {
		return nil, validation("Invalid payment status: %s", status)
	}

	payment, err := s.get(paymentID)
	if err != nil {
		return nil, err
	}
	if status.Rank() <= payment.PaymentStatus.Rank() {
		return nil, conflict(
			fmt.Sprintf("Payment is already %s", payment.PaymentStatus),
			map[string]interface{}{"payment_status": payment.PaymentStatus},
		)
	}

	payment.PaymentStatus = status
	if status == models.PaymentVerified {
		now := time.Now()
		payment.VerifiedAt = &now
	}
	if err := s.db.Save(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	if status == models.PaymentVerified {
		s.notifyVerified(payment)
	}
	return payment, nil
}

// notifyVerified is fire-and-forget: the verification already committed.
func (s *PaymentService) notifyVerified(payment *models.ProjectPayment) {
	if s.notifier == nil {
		return
	}
	var project models.Project
	if err := s.db.Where("project_id = ?", payment.ProjectID).First(&project).Error; err != nil {
		log.Printf("Payment %d verified but project %d lookup failed: %v", payment.PaymentID, payment.ProjectID, err)
		return
	}
	message := fmt.Sprintf(
		"Payment for project %q (Project ID: %d) has been verified. Chat is unlocked and you can start the work.",
		project.ProjectName, project.ProjectID,
	)
	s.notifier.NotifyWorkEvent(payment.BidderID, models.NotificationPaymentVerified, message, project.ProjectID)
}

// GetForProject returns the escrow payment for a project with the collection
// request re-rendered. Visible to the owner and the assigned bidder only.
func (s *PaymentService) GetForProject(callerID uint, projectID int64) (*PaymentDetails, error) {
	var payment models.ProjectPayment
	err := s.db.Where("project_id = ?", projectID).First(&payment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Payment not found for this project")
		}
		return nil, fmt.Errorf("failed to load payment for project %d: %w", projectID, err)
	}
	if payment.OwnerID != callerID && payment.BidderID != callerID {
		return nil, forbidden("Unauthorized to view this payment")
	}

	request, err := s.upi.CollectionRequest(payment.BidAmount, EscrowNote(payment.ProjectID, payment.PaymentID))
	if err != nil {
		return nil, err
	}
	return &PaymentDetails{Payment: &payment, Request: request}, nil
}

// ListPending returns all payments awaiting verification, for the admin queue.
func (s *PaymentService) ListPending() ([]models.ProjectPayment, error) {
	var payments []models.ProjectPayment
	err := s.db.
		Preload("Bidder").
		Preload("Owner").
		Where("payment_status = ?", models.PaymentPending).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	return payments, nil
}

// IsUnlocked reports whether a verified payment exists for the project. Chat
// and work submission consume this predicate.
func (s *PaymentService) IsUnlocked(projectID int64) (bool, error) {
	var count int64
	err := s.db.Model(&models.ProjectPayment{}).
		Where("project_id = ? AND payment_status = ?", projectID, models.PaymentVerified).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check payment gate for project %d: %w", projectID, err)
	}
	return count > 0, nil
}
