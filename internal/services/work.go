package services

import (
	"fmt"

	"gorm.io/gorm"

	"musiclancer/internal/models"
)

// minAttemptsBeforeReject blocks early rejection so owner and bidder iterate
// before the relationship can be torn down.
const minAttemptsBeforeReject = 5

// WorkService runs the submission and review state machine: pending ->
// accepted | needs_improvement | welldone | rejected, with rejected appealable
// only through an admin-resolved dispute.
type WorkService struct {
	db       *gorm.DB
	payments *PaymentService
	notifier *NotificationService
}

func NewWorkService(db *gorm.DB, payments *PaymentService, notifier *NotificationService) *WorkService {
	return &WorkService{db: db, payments: payments, notifier: notifier}
}

func (s *WorkService) get(workID int64) (*models.ProjectWork, error) {
	var work models.ProjectWork
	err := s.db.Where("work_id = ?", workID).First(&work).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Work submission not found")
		}
		return nil, fmt.Errorf("failed to load work %d: %w", workID, err)
	}
	return &work, nil
}

func (s *WorkService) getProject(projectID int64) (*models.Project, error) {
	var project models.Project
	err := s.db.Where("project_id = ?", projectID).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Project not found")
		}
		return nil, fmt.Errorf("failed to load project %d: %w", projectID, err)
	}
	return &project, nil
}

// Submit records a new delivery attempt by the assigned bidder. The payment
// gate must be unlocked, and a rejected prior submission blocks resubmission
// until a dispute resolves it.
func (s *WorkService) Submit(bidderID uint, projectID int64, fileURL string) (*models.ProjectWork, error) {
	if fileURL == "" {
		return nil, validation("No file uploaded")
	}

	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.payments.IsUnlocked(projectID)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, forbidden("Payment not verified")
	}
	if project.AssignedTo == nil || *project.AssignedTo != bidderID {
		return nil, forbidden("Not assigned to this project")
	}

	var prior []models.ProjectWork
	if err := s.db.Where("project_id = ? AND bidder_id = ?", projectID, bidderID).Find(&prior).Error; err != nil {
		return nil, fmt.Errorf("failed to load prior submissions: %w", err)
	}
	for _, sub := range prior {
		if sub.WorkStatus == models.WorkRejected {
			return nil, forbidden("Work rejected. Please raise a dispute.")
		}
	}

	var work models.ProjectWork
	err = s.db.Transaction(func(tx *gorm.DB) error {
		workID, err := NextSequence(tx, models.CounterWorkID)
		if err != nil {
			return err
		}
		submissionID, err := NextSequence(tx, models.CounterSubmissionID)
		if err != nil {
			return err
		}

		work = models.ProjectWork{
			WorkID:        workID,
			SubmissionID:  submissionID,
			ProjectID:     projectID,
			BidderID:      bidderID,
			OwnerID:       project.OwnerID,
			FileURL:       fileURL,
			AttemptNumber: len(prior) + 1,
			WorkStatus:    models.WorkPending,
			DisputeStatus: models.DisputeNone,
		}
		if err := tx.Create(&work).Error; err != nil {
			return err
		}

		project.Status = models.ProjectWorkSubmitted
		project.WorkURL = fileURL
		return tx.Save(project).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit work for project %d: %w", projectID, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyWorkEvent(project.OwnerID, models.NotificationWorkSubmitted,
			fmt.Sprintf("New work submitted for project %q (attempt %d).", project.ProjectName, work.AttemptNumber),
			projectID)
	}
	return &work, nil
}

// Accept marks a pending submission accepted and completes the project. The
// pending-status precondition doubles as the guard against double-apply.
func (s *WorkService) Accept(ownerID uint, workID int64) (*models.ProjectWork, error) {
	work, project, err := s.ownedPendingWork(ownerID, workID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		work.WorkStatus = models.WorkAccepted
		if err := tx.Save(work).Error; err != nil {
			return err
		}
		project.Status = models.ProjectCompleted
		return tx.Save(project).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to accept work %d: %w", workID, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyWorkEvent(work.BidderID, models.NotificationWorkAccepted,
			fmt.Sprintf("Your work for project %q was accepted.", project.ProjectName), project.ProjectID)
	}
	return work, nil
}

// Reject marks a pending submission rejected. Rejection is refused until the
// bidder has made at least five attempts.
func (s *WorkService) Reject(ownerID uint, workID int64) (*models.ProjectWork, error) {
	work, project, err := s.ownedPendingWork(ownerID, workID)
	if err != nil {
		return nil, err
	}
	if work.AttemptNumber < minAttemptsBeforeReject {
		return nil, invalidState("Cannot reject work: fewer than %d attempts", minAttemptsBeforeReject)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		work.WorkStatus = models.WorkRejected
		if err := tx.Save(work).Error; err != nil {
			return err
		}
		project.Status = models.ProjectRejected
		return tx.Save(project).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reject work %d: %w", workID, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyWorkEvent(work.BidderID, models.NotificationWorkRejected,
			fmt.Sprintf("Your work for project %q was rejected. You may raise a dispute.", project.ProjectName),
			project.ProjectID)
	}
	return work, nil
}

// Comment stores the owner's feedback on a submission.
func (s *WorkService) Comment(ownerID uint, workID int64, comment string) (*models.ProjectWork, error) {
	work, err := s.get(workID)
	if err != nil {
		return nil, err
	}
	project, err := s.getProject(work.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, forbidden("Only the project owner can add comments")
	}

	work.OwnerComment = comment
	if err := s.db.Save(work).Error; err != nil {
		return nil, fmt.Errorf("failed to save comment on work %d: %w", workID, err)
	}
	return work, nil
}

// RaiseDispute opens the bidder's appeal against a rejected submission.
func (s *WorkService) RaiseDispute(bidderID uint, workID int64, reason string) (*models.ProjectWork, error) {
	work, err := s.get(workID)
	if err != nil {
		return nil, err
	}
	if work.BidderID != bidderID {
		return nil, forbidden("Unauthorized to raise dispute")
	}
	if work.WorkStatus != models.WorkRejected {
		return nil, invalidState("Cannot raise dispute unless work is rejected")
	}
	if work.DisputeStatus != models.DisputeNone {
		return nil, conflict("Dispute already raised or resolved", nil)
	}

	work.DisputeStatus = models.DisputeRaised
	work.DisputeReason = reason
	if err := s.db.Save(work).Error; err != nil {
		return nil, fmt.Errorf("failed to raise dispute on work %d: %w", workID, err)
	}
	return work, nil
}

// ResolveDispute is the admin's ruling. An accepted dispute force-completes
// the project and releases the escrow payment; all three records change in
// one transaction so readers never observe a partial outcome.
func (s *WorkService) ResolveDispute(workID int64, decision string, adminReason string) (*models.ProjectWork, error) {
	if decision != "accepted" && decision != "rejected" {
		return nil, validation("Decision must be accepted or rejected")
	}

	work, err := s.get(workID)
	if err != nil {
		return nil, err
	}
	if work.DisputeStatus != models.DisputeRaised {
		return nil, invalidState("No dispute raised for this work")
	}

	if decision == "rejected" {
		work.DisputeStatus = models.DisputeResolvedRejected
		work.AdminDecision = adminReason
		if err := s.db.Save(work).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve dispute on work %d: %w", workID, err)
		}
		return work, nil
	}

	project, err := s.getProject(work.ProjectID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		work.DisputeStatus = models.DisputeResolvedAccepted
		work.WorkStatus = models.WorkAccepted
		work.AdminDecision = adminReason
		if err := tx.Save(work).Error; err != nil {
			return err
		}

		project.Status = models.ProjectCompleted
		if err := tx.Save(project).Error; err != nil {
			return err
		}

		return tx.Model(&models.ProjectPayment{}).
			Where("project_id = ?", work.ProjectID).
			Update("payment_status", models.PaymentReleased).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dispute on work %d: %w", workID, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyWorkEvent(work.BidderID, models.NotificationDisputeResolved,
			fmt.Sprintf("Your dispute for project %q was accepted. Payment has been released.", project.ProjectName),
			project.ProjectID)
	}
	return work, nil
}

// WorkOrder summarizes the engagement terms for the bidder once the escrow
// payment is verified.
type WorkOrder struct {
	Project     *models.Project        `json:"project"`
	Payment     *models.ProjectPayment `json:"payment"`
	BidderName  string                 `json:"bidder_name"`
	OwnerName   string                 `json:"owner_name"`
	FinalAmount float64                `json:"final_amount"`
}

// GetWorkOrder returns the work order for a verified payment; bidder only.
func (s *WorkService) GetWorkOrder(bidderID uint, paymentID int64) (*WorkOrder, error) {
	var payment models.ProjectPayment
	err := s.db.Preload("Bidder").Preload("Owner").Where("payment_id = ?", paymentID).First(&payment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Payment not found")
		}
		return nil, fmt.Errorf("failed to load payment %d: %w", paymentID, err)
	}
	if payment.BidderID != bidderID || payment.PaymentStatus != models.PaymentVerified {
		return nil, forbidden("Unauthorized or payment not verified")
	}

	project, err := s.getProject(payment.ProjectID)
	if err != nil {
		return nil, err
	}

	return &WorkOrder{
		Project:     project,
		Payment:     &payment,
		BidderName:  payment.Bidder.FullName,
		OwnerName:   payment.Owner.FullName,
		FinalAmount: payment.FinalAmount,
	}, nil
}

// ListForProject returns a project's submissions, newest first; visible to
// the owner and the assigned bidder.
func (s *WorkService) ListForProject(callerID uint, projectID int64) ([]models.ProjectWork, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}
	isOwner := project.OwnerID == callerID
	isBidder := project.AssignedTo != nil && *project.AssignedTo == callerID
	if !isOwner && !isBidder {
		return nil, forbidden("Unauthorized to view work submissions")
	}

	var works []models.ProjectWork
	err = s.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&works).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list work submissions: %w", err)
	}
	return works, nil
}

// ListRaisedDisputes returns all submissions awaiting an admin ruling.
func (s *WorkService) ListRaisedDisputes() ([]models.ProjectWork, error) {
	var works []models.ProjectWork
	err := s.db.Where("dispute_status = ?", models.DisputeRaised).Order("updated_at ASC").Find(&works).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list disputes: %w", err)
	}
	return works, nil
}

func (s *WorkService) ownedPendingWork(ownerID uint, workID int64) (*models.ProjectWork, *models.Project, error) {
	work, err := s.get(workID)
	if err != nil {
		return nil, nil, err
	}
	project, err := s.getProject(work.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if project.OwnerID != ownerID {
		return nil, nil, forbidden("Only the project owner can review work")
	}
	if work.WorkStatus != models.WorkPending {
		return nil, nil, invalidState("Work is not in pending state")
	}
	return work, project, nil
}
