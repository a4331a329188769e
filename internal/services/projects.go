package services

import (
	"fmt"
	"log"
	"math"
	"strings"

	"gorm.io/gorm"

	"musiclancer/internal/models"
)

// adminCutRate is the platform's share of every finalized bid.
const adminCutRate = 0.20

type CreateProjectInput struct {
	ProjectName    string
	Description    string
	Skills         []string
	MinBudget      float64
	MaxBudget      float64
	DurationDays   int
	AdditionalInfo string
}

type BrowseFilter struct {
	Skills    []string
	MinBudget *float64
	MaxBudget *float64
}

// FinalizeResult carries the updated records plus the payment collection
// artifact shown to the owner.
type FinalizeResult struct {
	Project *models.Project        `json:"project"`
	Payment *models.ProjectPayment `json:"payment"`
	Request *PaymentRequest        `json:"payment_request"`
}

// ProjectService owns the project lifecycle: quota-gated creation, browsing,
// and finalization of a winning bid into an escrow payment.
type ProjectService struct {
	db       *gorm.DB
	quotas   *QuotaService
	upi      *UPIService
	notifier *NotificationService
}

func NewProjectService(db *gorm.DB, quotas *QuotaService, upi *UPIService, notifier *NotificationService) *ProjectService {
	return &ProjectService{db: db, quotas: quotas, upi: upi, notifier: notifier}
}

// Create posts a new open project for the owner, consuming one post quota.
func (s *ProjectService) Create(ownerID uint, in CreateProjectInput) (*models.Project, error) {
	if in.MaxBudget < in.MinBudget {
		return nil, validation("maxBudget must be greater than or equal to minBudget")
	}
	if in.DurationDays < 1 {
		return nil, validation("durationDays must be at least 1")
	}
	for _, skill := range in.Skills {
		if strings.TrimSpace(skill) == "" {
			return nil, validation("skills must be non-empty strings")
		}
	}

	decision, err := s.quotas.CheckPostQuota(ownerID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, quotaExceeded(decision.Message)
	}

	projectID, err := NextSequence(s.db, models.CounterProjectID)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		ProjectID:      projectID,
		OwnerID:        ownerID,
		ProjectName:    in.ProjectName,
		Description:    in.Description,
		Skills:         in.Skills,
		MinBudget:      in.MinBudget,
		MaxBudget:      in.MaxBudget,
		DurationDays:   in.DurationDays,
		AdditionalInfo: in.AdditionalInfo,
		Status:         models.ProjectOpen,
		ChatRoomID:     models.ChatRoomID(projectID),
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if err := s.quotas.ConsumePost(ownerID, decision.IsFree); err != nil {
		return nil, err
	}

	return &project, nil
}

// ListOwned returns the caller's own projects, newest first.
func (s *ProjectService) ListOwned(ownerID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Browse returns open projects posted by other users, optionally filtered by
// skill tags and budget overlap.
func (s *ProjectService) Browse(userID uint, filter BrowseFilter) ([]models.Project, error) {
	query := s.db.
		Where("owner_id <> ? AND status = ?", userID, models.ProjectOpen).
		Order("created_at DESC")
	if filter.MinBudget != nil {
		query = query.Where("max_budget >= ?", *filter.MinBudget)
	}
	if filter.MaxBudget != nil {
		query = query.Where("min_budget <= ?", *filter.MaxBudget)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to browse projects: %w", err)
	}

	// Skill tags live in a serialized column, so the tag filter runs here.
	if len(filter.Skills) == 0 {
		return projects, nil
	}
	wanted := make(map[string]struct{}, len(filter.Skills))
	for _, skill := range filter.Skills {
		wanted[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}
	matched := projects[:0]
	for _, project := range projects {
		for _, skill := range project.Skills {
			if _, ok := wanted[strings.ToLower(skill)]; ok {
				matched = append(matched, project)
				break
			}
		}
	}
	return matched, nil
}

// Get returns a project by its numeric id.
func (s *ProjectService) Get(projectID int64) (*models.Project, error) {
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

// UpdateInfo lets the owner amend additional info while the project is open.
func (s *ProjectService) UpdateInfo(ownerID uint, projectID int64, additionalInfo string) (*models.Project, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, forbidden("Unauthorized to update project info")
	}
	if project.Status != models.ProjectOpen {
		return nil, invalidState("Cannot update info for non-open project")
	}

	if additionalInfo != "" {
		project.AdditionalInfo = additionalInfo
	}
	if err := s.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("failed to update project info: %w", err)
	}
	return project, nil
}

// Finalize selects the winning bid: the project is locked to that bidder and
// a pending escrow payment is created. The project, bid, payment, and counter
// writes commit as one transaction; losing bids deliberately stay pending.
func (s *ProjectService) Finalize(ownerID uint, projectID int64, bidID int64, bidAmount float64) (*FinalizeResult, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, forbidden("Unauthorized to finalize bid")
	}
	if project.Status != models.ProjectOpen {
		return nil, invalidState("Project is not open for bidding")
	}

	var bid models.Bid
	err = s.db.Where("bid_id = ? AND project_id = ?", bidID, projectID).First(&bid).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Bid not found")
		}
		return nil, fmt.Errorf("failed to load bid %d: %w", bidID, err)
	}

	adminCut := roundAmount(bidAmount * adminCutRate)
	finalAmount := roundAmount(bidAmount - adminCut)

	var payment models.ProjectPayment
	err = s.db.Transaction(func(tx *gorm.DB) error {
		project.Status = models.ProjectAssigned
		project.AssignedTo = &bid.BidderID
		if err := tx.Save(project).Error; err != nil {
			return err
		}

		bid.Status = models.BidAccepted
		if err := tx.Save(&bid).Error; err != nil {
			return err
		}

		paymentID, err := NextSequence(tx, models.CounterPaymentID)
		if err != nil {
			return err
		}

		payment = models.ProjectPayment{
			PaymentID:     paymentID,
			ProjectID:     project.ProjectID,
			BidderID:      bid.BidderID,
			OwnerID:       project.OwnerID,
			BidAmount:     bidAmount,
			AdminCut:      adminCut,
			FinalAmount:   finalAmount,
			PaymentStatus: models.PaymentPending,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finalize project %d: %w", projectID, err)
	}

	request, err := s.upi.CollectionRequest(bidAmount, EscrowNote(project.ProjectID, payment.PaymentID))
	if err != nil {
		return nil, err
	}

	go s.notifyAccepted(bid.BidderID, project, bidAmount)

	return &FinalizeResult{Project: project, Payment: &payment, Request: request}, nil
}

func (s *ProjectService) notifyAccepted(bidderID uint, project *models.Project, bidAmount float64) {
	var bidder models.User
	if err := s.db.First(&bidder, bidderID).Error; err != nil {
		log.Printf("failed to load bidder %d for notification: %v", bidderID, err)
		return
	}
	s.notifier.NotifyBidAccepted(&bidder, project.ProjectName, project.ProjectID, bidAmount)
}

func roundAmount(v float64) float64 {
	return math.Round(v)
}
