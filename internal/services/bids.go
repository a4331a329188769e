package services

import (
	"fmt"

	"gorm.io/gorm"

	"musiclancer/internal/models"
)

// EnrichedBid is a bid decorated with a read-only snapshot of its project and
// escrow payment state for listing screens.
type EnrichedBid struct {
	models.Bid
	ProjectName   string               `json:"project_name"`
	ProjectStatus models.ProjectStatus `json:"project_status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	PaymentID     *int64               `json:"payment_id,omitempty"`
}

// BidService manages bid submission and updates against open projects.
type BidService struct {
	db     *gorm.DB
	quotas *QuotaService
}

func NewBidService(db *gorm.DB, quotas *QuotaService) *BidService {
	return &BidService{db: db, quotas: quotas}
}

// Place submits a new bid on an open project, consuming one bid quota. A user
// may hold at most one bid per project; a duplicate attempt surfaces the
// existing bid id so the client can redirect to the update flow.
func (s *BidService) Place(bidderID uint, projectID int64, amount float64, proposal string) (*models.Bid, error) {
	var project models.Project
	err := s.db.Where("project_id = ? AND status = ?", projectID, models.ProjectOpen).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Project not found or not open for bidding")
		}
		return nil, fmt.Errorf("failed to load project %d: %w", projectID, err)
	}

	var existing models.Bid
	err = s.db.Where("project_id = ? AND bidder_id = ?", projectID, bidderID).First(&existing).Error
	if err == nil {
		return nil, conflict(
			"You have already placed a bid on this project. Please update your existing bid.",
			map[string]interface{}{"bid_id": existing.BidID},
		)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check existing bid: %w", err)
	}

	decision, err := s.quotas.CheckBidQuota(bidderID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, quotaExceeded(decision.Message)
	}

	bidID, err := NextSequence(s.db, models.CounterBidID)
	if err != nil {
		return nil, err
	}

	bid := models.Bid{
		BidID:     bidID,
		ProjectID: projectID,
		BidderID:  bidderID,
		Amount:    amount,
		Proposal:  proposal,
		Status:    models.BidPending,
	}
	if err := s.db.Create(&bid).Error; err != nil {
		return nil, fmt.Errorf("failed to create bid: %w", err)
	}

	if err := s.quotas.ConsumeBid(bidderID, decision.IsFree); err != nil {
		return nil, err
	}

	return &bid, nil
}

// Update merges the provided fields into the caller's bid while the owning
// project is still open. Absent fields keep their prior value.
func (s *BidService) Update(bidderID uint, bidID int64, amount *float64, proposal *string) (*models.Bid, error) {
	var bid models.Bid
	err := s.db.Where("bid_id = ? AND bidder_id = ?", bidID, bidderID).First(&bid).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Bid not found or unauthorized")
		}
		return nil, fmt.Errorf("failed to load bid %d: %w", bidID, err)
	}

	var project models.Project
	err = s.db.Where("project_id = ? AND status = ?", bid.ProjectID, models.ProjectOpen).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, invalidState("Project is not open for bidding")
		}
		return nil, fmt.Errorf("failed to load project %d: %w", bid.ProjectID, err)
	}

	if amount != nil {
		bid.Amount = *amount
	}
	if proposal != nil {
		bid.Proposal = *proposal
	}
	if err := s.db.Save(&bid).Error; err != nil {
		return nil, fmt.Errorf("failed to update bid %d: %w", bidID, err)
	}
	return &bid, nil
}

// ListForUser returns the caller's bids enriched with project and payment
// snapshots. Missing projects or payments get placeholder values rather than
// failing the whole listing.
func (s *BidService) ListForUser(bidderID uint) ([]EnrichedBid, error) {
	var bids []models.Bid
	if err := s.db.Where("bidder_id = ?", bidderID).Order("created_at DESC").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	enriched := make([]EnrichedBid, 0, len(bids))
	for _, bid := range bids {
		entry := EnrichedBid{
			Bid:           bid,
			ProjectName:   "Unknown Project",
			ProjectStatus: "Unknown",
			PaymentStatus: models.PaymentPending,
		}

		var project models.Project
		if err := s.db.Where("project_id = ?", bid.ProjectID).First(&project).Error; err == nil {
			entry.ProjectName = project.ProjectName
			entry.ProjectStatus = project.Status
		} else if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to load project %d: %w", bid.ProjectID, err)
		}

		var payment models.ProjectPayment
		if err := s.db.Where("project_id = ? AND bidder_id = ?", bid.ProjectID, bidderID).First(&payment).Error; err == nil {
			entry.PaymentStatus = payment.PaymentStatus
			entry.PaymentID = &payment.PaymentID
		} else if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to load payment for project %d: %w", bid.ProjectID, err)
		}

		enriched = append(enriched, entry)
	}
	return enriched, nil
}

// ListForProject returns all bids on a project; owner only.
func (s *BidService) ListForProject(ownerID uint, projectID int64) ([]models.Bid, error) {
	var project models.Project
	err := s.db.Where("project_id = ?", projectID).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Project not found")
		}
		return nil, fmt.Errorf("failed to load project %d: %w", projectID, err)
	}
	if project.OwnerID != ownerID {
		return nil, forbidden("Unauthorized to view bids")
	}

	var bids []models.Bid
	err = s.db.Preload("Bidder").Where("project_id = ?", projectID).Order("created_at DESC").Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list project bids: %w", err)
	}
	return bids, nil
}
