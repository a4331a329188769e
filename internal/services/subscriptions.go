package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"musiclancer/internal/models"
)

// PurchaseResult is the pending subscription plus its payment collection
// artifact.
type PurchaseResult struct {
	Subscription *models.UserSubscription `json:"subscription"`
	Request      *PaymentRequest          `json:"payment_request"`
}

// SubscriptionService handles plan purchases and their manual payment
// verification; verified subscriptions feed the quota ledger.
type SubscriptionService struct {
	db  *gorm.DB
	upi *UPIService
}

func NewSubscriptionService(db *gorm.DB, upi *UPIService) *SubscriptionService {
	return &SubscriptionService{db: db, upi: upi}
}

// ListPlans returns the purchasable tiers.
func (s *SubscriptionService) ListPlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	if err := s.db.Order("price ASC").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscription plans: %w", err)
	}
	return plans, nil
}

// Purchase starts a subscription for the user. An existing pending purchase
// of the same plan is reused instead of piling up duplicates; either way the
// caller gets a fresh collection request.
func (s *SubscriptionService) Purchase(userID uint, planID uint) (*PurchaseResult, error) {
	var plan models.SubscriptionPlan
	if err := s.db.First(&plan, planID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("Subscription plan not found")
		}
		return nil, fmt.Errorf("failed to load plan %d: %w", planID, err)
	}
	if plan.ValidityMonths < 1 {
		return nil, validation("Invalid validity months in subscription plan: %d", plan.ValidityMonths)
	}

	var sub models.UserSubscription
	err := s.db.
		Where("user_id = ? AND plan_id = ? AND payment_status = ?", userID, planID, models.SubscriptionPending).
		First(&sub).Error
	switch {
	case err == nil:
		// reuse the pending purchase
	case err == gorm.ErrRecordNotFound:
		subscriptionID, err := NextSequence(s.db, models.CounterSubscriptionID)
		if err != nil {
			return nil, err
		}
		sub = models.UserSubscription{
			SubscriptionID:     subscriptionID,
			UserID:             userID,
			PlanID:             plan.ID,
			PlanName:           plan.PlanName,
			PlanPrice:          plan.Price,
			PlanPostLimit:      plan.PostLimit,
			PlanBidLimit:       plan.BidLimit,
			PlanValidityMonths: plan.ValidityMonths,
			PaymentStatus:      models.SubscriptionPending,
			UPIID:              s.upi.UPIID(),
			EndDate:            time.Now().AddDate(0, plan.ValidityMonths, 0),
		}
		if err := s.db.Create(&sub).Error; err != nil {
			return nil, fmt.Errorf("failed to create subscription: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to check pending subscription: %w", err)
	}

	request, err := s.upi.CollectionRequest(plan.Price, SubscriptionNote(sub.SubscriptionID))
	if err != nil {
		return nil, err
	}
	return &PurchaseResult{Subscription: &sub, Request: request}, nil
}

// SubmitTransactionRef stores the user's transfer reference on their pending
// purchase; the admin verifies it out of band.
func (s *SubscriptionService) SubmitTransactionRef(userID uint, subscriptionID int64, transactionID string) (*models.UserSubscription, error) {
	if transactionID == "" {
		return nil, validation("Transaction ID is required")
	}

	var sub models.UserSubscription
	err := s.db.Where("subscription_id = ? AND user_id = ?", subscriptionID, userID).First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("User subscription not found or unauthorized")
		}
		return nil, fmt.Errorf("failed to load subscription %d: %w", subscriptionID, err)
	}

	sub.TransactionID = transactionID
	if err := s.db.Save(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to store transaction reference: %w", err)
	}
	return &sub, nil
}

// AdminVerify sets the payment status on a purchase (verified or failed).
func (s *SubscriptionService) AdminVerify(subscriptionID int64, status models.SubscriptionStatus) (*models.UserSubscription, error) {
	switch status {
	case models.SubscriptionVerified, models.SubscriptionFailed:
	default:
		return nil, validation("Invalid subscription payment status: %s", status)
	}

	var sub models.UserSubscription
	err := s.db.Where("subscription_id = ?", subscriptionID).First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFound("User subscription not found")
		}
		return nil, fmt.Errorf("failed to load subscription %d: %w", subscriptionID, err)
	}

	sub.PaymentStatus = status
	if err := s.db.Save(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to update subscription status: %w", err)
	}
	return &sub, nil
}

// ListForUser returns the user's purchases newest first, expiring stale ones
// on the way out.
func (s *SubscriptionService) ListForUser(userID uint) ([]models.UserSubscription, error) {
	now := time.Now()
	err := s.db.Model(&models.UserSubscription{}).
		Where("user_id = ? AND payment_status = ? AND end_date < ?", userID, models.SubscriptionVerified, now).
		Updates(map[string]interface{}{
			"payment_status": models.SubscriptionExpired,
			"posts_used":     0,
			"bids_used":      0,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to expire stale subscriptions: %w", err)
	}

	var subs []models.UserSubscription
	err = s.db.Preload("Plan").Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}
