package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"musiclancer/internal/models"
)

// freeQuotaWindow is the rolling window for the single free post/bid.
const freeQuotaWindow = 90 * 24 * time.Hour

type quotaKind int

const (
	quotaPosts quotaKind = iota
	quotaBids
)

// QuotaDecision is the outcome of a post/bid quota check. IsFree records which
// tier allowed the action so consumption debits the right counter.
type QuotaDecision struct {
	Allowed bool   `json:"allowed"`
	IsFree  bool   `json:"is_free"`
	Message string `json:"message,omitempty"`
}

// QuotaService gates project posts and bid placements against free-tier and
// subscription limits. Checks normalize expired state lazily; the matching
// Consume call must run only after the gated write succeeds.
type QuotaService struct {
	db *gorm.DB
}

func NewQuotaService(db *gorm.DB) *QuotaService {
	return &QuotaService{db: db}
}

func (s *QuotaService) CheckPostQuota(userID uint) (QuotaDecision, error) {
	return s.check(userID, quotaPosts)
}

func (s *QuotaService) CheckBidQuota(userID uint) (QuotaDecision, error) {
	return s.check(userID, quotaBids)
}

func (s *QuotaService) check(userID uint, kind quotaKind) (QuotaDecision, error) {
	subs, err := s.expireStale(userID)
	if err != nil {
		return QuotaDecision{}, err
	}

	now := time.Now()
	var active []models.UserSubscription
	for _, sub := range subs {
		if sub.Active(now) {
			active = append(active, sub)
		}
	}

	// Any active paid subscription takes over; free tier is ignored entirely.
	if len(active) > 0 {
		var used, limit int
		for _, sub := range active {
			if kind == quotaPosts {
				used += sub.PostsUsed
				limit += sub.PlanPostLimit
			} else {
				used += sub.BidsUsed
				limit += sub.PlanBidLimit
			}
		}
		if used >= limit {
			noun := "posts"
			action := "post more projects"
			if kind == quotaBids {
				noun = "bids"
				action = "place more bids"
			}
			return QuotaDecision{
				Allowed: false,
				Message: fmt.Sprintf("%s limit reached. %d/%d %s used. Please upgrade your subscription to %s.",
					titleNoun(kind), used, limit, noun, action),
			}, nil
		}
		return QuotaDecision{Allowed: true, IsFree: false}, nil
	}

	return s.checkFreeTier(userID, kind)
}

func (s *QuotaService) checkFreeTier(userID uint, kind quotaKind) (QuotaDecision, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return QuotaDecision{Allowed: false, Message: "User not found."}, nil
		}
		return QuotaDecision{}, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	now := time.Now()
	lastReset := user.LastFreePostReset
	if kind == quotaBids {
		lastReset = user.LastFreeBidReset
	}

	// Lazy reset once the 90-day window has elapsed.
	if lastReset != nil && now.Sub(*lastReset) >= freeQuotaWindow {
		updates := map[string]interface{}{}
		if kind == quotaPosts {
			user.FreePostsUsed = 0
			updates["free_posts_used"] = 0
			updates["last_free_post_reset"] = now
		} else {
			user.FreeBidsUsed = 0
			updates["free_bids_used"] = 0
			updates["last_free_bid_reset"] = now
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return QuotaDecision{}, fmt.Errorf("failed to reset free quota for user %d: %w", userID, err)
		}
	}

	used := user.FreePostsUsed
	if kind == quotaBids {
		used = user.FreeBidsUsed
	}
	if used >= 1 {
		if kind == quotaPosts {
			return QuotaDecision{Allowed: false, Message: "Free post limit reached. Please purchase a subscription to post more projects."}, nil
		}
		return QuotaDecision{Allowed: false, Message: "Free bid limit reached. Please purchase a subscription to place more bids."}, nil
	}

	return QuotaDecision{Allowed: true, IsFree: true}, nil
}

// expireStale transitions verified subscriptions past endDate to expired and
// zeroes their usage, then returns the user's subscriptions as now persisted.
func (s *QuotaService) expireStale(userID uint) ([]models.UserSubscription, error) {
	var subs []models.UserSubscription
	if err := s.db.Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load subscriptions for user %d: %w", userID, err)
	}

	now := time.Now()
	for i := range subs {
		sub := &subs[i]
		if sub.PaymentStatus == models.SubscriptionVerified && sub.EndDate.Before(now) {
			sub.PaymentStatus = models.SubscriptionExpired
			sub.PostsUsed = 0
			sub.BidsUsed = 0
			if err := s.db.Model(sub).Updates(map[string]interface{}{
				"payment_status": models.SubscriptionExpired,
				"posts_used":     0,
				"bids_used":      0,
			}).Error; err != nil {
				return nil, fmt.Errorf("failed to expire subscription %d: %w", sub.SubscriptionID, err)
			}
		}
	}
	return subs, nil
}

// ConsumePost debits the tier that allowed a project post.
func (s *QuotaService) ConsumePost(userID uint, isFree bool) error {
	return s.consume(userID, quotaPosts, isFree)
}

// ConsumeBid debits the tier that allowed a bid placement.
func (s *QuotaService) ConsumeBid(userID uint, isFree bool) error {
	return s.consume(userID, quotaBids, isFree)
}

func (s *QuotaService) consume(userID uint, kind quotaKind, isFree bool) error {
	now := time.Now()

	if isFree {
		updates := map[string]interface{}{}
		if kind == quotaPosts {
			updates["free_posts_used"] = gorm.Expr("free_posts_used + 1")
			updates["last_free_post_reset"] = now
		} else {
			updates["free_bids_used"] = gorm.Expr("free_bids_used + 1")
			updates["last_free_bid_reset"] = now
		}
		if err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to consume free quota for user %d: %w", userID, err)
		}
		return nil
	}

	// Debit the most recently created active subscription, not the one
	// nearest expiry.
	var sub models.UserSubscription
	err := s.db.
		Where("user_id = ? AND payment_status = ? AND end_date >= ?", userID, models.SubscriptionVerified, now).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("failed to load active subscription for user %d: %w", userID, err)
	}

	column := "posts_used"
	if kind == quotaBids {
		column = "bids_used"
	}
	if err := s.db.Model(&sub).Update(column, gorm.Expr(column+" + 1")).Error; err != nil {
		return fmt.Errorf("failed to consume subscription quota for user %d: %w", userID, err)
	}
	return nil
}

func titleNoun(kind quotaKind) string {
	if kind == quotaBids {
		return "Bid"
	}
	return "Post"
}
