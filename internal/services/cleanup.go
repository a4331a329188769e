package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"musiclancer/internal/models"
)

// staleAfter is how long a pending record may sit unpaid before the
// janitor removes it. Escrow payments are never swept: deleting one
// would orphan an already assigned project.
const staleAfter = 15 * 24 * time.Hour

// CleanupService periodically removes abandoned pending purchases.
type CleanupService struct {
	db *gorm.DB
}

func NewCleanupService(db *gorm.DB) *CleanupService {
	return &CleanupService{db: db}
}

// DeleteStaleSubscriptions removes subscription purchases that were
// never paid for within the grace window.
func (s *CleanupService) DeleteStaleSubscriptions(now time.Time) (int64, error) {
	cutoff := now.Add(-staleAfter)
	res := s.db.
		Where("payment_status = ? AND created_at < ?", models.SubscriptionPending, cutoff).
		Delete(&models.UserSubscription{})
	return res.RowsAffected, res.Error
}

// DeleteStaleBookings removes studio bookings abandoned at the payment step.
func (s *CleanupService) DeleteStaleBookings(now time.Time) (int64, error) {
	cutoff := now.Add(-staleAfter)
	res := s.db.
		Where("payment_status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Delete(&models.Booking{})
	return res.RowsAffected, res.Error
}

// Sweep runs one cleanup pass.
func (s *CleanupService) Sweep(now time.Time) {
	if n, err := s.DeleteStaleSubscriptions(now); err != nil {
		log.Printf("cleanup: stale subscriptions: %v", err)
	} else if n > 0 {
		log.Printf("cleanup: removed %d stale pending subscriptions", n)
	}

	if n, err := s.DeleteStaleBookings(now); err != nil {
		log.Printf("cleanup: stale bookings: %v", err)
	} else if n > 0 {
		log.Printf("cleanup: removed %d stale pending bookings", n)
	}
}

// Run sweeps immediately and then once per interval until stop is closed.
func (s *CleanupService) Run(interval time.Duration, stop <-chan struct{}) {
	s.Sweep(time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(time.Now())
		case <-stop:
			return
		}
	}
}
