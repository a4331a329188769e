package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"musiclancer/internal/models"
	"musiclancer/internal/services"
)

func TestCleanupRemovesStalePendingSubscriptions(t *testing.T) {
	svc := newTestServices(t)
	user := createUser(t, svc.db)
	cleanup := services.NewCleanupService(svc.db)

	stale := grantSubscription(t, svc.db, user.ID, 5, 10)
	require.NoError(t, svc.db.Model(stale).Updates(map[string]interface{}{
		"payment_status": models.SubscriptionPending,
		"created_at":     time.Now().Add(-16 * 24 * time.Hour),
	}).Error)

	recent := grantSubscription(t, svc.db, user.ID, 5, 10)
	require.NoError(t, svc.db.Model(recent).Update("payment_status", models.SubscriptionPending).Error)

	verified := grantSubscription(t, svc.db, user.ID, 5, 10)
	require.NoError(t, svc.db.Model(verified).Update("created_at", time.Now().Add(-30*24*time.Hour)).Error)

	removed, err := cleanup.DeleteStaleSubscriptions(time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	var remaining []models.UserSubscription
	require.NoError(t, svc.db.Where("user_id = ?", user.ID).Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, sub := range remaining {
		require.NotEqual(t, stale.SubscriptionID, sub.SubscriptionID)
	}
}

func TestCleanupRemovesStalePendingBookings(t *testing.T) {
	svc := newTestServices(t)
	user := createUser(t, svc.db)
	cleanup := services.NewCleanupService(svc.db)

	stale := models.Booking{
		BookingID:     1,
		StudioID:      1,
		UserID:        user.ID,
		BookingDate:   time.Now().AddDate(0, 0, 7),
		Amount:        1500,
		PaymentStatus: models.PaymentPending,
	}
	require.NoError(t, svc.db.Create(&stale).Error)
	require.NoError(t, svc.db.Model(&stale).Update("created_at", time.Now().Add(-20*24*time.Hour)).Error)

	paid := models.Booking{
		BookingID:     2,
		StudioID:      1,
		UserID:        user.ID,
		BookingDate:   time.Now().AddDate(0, 0, 7),
		Amount:        1500,
		PaymentStatus: models.PaymentVerified,
	}
	require.NoError(t, svc.db.Create(&paid).Error)
	require.NoError(t, svc.db.Model(&paid).Update("created_at", time.Now().Add(-20*24*time.Hour)).Error)

	removed, err := cleanup.DeleteStaleBookings(time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	var remaining []models.Booking
	require.NoError(t, svc.db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, int64(2), remaining[0].BookingID)
}

func TestCleanupNeverTouchesEscrowPayments(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	bidder := createUser(t, svc.db)
	cleanup := services.NewCleanupService(svc.db)

	_, _, payment := setupAssignedProject(t, svc, owner.ID, bidder.ID, 2000)
	require.NoError(t, svc.db.Model(&models.ProjectPayment{}).
		Where("payment_id = ?", payment.PaymentID).
		Update("created_at", time.Now().Add(-60*24*time.Hour)).Error)

	cleanup.Sweep(time.Now())

	var count int64
	require.NoError(t, svc.db.Model(&models.ProjectPayment{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
