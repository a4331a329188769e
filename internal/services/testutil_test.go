package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"musiclancer/internal/models"
	"musiclancer/internal/services"
)

var userSeq int64

// newTestDB opens an in-memory SQLite database with the full schema. The pool
// is pinned to one connection so every query sees the same :memory: database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Counter{},
		&models.Project{},
		&models.Bid{},
		&models.ProjectPayment{},
		&models.ProjectWork{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
		&models.Notification{},
		&models.ChatMessage{},
		&models.Booking{},
	))
	return db
}

type testServices struct {
	db            *gorm.DB
	quotas        *services.QuotaService
	upi           *services.UPIService
	notifier      *services.NotificationService
	projects      *services.ProjectService
	bids          *services.BidService
	payments      *services.PaymentService
	work          *services.WorkService
	subscriptions *services.SubscriptionService
	chat          *services.ChatService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := newTestDB(t)

	quotas := services.NewQuotaService(db)
	upi := services.NewUPIService()
	notifier := services.NewNotificationService(db, nil)
	payments := services.NewPaymentService(db, upi, notifier)

	return &testServices{
		db:            db,
		quotas:        quotas,
		upi:           upi,
		notifier:      notifier,
		projects:      services.NewProjectService(db, quotas, upi, notifier),
		bids:          services.NewBidService(db, quotas),
		payments:      payments,
		work:          services.NewWorkService(db, payments, notifier),
		subscriptions: services.NewSubscriptionService(db, upi),
		chat:          services.NewChatService(db, payments),
	}
}

func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := atomic.AddInt64(&userSeq, 1)
	user := &models.User{
		FullName:     fmt.Sprintf("User %d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		MobileNumber: fmt.Sprintf("9%09d", n),
		Password:     "hashed-password",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// grantSubscription gives the user an already verified subscription so tests
// can exceed the single free post/bid.
func grantSubscription(t *testing.T, db *gorm.DB, userID uint, postLimit, bidLimit int) *models.UserSubscription {
	t.Helper()
	subscriptionID, err := services.NextSequence(db, models.CounterSubscriptionID)
	require.NoError(t, err)

	sub := &models.UserSubscription{
		SubscriptionID:     subscriptionID,
		UserID:             userID,
		PlanID:             1,
		PlanName:           "Test Plan",
		PlanPrice:          499,
		PlanPostLimit:      postLimit,
		PlanBidLimit:       bidLimit,
		PlanValidityMonths: 1,
		PaymentStatus:      models.SubscriptionVerified,
		EndDate:            time.Now().AddDate(0, 1, 0),
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func createOpenProject(t *testing.T, svc *testServices, ownerID uint) *models.Project {
	t.Helper()
	project, err := svc.projects.Create(ownerID, services.CreateProjectInput{
		ProjectName:  "Mix and master EP",
		Description:  "Four tracks, stems provided",
		Skills:       []string{"mixing", "mastering"},
		MinBudget:    1000,
		MaxBudget:    5000,
		DurationDays: 14,
	})
	require.NoError(t, err)
	return project
}

// setupAssignedProject runs create -> bid -> finalize and returns the pieces.
func setupAssignedProject(t *testing.T, svc *testServices, ownerID, bidderID uint, amount float64) (*models.Project, *models.Bid, *models.ProjectPayment) {
	t.Helper()

	project := createOpenProject(t, svc, ownerID)
	bid, err := svc.bids.Place(bidderID, project.ProjectID, amount, "I can do this")
	require.NoError(t, err)

	result, err := svc.projects.Finalize(ownerID, project.ProjectID, bid.BidID, amount)
	require.NoError(t, err)

	return result.Project, bid, result.Payment
}
