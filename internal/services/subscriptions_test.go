package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"musiclancer/internal/models"
	"musiclancer/internal/services"
)

func seedPlan(t *testing.T, svc *testServices) *models.SubscriptionPlan {
	t.Helper()
	plan := &models.SubscriptionPlan{
		PlanName:       "Basic",
		Price:          199,
		PostLimit:      5,
		BidLimit:       10,
		ValidityMonths: 1,
	}
	require.NoError(t, svc.db.Create(plan).Error)
	return plan
}

func TestPurchaseUnknownPlan(t *testing.T) {
	svc := newTestServices(t)
	user := createUser(t, svc.db)

	_, err := svc.subscriptions.Purchase(user.ID, 42)
	require.True(t, services.IsKind(err, services.KindNotFound))
}

func TestPurchaseCopiesPlanSnapshot(t *testing.T) {
	svc := newTestServices(t)
	user := createUser(t, svc.db)
	plan := seedPlan(t, svc)

	result, err := svc.subscriptions.Purchase(user.ID, plan.ID)
	require.NoError(t, err)

	sub := result.Subscription
	require.Equal(t, int64(1), sub.SubscriptionID)
	require.Equal(t, models.SubscriptionPending, sub.PaymentStatus)
	require.Equal(t, plan.PlanName, sub.PlanName)
	require.Equal(t, plan.Price, sub.PlanPrice)
	require.Equal(t, plan.PostLimit, sub.PlanPostLimit)
	require.Equal(t, plan.BidLimit, sub.PlanBidLimit)
	require.True(t, sub.EndDate.After(time.Now()))

	require.Equal(t, "SubId_1", result.Request.Note)
	require.Contains(t, result.Request.UPIURI, "upi://pay?")

	// Plan edits after purchase must not change what was bought.
	require.NoError(t, svc.db.Model(plan).Update("post_limit", 99).Error)
	var reloaded models.UserSubscription
	require.NoError(t, svc.db.Where("subscription_id = ?", sub.SubscriptionID).First(&reloaded).Error)
	require.Equal(t, 5, reloaded.PlanPostLimit)
}

func TestPurchaseReusesPendingSamePlan(t *testing.T) {
	svc := newTestServices(t)
	user := createUser(t, svc.db)
	plan := seedPlan(t, svc)

	first, err := svc.subscriptions.Purchase(user.ID, plan.ID)
	require.NoError(t, err)
	second, err := svc.subscriptions.Purchase(user.ID, plan.ID)
	require.NoError(t, err)

	require.Equal(t, first.Subscription.SubscriptionID, second.Subscription.SubscriptionID)

	var count int64
	require.NoError(t, svc.db.Model(&models.UserSubscription{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSubmitSubscriptionTransactionRefIsOwnerScoped(t *testing.T) {
	svc := newTestServices(t)
	user := createUser(t, svc.db)
	other := createUser(t, svc.db)
	plan := seedPlan(t, svc)

	result, err := svc.subscriptions.Purchase(user.ID, plan.ID)
	require.NoError(t, err)

	_, err = svc.subscriptions.SubmitTransactionRef(other.ID, result.Subscription.SubscriptionID, "UPI999")
	require.True(t, services.IsKind(err, services.KindNotFound))

	sub, err := svc.subscriptions.SubmitTransactionRef(user.ID, result.Subscription.SubscriptionID, "UPI999")
	require.NoError(t, err)
	require.Equal(t, "UPI999", sub.TransactionID)
	require.Equal(t, models.SubscriptionPending, sub.PaymentStatus)
}

func TestAdminVerifyActivatesQuota(t *testing.T) {
	svc := newTestServices(t)
	user := createUser(t, svc.db)
	plan := seedPlan(t, svc)

	result, err := svc.subscriptions.Purchase(user.ID, plan.ID)
	require.NoError(t, err)

	_, err = svc.subscriptions.AdminVerify(result.Subscription.SubscriptionID, models.SubscriptionExpired)
	require.True(t, services.IsKind(err, services.KindValidation))

	sub, err := svc.subscriptions.AdminVerify(result.Subscription.SubscriptionID, models.SubscriptionVerified)
	require.NoError(t, err)
	require.Equal(t, models.SubscriptionVerified, sub.PaymentStatus)

	decision, err := svc.quotas.CheckPostQuota(user.ID)
	require.NoError(t, err)
	require.True(t, decision.Allowed)
	require.False(t, decision.IsFree)
}

func TestFailedPurchaseGrantsNothing(t *testing.T) {
	svc := newTestServices(t)
	user := createUser(t, svc.db)
	plan := seedPlan(t, svc)

	result, err := svc.subscriptions.Purchase(user.ID, plan.ID)
	require.NoError(t, err)

	_, err = svc.subscriptions.AdminVerify(result.Subscription.SubscriptionID, models.SubscriptionFailed)
	require.NoError(t, err)

	decision, err := svc.quotas.CheckPostQuota(user.ID)
	require.NoError(t, err)
	require.True(t, decision.Allowed)
	require.True(t, decision.IsFree, "a failed purchase must fall back to the free tier")
}

func TestListForUserExpiresStaleEntries(t *testing.T) {
	svc := newTestServices(t)
	user := createUser(t, svc.db)

	sub := grantSubscription(t, svc.db, user.ID, 5, 10)
	require.NoError(t, svc.db.Model(sub).Updates(map[string]interface{}{
		"end_date":   time.Now().Add(-time.Hour),
		"posts_used": 2,
	}).Error)

	subs, err := svc.subscriptions.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, models.SubscriptionExpired, subs[0].PaymentStatus)
	require.Equal(t, 0, subs[0].PostsUsed)
}
