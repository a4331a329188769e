package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"musiclancer/internal/models"
	"musiclancer/internal/services"
)

func TestCreateProjectValidation(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)

	_, err := svc.projects.Create(owner.ID, services.CreateProjectInput{
		ProjectName:  "Backwards budget",
		Description:  "x",
		Skills:       []string{"mixing"},
		MinBudget:    5000,
		MaxBudget:    1000,
		DurationDays: 7,
	})
	require.True(t, services.IsKind(err, services.KindValidation))

	_, err = svc.projects.Create(owner.ID, services.CreateProjectInput{
		ProjectName:  "Zero duration",
		Description:  "x",
		Skills:       []string{"mixing"},
		MinBudget:    100,
		MaxBudget:    200,
		DurationDays: 0,
	})
	require.True(t, services.IsKind(err, services.KindValidation))
}

func TestCreateProjectAllocatesIDAndConsumesQuota(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)

	project := createOpenProject(t, svc, owner.ID)
	require.Equal(t, int64(1), project.ProjectID)
	require.Equal(t, models.ProjectOpen, project.Status)
	require.Equal(t, "chat_1", project.ChatRoomID)

	var reloaded models.User
	require.NoError(t, svc.db.First(&reloaded, owner.ID).Error)
	require.Equal(t, 1, reloaded.FreePostsUsed)

	// Free tier is spent; the second post is refused.
	_, err := svc.projects.Create(owner.ID, services.CreateProjectInput{
		ProjectName:  "Second project",
		Description:  "x",
		Skills:       []string{"mixing"},
		MinBudget:    100,
		MaxBudget:    200,
		DurationDays: 7,
	})
	require.True(t, services.IsKind(err, services.KindQuotaExceeded))
}

func TestBrowseExcludesOwnAndNonOpenProjects(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	other := createUser(t, svc.db)
	browser := createUser(t, svc.db)

	mine := createOpenProject(t, svc, owner.ID)
	theirs := createOpenProject(t, svc, other.ID)

	listed, err := svc.projects.Browse(owner.ID, services.BrowseFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, theirs.ProjectID, listed[0].ProjectID)

	// Assigned projects drop out of the browse feed.
	require.NoError(t, svc.db.Model(&models.Project{}).
		Where("project_id = ?", theirs.ProjectID).
		Update("status", models.ProjectAssigned).Error)

	listed, err = svc.projects.Browse(browser.ID, services.BrowseFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, mine.ProjectID, listed[0].ProjectID)
}

func TestBrowseSkillFilter(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	browser := createUser(t, svc.db)
	grantSubscription(t, svc.db, owner.ID, 5, 5)

	createOpenProject(t, svc, owner.ID) // mixing, mastering
	_, err := svc.projects.Create(owner.ID, services.CreateProjectInput{
		ProjectName:  "Vocal tuning",
		Description:  "x",
		Skills:       []string{"vocals"},
		MinBudget:    100,
		MaxBudget:    300,
		DurationDays: 3,
	})
	require.NoError(t, err)

	listed, err := svc.projects.Browse(browser.ID, services.BrowseFilter{Skills: []string{"vocals"}})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Vocal tuning", listed[0].ProjectName)
}

func TestUpdateInfoRequiresOwnerAndOpenStatus(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	stranger := createUser(t, svc.db)

	project := createOpenProject(t, svc, owner.ID)

	_, err := svc.projects.UpdateInfo(stranger.ID, project.ProjectID, "nope")
	require.True(t, services.IsKind(err, services.KindForbidden))

	updated, err := svc.projects.UpdateInfo(owner.ID, project.ProjectID, "stems are 48kHz")
	require.NoError(t, err)
	require.Equal(t, "stems are 48kHz", updated.AdditionalInfo)

	require.NoError(t, svc.db.Model(&models.Project{}).
		Where("project_id = ?", project.ProjectID).
		Update("status", models.ProjectAssigned).Error)

	_, err = svc.projects.UpdateInfo(owner.ID, project.ProjectID, "too late")
	require.True(t, services.IsKind(err, services.KindInvalidState))
}

func TestFinalizeSplitsAmountAndCreatesEscrow(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	bidder := createUser(t, svc.db)

	project, bid, payment := setupAssignedProject(t, svc, owner.ID, bidder.ID, 3000)

	require.Equal(t, models.ProjectAssigned, project.Status)
	require.NotNil(t, project.AssignedTo)
	require.Equal(t, bidder.ID, *project.AssignedTo)

	var reloadedBid models.Bid
	require.NoError(t, svc.db.Where("bid_id = ?", bid.BidID).First(&reloadedBid).Error)
	require.Equal(t, models.BidAccepted, reloadedBid.Status)

	require.Equal(t, float64(600), payment.AdminCut)
	require.Equal(t, float64(2400), payment.FinalAmount)
	require.Equal(t, payment.BidAmount, payment.AdminCut+payment.FinalAmount)
	require.Equal(t, models.PaymentPending, payment.PaymentStatus)
}

func TestFinalizeRendersCollectionRequest(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	bidder := createUser(t, svc.db)

	project := createOpenProject(t, svc, owner.ID)
	bid, err := svc.bids.Place(bidder.ID, project.ProjectID, 1500, "pick me")
	require.NoError(t, err)

	result, err := svc.projects.Finalize(owner.ID, project.ProjectID, bid.BidID, 1500)
	require.NoError(t, err)

	require.Equal(t, "ProjId_1_PayId_1", result.Request.Note)
	require.Contains(t, result.Request.UPIURI, "upi://pay?")
	require.Contains(t, result.Request.UPIURI, "am=1500")
	require.True(t, strings.HasPrefix(result.Request.QRCode, "data:image/png;base64,"))
}

func TestFinalizeAuthorizationAndStateChecks(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	bidder := createUser(t, svc.db)
	stranger := createUser(t, svc.db)

	project := createOpenProject(t, svc, owner.ID)
	bid, err := svc.bids.Place(bidder.ID, project.ProjectID, 2000, "pick me")
	require.NoError(t, err)

	_, err = svc.projects.Finalize(stranger.ID, project.ProjectID, bid.BidID, 2000)
	require.True(t, services.IsKind(err, services.KindForbidden))

	_, err = svc.projects.Finalize(owner.ID, project.ProjectID, 999, 2000)
	require.True(t, services.IsKind(err, services.KindNotFound))

	_, err = svc.projects.Finalize(owner.ID, project.ProjectID, bid.BidID, 2000)
	require.NoError(t, err)

	// Project left the open state, so a second finalize is refused.
	_, err = svc.projects.Finalize(owner.ID, project.ProjectID, bid.BidID, 2000)
	require.True(t, services.IsKind(err, services.KindInvalidState))
}

func TestFinalizeLeavesLosingBidsPending(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	winner := createUser(t, svc.db)
	loser := createUser(t, svc.db)

	project := createOpenProject(t, svc, owner.ID)
	winning, err := svc.bids.Place(winner.ID, project.ProjectID, 2000, "winner")
	require.NoError(t, err)
	losing, err := svc.bids.Place(loser.ID, project.ProjectID, 1800, "loser")
	require.NoError(t, err)

	_, err = svc.projects.Finalize(owner.ID, project.ProjectID, winning.BidID, 2000)
	require.NoError(t, err)

	var reloaded models.Bid
	require.NoError(t, svc.db.Where("bid_id = ?", losing.BidID).First(&reloaded).Error)
	require.Equal(t, models.BidPending, reloaded.Status)
}
