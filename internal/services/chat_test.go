package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"musiclancer/internal/models"
	"musiclancer/internal/services"
)

func TestChatIsLockedUntilPaymentVerified(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	bidder := createUser(t, svc.db)

	project, _, payment := setupAssignedProject(t, svc, owner.ID, bidder.ID, 2000)

	_, err := svc.chat.Initiate(owner.ID, project.ProjectID)
	require.True(t, services.IsKind(err, services.KindForbidden))

	_, err = svc.payments.AdminVerify(payment.PaymentID, models.PaymentVerified)
	require.NoError(t, err)

	state, err := svc.chat.Initiate(owner.ID, project.ProjectID)
	require.NoError(t, err)
	require.Equal(t, project.ChatRoomID, state.ChatRoomID)
	require.Empty(t, state.Messages)
}

func TestChatIsParticipantsOnly(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	bidder := createUser(t, svc.db)
	stranger := createUser(t, svc.db)

	project := setupVerifiedProject(t, svc, owner.ID, bidder.ID)

	_, err := svc.chat.Initiate(stranger.ID, project.ProjectID)
	require.True(t, services.IsKind(err, services.KindForbidden))

	_, err = svc.chat.Post(stranger.ID, project.ProjectID, "let me in")
	require.True(t, services.IsKind(err, services.KindForbidden))

	_, err = svc.chat.Initiate(bidder.ID, project.ProjectID)
	require.NoError(t, err)
}

func TestChatPostAndHistoryPaging(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	bidder := createUser(t, svc.db)

	project := setupVerifiedProject(t, svc, owner.ID, bidder.ID)

	for i := 1; i <= 5; i++ {
		sender := owner.ID
		if i%2 == 0 {
			sender = bidder.ID
		}
		msg, err := svc.chat.Post(sender, project.ProjectID, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
		require.NotEmpty(t, msg.MessageID)
		require.Equal(t, project.ChatRoomID, msg.ChatRoomID)
	}

	page, err := svc.chat.Messages(owner.ID, project.ProjectID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)

	all, err := svc.chat.Messages(bidder.ID, project.ProjectID, 30, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)

	_, err = svc.chat.Post(owner.ID, project.ProjectID, "")
	require.True(t, services.IsKind(err, services.KindValidation))
}

func TestChatRoomListCategories(t *testing.T) {
	svc := newTestServices(t)
	owner := createUser(t, svc.db)
	bidder := createUser(t, svc.db)

	project := setupVerifiedProject(t, svc, owner.ID, bidder.ID)

	ownerRooms, err := svc.chat.List(owner.ID)
	require.NoError(t, err)
	require.Len(t, ownerRooms, 1)
	require.Equal(t, "Project", ownerRooms[0].Category)
	require.Equal(t, project.ChatRoomID, ownerRooms[0].ChatRoomID)

	bidderRooms, err := svc.chat.List(bidder.ID)
	require.NoError(t, err)
	require.Len(t, bidderRooms, 1)
	require.Equal(t, "Bid", bidderRooms[0].Category)
}
