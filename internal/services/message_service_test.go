package services

import (
	"context"
	"testing"
	"time"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(id, from, to string, projectID *string, read bool, at time.Time) models.Message {
	m := models.Message{
		SenderID:   from,
		ReceiverID: to,
		ProjectID:  projectID,
		Content:    "msg " + id,
		IsRead:     read,
	}
	m.ID = id
	m.CreatedAt = at
	return m
}

func TestGroupConversations(t *testing.T) {
	now := time.Now()
	// от новых к старым, как отдает FindForUser
	msgs := []models.Message{
		message("m3", "p1", "me", nil, false, now),
		message("m2", "me", "p2", nil, false, now.Add(-time.Minute)),
		message("m1", "me", "p1", nil, true, now.Add(-2*time.Minute)),
	}

	got := GroupConversations("me", msgs)
	require.Len(t, got, 2)

	assert.Equal(t, "p1", got[0].PartnerID)
	assert.Equal(t, "m3", got[0].LastMessage.ID)
	assert.Equal(t, 1, got[0].UnreadCount)

	assert.Equal(t, "p2", got[1].PartnerID)
	assert.Equal(t, "m2", got[1].LastMessage.ID)
	// непрочитанное исходящее не считается
	assert.Equal(t, 0, got[1].UnreadCount)
}

func TestGroupConversationsSplitsByProject(t *testing.T) {
	now := time.Now()
	project := "0b0c9d43-8a8a-4c43-9a35-3f1f3d0b7c11"
	msgs := []models.Message{
		message("m2", "p1", "me", &project, false, now),
		message("m1", "p1", "me", nil, false, now.Add(-time.Minute)),
	}

	got := GroupConversations("me", msgs)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].ProjectID)
	assert.Equal(t, project, *got[0].ProjectID)
	assert.Nil(t, got[1].ProjectID)
}

func TestGroupConversationsEmpty(t *testing.T) {
	got := GroupConversations("me", nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSendMessageToSelf(t *testing.T) {
	svc := NewMessageService(&mockMessageRepo{}, nil, &mockProjectRepo{}, nil)
	_, err := svc.SendMessage(context.Background(), testDB(), "me", &dto.SendMessageRequest{ReceiverID: "me", Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrCannotMessageSelf)
}

func TestGetHistoryValidatesProject(t *testing.T) {
	svc := NewMessageService(&mockMessageRepo{}, nil, &mockProjectRepo{}, nil)
	bad := "not-a-uuid"
	_, err := svc.GetHistory(context.Background(), testDB(), "me", "p1", &bad)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestMarkAsReadOnlyReceiver(t *testing.T) {
	repo := &mockMessageRepo{}
	m := message("m1", "p1", "me", nil, false, time.Now())
	repo.On("FindByID", "m1").Return(&m, nil)
	repo.On("MarkAsRead", "m1").Return(nil)
	svc := NewMessageService(repo, nil, &mockProjectRepo{}, nil)

	err := svc.MarkAsRead(context.Background(), testDB(), "p1", "m1")
	assert.ErrorIs(t, err, apperrors.ErrNotMessageReceiver)

	require.NoError(t, svc.MarkAsRead(context.Background(), testDB(), "me", "m1"))
	repo.AssertNumberOfCalls(t, "MarkAsRead", 1)
}

func TestGetThread(t *testing.T) {
	repo := &mockMessageRepo{}
	root := message("m1", "p1", "me", nil, true, time.Now())
	reply := message("m2", "me", "p1", nil, false, time.Now())
	repo.On("FindByID", "m1").Return(&root, nil)
	repo.On("FindReplies", "m1").Return([]models.Message{reply}, nil)
	svc := NewMessageService(repo, nil, &mockProjectRepo{}, nil)

	thread, err := svc.GetThread(context.Background(), testDB(), "me", "m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", thread.Message.ID)
	assert.Len(t, thread.Replies, 1)

	_, err = svc.GetThread(context.Background(), testDB(), "stranger", "m1")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode)
}
