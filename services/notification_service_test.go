package services

import (
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"chat-relay/mocks"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotificationService_Delegates_Per_User(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockINotificationRepository(ctrl)
	svc := NewNotificationService(repo)
	id := uuid.New()

	repo.EXPECT().List("alice").Return([]chat.Notification{{ID: id, Username: "alice"}}, nil)
	repo.EXPECT().MarkRead("alice", id).Return(nil)
	repo.EXPECT().MarkRead("alice", gomock.Not(id)).Return(errors.ErrNotificationAbsent)
	repo.EXPECT().DeleteAll("alice").Return(nil)

	notifications, err := svc.List("alice")
	req.NoError(err)
	req.Len(notifications, 1)
	req.NoError(svc.MarkRead("alice", id))
	req.ErrorIs(svc.MarkRead("alice", uuid.New()), errors.ErrNotificationAbsent)
	req.NoError(svc.ClearAll("alice"))
}
