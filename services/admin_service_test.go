package services

import (
	"chat-relay/auth"
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"chat-relay/mocks"
	"context"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type adminFixture struct {
	svc           *AdminService
	users         *mocks.MockIUserRepository
	notifications *mocks.MockINotificationRepository
	chat          *mocks.MockChatControl
	notifier      *mocks.MockAccountNotifier
}

func newAdminFixture(t *testing.T) adminFixture {
	ctrl := gomock.NewController(t)
	f := adminFixture{
		users:         mocks.NewMockIUserRepository(ctrl),
		notifications: mocks.NewMockINotificationRepository(ctrl),
		chat:          mocks.NewMockChatControl(ctrl),
		notifier:      mocks.NewMockAccountNotifier(ctrl),
	}
	f.svc = NewAdminService(f.users, f.notifications, f.chat, f.notifier, logs.GetLoggerFromLevel(slog.LevelError))
	return f
}

func TestAdminService_ListUsers_With_Online_Flag(t *testing.T) {
	req := require.New(t)
	f := newAdminFixture(t)

	f.users.EXPECT().ListUsers().Return([]chat.User{{Username: "alice"}, {Username: "bob"}}, nil)
	f.chat.EXPECT().IsOnline("alice").Return(true)
	f.chat.EXPECT().IsOnline("bob").Return(false)

	views, err := f.svc.ListUsers(context.Background())

	req.NoError(err)
	req.Len(views, 2)
	req.True(views[0].Online)
	req.False(views[1].Online)
}

func TestAdminService_CreateUser(t *testing.T) {
	t.Run("should create an approved account", func(t *testing.T) {
		req := require.New(t)
		f := newAdminFixture(t)

		f.users.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(user chat.User) (chat.User, error) {
			return user, nil
		})

		user, err := f.svc.CreateUser(context.Background(), auth.CreateUserRequest{
			Username: "agent1", Password: "secret1", Role: "agent",
		})

		req.NoError(err)
		req.Equal(chat.RoleAgent, user.Role)
		req.True(user.IsApproved())
		req.False(user.EmailNotifications)
	})

	t.Run("should refuse an unknown role", func(t *testing.T) {
		req := require.New(t)
		f := newAdminFixture(t)
		f.users.EXPECT().CreateUser(gomock.Any()).Times(0)

		_, err := f.svc.CreateUser(context.Background(), auth.CreateUserRequest{
			Username: "agent1", Password: "secret1", Role: "superuser",
		})

		req.ErrorIs(err, errors.ErrInvalidRole)
	})
}

func TestAdminService_UpdateUser_Changes_Role(t *testing.T) {
	req := require.New(t)
	f := newAdminFixture(t)

	f.users.EXPECT().FindByUsername("alice").Return(chat.User{Username: "alice", Role: chat.RoleUser}, nil)
	f.users.EXPECT().Persist(gomock.Any()).Return(nil)

	user, err := f.svc.UpdateUser(context.Background(), "alice", lo.ToPtr(chat.RoleAgent), nil)

	req.NoError(err)
	req.Equal(chat.RoleAgent, user.Role)

	f.users.EXPECT().FindByUsername("alice").Return(chat.User{Username: "alice", Role: chat.RoleUser}, nil)
	_, err = f.svc.UpdateUser(context.Background(), "alice", lo.ToPtr(chat.Role("root")), nil)
	req.ErrorIs(err, errors.ErrInvalidRole)
}

func TestAdminService_ApproveUser_Notifies(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newAdminFixture(t)
	pending := chat.User{Username: "alice", Status: chat.StatusPending}
	approved := pending
	approved.Status = chat.StatusApproved

	// Given a pending registration
	f.users.EXPECT().FindByUsername("alice").Return(pending, nil)

	// Then the account is persisted before the owner is told
	gomock.InOrder(
		f.users.EXPECT().Persist(approved).Return(nil),
		f.notifier.EXPECT().NotifyAccount(ctx, approved, gomock.Any()),
	)

	// When the admin approves it
	user, err := f.svc.ApproveUser(ctx, "alice")

	req.NoError(err)
	req.True(user.IsApproved())
}

func TestAdminService_RejectUser(t *testing.T) {
	req := require.New(t)
	f := newAdminFixture(t)

	f.users.EXPECT().FindByUsername("alice").Return(chat.User{Username: "alice", Status: chat.StatusPending}, nil)
	f.users.EXPECT().DeleteUser("alice").Return(nil)
	req.NoError(f.svc.RejectUser(context.Background(), "alice"))

	// An approved account is not a registration anymore
	f.users.EXPECT().FindByUsername("bob").Return(chat.User{Username: "bob", Status: chat.StatusApproved}, nil)
	req.ErrorIs(f.svc.RejectUser(context.Background(), "bob"), errors.ErrAccountNotPending)
}

func TestAdminService_DeleteUser_Kicks_Live_Session(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newAdminFixture(t)

	gomock.InOrder(
		f.users.EXPECT().DeleteUser("alice").Return(nil),
		f.notifications.EXPECT().DeleteAll("alice").Return(nil),
		f.chat.EXPECT().Kick(ctx, "alice"),
	)

	req.NoError(f.svc.DeleteUser(ctx, "alice"))

	// An unknown account is reported and nobody is kicked
	f.users.EXPECT().DeleteUser("ghost").Return(errors.ErrUserNotFound)
	req.ErrorIs(f.svc.DeleteUser(ctx, "ghost"), errors.ErrUserNotFound)
}

func TestAdminService_Chat_Controls(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newAdminFixture(t)

	f.chat.EXPECT().Lock(ctx, "alice").Return(nil)
	f.chat.EXPECT().Unlock(ctx, "alice").Return(nil)
	f.chat.EXPECT().ClearChat(ctx).Return(3, nil)
	f.chat.EXPECT().SetGroupInfo(ctx, chat.GroupInfo{Name: "Team", Icon: "team.png"}).Return(nil)

	req.NoError(f.svc.LockUser(ctx, "alice"))
	req.NoError(f.svc.UnlockUser(ctx, "alice"))
	removed, err := f.svc.ClearChat(ctx)
	req.NoError(err)
	req.Equal(3, removed)
	req.NoError(f.svc.SetGroupInfo(ctx, " Team ", "team.png"))
	req.ErrorIs(f.svc.SetGroupInfo(ctx, "  ", ""), errors.ErrInvalidSettings)
}
