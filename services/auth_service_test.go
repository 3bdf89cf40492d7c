package services

import (
	"chat-relay/auth"
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"chat-relay/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAuthService(t *testing.T) (*AuthService, *mocks.MockIUserRepository, *mocks.MockChatControl, *auth.TokenIssuer) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIUserRepository(ctrl)
	chatControl := mocks.NewMockChatControl(ctrl)
	tokens := auth.NewTokenIssuer("test-secret", 24*time.Hour)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	return NewAuthService(repo, tokens, chatControl, log), repo, chatControl, tokens
}

func approvedUser(t *testing.T, username, password string) chat.User {
	hash, err := auth.HashSecret(password)
	require.NoError(t, err)
	return chat.User{
		ID:           "uuid-123",
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         chat.RoleUser,
		Status:       chat.StatusApproved,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("should store a pending account when input is valid", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)

		// The repository never sees the plain password
		repo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user chat.User) (chat.User, error) {
				req.Equal("alice", user.Username)
				req.Equal(chat.StatusPending, user.Status)
				req.Equal(chat.RoleUser, user.Role)
				req.Equal(chat.DefaultAvatar, user.Avatar)
				req.True(user.EmailNotifications)
				req.NotEqual("secret1", user.PasswordHash)
				return user, nil
			}).
			Times(1)

		user, err := svc.Register("alice", "alice@example.com", "secret1")

		req.NoError(err)
		req.Equal("alice", user.Username)
	})

	t.Run("should fail when the password is too short", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)

		// Repository should NEVER be called
		repo.EXPECT().CreateUser(gomock.Any()).Times(0)

		_, err := svc.Register("alice", "alice@example.com", "short")

		req.ErrorIs(err, errors.ErrInvalidRequest)
	})

	t.Run("should refuse the group name as a username", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)

		repo.EXPECT().CreateUser(gomock.Any()).Times(0)

		_, err := svc.Register("all", "all@example.com", "secret1")

		req.ErrorIs(err, errors.ErrInvalidRequest)
	})

	t.Run("should fail when user already exists in repository", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)

		repo.EXPECT().
			CreateUser(gomock.Any()).
			Return(chat.User{}, errors.ErrUserAlreadyExists).
			Times(1)

		_, err := svc.Register("alice", "alice@example.com", "secret1")

		req.ErrorIs(err, errors.ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("should login successfully with correct credentials", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, tokens := newAuthService(t)
		storedUser := approvedUser(t, "alice", "secret1")

		repo.EXPECT().FindByUsername("alice").Return(storedUser, nil).Times(1)

		session, err := svc.Login("alice", "secret1", "")

		req.NoError(err)
		req.Equal(storedUser, session.User)
		claims, err := tokens.Validate(session.Token.String())
		req.NoError(err)
		req.Equal("alice", claims.Username)
		req.Equal(chat.RoleUser, claims.Role)
	})

	t.Run("should return invalid credentials when password matches nothing", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)

		repo.EXPECT().FindByUsername("alice").Return(approvedUser(t, "alice", "secret1"), nil).Times(1)

		_, err := svc.Login("alice", "wrong-password", "")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should return invalid credentials when user is not found", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)

		repo.EXPECT().FindByUsername("unknown").Return(chat.User{}, errors.ErrUserNotFound).Times(1)

		_, err := svc.Login("unknown", "anyPassword", "")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should refuse a pending account", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)
		pending := approvedUser(t, "alice", "secret1")
		pending.Status = chat.StatusPending

		repo.EXPECT().FindByUsername("alice").Return(pending, nil).Times(1)

		_, err := svc.Login("alice", "secret1", "")

		req.ErrorIs(err, errors.ErrAccountPending)
	})

	t.Run("should require the pin when one is set", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)
		withPin := approvedUser(t, "alice", "secret1")
		pinHash, err := auth.HashSecret("4321")
		req.NoError(err)
		withPin.PinHash = pinHash

		repo.EXPECT().FindByUsername("alice").Return(withPin, nil).Times(2)

		_, err = svc.Login("alice", "secret1", "")
		req.ErrorIs(err, errors.ErrInvalidPin)

		session, err := svc.Login("alice", "secret1", "4321")
		req.NoError(err)
		req.NotEmpty(session.Token)
	})
}

func TestAuthService_UpdateSettings(t *testing.T) {
	t.Run("should persist changes and refresh the avatar of a live session", func(t *testing.T) {
		req := require.New(t)
		ctx := context.Background()
		svc, repo, chatControl, _ := newAuthService(t)
		stored := approvedUser(t, "alice", "secret1")
		stored.Avatar = chat.DefaultAvatar
		stored.EmailNotifications = true

		repo.EXPECT().FindByUsername("alice").Return(stored, nil)
		repo.EXPECT().Persist(gomock.Any()).DoAndReturn(func(user chat.User) error {
			req.False(user.EmailNotifications)
			req.Equal("cat.png", user.Avatar)
			req.NotEmpty(user.PinHash)
			return nil
		})
		chatControl.EXPECT().UpdateAvatar(ctx, "alice", "cat.png").Times(1)

		user, err := svc.UpdateSettings(ctx, "alice", Settings{
			EmailNotifications: lo.ToPtr(false),
			Pin:                lo.ToPtr("1234"),
			Avatar:             lo.ToPtr("cat.png"),
		})

		req.NoError(err)
		match, err := auth.CompareSecret("1234", user.PinHash)
		req.NoError(err)
		req.True(match)
	})

	t.Run("should reject a malformed pin without persisting", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)

		repo.EXPECT().FindByUsername("alice").Return(approvedUser(t, "alice", "secret1"), nil)
		repo.EXPECT().Persist(gomock.Any()).Times(0)

		_, err := svc.UpdateSettings(context.Background(), "alice", Settings{Pin: lo.ToPtr("12ab")})

		req.ErrorIs(err, errors.ErrInvalidSettings)
	})

	t.Run("should clear the pin with an empty value", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)
		stored := approvedUser(t, "alice", "secret1")
		stored.PinHash = "$argon2id$whatever"

		repo.EXPECT().FindByUsername("alice").Return(stored, nil)
		repo.EXPECT().Persist(gomock.Any()).Return(nil)

		user, err := svc.UpdateSettings(context.Background(), "alice", Settings{Pin: lo.ToPtr("")})

		req.NoError(err)
		req.Empty(user.PinHash)
	})
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Run("should create an approved admin once", func(t *testing.T) {
		req := require.New(t)
		svc, repo, _, _ := newAuthService(t)

		gomock.InOrder(
			repo.EXPECT().FindByUsername("root").Return(chat.User{}, errors.ErrUserNotFound),
			repo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(user chat.User) (chat.User, error) {
				req.Equal(chat.RoleAdmin, user.Role)
				req.True(user.IsApproved())
				return user, nil
			}),
			repo.EXPECT().FindByUsername("root").Return(chat.User{Username: "root"}, nil),
		)

		req.NoError(svc.EnsureAdmin("root", "root@example.com", "secret1"))
		req.NoError(svc.EnsureAdmin("root", "root@example.com", "secret1"))
	})

	t.Run("should do nothing without a configured admin", func(t *testing.T) {
		req := require.New(t)
		svc, _, _, _ := newAuthService(t)

		req.NoError(svc.EnsureAdmin("", "", ""))
	})

	t.Run("should refuse the group name", func(t *testing.T) {
		req := require.New(t)
		svc, _, _, _ := newAuthService(t)

		req.ErrorIs(svc.EnsureAdmin("All", "all@example.com", "secret1"), errors.ErrInvalidRequest)
	})
}
