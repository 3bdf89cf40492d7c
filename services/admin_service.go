package services

import (
	"chat-relay/auth"
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"chat-relay/infrastructure/storage"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
)

type IAdminService interface {
	ListUsers(ctx context.Context) ([]UserView, error)
	CreateUser(ctx context.Context, req auth.CreateUserRequest) (chat.User, error)
	UpdateUser(ctx context.Context, username string, role *chat.Role, password *string) (chat.User, error)
	ApproveUser(ctx context.Context, username string) (chat.User, error)
	RejectUser(ctx context.Context, username string) error
	DeleteUser(ctx context.Context, username string) error
	LockUser(ctx context.Context, username string) error
	UnlockUser(ctx context.Context, username string) error
	ClearChat(ctx context.Context) (int, error)
	SetGroupInfo(ctx context.Context, name, icon string) error
}

// UserView is a user record as the admin console lists it.
type UserView struct {
	chat.User
	Online bool
}

type AdminService struct {
	userRepository         storage.IUserRepository
	notificationRepository storage.INotificationRepository
	chat                   ChatControl
	notifier               AccountNotifier
	log                    *slog.Logger
}

func NewAdminService(users storage.IUserRepository, notifications storage.INotificationRepository,
	chat ChatControl, notifier AccountNotifier, log *slog.Logger) *AdminService {
	return &AdminService{
		userRepository:         users,
		notificationRepository: notifications,
		chat:                   chat,
		notifier:               notifier,
		log:                    log,
	}
}

func (s *AdminService) ListUsers(_ context.Context) ([]UserView, error) {
	users, err := s.userRepository.ListUsers()
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(user chat.User, _ int) UserView {
		return UserView{User: user, Online: s.chat.IsOnline(user.Username)}
	}), nil
}

// CreateUser adds an account that can log in right away
func (s *AdminService) CreateUser(_ context.Context, req auth.CreateUserRequest) (chat.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if !chat.Role(req.Role).Valid() {
		return chat.User{}, errors.ErrInvalidRole
	}
	if err := auth.ValidateCreateUser(req); err != nil {
		return chat.User{}, err
	}

	hashedPassword, err := auth.HashSecret(req.Password)
	if err != nil {
		return chat.User{}, fmt.Errorf("hashing failed: %w", err)
	}
	user, err := s.userRepository.CreateUser(chat.User{
		Username:           req.Username,
		Email:              req.Email,
		PasswordHash:       hashedPassword,
		Role:               chat.Role(req.Role),
		Avatar:             chat.DefaultAvatar,
		EmailNotifications: req.Email != "",
		Status:             chat.StatusApproved,
	})
	if err != nil {
		return chat.User{}, err
	}
	s.log.Info("User created by admin", "username", user.Username, "role", user.Role)
	return user, nil
}

// UpdateUser changes the role or resets the password of an account
func (s *AdminService) UpdateUser(_ context.Context, username string, role *chat.Role, password *string) (chat.User, error) {
	user, err := s.userRepository.FindByUsername(username)
	if err != nil {
		return chat.User{}, err
	}
	if role != nil {
		if !role.Valid() {
			return chat.User{}, errors.ErrInvalidRole
		}
		user.Role = *role
	}
	if password != nil {
		if err := auth.ValidateCreateUser(auth.CreateUserRequest{
			Username: user.Username,
			Password: *password,
			Role:     string(user.Role),
		}); err != nil {
			return chat.User{}, err
		}
		if user.PasswordHash, err = auth.HashSecret(*password); err != nil {
			return chat.User{}, fmt.Errorf("hashing failed: %w", err)
		}
	}
	if err = s.userRepository.Persist(user); err != nil {
		return chat.User{}, err
	}
	return user, nil
}

func (s *AdminService) ApproveUser(ctx context.Context, username string) (chat.User, error) {
	user, err := s.userRepository.FindByUsername(username)
	if err != nil {
		return chat.User{}, err
	}
	if user.IsApproved() {
		return user, nil
	}
	user.Status = chat.StatusApproved
	if err = s.userRepository.Persist(user); err != nil {
		return chat.User{}, err
	}
	s.notifier.NotifyAccount(ctx, user, "Your account has been approved, you can now log in")
	s.log.Info("User approved", "username", username)
	return user, nil
}

// RejectUser removes a registration that was never approved
func (s *AdminService) RejectUser(_ context.Context, username string) error {
	user, err := s.userRepository.FindByUsername(username)
	if err != nil {
		return err
	}
	if user.IsApproved() {
		return errors.ErrAccountNotPending
	}
	if err = s.userRepository.DeleteUser(username); err != nil {
		return err
	}
	s.log.Info("Registration rejected", "username", username)
	return nil
}

// DeleteUser removes the account, its notifications and its live connection
func (s *AdminService) DeleteUser(ctx context.Context, username string) error {
	if err := s.userRepository.DeleteUser(username); err != nil {
		return err
	}
	if err := s.notificationRepository.DeleteAll(username); err != nil {
		s.log.Warn("Unable to delete notifications", "username", username, "error", err)
	}
	s.chat.Kick(ctx, username)
	s.log.Info("User deleted", "username", username)
	return nil
}

func (s *AdminService) LockUser(ctx context.Context, username string) error {
	return s.chat.Lock(ctx, username)
}

func (s *AdminService) UnlockUser(ctx context.Context, username string) error {
	return s.chat.Unlock(ctx, username)
}

func (s *AdminService) ClearChat(ctx context.Context) (int, error) {
	return s.chat.ClearChat(ctx)
}

func (s *AdminService) SetGroupInfo(ctx context.Context, name, icon string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.ErrInvalidSettings
	}
	return s.chat.SetGroupInfo(ctx, chat.GroupInfo{Name: name, Icon: icon})
}
