package services

import (
	"chat-relay/auth"
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"chat-relay/infrastructure/storage"
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"strings"
)

type IAuthService interface {
	Register(username, email, password string) (chat.User, error)
	Login(username, password, pin string) (Session, error)
	UpdateSettings(ctx context.Context, username string, settings Settings) (chat.User, error)
	EnsureAdmin(username, email, password string) error
}

// Session is what a successful login hands back to the client.
type Session struct {
	Token Token
	User  chat.User
}

type Token string

func (t Token) String() string {
	return string(t)
}

// Settings holds the optional changes a user makes to their own account.
// A nil field is left untouched, an empty Pin removes the PIN.
type Settings struct {
	EmailNotifications *bool
	Pin                *string
	Avatar             *string
}

type AuthService struct {
	userRepository storage.IUserRepository
	tokens         *auth.TokenIssuer
	chat           ChatControl
	log            *slog.Logger
}

func NewAuthService(repo storage.IUserRepository, tokens *auth.TokenIssuer, chat ChatControl, log *slog.Logger) *AuthService {
	return &AuthService{userRepository: repo, tokens: tokens, chat: chat, log: log}
}

// Register stores a pending account, an admin has to approve it before login
func (s *AuthService) Register(username, email, password string) (chat.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// Validation runs before any expensive cryptographic operation
	if err := auth.ValidateRegister(auth.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}); err != nil {
		return chat.User{}, err
	}

	hashedPassword, err := auth.HashSecret(password)
	if err != nil {
		return chat.User{}, fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.userRepository.CreateUser(chat.User{
		Username:           username,
		Email:              email,
		PasswordHash:       hashedPassword,
		Role:               chat.RoleUser,
		Avatar:             chat.DefaultAvatar,
		EmailNotifications: true,
		Status:             chat.StatusPending,
	})
	if err != nil {
		return chat.User{}, err
	}

	s.log.Info("Account registered, pending approval", "username", username)
	return user, nil
}

func (s *AuthService) Login(username, password, pin string) (Session, error) {
	user, err := s.userRepository.FindByUsername(username)
	if err != nil {
		// Generic error to prevent user enumeration attacks
		return Session{}, errors.ErrInvalidCredentials
	}

	match, err := auth.CompareSecret(password, user.PasswordHash)
	if err != nil || !match {
		return Session{}, errors.ErrInvalidCredentials
	}

	if !user.IsApproved() {
		return Session{}, errors.ErrAccountPending
	}

	if user.PinHash != "" {
		match, err = auth.CompareSecret(pin, user.PinHash)
		if err != nil || !match {
			return Session{}, errors.ErrInvalidPin
		}
	}

	token, err := s.tokens.Generate(user.Username, user.Role)
	if err != nil {
		return Session{}, errors.ErrTokenGeneration
	}

	return Session{Token: Token(token), User: user}, nil
}

func (s *AuthService) UpdateSettings(ctx context.Context, username string, settings Settings) (chat.User, error) {
	user, err := s.userRepository.FindByUsername(username)
	if err != nil {
		return chat.User{}, err
	}

	if settings.EmailNotifications != nil {
		user.EmailNotifications = *settings.EmailNotifications
	}
	if settings.Pin != nil {
		if *settings.Pin == "" {
			user.PinHash = ""
		} else {
			if err := auth.ValidatePin(*settings.Pin); err != nil {
				return chat.User{}, err
			}
			if user.PinHash, err = auth.HashSecret(*settings.Pin); err != nil {
				return chat.User{}, fmt.Errorf("hashing failed: %w", err)
			}
		}
	}
	avatarChanged := settings.Avatar != nil && *settings.Avatar != user.Avatar
	if settings.Avatar != nil {
		if strings.TrimSpace(*settings.Avatar) == "" {
			return chat.User{}, errors.ErrInvalidSettings
		}
		user.Avatar = *settings.Avatar
	}

	if err = s.userRepository.Persist(user); err != nil {
		return chat.User{}, err
	}
	if avatarChanged {
		s.chat.UpdateAvatar(ctx, user.Username, user.Avatar)
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet
func (s *AuthService) EnsureAdmin(username, email, password string) error {
	if username == "" {
		return nil
	}
	if auth.IsReservedUsername(username) {
		return fmt.Errorf("%w: username %q is reserved", errors.ErrInvalidRequest, username)
	}
	_, err := s.userRepository.FindByUsername(username)
	if err == nil {
		return nil
	}
	if !goerrors.Is(err, errors.ErrUserNotFound) {
		return err
	}

	hashedPassword, err := auth.HashSecret(password)
	if err != nil {
		return fmt.Errorf("hashing failed: %w", err)
	}
	_, err = s.userRepository.CreateUser(chat.User{
		Username:           username,
		Email:              email,
		PasswordHash:       hashedPassword,
		Role:               chat.RoleAdmin,
		Avatar:             chat.DefaultAvatar,
		EmailNotifications: email != "",
		Status:             chat.StatusApproved,
	})
	if err != nil {
		return err
	}
	s.log.Info("Admin account created", "username", username)
	return nil
}
