package server

import (
	"chat-relay/auth"
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"chat-relay/infrastructure/grpc/api"
	"chat-relay/services"
	"context"
)

var _ api.AuthServiceServer = (*AuthServer)(nil)

type AuthServer struct {
	authService services.IAuthService
}

// NewAuthServer creates a new gRPC server for authentication.
func NewAuthServer(authService services.IAuthService) *AuthServer {
	return &AuthServer{authService: authService}
}

// Register stores a pending account, no token is issued until an admin approves it.
func (s *AuthServer) Register(_ context.Context, in *api.RegisterRequest) (*api.RegisterResponse, error) {
	user, err := s.authService.Register(in.Username, in.Email, in.Password)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.RegisterResponse{Username: user.Username, Status: string(user.Status)}, nil
}

// Login verifies credentials and the optional PIN and returns a session token.
func (s *AuthServer) Login(_ context.Context, in *api.LoginRequest) (*api.LoginResponse, error) {
	session, err := s.authService.Login(in.Username, in.Password, in.Pin)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.LoginResponse{
		Token: session.Token.String(),
		User:  toUserInfo(session.User, false),
	}, nil
}

func (s *AuthServer) UpdateSettings(ctx context.Context, in *api.UpdateSettingsRequest) (*api.UserResponse, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, errors.MapToGRPCError(errors.ErrUnauthenticated)
	}
	user, err := s.authService.UpdateSettings(ctx, claims.Username, services.Settings{
		EmailNotifications: in.EmailNotifications,
		Pin:                in.Pin,
		Avatar:             in.Avatar,
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.UserResponse{User: toUserInfo(user, false)}, nil
}

func toUserInfo(user chat.User, online bool) api.UserInfo {
	return api.UserInfo{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		Role:               string(user.Role),
		Avatar:             user.Avatar,
		Locked:             user.Locked,
		EmailNotifications: user.EmailNotifications,
		Status:             string(user.Status),
		Online:             online,
		CreatedAt:          user.CreatedAt,
	}
}
