package server

import (
	"chat-relay/auth"
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"chat-relay/infrastructure/grpc/api"
	"chat-relay/services"
	"context"
	"log/slog"

	"github.com/samber/lo"
)

var _ api.AdminServiceServer = (*AdminServer)(nil)

// AdminServer exposes the admin console. The interceptor only lets admins in.
type AdminServer struct {
	adminService services.IAdminService
	log          *slog.Logger
}

func NewAdminServer(adminService services.IAdminService, log *slog.Logger) *AdminServer {
	return &AdminServer{adminService: adminService, log: log}
}

func (s *AdminServer) ListUsers(ctx context.Context, _ *api.Empty) (*api.ListUsersResponse, error) {
	users, err := s.adminService.ListUsers(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.ListUsersResponse{
		Users: lo.Map(users, func(view services.UserView, _ int) api.UserInfo {
			return toUserInfo(view.User, view.Online)
		}),
	}, nil
}

func (s *AdminServer) CreateUser(ctx context.Context, in *api.CreateUserRequest) (*api.UserResponse, error) {
	user, err := s.adminService.CreateUser(ctx, auth.CreateUserRequest{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.UserResponse{User: toUserInfo(user, false)}, nil
}

func (s *AdminServer) UpdateUser(ctx context.Context, in *api.UpdateUserRequest) (*api.UserResponse, error) {
	var role *chat.Role
	if in.Role != nil {
		role = lo.ToPtr(chat.Role(*in.Role))
	}
	user, err := s.adminService.UpdateUser(ctx, in.Username, role, in.Password)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.UserResponse{User: toUserInfo(user, false)}, nil
}

func (s *AdminServer) ApproveUser(ctx context.Context, in *api.UsernameRequest) (*api.UserResponse, error) {
	user, err := s.adminService.ApproveUser(ctx, in.Username)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.UserResponse{User: toUserInfo(user, false)}, nil
}

func (s *AdminServer) RejectUser(ctx context.Context, in *api.UsernameRequest) (*api.Empty, error) {
	return empty(s.adminService.RejectUser(ctx, in.Username))
}

func (s *AdminServer) DeleteUser(ctx context.Context, in *api.UsernameRequest) (*api.Empty, error) {
	if claims, ok := auth.ClaimsFromContext(ctx); ok && claims.Username == in.Username {
		return nil, errors.MapToGRPCError(errors.ErrNotAuthorized)
	}
	return empty(s.adminService.DeleteUser(ctx, in.Username))
}

func (s *AdminServer) LockUser(ctx context.Context, in *api.UsernameRequest) (*api.Empty, error) {
	return empty(s.adminService.LockUser(ctx, in.Username))
}

func (s *AdminServer) UnlockUser(ctx context.Context, in *api.UsernameRequest) (*api.Empty, error) {
	return empty(s.adminService.UnlockUser(ctx, in.Username))
}

func (s *AdminServer) ClearChat(ctx context.Context, _ *api.Empty) (*api.ClearChatResponse, error) {
	removed, err := s.adminService.ClearChat(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.ClearChatResponse{Removed: removed}, nil
}

func (s *AdminServer) SetGroupInfo(ctx context.Context, in *api.SetGroupInfoRequest) (*api.Empty, error) {
	return empty(s.adminService.SetGroupInfo(ctx, in.Name, in.Icon))
}

func empty(err error) (*api.Empty, error) {
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.Empty{}, nil
}
