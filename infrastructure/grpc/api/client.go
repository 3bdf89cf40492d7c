package api

import (
	"context"

	"google.golang.org/grpc"
)

type AuthServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) *AuthServiceClient {
	return &AuthServiceClient{cc: cc}
}

func (c *AuthServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, AuthService_Register_FullMethodName, in, opts)
}

func (c *AuthServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, AuthService_Login_FullMethodName, in, opts)
}

func (c *AuthServiceClient) UpdateSettings(ctx context.Context, in *UpdateSettingsRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, AuthService_UpdateSettings_FullMethodName, in, opts)
}

type AdminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) *AdminServiceClient {
	return &AdminServiceClient{cc: cc}
}

func (c *AdminServiceClient) ListUsers(ctx context.Context, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, AdminService_ListUsers_FullMethodName, &Empty{}, opts)
}

func (c *AdminServiceClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, AdminService_CreateUser_FullMethodName, in, opts)
}

func (c *AdminServiceClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, AdminService_UpdateUser_FullMethodName, in, opts)
}

func (c *AdminServiceClient) ApproveUser(ctx context.Context, username string, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, AdminService_ApproveUser_FullMethodName, &UsernameRequest{Username: username}, opts)
}

func (c *AdminServiceClient) RejectUser(ctx context.Context, username string, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c.cc, AdminService_RejectUser_FullMethodName, &UsernameRequest{Username: username}, opts)
	return err
}

func (c *AdminServiceClient) DeleteUser(ctx context.Context, username string, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c.cc, AdminService_DeleteUser_FullMethodName, &UsernameRequest{Username: username}, opts)
	return err
}

func (c *AdminServiceClient) LockUser(ctx context.Context, username string, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c.cc, AdminService_LockUser_FullMethodName, &UsernameRequest{Username: username}, opts)
	return err
}

func (c *AdminServiceClient) UnlockUser(ctx context.Context, username string, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c.cc, AdminService_UnlockUser_FullMethodName, &UsernameRequest{Username: username}, opts)
	return err
}

func (c *AdminServiceClient) ClearChat(ctx context.Context, opts ...grpc.CallOption) (*ClearChatResponse, error) {
	return invoke[ClearChatResponse](ctx, c.cc, AdminService_ClearChat_FullMethodName, &Empty{}, opts)
}

func (c *AdminServiceClient) SetGroupInfo(ctx context.Context, in *SetGroupInfoRequest, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c.cc, AdminService_SetGroupInfo_FullMethodName, in, opts)
	return err
}

func invoke[Res any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Res, error) {
	out := new(Res)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
