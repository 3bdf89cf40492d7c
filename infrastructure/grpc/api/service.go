package api

import (
	"context"

	"google.golang.org/grpc"
)

const (
	AuthServiceName  = "chat.AuthService"
	AdminServiceName = "chat.AdminService"
)

const (
	AuthService_Register_FullMethodName       = "/" + AuthServiceName + "/Register"
	AuthService_Login_FullMethodName          = "/" + AuthServiceName + "/Login"
	AuthService_UpdateSettings_FullMethodName = "/" + AuthServiceName + "/UpdateSettings"

	AdminService_ListUsers_FullMethodName    = "/" + AdminServiceName + "/ListUsers"
	AdminService_CreateUser_FullMethodName   = "/" + AdminServiceName + "/CreateUser"
	AdminService_UpdateUser_FullMethodName   = "/" + AdminServiceName + "/UpdateUser"
	AdminService_ApproveUser_FullMethodName  = "/" + AdminServiceName + "/ApproveUser"
	AdminService_RejectUser_FullMethodName   = "/" + AdminServiceName + "/RejectUser"
	AdminService_DeleteUser_FullMethodName   = "/" + AdminServiceName + "/DeleteUser"
	AdminService_LockUser_FullMethodName     = "/" + AdminServiceName + "/LockUser"
	AdminService_UnlockUser_FullMethodName   = "/" + AdminServiceName + "/UnlockUser"
	AdminService_ClearChat_FullMethodName    = "/" + AdminServiceName + "/ClearChat"
	AdminService_SetGroupInfo_FullMethodName = "/" + AdminServiceName + "/SetGroupInfo"
)

// PublicMethods can be called without a session token.
var PublicMethods = []string{
	AuthService_Register_FullMethodName,
	AuthService_Login_FullMethodName,
}

type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	UpdateSettings(context.Context, *UpdateSettingsRequest) (*UserResponse, error)
}

type AdminServiceServer interface {
	ListUsers(context.Context, *Empty) (*ListUsersResponse, error)
	CreateUser(context.Context, *CreateUserRequest) (*UserResponse, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*UserResponse, error)
	ApproveUser(context.Context, *UsernameRequest) (*UserResponse, error)
	RejectUser(context.Context, *UsernameRequest) (*Empty, error)
	DeleteUser(context.Context, *UsernameRequest) (*Empty, error)
	LockUser(context.Context, *UsernameRequest) (*Empty, error)
	UnlockUser(context.Context, *UsernameRequest) (*Empty, error)
	ClearChat(context.Context, *Empty) (*ClearChatResponse, error)
	SetGroupInfo(context.Context, *SetGroupInfoRequest) (*Empty, error)
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(AuthService_Register_FullMethodName, AuthServiceServer.Register)},
		{MethodName: "Login", Handler: unary(AuthService_Login_FullMethodName, AuthServiceServer.Login)},
		{MethodName: "UpdateSettings", Handler: unary(AuthService_UpdateSettings_FullMethodName, AuthServiceServer.UpdateSettings)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chat.proto",
}

var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AdminServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListUsers", Handler: unary(AdminService_ListUsers_FullMethodName, AdminServiceServer.ListUsers)},
		{MethodName: "CreateUser", Handler: unary(AdminService_CreateUser_FullMethodName, AdminServiceServer.CreateUser)},
		{MethodName: "UpdateUser", Handler: unary(AdminService_UpdateUser_FullMethodName, AdminServiceServer.UpdateUser)},
		{MethodName: "ApproveUser", Handler: unary(AdminService_ApproveUser_FullMethodName, AdminServiceServer.ApproveUser)},
		{MethodName: "RejectUser", Handler: unary(AdminService_RejectUser_FullMethodName, AdminServiceServer.RejectUser)},
		{MethodName: "DeleteUser", Handler: unary(AdminService_DeleteUser_FullMethodName, AdminServiceServer.DeleteUser)},
		{MethodName: "LockUser", Handler: unary(AdminService_LockUser_FullMethodName, AdminServiceServer.LockUser)},
		{MethodName: "UnlockUser", Handler: unary(AdminService_UnlockUser_FullMethodName, AdminServiceServer.UnlockUser)},
		{MethodName: "ClearChat", Handler: unary(AdminService_ClearChat_FullMethodName, AdminServiceServer.ClearChat)},
		{MethodName: "SetGroupInfo", Handler: unary(AdminService_SetGroupInfo_FullMethodName, AdminServiceServer.SetGroupInfo)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chat.proto",
}

// unary builds the method handler the code generator would have written for one RPC.
func unary[S any, Req any, Res any](fullMethod string, call func(S, context.Context, *Req) (*Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
