package server

import (
	"chat-relay/auth"
	"chat-relay/infrastructure/grpc/api"
	"log/slog"

	grpc3 "github.com/mama165/sdk-go/grpc"
	"google.golang.org/grpc"
)

// New builds the gRPC server with logging and authentication on every unary call.
func New(log *slog.Logger, issuer *auth.TokenIssuer, authServer *AuthServer, adminServer *AdminServer) *grpc.Server {
	interceptor := auth.NewInterceptor(issuer, api.PublicMethods, api.AdminServiceName)
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc3.UnaryLoggingInterceptor(log),
			interceptor.Unary(),
		))
	api.RegisterAuthServiceServer(s, authServer)
	api.RegisterAdminServiceServer(s, adminServer)
	return s
}
