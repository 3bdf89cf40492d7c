package auth

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const claimsKey contextKey = "claims"

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the identity injected by the interceptor or the HTTP middleware
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// BearerToken extracts the token from a "Bearer <token>" header value
func BearerToken(value string) (string, bool) {
	token, found := strings.CutPrefix(value, "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

// Interceptor handles JWT validation for incoming gRPC calls.
// Public methods skip authentication, methods under an admin service require the admin role.
type Interceptor struct {
	issuer        *TokenIssuer
	publicMethods map[string]struct{}
	adminServices []string
}

func NewInterceptor(issuer *TokenIssuer, publicMethods []string, adminServices ...string) *Interceptor {
	return &Interceptor{
		issuer:        issuer,
		publicMethods: lo.SliceToMap(publicMethods, func(m string) (string, struct{}) { return m, struct{}{} }),
		adminServices: adminServices,
	}
}

func (i *Interceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := i.publicMethods[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "metadata is missing")
		}

		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "authorization token is missing")
		}

		tokenStr, ok := BearerToken(values[0])
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "authorization token is missing")
		}

		claims, err := i.issuer.Validate(tokenStr)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}

		if i.requiresAdmin(info.FullMethod) && !claims.IsAdmin() {
			return nil, status.Error(codes.PermissionDenied, "admin role required")
		}

		return handler(WithClaims(ctx, claims), req)
	}
}

func (i *Interceptor) requiresAdmin(method string) bool {
	return lo.SomeBy(i.adminServices, func(service string) bool {
		return strings.HasPrefix(method, "/"+service+"/")
	})
}
