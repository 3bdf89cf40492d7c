package errors

import (
	goerrors "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrInvalidPayload     = fmt.Errorf("invalid payload")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrUserAlreadyExists  = fmt.Errorf("username or email already registered")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrInvalidRequest     = fmt.Errorf("invalid request")
	ErrInvalidPin         = fmt.Errorf("invalid pin")
	ErrAccountPending     = fmt.Errorf("account is pending admin approval")
	ErrAccountNotPending  = fmt.Errorf("account is not pending approval")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrInvalidRole        = fmt.Errorf("invalid user role")
	ErrMessageNotFound    = fmt.Errorf("message not found")
	ErrNotificationAbsent = fmt.Errorf("notification not found")
	ErrNotAuthorized      = fmt.Errorf("not authorized")
	ErrNotJoined          = fmt.Errorf("connection has not joined")
	ErrIdentityMismatch   = fmt.Errorf("joined identity does not match the session")
	ErrEmptyMessage       = fmt.Errorf("message is empty")
	ErrMissingRecipient   = fmt.Errorf("recipient is missing")
	ErrConnectionClosed   = fmt.Errorf("connection closed")
	ErrDeliveryTimeout    = fmt.Errorf("delivery timeout")
	ErrInvalidFileMessage = fmt.Errorf("file message requires a path and a filename")
	ErrInvalidHashFormat  = fmt.Errorf("invalid hash format")
	ErrUnauthenticated    = fmt.Errorf("missing or invalid token")
	ErrInvalidSettings    = fmt.Errorf("invalid settings")
	ErrMalformedFrame     = fmt.Errorf("malformed frame")
)

// IsRejection reports whether err is a user-facing refusal rather than an I/O failure.
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrNotAuthorized, ErrNotJoined, ErrIdentityMismatch,
		ErrEmptyMessage, ErrMissingRecipient, ErrInvalidFileMessage,
	} {
		if goerrors.Is(err, target) {
			return true
		}
	}
	return false
}

// MapToGRPCError converts domain errors into gRPC status errors.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case goerrors.Is(err, ErrUserNotFound), goerrors.Is(err, ErrMessageNotFound),
		goerrors.Is(err, ErrNotificationAbsent):
		return status.Error(codes.NotFound, err.Error())
	case goerrors.Is(err, ErrUserAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case goerrors.Is(err, ErrInvalidCredentials), goerrors.Is(err, ErrInvalidPin),
		goerrors.Is(err, ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case goerrors.Is(err, ErrAccountPending), goerrors.Is(err, ErrAccountNotPending):
		return status.Error(codes.FailedPrecondition, err.Error())
	case goerrors.Is(err, ErrInvalidRequest), goerrors.Is(err, ErrInvalidRole),
		goerrors.Is(err, ErrInvalidSettings):
		return status.Error(codes.InvalidArgument, err.Error())
	case goerrors.Is(err, ErrNotAuthorized):
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
