//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_services.go -package=mocks
package services

import (
	"chat-relay/domain/chat"
	"context"
)

// ChatControl is the part of the hub the account and admin flows drive.
type ChatControl interface {
	Lock(ctx context.Context, identity string) error
	Unlock(ctx context.Context, identity string) error
	ClearChat(ctx context.Context) (int, error)
	SetGroupInfo(ctx context.Context, info chat.GroupInfo) error
	Kick(ctx context.Context, identity string)
	UpdateAvatar(ctx context.Context, identity, avatar string)
	IsOnline(identity string) bool
}

type AccountNotifier interface {
	NotifyAccount(ctx context.Context, user chat.User, text string)
}

type LockState interface {
	IsLocked(identity string) bool
}
