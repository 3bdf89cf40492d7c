package runtime

import (
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"chat-relay/infrastructure/storage"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Reaper purges the messages of a departing author once every party able to
// read them has seen them. It scans the whole store on each call.
type Reaper struct {
	messages storage.IMessageRepository
	users    storage.IUserRepository
	registry *Registry
	log      *slog.Logger
}

func NewReaper(messages storage.IMessageRepository, users storage.IUserRepository,
	registry *Registry, log *slog.Logger) *Reaper {
	return &Reaper{messages: messages, users: users, registry: registry, log: log}
}

// Reap removes the fully acknowledged messages authored by identity and
// broadcasts a deletion for each of them to every live connection.
func (r *Reaper) Reap(ctx context.Context, identity string) ([]uuid.UUID, error) {
	authored, err := r.messages.ListByAuthor(identity)
	if err != nil {
		return nil, fmt.Errorf("list messages of %s: %w", identity, err)
	}
	if len(authored) == 0 {
		return nil, nil
	}

	registered, err := r.registeredIdentities()
	if err != nil {
		return nil, err
	}

	var removed []uuid.UUID
	for _, message := range authored {
		if !message.FullyAcknowledged(registered) {
			continue
		}
		if err = r.messages.Remove(message.ID); err != nil {
			return removed, fmt.Errorf("remove message %s: %w", message.ID, err)
		}
		removed = append(removed, message.ID)
		broadcast(ctx, r.registry, event.MessageDeleted{ID: message.ID}, r.log)
	}
	if len(removed) > 0 {
		r.log.Debug("Retention pass", "identity", identity, "removed", len(removed), "scanned", len(authored))
	}
	return removed, nil
}

func (r *Reaper) registeredIdentities() ([]string, error) {
	users, err := r.users.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list registered identities: %w", err)
	}
	return lo.FilterMap(users, func(user chat.User, _ int) (string, bool) {
		return user.Username, user.IsApproved()
	}), nil
}
