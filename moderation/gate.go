package moderation

import (
	"chat-relay/contract"
	"chat-relay/domain/event"
	"chat-relay/infrastructure/storage"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// ConnectionLookup finds the live connection of an identity.
type ConnectionLookup interface {
	Connection(identity string) (contract.Connection, bool)
}

// Gate keeps the set of identities barred from posting to the group channel.
// The set mirrors the durable locked flag of each user record and the durable
// flag is always written first.
type Gate struct {
	users    storage.IUserRepository
	presence ConnectionLookup
	log      *slog.Logger

	mu     sync.RWMutex
	locked map[string]struct{}
}

func NewGate(users storage.IUserRepository, presence ConnectionLookup, log *slog.Logger) *Gate {
	return &Gate{
		users:    users,
		presence: presence,
		log:      log,
		locked:   make(map[string]struct{}),
	}
}

// Load seeds the in-memory set from the durable records.
func (g *Gate) Load() error {
	users, err := g.users.ListUsers()
	if err != nil {
		return fmt.Errorf("load lock state: %w", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.locked)
	for _, user := range users {
		if user.Locked {
			g.locked[user.Username] = struct{}{}
		}
	}
	g.log.Debug("Lock state loaded", "locked", len(g.locked))
	return nil
}

func (g *Gate) Lock(ctx context.Context, identity string) error {
	return g.setLocked(ctx, identity, true)
}

func (g *Gate) Unlock(ctx context.Context, identity string) error {
	return g.setLocked(ctx, identity, false)
}

func (g *Gate) IsLocked(identity string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.locked[identity]
	return ok
}

// Forget drops an identity from the set, used when its record is deleted.
func (g *Gate) Forget(identity string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locked, identity)
}

func (g *Gate) setLocked(ctx context.Context, identity string, locked bool) error {
	user, err := g.users.FindByUsername(identity)
	if err != nil {
		return err
	}
	if user.Locked != locked {
		user.Locked = locked
		if err = g.users.Persist(user); err != nil {
			return fmt.Errorf("persist lock state of %s: %w", identity, err)
		}
	}

	g.mu.Lock()
	if locked {
		g.locked[identity] = struct{}{}
	} else {
		delete(g.locked, identity)
	}
	g.mu.Unlock()

	g.log.Info("Chat lock state changed", "identity", identity, "locked", locked)

	if conn, ok := g.presence.Connection(identity); ok {
		if err = conn.Consume(ctx, event.ChatLockStateChanged{Locked: locked}); err != nil {
			g.log.Warn("Unable to notify lock state", "identity", identity, "error", err)
		}
	}
	return nil
}
