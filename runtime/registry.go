package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain/chat"
	"sort"
	"sync"

	"github.com/samber/lo"
)

type session struct {
	conn   contract.Connection
	avatar string
}

// Registry maps each online identity to its single live connection.
// Nothing here is persisted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]session // map identity -> live connection
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]session)}
}

// Join registers the connection of identity, overwriting any previous one.
// The replaced connection is returned so the caller can close it.
func (r *Registry) Join(identity, avatar string, conn contract.Connection) (contract.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.sessions[identity]
	r.sessions[identity] = session{conn: conn, avatar: avatar}
	if !existed || previous.conn == conn {
		return nil, false
	}
	return previous.conn, true
}

// Leave removes identity only if conn is still its registered connection.
// A late disconnect of a replaced connection is a no-op and returns false.
func (r *Registry) Leave(identity string, conn contract.Connection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[identity]
	if !ok || current.conn != conn {
		return false
	}
	delete(r.sessions, identity)
	return true
}

// Remove drops identity whatever its connection and returns it.
func (r *Registry) Remove(identity string) (contract.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[identity]
	if !ok {
		return nil, false
	}
	delete(r.sessions, identity)
	return current.conn, true
}

func (r *Registry) IsOnline(identity string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[identity]
	return ok
}

func (r *Registry) Connection(identity string) (contract.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[identity]
	return s.conn, ok
}

// Connections returns a copy of the identity to connection map.
func (r *Registry) Connections() map[string]contract.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.MapValues(r.sessions, func(s session, _ string) contract.Connection {
		return s.conn
	})
}

// SetAvatar updates the avatar shown for an online identity.
func (r *Registry) SetAvatar(identity, avatar string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[identity]; ok {
		s.avatar = avatar
		r.sessions[identity] = s
	}
}

// Snapshot lists online identities sorted by username.
func (r *Registry) Snapshot() []chat.Presence {
	r.mu.RLock()
	presences := make([]chat.Presence, 0, len(r.sessions))
	for identity, s := range r.sessions {
		presences = append(presences, chat.Presence{Username: identity, Avatar: s.avatar})
	}
	r.mu.RUnlock()

	sort.Slice(presences, func(i, j int) bool {
		return presences[i].Username < presences[j].Username
	})
	return presences
}
