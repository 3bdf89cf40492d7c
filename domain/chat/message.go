// Package chat contains core concepts of the chat system.
// This file defines Message events and the visibility rules attached to them.
// No runtime, network, or storage logic should be added here.
package chat

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// GroupChannel is the recipient value addressing the shared group room.
const GroupChannel = "all"

type Kind string

const (
	KindText Kind = "text"
	KindFile Kind = "file"
)

// Payload is either inline text or a reference to an uploaded file.
type Payload struct {
	Kind     Kind
	Text     string
	FilePath string
	Filename string
}

func TextPayload(text string) Payload {
	return Payload{Kind: KindText, Text: text}
}

func FilePayload(path, filename string) Payload {
	return Payload{Kind: KindFile, FilePath: path, Filename: filename}
}

// Message represents a chat message.
// SeenBy has set semantics and always contains From.
type Message struct {
	ID        uuid.UUID
	From      string
	To        string
	Payload   Payload
	SeenBy    []string
	CreatedAt time.Time
}

func NewMessage(from, to string, payload Payload, at time.Time) Message {
	return Message{
		ID:        uuid.New(),
		From:      from,
		To:        to,
		Payload:   payload,
		SeenBy:    []string{from},
		CreatedAt: at,
	}
}

func (m Message) IsGroup() bool {
	return m.To == GroupChannel
}

// VisibleTo reports whether identity may receive the message.
func (m Message) VisibleTo(identity string) bool {
	return m.IsGroup() || m.To == identity || m.From == identity
}

func (m Message) HasBeenSeenBy(identity string) bool {
	return slices.Contains(m.SeenBy, identity)
}

// MarkSeen adds identity to SeenBy and reports whether it was absent.
func (m *Message) MarkSeen(identity string) bool {
	if m.HasBeenSeenBy(identity) {
		return false
	}
	m.SeenBy = append(m.SeenBy, identity)
	return true
}

// SeenByAll reports whether every identity has acknowledged the message.
func (m Message) SeenByAll(identities []string) bool {
	for _, identity := range identities {
		if !m.HasBeenSeenBy(identity) {
			return false
		}
	}
	return true
}

// FullyAcknowledged tells whether every party able to see the message has seen it.
// registered is only consulted for group messages.
func (m Message) FullyAcknowledged(registered []string) bool {
	if m.IsGroup() {
		return m.SeenByAll(registered)
	}
	return m.SeenByAll([]string{m.From, m.To})
}
