// Package event defines the events pushed to connected participants.
package event

import (
	"chat-relay/domain/chat"

	"github.com/google/uuid"
)

// Name is the wire name of an event on the realtime channel.
type Name string

const (
	HistoryName              Name = "history"
	MessageName              Name = "message"
	DeleteMessageName        Name = "deleteMessage"
	OnlineName               Name = "online"
	ChatLockStateChangedName Name = "chatLockStateChanged"
	MessageBlockedName       Name = "messageBlocked"
	NewNotificationName      Name = "new_notification"
	ActionRejectedName       Name = "error"
	SessionReplacedName      Name = "sessionReplaced"
)

type DomainEvent interface {
	EventName() Name
}

// History is the backfill sent right after a join.
type History struct {
	Messages []chat.Message
}

func (History) EventName() Name { return HistoryName }

// MessageDelivered carries a decrypted message to a live connection.
type MessageDelivered struct {
	Message chat.Message
}

func (MessageDelivered) EventName() Name { return MessageName }

type MessageDeleted struct {
	ID uuid.UUID
}

func (MessageDeleted) EventName() Name { return DeleteMessageName }

// Online is the presence and group metadata snapshot.
type Online struct {
	Users     []chat.Presence
	GroupName string
	GroupIcon string
}

func (Online) EventName() Name { return OnlineName }

type ChatLockStateChanged struct {
	Locked bool
}

func (ChatLockStateChanged) EventName() Name { return ChatLockStateChangedName }

type MessageBlocked struct {
	Reason string
}

func (MessageBlocked) EventName() Name { return MessageBlockedName }

type NewNotification struct {
	Notification chat.Notification
}

func (NewNotification) EventName() Name { return NewNotificationName }

// ActionRejected tells the originating connection that a request was refused.
type ActionRejected struct {
	Action string
	Reason string
}

func (ActionRejected) EventName() Name { return ActionRejectedName }

// SessionReplaced is sent to a connection superseded by a newer join.
type SessionReplaced struct{}

func (SessionReplaced) EventName() Name { return SessionReplacedName }
