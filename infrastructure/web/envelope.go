package web

import (
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Envelope is the frame exchanged on the realtime channel in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// joinData is a bare identity string. The {"username": ...} object is accepted too.
type joinData struct {
	Username string `json:"username"`
}

func (d *joinData) UnmarshalJSON(raw []byte) error {
	if bare, ok := bareString(raw); ok {
		d.Username = bare
		return nil
	}
	type object joinData
	return json.Unmarshal(raw, (*object)(d))
}

type sendData struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type fileData struct {
	From     string `json:"from"`
	To       string `json:"to"`
	FilePath string `json:"filePath"`
	Filename string `json:"filename"`
}

// messageRef is a bare message id. The {"id": ...} object is accepted too.
type messageRef struct {
	ID uuid.UUID `json:"id"`
}

func (r *messageRef) UnmarshalJSON(raw []byte) error {
	if bare, ok := bareString(raw); ok {
		id, err := uuid.Parse(bare)
		if err != nil {
			return err
		}
		r.ID = id
		return nil
	}
	type object messageRef
	return json.Unmarshal(raw, (*object)(r))
}

func bareString(raw []byte) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

type messageView struct {
	ID        uuid.UUID `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Kind      chat.Kind `json:"kind"`
	Text      string    `json:"text,omitempty"`
	FilePath  string    `json:"filePath,omitempty"`
	Filename  string    `json:"filename,omitempty"`
	SeenBy    []string  `json:"seenBy"`
	Timestamp int64     `json:"timestamp"`
}

type presenceView struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type onlineView struct {
	Users     []presenceView `json:"users"`
	GroupName string         `json:"groupName"`
	GroupIcon string         `json:"groupIcon"`
}

type notificationView struct {
	ID        uuid.UUID     `json:"id"`
	Type      chat.Category `json:"type"`
	Message   string        `json:"message"`
	Read      bool          `json:"read"`
	Timestamp int64         `json:"timestamp"`
}

type lockView struct {
	Locked bool `json:"locked"`
}

type reasonView struct {
	Action string `json:"action,omitempty"`
	Reason string `json:"reason"`
}

// encode maps a domain event to its wire frame.
func encode(evt event.DomainEvent) ([]byte, error) {
	var data any
	switch e := evt.(type) {
	case event.History:
		data = lo.Map(e.Messages, func(m chat.Message, _ int) messageView { return toMessageView(m) })
	case event.MessageDelivered:
		data = toMessageView(e.Message)
	case event.MessageDeleted:
		data = e.ID
	case event.Online:
		data = onlineView{
			Users: lo.Map(e.Users, func(p chat.Presence, _ int) presenceView {
				return presenceView{Username: p.Username, Avatar: p.Avatar}
			}),
			GroupName: e.GroupName,
			GroupIcon: e.GroupIcon,
		}
	case event.ChatLockStateChanged:
		data = lockView{Locked: e.Locked}
	case event.MessageBlocked:
		data = reasonView{Reason: e.Reason}
	case event.NewNotification:
		data = toNotificationView(e.Notification)
	case event.ActionRejected:
		data = reasonView{Action: e.Action, Reason: e.Reason}
	case event.SessionReplaced:
		data = struct{}{}
	default:
		return nil, fmt.Errorf("unsupported event %q", evt.EventName())
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: string(evt.EventName()), Data: raw})
}

func toMessageView(m chat.Message) messageView {
	return messageView{
		ID:        m.ID,
		From:      m.From,
		To:        m.To,
		Kind:      m.Payload.Kind,
		Text:      m.Payload.Text,
		FilePath:  m.Payload.FilePath,
		Filename:  m.Payload.Filename,
		SeenBy:    m.SeenBy,
		Timestamp: m.CreatedAt.UnixMilli(),
	}
}

func toNotificationView(n chat.Notification) notificationView {
	return notificationView{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		Read:      n.Read,
		Timestamp: n.CreatedAt.UnixMilli(),
	}
}
