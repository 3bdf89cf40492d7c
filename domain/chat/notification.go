package chat

import (
	"time"

	"github.com/google/uuid"
)

// Category groups notifications for the one-shot-per-session cap.
type Category string

const (
	CategoryGroup   Category = "group"
	CategoryDirect  Category = "direct"
	CategoryAccount Category = "account"
)

// CategoryOf returns the notification category of a message.
func CategoryOf(m Message) Category {
	if m.IsGroup() {
		return CategoryGroup
	}
	return CategoryDirect
}

type Notification struct {
	ID        uuid.UUID
	Username  string
	Type      Category
	Message   string
	Read      bool
	CreatedAt time.Time
}

func NewNotification(username string, category Category, text string, at time.Time) Notification {
	return Notification{
		ID:        uuid.New(),
		Username:  username,
		Type:      category,
		Message:   text,
		CreatedAt: at,
	}
}

// Mail is an outgoing email handed to the mail queue.
type Mail struct {
	To      string
	Subject string
	Body    string
}
