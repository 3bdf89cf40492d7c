package runtime

import (
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"chat-relay/infrastructure/storage"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

// MailQueue accepts outgoing mails without blocking.
// Enqueue reports false when the mail was dropped.
type MailQueue interface {
	Enqueue(mail chat.Mail) bool
}

// Notifier raises in-app notifications and emails for recipients who did not
// receive a message live. Each identity is notified at most once per category
// between two joins.
type Notifier struct {
	users         storage.IUserRepository
	notifications storage.INotificationRepository
	registry      *Registry
	mails         MailQueue
	log           *slog.Logger
	now           func() time.Time

	mu       sync.Mutex
	notified map[string]map[chat.Category]struct{} // map identity -> categories already notified this session
}

func NewNotifier(users storage.IUserRepository, notifications storage.INotificationRepository,
	registry *Registry, mails MailQueue, log *slog.Logger) *Notifier {
	return &Notifier{
		users:         users,
		notifications: notifications,
		registry:      registry,
		mails:         mails,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
		notified:      make(map[string]map[chat.Category]struct{}),
	}
}

// ResetSession starts a new notification session for identity.
func (n *Notifier) ResetSession(identity string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.notified, identity)
}

// OnMessage notifies the eligible recipients of message that are not in delivered.
// skip excludes identities that cannot read the message, such as locked identities
// for the group channel. Failures are logged and never returned.
func (n *Notifier) OnMessage(ctx context.Context, message chat.Message, delivered map[string]bool, skip func(string) bool) {
	category := chat.CategoryOf(message)
	recipients, err := n.recipients(message)
	if err != nil {
		n.log.Warn("Unable to resolve notification recipients", "message_id", message.ID, "error", err)
		return
	}
	for _, user := range recipients {
		if delivered[user.Username] || !user.EmailNotifications {
			continue
		}
		if skip != nil && skip(user.Username) {
			continue
		}
		if !n.claim(user.Username, category) {
			continue
		}
		n.raise(ctx, user, category, describe(message))
	}
}

// NotifyAccount raises an account notification regardless of the session cap.
func (n *Notifier) NotifyAccount(ctx context.Context, user chat.User, text string) {
	n.raise(ctx, user, chat.CategoryAccount, text)
}

func (n *Notifier) recipients(message chat.Message) ([]chat.User, error) {
	if !message.IsGroup() {
		user, err := n.users.FindByUsername(message.To)
		if err != nil {
			// Unknown recipients are accepted by the router
			return nil, nil
		}
		return []chat.User{user}, nil
	}
	users, err := n.users.ListUsers()
	if err != nil {
		return nil, err
	}
	return lo.Filter(users, func(user chat.User, _ int) bool {
		return user.Username != message.From && user.IsApproved()
	}), nil
}

func (n *Notifier) claim(identity string, category chat.Category) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	categories, ok := n.notified[identity]
	if !ok {
		categories = make(map[chat.Category]struct{})
		n.notified[identity] = categories
	}
	if _, done := categories[category]; done {
		return false
	}
	categories[category] = struct{}{}
	return true
}

func (n *Notifier) raise(ctx context.Context, user chat.User, category chat.Category, text string) {
	notification := chat.NewNotification(user.Username, category, text, n.now())
	if err := n.notifications.Add(notification); err != nil {
		n.log.Warn("Unable to store notification", "username", user.Username, "error", err)
	}

	if conn, ok := n.registry.Connection(user.Username); ok {
		if err := conn.Consume(ctx, event.NewNotification{Notification: notification}); err != nil {
			n.log.Debug("Notification push failed", "username", user.Username, "error", err)
		}
	}

	if user.Email == "" || !user.EmailNotifications {
		return
	}
	mail := chat.Mail{
		To:      user.Email,
		Subject: subject(category),
		Body:    text,
	}
	if !n.mails.Enqueue(mail) {
		n.log.Warn("Mail queue full, notification email dropped", "username", user.Username)
	}
}

func subject(category chat.Category) string {
	switch category {
	case chat.CategoryGroup:
		return "New message in the group chat"
	case chat.CategoryDirect:
		return "New direct message"
	default:
		return "Account update"
	}
}

func describe(message chat.Message) string {
	if message.IsGroup() {
		return fmt.Sprintf("%s posted a new message in the group chat", message.From)
	}
	return fmt.Sprintf("You have a new direct message from %s", message.From)
}
