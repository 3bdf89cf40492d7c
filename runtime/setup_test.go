package runtime

import (
	"chat-relay/domain/chat"
	"chat-relay/domain/event"
	"chat-relay/encryption"
	"chat-relay/infrastructure/storage"
	"chat-relay/moderation"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

// recordingConnection keeps every event it receives.
type recordingConnection struct {
	mu     sync.Mutex
	events []event.DomainEvent
	closed bool
}

func newRecordingConnection() *recordingConnection {
	return &recordingConnection{}
}

func (c *recordingConnection) Consume(_ context.Context, e event.DomainEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *recordingConnection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *recordingConnection) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *recordingConnection) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

func (c *recordingConnection) named(name event.Name) []event.DomainEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Filter(c.events, func(e event.DomainEvent, _ int) bool {
		return e.EventName() == name
	})
}

func (c *recordingConnection) delivered() []chat.Message {
	return lo.Map(c.named(event.MessageName), func(e event.DomainEvent, _ int) chat.Message {
		return e.(event.MessageDelivered).Message
	})
}

func (c *recordingConnection) lastHistory() []chat.Message {
	histories := c.named(event.HistoryName)
	if len(histories) == 0 {
		return nil
	}
	return histories[len(histories)-1].(event.History).Messages
}

func (c *recordingConnection) deleted() []event.MessageDeleted {
	return lo.Map(c.named(event.DeleteMessageName), func(e event.DomainEvent, _ int) event.MessageDeleted {
		return e.(event.MessageDeleted)
	})
}

type mailRecorder struct {
	mu    sync.Mutex
	mails []chat.Mail
}

func (m *mailRecorder) Enqueue(mail chat.Mail) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mails = append(m.mails, mail)
	return true
}

func (m *mailRecorder) sent() []chat.Mail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]chat.Mail(nil), m.mails...)
}

// fixture wires a hub on an in-memory Badger instance.
type fixture struct {
	hub           *Hub
	registry      *Registry
	gate          *moderation.Gate
	messages      *storage.MessageRepository
	users         *storage.UserRepository
	notifications *storage.NotificationRepository
	mails         *mailRecorder
}

func newFixture(t *testing.T, censored ...string) *fixture {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	req.NoError(err)

	cipher, err := encryption.NewMessageCipher("test-secret")
	req.NoError(err)
	messages, err := storage.NewMessageRepository(db, cipher, log)
	req.NoError(err)
	t.Cleanup(func() {
		_ = messages.Close()
		_ = db.Close()
	})

	users := storage.NewUserRepository(db)
	notifications := storage.NewNotificationRepository(db)
	groups := storage.NewGroupRepository(db, "General")
	registry := NewRegistry()
	gate := moderation.NewGate(users, registry, log)
	moderator, err := moderation.NewModerator(censored, '*', log)
	req.NoError(err)
	mails := &mailRecorder{}
	notifier := NewNotifier(users, notifications, registry, mails, log)
	reaper := NewReaper(messages, users, registry, log)
	hub := NewHub(log, registry, gate, moderator, messages, users, groups, notifier, reaper)

	return &fixture{
		hub:           hub,
		registry:      registry,
		gate:          gate,
		messages:      messages,
		users:         users,
		notifications: notifications,
		mails:         mails,
	}
}

func (f *fixture) register(t *testing.T, username string, role chat.Role) {
	_, err := f.users.CreateUser(chat.User{
		Username:           username,
		Email:              username + "@example.com",
		Role:               role,
		Avatar:             username + ".png",
		Status:             chat.StatusApproved,
		EmailNotifications: true,
	})
	require.NoError(t, err)
}

func (f *fixture) join(t *testing.T, username string) *recordingConnection {
	conn := newRecordingConnection()
	require.NoError(t, f.hub.Handle(context.Background(), JoinCommand{Conn: conn, Session: username, Identity: username}))
	return conn
}
