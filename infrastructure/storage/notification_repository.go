//go:generate go run go.uber.org/mock/mockgen -source=notification_repository.go -destination=../../mocks/mock_notification_repository.go -package=mocks
package storage

import (
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const notificationPrefix = "notif:"

type INotificationRepository interface {
	Add(notification chat.Notification) error
	List(username string) ([]chat.Notification, error)
	MarkRead(username string, id uuid.UUID) error
	DeleteAll(username string) error
}

type NotificationRepository struct {
	db *badger.DB
}

func NewNotificationRepository(db *badger.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type DiskNotification struct {
	ID        string `cbor:"id"`
	Username  string `cbor:"username"`
	Type      string `cbor:"type"`
	Message   string `cbor:"message"`
	Read      bool   `cbor:"read"`
	CreatedAt int64  `cbor:"created_at"`
}

// Add stores a notification under "notif:{username}:{timestamp_padded}:{uuid}".
func (n *NotificationRepository) Add(notification chat.Notification) error {
	data, err := marshal(fromNotification(notification))
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return n.db.Update(func(txn *badger.Txn) error {
		return txn.Set(notificationKey(notification), data)
	})
}

// List returns the notifications of a user, most recent first.
func (n *NotificationRepository) List(username string) ([]chat.Notification, error) {
	var notifications []chat.Notification
	err := n.db.View(func(txn *badger.Txn) error {
		prefix := userNotificationPrefix(username)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts from the largest key of the prefix
		seekKey := append(append([]byte(nil), prefix...), 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			var d DiskNotification
			if err := it.Item().Value(func(val []byte) error {
				return unmarshal(val, &d)
			}); err != nil {
				return err
			}
			notifications = append(notifications, toNotification(d))
		}
		return nil
	})
	return notifications, err
}

func (n *NotificationRepository) MarkRead(username string, id uuid.UUID) error {
	return n.db.Update(func(txn *badger.Txn) error {
		prefix := userNotificationPrefix(username)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var d DiskNotification
			if err := item.Value(func(val []byte) error {
				return unmarshal(val, &d)
			}); err != nil {
				return err
			}
			if d.ID != id.String() {
				continue
			}
			if d.Read {
				return nil
			}
			d.Read = true
			data, err := marshal(d)
			if err != nil {
				return err
			}
			return txn.Set(item.KeyCopy(nil), data)
		}
		return errors.ErrNotificationAbsent
	})
}

func (n *NotificationRepository) DeleteAll(username string) error {
	return n.db.Update(func(txn *badger.Txn) error {
		prefix := userNotificationPrefix(username)
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

func userNotificationPrefix(username string) []byte {
	return []byte(notificationPrefix + username + ":")
}

func notificationKey(notification chat.Notification) []byte {
	return []byte(fmt.Sprintf("%s%s:%019d:%s",
		notificationPrefix,
		notification.Username,
		notification.CreatedAt.UnixNano(),
		notification.ID))
}

func fromNotification(notification chat.Notification) DiskNotification {
	return DiskNotification{
		ID:        notification.ID.String(),
		Username:  notification.Username,
		Type:      string(notification.Type),
		Message:   notification.Message,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt.UnixNano(),
	}
}

func toNotification(d DiskNotification) chat.Notification {
	return chat.Notification{
		ID:        uuid.MustParse(d.ID),
		Username:  d.Username,
		Type:      chat.Category(d.Type),
		Message:   d.Message,
		Read:      d.Read,
		CreatedAt: time.Unix(0, d.CreatedAt).UTC(),
	}
}
