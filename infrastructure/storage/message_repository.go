package storage

import (
	"chat-relay/domain/chat"
	"chat-relay/encryption"
	"chat-relay/errors"
	goerrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	messagePrefix      = "msg:"
	messageIndexPrefix = "msgidx:"
	messageSequenceKey = "seq:msg"
)

type IMessageRepository interface {
	Append(message chat.Message) (chat.Message, error)
	Get(id uuid.UUID) (chat.Message, error)
	ListVisibleTo(identity string) ([]chat.Message, error)
	ListByAuthor(identity string) ([]chat.Message, error)
	MarkSeen(id uuid.UUID, identity string) error
	Remove(id uuid.UUID) error
	Clear() ([]uuid.UUID, error)
}

// MessageRepository is the durable message store.
// Text payloads are sealed with the cipher before they are written and opened on
// every read. File payloads are plain references and are stored as is.
type MessageRepository struct {
	db       *badger.DB
	cipher   encryption.Cipher
	log      *slog.Logger
	sequence *badger.Sequence
}

// DiskMessage is the stored form of a message.
type DiskMessage struct {
	ID         string   `cbor:"id"`
	Seq        uint64   `cbor:"seq"`
	From       string   `cbor:"from"`
	To         string   `cbor:"to"`
	Kind       string   `cbor:"kind"`
	Ciphertext []byte   `cbor:"ciphertext,omitempty"`
	FilePath   string   `cbor:"file_path,omitempty"`
	Filename   string   `cbor:"filename,omitempty"`
	SeenBy     []string `cbor:"seen_by"`
	At         int64    `cbor:"at"`
}

func NewMessageRepository(db *badger.DB, cipher encryption.Cipher, log *slog.Logger) (*MessageRepository, error) {
	sequence, err := db.GetSequence([]byte(messageSequenceKey), 100)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	return &MessageRepository{db: db, cipher: cipher, log: log, sequence: sequence}, nil
}

// Close releases the leased sequence range. Must be called before closing the database.
func (m *MessageRepository) Close() error {
	return m.sequence.Release()
}

// Append persists a message under "msg:{seq}" where seq is a zero padded
// monotonic counter, so a prefix scan returns messages in insertion order.
// A secondary "msgidx:{uuid}" key points back to the primary key.
func (m *MessageRepository) Append(message chat.Message) (chat.Message, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if !message.HasBeenSeenBy(message.From) {
		message.SeenBy = append([]string{message.From}, message.SeenBy...)
	}
	seq, err := m.sequence.Next()
	if err != nil {
		return chat.Message{}, fmt.Errorf("next message sequence: %w", err)
	}
	diskMessage, err := m.toDiskMessage(message, seq)
	if err != nil {
		return chat.Message{}, err
	}
	data, err := marshal(diskMessage)
	if err != nil {
		return chat.Message{}, fmt.Errorf("marshal message: %w", err)
	}
	key := messageKey(seq)
	err = m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(messageIndexKey(message.ID), key)
	})
	if err != nil {
		return chat.Message{}, fmt.Errorf("store message: %w", err)
	}
	return message, nil
}

func (m *MessageRepository) Get(id uuid.UUID) (chat.Message, error) {
	var diskMessage DiskMessage
	err := m.db.View(func(txn *badger.Txn) error {
		var err error
		diskMessage, _, err = getByID(txn, id)
		return err
	})
	if err != nil {
		return chat.Message{}, err
	}
	return m.fromDiskMessage(diskMessage), nil
}

// ListVisibleTo returns every message addressed to the group, to identity or
// sent by identity, in insertion order. Lock state is not considered here.
func (m *MessageRepository) ListVisibleTo(identity string) ([]chat.Message, error) {
	return m.scan(func(d DiskMessage) bool {
		return d.To == chat.GroupChannel || d.To == identity || d.From == identity
	})
}

func (m *MessageRepository) ListByAuthor(identity string) ([]chat.Message, error) {
	return m.scan(func(d DiskMessage) bool {
		return d.From == identity
	})
}

// MarkSeen is idempotent and a no-op for unknown ids.
func (m *MessageRepository) MarkSeen(id uuid.UUID, identity string) error {
	return m.db.Update(func(txn *badger.Txn) error {
		diskMessage, key, err := getByID(txn, id)
		if goerrors.Is(err, errors.ErrMessageNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		message := chat.Message{SeenBy: diskMessage.SeenBy}
		if !message.MarkSeen(identity) {
			return nil
		}
		diskMessage.SeenBy = message.SeenBy
		data, err := marshal(diskMessage)
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		return txn.Set(key, data)
	})
}

// Remove is idempotent: removing an unknown id is not an error.
func (m *MessageRepository) Remove(id uuid.UUID) error {
	return m.db.Update(func(txn *badger.Txn) error {
		indexKey := messageIndexKey(id)
		item, err := txn.Get(indexKey)
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err = txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(indexKey)
	})
}

// Clear drops every message and returns the ids that were removed.
func (m *MessageRepository) Clear() ([]uuid.UUID, error) {
	messages, err := m.scan(func(DiskMessage) bool { return true })
	if err != nil {
		return nil, err
	}
	wb := m.db.NewWriteBatch()
	defer wb.Cancel()
	for _, prefix := range []string{messagePrefix, messageIndexPrefix} {
		keys, err := m.keys([]byte(prefix))
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			if err = wb.Delete(key); err != nil {
				return nil, fmt.Errorf("delete %s: %w", key, err)
			}
		}
	}
	if err = wb.Flush(); err != nil {
		return nil, fmt.Errorf("clear messages: %w", err)
	}
	return lo.Map(messages, func(item chat.Message, _ int) uuid.UUID {
		return item.ID
	}), nil
}

func (m *MessageRepository) keys(prefix []byte) ([][]byte, error) {
	var keys [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

func (m *MessageRepository) scan(keep func(DiskMessage) bool) ([]chat.Message, error) {
	var diskMessages []DiskMessage
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var diskMessage DiskMessage
				if err := unmarshal(value, &diskMessage); err != nil {
					return fmt.Errorf("unmarshal message %s: %w", it.Item().Key(), err)
				}
				if keep(diskMessage) {
					diskMessages = append(diskMessages, diskMessage)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(diskMessages, func(item DiskMessage, _ int) chat.Message {
		return m.fromDiskMessage(item)
	}), nil
}

func getByID(txn *badger.Txn, id uuid.UUID) (DiskMessage, []byte, error) {
	item, err := txn.Get(messageIndexKey(id))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return DiskMessage{}, nil, errors.ErrMessageNotFound
	}
	if err != nil {
		return DiskMessage{}, nil, err
	}
	key, err := item.ValueCopy(nil)
	if err != nil {
		return DiskMessage{}, nil, err
	}
	item, err = txn.Get(key)
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return DiskMessage{}, nil, errors.ErrMessageNotFound
	}
	if err != nil {
		return DiskMessage{}, nil, err
	}
	var diskMessage DiskMessage
	err = item.Value(func(value []byte) error {
		return unmarshal(value, &diskMessage)
	})
	return diskMessage, key, err
}

func (m *MessageRepository) toDiskMessage(message chat.Message, seq uint64) (DiskMessage, error) {
	diskMessage := DiskMessage{
		ID:     message.ID.String(),
		Seq:    seq,
		From:   message.From,
		To:     message.To,
		Kind:   string(message.Payload.Kind),
		SeenBy: message.SeenBy,
		At:     message.CreatedAt.UnixNano(),
	}
	switch message.Payload.Kind {
	case chat.KindFile:
		diskMessage.FilePath = message.Payload.FilePath
		diskMessage.Filename = message.Payload.Filename
	default:
		diskMessage.Kind = string(chat.KindText)
		ciphertext, err := m.cipher.Encrypt([]byte(message.Payload.Text))
		if err != nil {
			return DiskMessage{}, fmt.Errorf("encrypt message: %w", err)
		}
		diskMessage.Ciphertext = ciphertext
	}
	return diskMessage, nil
}

func (m *MessageRepository) fromDiskMessage(d DiskMessage) chat.Message {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		m.log.Warn("Stored message has an invalid id", "id", d.ID, "seq", d.Seq)
	}
	payload := chat.FilePayload(d.FilePath, d.Filename)
	if chat.Kind(d.Kind) != chat.KindFile {
		text, ok := encryption.DecryptText(m.cipher, d.Ciphertext)
		if !ok {
			m.log.Warn("Unreadable message payload", "message_id", d.ID)
		}
		payload = chat.TextPayload(text)
	}
	return chat.Message{
		ID:        id,
		From:      d.From,
		To:        d.To,
		Payload:   payload,
		SeenBy:    d.SeenBy,
		CreatedAt: time.Unix(0, d.At).UTC(),
	}
}

func messageKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", messagePrefix, seq))
}

func messageIndexKey(id uuid.UUID) []byte {
	return []byte(messageIndexPrefix + id.String())
}
