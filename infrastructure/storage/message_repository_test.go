package storage

import (
	"bytes"
	"chat-relay/domain/chat"
	"chat-relay/encryption"
	"chat-relay/errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_Append_Returns_Messages_In_Insertion_Order(t *testing.T) {
	req := require.New(t)
	db := SetupTestDB(t)
	repository := SetupMessageRepository(t, db, "secret")

	// Given three group messages appended with decreasing timestamps
	at := time.Now().UTC()
	contents := []string{"first", "second", "third"}
	for i, content := range contents {
		_, err := repository.Append(chat.NewMessage("alice", chat.GroupChannel,
			chat.TextPayload(content), at.Add(-time.Duration(i)*time.Minute)))
		req.NoError(err)
	}

	// When listing the messages visible to bob
	messages, err := repository.ListVisibleTo("bob")
	req.NoError(err)

	// Then the order is the insertion order, not the timestamp order
	req.Equal(contents, lo.Map(messages, func(m chat.Message, _ int) string {
		return m.Payload.Text
	}))
}

func Test_ListVisibleTo_Filters_Direct_Messages(t *testing.T) {
	req := require.New(t)
	db := SetupTestDB(t)
	repository := SetupMessageRepository(t, db, "secret")
	now := time.Now().UTC()

	// Given a group message and direct messages between different pairs
	group, err := repository.Append(chat.NewMessage("alice", chat.GroupChannel, chat.TextPayload("hello all"), now))
	req.NoError(err)
	toBob, err := repository.Append(chat.NewMessage("alice", "bob", chat.TextPayload("hi bob"), now))
	req.NoError(err)
	fromBob, err := repository.Append(chat.NewMessage("bob", "carol", chat.TextPayload("hi carol"), now))
	req.NoError(err)

	ids := func(messages []chat.Message) []uuid.UUID {
		return lo.Map(messages, func(m chat.Message, _ int) uuid.UUID { return m.ID })
	}

	// Then each identity sees the group plus its own direct messages
	bobView, err := repository.ListVisibleTo("bob")
	req.NoError(err)
	req.Equal([]uuid.UUID{group.ID, toBob.ID, fromBob.ID}, ids(bobView))

	carolView, err := repository.ListVisibleTo("carol")
	req.NoError(err)
	req.Equal([]uuid.UUID{group.ID, fromBob.ID}, ids(carolView))

	daveView, err := repository.ListVisibleTo("dave")
	req.NoError(err)
	req.Equal([]uuid.UUID{group.ID}, ids(daveView))

	byAlice, err := repository.ListByAuthor("alice")
	req.NoError(err)
	req.Equal([]uuid.UUID{group.ID, toBob.ID}, ids(byAlice))
}

func Test_Text_Is_Encrypted_At_Rest(t *testing.T) {
	req := require.New(t)
	db := SetupTestDB(t)
	repository := SetupMessageRepository(t, db, "secret")

	// Given a stored text message
	plaintext := "the launch code is 0000"
	stored, err := repository.Append(chat.NewMessage("alice", "bob", chat.TextPayload(plaintext), time.Now()))
	req.NoError(err)

	// When reading every raw value from the database
	var raw [][]byte
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			raw = append(raw, value)
		}
		return nil
	})
	req.NoError(err)

	// Then the plaintext never appears on disk
	req.NotEmpty(raw)
	for _, value := range raw {
		req.False(bytes.Contains(value, []byte(plaintext)))
	}

	// And the message reads back as plaintext
	got, err := repository.Get(stored.ID)
	req.NoError(err)
	req.Equal(plaintext, got.Payload.Text)
	req.Equal([]string{"alice"}, got.SeenBy)
}

func Test_Wrong_Key_Yields_Unreadable_Sentinel(t *testing.T) {
	req := require.New(t)
	db := SetupTestDB(t)
	writer := SetupMessageRepository(t, db, "first-secret")

	// Given a message written with one secret
	stored, err := writer.Append(chat.NewMessage("alice", chat.GroupChannel, chat.TextPayload("hello"), time.Now()))
	req.NoError(err)
	req.NoError(writer.Close())

	// When it is read with another secret
	reader := SetupMessageRepository(t, db, "second-secret")
	got, err := reader.Get(stored.ID)

	// Then the payload is replaced by the sentinel without error
	req.NoError(err)
	req.Equal(encryption.UnreadableText, got.Payload.Text)
	req.Equal("alice", got.From)
}

func Test_File_Message_Keeps_Reference(t *testing.T) {
	req := require.New(t)
	db := SetupTestDB(t)
	repository := SetupMessageRepository(t, db, "secret")

	stored, err := repository.Append(chat.NewMessage("alice", "bob",
		chat.FilePayload("/uploads/abc.png", "cat.png"), time.Now()))
	req.NoError(err)

	got, err := repository.Get(stored.ID)
	req.NoError(err)
	req.Equal(chat.KindFile, got.Payload.Kind)
	req.Equal("/uploads/abc.png", got.Payload.FilePath)
	req.Equal("cat.png", got.Payload.Filename)
}

func Test_MarkSeen_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	db := SetupTestDB(t)
	repository := SetupMessageRepository(t, db, "secret")

	stored, err := repository.Append(chat.NewMessage("alice", chat.GroupChannel, chat.TextPayload("hi"), time.Now()))
	req.NoError(err)

	// When bob marks the message seen twice
	req.NoError(repository.MarkSeen(stored.ID, "bob"))
	req.NoError(repository.MarkSeen(stored.ID, "bob"))

	// Then bob appears only once
	got, err := repository.Get(stored.ID)
	req.NoError(err)
	req.Equal([]string{"alice", "bob"}, got.SeenBy)

	// And marking an unknown message is a no-op
	req.NoError(repository.MarkSeen(uuid.New(), "bob"))
}

func Test_Remove_And_Clear(t *testing.T) {
	req := require.New(t)
	db := SetupTestDB(t)
	repository := SetupMessageRepository(t, db, "secret")
	now := time.Now()

	first, err := repository.Append(chat.NewMessage("alice", chat.GroupChannel, chat.TextPayload("one"), now))
	req.NoError(err)
	second, err := repository.Append(chat.NewMessage("bob", chat.GroupChannel, chat.TextPayload("two"), now))
	req.NoError(err)

	// When removing the first message twice
	req.NoError(repository.Remove(first.ID))
	req.NoError(repository.Remove(first.ID))

	// Then it is gone and the other one remains
	_, err = repository.Get(first.ID)
	req.ErrorIs(err, errors.ErrMessageNotFound)
	remaining, err := repository.ListVisibleTo("carol")
	req.NoError(err)
	req.Len(remaining, 1)

	// When clearing the store
	cleared, err := repository.Clear()
	req.NoError(err)

	// Then the removed ids are reported and nothing is left
	req.Equal([]uuid.UUID{second.ID}, cleared)
	remaining, err = repository.ListVisibleTo("carol")
	req.NoError(err)
	req.Empty(remaining)
}
