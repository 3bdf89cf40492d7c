package storage

import (
	"chat-relay/encryption"
	"log/slog"
	"os"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

// SetupTestDB initializes a temporary Badger instance for testing
func SetupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func SetupMessageRepository(t *testing.T, db *badger.DB, secret string) *MessageRepository {
	cipher, err := encryption.NewMessageCipher(secret)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	repository, err := NewMessageRepository(db, cipher, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close() })
	return repository
}
