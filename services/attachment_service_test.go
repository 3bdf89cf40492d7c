package services

import (
	"chat-relay/domain/chat"
	"chat-relay/encryption"
	"chat-relay/infrastructure/storage"
	"chat-relay/mocks"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAttachmentService(t *testing.T, locks LockState) (*AttachmentService, *storage.MessageRepository) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	req.NoError(err)
	cipher, err := encryption.NewMessageCipher("test-secret")
	req.NoError(err)
	messages, err := storage.NewMessageRepository(db, cipher, logs.GetLoggerFromLevel(slog.LevelError))
	req.NoError(err)
	t.Cleanup(func() {
		_ = messages.Close()
		_ = db.Close()
	})
	return NewAttachmentService(storage.NewUploadRepository(db), messages, locks), messages
}

func TestAttachmentService_Direct_Attachment_Stays_Private(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	locks := mocks.NewMockLockState(ctrl)
	locks.EXPECT().IsLocked(gomock.Any()).Return(false).AnyTimes()
	svc, messages := newAttachmentService(t, locks)

	// Given alice uploaded a file and sent it to bob
	req.NoError(svc.Record("abc.pdf", "application/pdf", "alice"))
	_, err := messages.Append(chat.NewMessage("alice", "bob", chat.FilePayload("/uploads/abc.pdf", "report.pdf"), time.Now()))
	req.NoError(err)

	// Then the uploader and the recipient can open it, a third party cannot
	for identity, expected := range map[string]bool{"alice": true, "bob": true, "carol": false} {
		allowed, err := svc.CanOpen(identity, "/uploads/abc.pdf")
		req.NoError(err)
		req.Equal(expected, allowed, identity)
	}
}

func TestAttachmentService_Locked_Identity_Cannot_Open_Group_Attachment(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	locks := mocks.NewMockLockState(ctrl)
	locks.EXPECT().IsLocked("bob").Return(true)
	locks.EXPECT().IsLocked("carol").Return(false)
	svc, messages := newAttachmentService(t, locks)

	_, err := messages.Append(chat.NewMessage("alice", chat.GroupChannel, chat.FilePayload("/uploads/abc.png", "cat.png"), time.Now()))
	req.NoError(err)

	allowed, err := svc.CanOpen("bob", "/uploads/abc.png")
	req.NoError(err)
	req.False(allowed)

	allowed, err = svc.CanOpen("carol", "/uploads/abc.png")
	req.NoError(err)
	req.True(allowed)
}

func TestAttachmentService_Unreferenced_Upload_Belongs_To_Its_Owner(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	locks := mocks.NewMockLockState(ctrl)
	locks.EXPECT().IsLocked("bob").Return(false)
	svc, _ := newAttachmentService(t, locks)
	req.NoError(svc.Record("abc.txt", "text/plain", "alice"))

	allowed, err := svc.CanOpen("alice", "/uploads/abc.txt")
	req.NoError(err)
	req.True(allowed)

	allowed, err = svc.CanOpen("bob", "/uploads/abc.txt")
	req.NoError(err)
	req.False(allowed)
}
