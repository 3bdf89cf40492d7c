package services

import (
	"chat-relay/domain/chat"
	"chat-relay/infrastructure/storage"
	"path"
	"time"

	"github.com/samber/lo"
)

type IAttachmentService interface {
	Record(name, mimeType, owner string) error
	CanOpen(identity, filePath string) (bool, error)
}

// AttachmentService decides who may download a stored upload: its uploaders
// and whoever can currently see a file message pointing at it.
type AttachmentService struct {
	uploads  storage.IUploadRepository
	messages storage.IMessageRepository
	locks    LockState
}

func NewAttachmentService(uploads storage.IUploadRepository, messages storage.IMessageRepository, locks LockState) *AttachmentService {
	return &AttachmentService{uploads: uploads, messages: messages, locks: locks}
}

func (s *AttachmentService) Record(name, mimeType, owner string) error {
	return s.uploads.Record(name, mimeType, owner, time.Now().UTC())
}

func (s *AttachmentService) CanOpen(identity, filePath string) (bool, error) {
	owner, err := s.uploads.IsOwner(path.Base(filePath), identity)
	if err != nil || owner {
		return owner, err
	}
	messages, err := s.messages.ListVisibleTo(identity)
	if err != nil {
		return false, err
	}
	locked := s.locks.IsLocked(identity)
	return lo.SomeBy(messages, func(m chat.Message) bool {
		if m.IsGroup() && locked {
			return false
		}
		return m.Payload.Kind == chat.KindFile && m.Payload.FilePath == filePath
	}), nil
}
