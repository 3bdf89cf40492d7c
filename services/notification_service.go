package services

import (
	"chat-relay/domain/chat"
	"chat-relay/infrastructure/storage"

	"github.com/google/uuid"
)

type INotificationService interface {
	List(username string) ([]chat.Notification, error)
	MarkRead(username string, id uuid.UUID) error
	ClearAll(username string) error
}

type NotificationService struct {
	repository storage.INotificationRepository
}

func NewNotificationService(repository storage.INotificationRepository) *NotificationService {
	return &NotificationService{repository: repository}
}

// List returns the notifications of a user, newest first
func (s *NotificationService) List(username string) ([]chat.Notification, error) {
	return s.repository.List(username)
}

func (s *NotificationService) MarkRead(username string, id uuid.UUID) error {
	return s.repository.MarkRead(username, id)
}

func (s *NotificationService) ClearAll(username string) error {
	return s.repository.DeleteAll(username)
}
