//go:generate go run go.uber.org/mock/mockgen -source=user_repository.go -destination=../../mocks/mock_user_repository.go -package=mocks
package storage

import (
	"chat-relay/domain/chat"
	"chat-relay/errors"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const userPrefix = "user:"

type IUserRepository interface {
	CreateUser(user chat.User) (chat.User, error)
	FindByUsername(username string) (chat.User, error)
	Persist(user chat.User) error
	DeleteUser(username string) error
	ListUsers() ([]chat.User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

// DiskUser is the stored form of an identity record.
type DiskUser struct {
	ID                 string `cbor:"id"`
	Username           string `cbor:"username"`
	Email              string `cbor:"email"`
	PasswordHash       string `cbor:"password_hash"`
	PinHash            string `cbor:"pin_hash,omitempty"`
	Role               string `cbor:"role"`
	Avatar             string `cbor:"avatar"`
	Locked             bool   `cbor:"locked"`
	EmailNotifications bool   `cbor:"email_notifications"`
	Status             string `cbor:"status"`
	CreatedAt          int64  `cbor:"created_at"`
}

// CreateUser stores a new identity. Usernames and emails are unique regardless of case.
func (u *UserRepository) CreateUser(user chat.User) (chat.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	data, err := marshal(fromUser(user))
	if err != nil {
		return chat.User{}, fmt.Errorf("marshal failed: %w", err)
	}
	err = u.db.Update(func(txn *badger.Txn) error {
		taken, err := isTaken(txn, user)
		if err != nil {
			return err
		}
		if taken {
			return errors.ErrUserAlreadyExists
		}
		return txn.Set(userKey(user.Username), data)
	})
	if err != nil {
		return chat.User{}, err
	}
	return user, nil
}

func (u *UserRepository) FindByUsername(username string) (chat.User, error) {
	var diskUser DiskUser
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(username))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshal(val, &diskUser)
		})
	})
	if err != nil {
		return chat.User{}, err
	}
	return toUser(diskUser), nil
}

// Persist overwrites an existing identity record in a single transaction.
func (u *UserRepository) Persist(user chat.User) error {
	data, err := marshal(fromUser(user))
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return u.db.Update(func(txn *badger.Txn) error {
		key := userKey(user.Username)
		if _, err := txn.Get(key); err != nil {
			if goerrors.Is(err, badger.ErrKeyNotFound) {
				return errors.ErrUserNotFound
			}
			return err
		}
		return txn.Set(key, data)
	})
}

func (u *UserRepository) DeleteUser(username string) error {
	return u.db.Update(func(txn *badger.Txn) error {
		key := userKey(username)
		if _, err := txn.Get(key); err != nil {
			if goerrors.Is(err, badger.ErrKeyNotFound) {
				return errors.ErrUserNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

// ListUsers returns every identity sorted by username.
func (u *UserRepository) ListUsers() ([]chat.User, error) {
	var users []chat.User
	err := u.db.View(func(txn *badger.Txn) error {
		return eachUser(txn, func(d DiskUser) bool {
			users = append(users, toUser(d))
			return true
		})
	})
	return users, err
}

func isTaken(txn *badger.Txn, candidate chat.User) (bool, error) {
	taken := false
	err := eachUser(txn, func(d DiskUser) bool {
		if strings.EqualFold(d.Username, candidate.Username) ||
			(candidate.Email != "" && strings.EqualFold(d.Email, candidate.Email)) {
			taken = true
			return false
		}
		return true
	})
	return taken, err
}

func eachUser(txn *badger.Txn, fn func(DiskUser) bool) error {
	prefix := []byte(userPrefix)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var diskUser DiskUser
		if err := it.Item().Value(func(val []byte) error {
			return unmarshal(val, &diskUser)
		}); err != nil {
			return err
		}
		if !fn(diskUser) {
			return nil
		}
	}
	return nil
}

func userKey(username string) []byte {
	return []byte(userPrefix + username)
}

func fromUser(user chat.User) DiskUser {
	return DiskUser{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		PasswordHash:       user.PasswordHash,
		PinHash:            user.PinHash,
		Role:               string(user.Role),
		Avatar:             user.Avatar,
		Locked:             user.Locked,
		EmailNotifications: user.EmailNotifications,
		Status:             string(user.Status),
		CreatedAt:          user.CreatedAt.Unix(),
	}
}

func toUser(d DiskUser) chat.User {
	return chat.User{
		ID:                 d.ID,
		Username:           d.Username,
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		PinHash:            d.PinHash,
		Role:               chat.Role(d.Role),
		Avatar:             d.Avatar,
		Locked:             d.Locked,
		EmailNotifications: d.EmailNotifications,
		Status:             chat.Status(d.Status),
		CreatedAt:          time.Unix(d.CreatedAt, 0).UTC(),
	}
}
