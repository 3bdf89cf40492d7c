package storage

import (
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newUser(username, email string) chat.User {
	return chat.User{
		Username: username,
		Email:    email,
		Role:     chat.RoleUser,
		Avatar:   chat.DefaultAvatar,
		Status:   chat.StatusPending,
	}
}

func TestUserRepository_Create_And_Find(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(SetupTestDB(t))

	created, err := repository.CreateUser(newUser("alice", "alice@example.com"))
	req.NoError(err)
	req.NotEmpty(created.ID)
	req.False(created.CreatedAt.IsZero())

	found, err := repository.FindByUsername("alice")
	req.NoError(err)
	req.Equal(created.ID, found.ID)
	req.Equal(chat.StatusPending, found.Status)

	_, err = repository.FindByUsername("bob")
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestUserRepository_Rejects_Duplicates_Ignoring_Case(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(SetupTestDB(t))

	_, err := repository.CreateUser(newUser("alice", "alice@example.com"))
	req.NoError(err)

	_, err = repository.CreateUser(newUser("ALICE", "other@example.com"))
	req.ErrorIs(err, errors.ErrUserAlreadyExists)

	_, err = repository.CreateUser(newUser("bob", "Alice@Example.com"))
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func TestUserRepository_Persist_Delete_List(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(SetupTestDB(t))

	alice, err := repository.CreateUser(newUser("alice", "alice@example.com"))
	req.NoError(err)
	_, err = repository.CreateUser(newUser("bob", "bob@example.com"))
	req.NoError(err)

	// When alice is locked
	alice.Locked = true
	req.NoError(repository.Persist(alice))

	// Then the flag survives a reload
	found, err := repository.FindByUsername("alice")
	req.NoError(err)
	req.True(found.Locked)

	// And persisting an unknown user fails
	req.ErrorIs(repository.Persist(newUser("carol", "")), errors.ErrUserNotFound)

	users, err := repository.ListUsers()
	req.NoError(err)
	req.Len(users, 2)
	req.Equal("alice", users[0].Username)

	req.NoError(repository.DeleteUser("bob"))
	req.ErrorIs(repository.DeleteUser("bob"), errors.ErrUserNotFound)
	users, err = repository.ListUsers()
	req.NoError(err)
	req.Len(users, 1)
}
