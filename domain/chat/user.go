package chat

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleUser:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

const DefaultAvatar = "default.png"

// User is the durable identity record.
type User struct {
	ID                 string
	Username           string
	Email              string
	PasswordHash       string
	PinHash            string
	Role               Role
	Avatar             string
	Locked             bool
	EmailNotifications bool
	Status             Status
	CreatedAt          time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsApproved() bool {
	return u.Status == StatusApproved
}

// Presence is the public view of an online identity.
type Presence struct {
	Username string
	Avatar   string
}

// GroupInfo holds the display metadata of the group channel.
type GroupInfo struct {
	Name string
	Icon string
}
