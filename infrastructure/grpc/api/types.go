package api

import "time"

type Empty struct{}

type UserInfo struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email,omitempty"`
	Role               string    `json:"role"`
	Avatar             string    `json:"avatar"`
	Locked             bool      `json:"locked"`
	EmailNotifications bool      `json:"email_notifications"`
	Status             string    `json:"status"`
	Online             bool      `json:"online"`
	CreatedAt          time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Pin      string `json:"pin,omitempty"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UpdateSettingsRequest leaves nil fields untouched.
type UpdateSettingsRequest struct {
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
	Pin                *string `json:"pin,omitempty"`
	Avatar             *string `json:"avatar,omitempty"`
}

type UserResponse struct {
	User UserInfo `json:"user"`
}

type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Username string  `json:"username"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
}

type UsernameRequest struct {
	Username string `json:"username"`
}

type ClearChatResponse struct {
	Removed int `json:"removed"`
}

type SetGroupInfoRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}
