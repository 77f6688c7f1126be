package models

import "encoding/json"

// RegisterRequest carries registration credentials.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest carries login credentials. Either Email or Username identifies
// the user.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identifier returns Email when set, Username otherwise.
func (r LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// AuthResponse is the shape shared by register and login on both backends.
type AuthResponse struct {
	AccessToken string    `json:"access_token,omitempty"`
	User        *UserInfo `json:"user,omitempty"`
	Message     string    `json:"message,omitempty"`
}

// ProfileResponse is the shape returned by every profile operation.
//
// Data is always the normalized profile. Raw holds the "data" member exactly
// as a remote server sent it and is nil for the local backend or when the
// server sent none.
type ProfileResponse struct {
	Message string          `json:"message,omitempty"`
	Data    Profile         `json:"data"`
	Raw     json.RawMessage `json:"-"`
}
