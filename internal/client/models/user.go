// Package models defines client-side data models shared by the identity
// service, its backends and the local store.
package models

import "time"

// User is the locally persisted identity record.
//
// Password is kept in clear only by the local mock backend; ID never changes
// after creation and AccessToken is replaced on every successful auth event.
type User struct {
	ID          string
	Email       string
	Username    string
	Password    string
	AccessToken string
	CreatedAt   time.Time
	LastLogin   time.Time
}

// UserInfo is the public part of a user as returned by register/login.
type UserInfo struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}
