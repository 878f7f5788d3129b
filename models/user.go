package models

import (
	"time"
)

// User is a registered account. The credential hash is never serialized.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Pic       string    `json:"pic"`
	IsAdmin   bool      `json:"isAdmin"`
	IsOnline  bool      `json:"isOnline"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Pic      string `json:"pic"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PresenceRequest carries the target user of an online/offline call. The
// field name matches the wire contract the clients already send.
type PresenceRequest struct {
	UsedrID string `json:"usedrId"`
}
