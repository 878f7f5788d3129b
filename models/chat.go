package models

import (
	"time"
)

// Chat is a conversation between a set of users. LatestMessage is a
// denormalized snapshot copied in when a message is created, not a live
// reference to the messages table.
type Chat struct {
	ID            string    `json:"_id"`
	Users         []User    `json:"users"`
	LatestMessage *Message  `json:"latestMessage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type AccessChatRequest struct {
	UserID string `json:"userId"`
}
