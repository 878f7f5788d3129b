package models

import (
	"time"
)

// Message is a single content item in a chat. Sender and Chat are filled
// in at read time with the owning records; the raw ids are what the store
// persists. PrevMessage holds the id of the message being replied to,
// empty when the message is not a reply. CreatedAt is server-assigned and
// immutable.
type Message struct {
	ID          string    `json:"_id"`
	SenderID    string    `json:"-"`
	ChatID      string    `json:"-"`
	Sender      *User     `json:"sender,omitempty"`
	Chat        *Chat     `json:"chat,omitempty"`
	Content     string    `json:"content"`
	ContentType string    `json:"content_type"`
	PrevMessage string    `json:"prev_message"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SendMessageRequest struct {
	Content     string `json:"content"`
	ChatID      string `json:"chatId"`
	ContentType string `json:"content_type"`
}

type EditMessageRequest struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
	Content   string `json:"content"`
}

type DeleteMessageRequest struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
}

type ReplyMessageRequest struct {
	ChatID      string `json:"chatId"`
	MessageID   string `json:"messageId"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

type ForwardMessageRequest struct {
	Content       string `json:"content"`
	ContentType   string `json:"content_type"`
	ForwardChatID string `json:"forwardChatId"`
}
