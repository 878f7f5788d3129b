package storage

import (
	"context"
	"errors"

	"chat_back_end_go/models"
)

var (
	ErrNotFound   = errors.New("no rows in result set")
	ErrEmailTaken = errors.New("email already registered")
)

// Store is the persistence boundary for the service layer. Reads return
// denormalized records: messages carry their sender profile and full chat,
// chats carry their participant profiles.
type Store interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	SearchUsers(ctx context.Context, query, excludeUserID string) ([]models.User, error)
	SetUserOnline(ctx context.Context, id string, online bool) error

	GetChatByID(ctx context.Context, id string) (models.Chat, error)
	FindOrCreateChat(ctx context.Context, userID, otherUserID string) (models.Chat, error)
	ListChatsForUser(ctx context.Context, userID string) ([]models.Chat, error)
	SetLatestMessage(ctx context.Context, chatID string, msg models.Message) error

	CreateMessage(ctx context.Context, msg models.Message) (models.Message, error)
	GetMessage(ctx context.Context, chatID, messageID string) (models.Message, error)
	ListMessages(ctx context.Context, chatID string) ([]models.Message, error)
	UpdateMessageContent(ctx context.Context, chatID, messageID, content string) (models.Message, error)
	DeleteMessage(ctx context.Context, chatID, messageID string) (models.Message, error)
}

// SnapshotOf copies a message for denormalized storage on its chat. The
// chat back-reference is dropped so the snapshot never recurses into its
// owner.
func SnapshotOf(msg models.Message) models.Message {
	msg.Chat = nil
	return msg
}
