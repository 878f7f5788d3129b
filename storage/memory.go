package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"chat_back_end_go/models"

	"github.com/google/uuid"
)

// Memory is a map-backed Store used by the tests. It applies the same
// denormalization rules as the Postgres store: readers get copies, never
// the stored records themselves.
type Memory struct {
	mu       sync.Mutex
	users    map[string]models.User
	chats    map[string]*memChat
	messages map[string]models.Message
	order    map[string][]string
}

type memChat struct {
	id        string
	userIDs   []string
	latest    *models.Message
	createdAt time.Time
	updatedAt time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]models.User),
		chats:    make(map[string]*memChat),
		messages: make(map[string]models.Message),
		order:    make(map[string][]string),
	}
}

var _ Store = (*Memory)(nil)

func (s *Memory) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return models.User{}, ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = user
	return user, nil
}

func (s *Memory) GetUserByID(ctx context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *Memory) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Memory) SearchUsers(ctx context.Context, query, excludeUserID string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	var users []models.User
	for _, user := range s.users {
		if user.ID == excludeUserID {
			continue
		}
		if strings.Contains(strings.ToLower(user.Name), q) || strings.Contains(strings.ToLower(user.Email), q) {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *Memory) SetUserOnline(ctx context.Context, id string, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.IsOnline = online
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}

func (s *Memory) GetChatByID(ctx context.Context, id string) (models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildChat(id)
}

func (s *Memory) FindOrCreateChat(ctx context.Context, userID, otherUserID string) (models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, chat := range s.chats {
		if containsID(chat.userIDs, userID) && containsID(chat.userIDs, otherUserID) {
			return s.buildChat(id)
		}
	}

	now := time.Now()
	chat := &memChat{
		id:        uuid.NewString(),
		userIDs:   []string{userID, otherUserID},
		createdAt: now,
		updatedAt: now,
	}
	s.chats[chat.id] = chat
	return s.buildChat(chat.id)
}

func (s *Memory) ListChatsForUser(ctx context.Context, userID string) ([]models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var chats []models.Chat
	for id, chat := range s.chats {
		if containsID(chat.userIDs, userID) {
			built, err := s.buildChat(id)
			if err != nil {
				return nil, err
			}
			chats = append(chats, built)
		}
	}
	return chats, nil
}

func (s *Memory) SetLatestMessage(ctx context.Context, chatID string, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return ErrNotFound
	}
	snapshot := SnapshotOf(msg)
	chat.latest = &snapshot
	chat.updatedAt = time.Now()
	return nil
}

func (s *Memory) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[msg.ChatID]; !ok {
		return models.Message{}, ErrNotFound
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	msg.UpdatedAt = msg.CreatedAt
	msg.Sender = nil
	msg.Chat = nil
	s.messages[msg.ID] = msg
	s.order[msg.ChatID] = append(s.order[msg.ChatID], msg.ID)
	return s.buildMessage(msg)
}

func (s *Memory) GetMessage(ctx context.Context, chatID, messageID string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[messageID]
	if !ok || msg.ChatID != chatID {
		return models.Message{}, ErrNotFound
	}
	return s.buildMessage(msg)
}

func (s *Memory) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []models.Message
	for _, id := range s.order[chatID] {
		built, err := s.buildMessage(s.messages[id])
		if err != nil {
			return nil, err
		}
		messages = append(messages, built)
	}
	return messages, nil
}

func (s *Memory) UpdateMessageContent(ctx context.Context, chatID, messageID, content string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[messageID]
	if !ok || msg.ChatID != chatID {
		return models.Message{}, ErrNotFound
	}
	prev, err := s.buildMessage(msg)
	if err != nil {
		return models.Message{}, err
	}
	msg.Content = content
	msg.UpdatedAt = time.Now()
	s.messages[messageID] = msg
	return prev, nil
}

func (s *Memory) DeleteMessage(ctx context.Context, chatID, messageID string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[messageID]
	if !ok || msg.ChatID != chatID {
		return models.Message{}, ErrNotFound
	}
	removed, err := s.buildMessage(msg)
	if err != nil {
		return models.Message{}, err
	}
	delete(s.messages, messageID)
	ids := s.order[chatID]
	for i, id := range ids {
		if id == messageID {
			s.order[chatID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return removed, nil
}

// buildChat and buildMessage assume the lock is held.

func (s *Memory) buildChat(id string) (models.Chat, error) {
	chat, ok := s.chats[id]
	if !ok {
		return models.Chat{}, ErrNotFound
	}
	built := models.Chat{
		ID:        chat.id,
		CreatedAt: chat.createdAt,
		UpdatedAt: chat.updatedAt,
	}
	for _, userID := range chat.userIDs {
		if user, ok := s.users[userID]; ok {
			built.Users = append(built.Users, user)
		}
	}
	if chat.latest != nil {
		snapshot := *chat.latest
		built.LatestMessage = &snapshot
	}
	return built, nil
}

func (s *Memory) buildMessage(msg models.Message) (models.Message, error) {
	if sender, ok := s.users[msg.SenderID]; ok {
		msg.Sender = &sender
	}
	chat, err := s.buildChat(msg.ChatID)
	if err != nil {
		return models.Message{}, err
	}
	msg.Chat = &chat
	return msg, nil
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
