package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chat_back_end_go/models"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Postgres implements Store on top of a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

var _ Store = (*Postgres)(nil)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

const userColumns = "id, name, email, hashed_password, pic, is_admin, is_online, created_at, updated_at"

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Pic,
		&user.IsAdmin,
		&user.IsOnline,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error scanning user row: %v", err)
	}
	return user, nil
}

func (s *Postgres) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
	INSERT INTO users (id, name, email, hashed_password, pic, is_admin, is_online, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Name, user.Email, user.Password, user.Pic, user.IsAdmin, user.IsOnline, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("error inserting user: %v", err)
	}
	return user, nil
}

func (s *Postgres) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

func (s *Postgres) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row)
}

func (s *Postgres) SearchUsers(ctx context.Context, query, excludeUserID string) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `
	SELECT `+userColumns+` FROM users
	WHERE (LOWER(name) LIKE LOWER($1) OR LOWER(email) LIKE LOWER($1)) AND id != $2
	ORDER BY name ASC`,
		"%"+query+"%", excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %v", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %v", err)
	}
	return users, nil
}

func (s *Postgres) SetUserOnline(ctx context.Context, id string, online bool) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE users SET is_online = $2, updated_at = NOW() WHERE id = $1", id, online)
	if err != nil {
		return fmt.Errorf("error updating user %s: %v", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) GetChatByID(ctx context.Context, id string) (models.Chat, error) {
	var chat models.Chat
	var latest []byte
	err := s.pool.QueryRow(ctx,
		"SELECT id, latest_message, created_at, updated_at FROM chats WHERE id = $1", id).Scan(
		&chat.ID,
		&latest,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Chat{}, ErrNotFound
	}
	if err != nil {
		return models.Chat{}, fmt.Errorf("error querying chat %s: %v", id, err)
	}

	if len(latest) > 0 {
		var snapshot models.Message
		if err := json.Unmarshal(latest, &snapshot); err != nil {
			return models.Chat{}, fmt.Errorf("error decoding latest message for chat %s: %v", id, err)
		}
		chat.LatestMessage = &snapshot
	}

	rows, err := s.pool.Query(ctx, `
	SELECT u.id, u.name, u.email, u.pic, u.is_admin, u.is_online
	FROM participants AS p
	JOIN users AS u ON u.id = p.user_id
	WHERE p.chat_id = $1
	ORDER BY p.joined_at ASC`, id)
	if err != nil {
		return models.Chat{}, fmt.Errorf("error querying participants for chat %s: %v", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Pic, &user.IsAdmin, &user.IsOnline); err != nil {
			return models.Chat{}, fmt.Errorf("error scanning participant row: %v", err)
		}
		chat.Users = append(chat.Users, user)
	}
	if err := rows.Err(); err != nil {
		return models.Chat{}, fmt.Errorf("error iterating participant rows: %v", err)
	}
	return chat, nil
}

func (s *Postgres) FindOrCreateChat(ctx context.Context, userID, otherUserID string) (models.Chat, error) {
	var chatID string
	err := s.pool.QueryRow(ctx, `
	SELECT c.id FROM chats AS c
	JOIN participants AS p1 ON c.id = p1.chat_id
	JOIN participants AS p2 ON c.id = p2.chat_id
	WHERE p1.user_id = $1 AND p2.user_id = $2`,
		userID, otherUserID).Scan(&chatID)

	if errors.Is(err, pgx.ErrNoRows) {
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return models.Chat{}, fmt.Errorf("error starting transaction: %v", err)
		}

		chatID = uuid.NewString()
		_, err = tx.Exec(ctx,
			"INSERT INTO chats (id, created_at, updated_at) VALUES ($1, NOW(), NOW())", chatID)
		if err != nil {
			tx.Rollback(ctx)
			return models.Chat{}, fmt.Errorf("error inserting chat: %v", err)
		}

		_, err = tx.Exec(ctx, `
		INSERT INTO participants (id, chat_id, user_id, joined_at)
		VALUES ($1, $3, $4, NOW()), ($2, $3, $5, NOW())`,
			uuid.NewString(), uuid.NewString(), chatID, userID, otherUserID)
		if err != nil {
			tx.Rollback(ctx)
			return models.Chat{}, fmt.Errorf("error inserting participants: %v", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return models.Chat{}, fmt.Errorf("error committing chat: %v", err)
		}
	} else if err != nil {
		return models.Chat{}, fmt.Errorf("error querying chat for users %s, %s: %v", userID, otherUserID, err)
	}

	return s.GetChatByID(ctx, chatID)
}

func (s *Postgres) ListChatsForUser(ctx context.Context, userID string) ([]models.Chat, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT chat_id FROM participants WHERE user_id = $1 ORDER BY joined_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("error querying chats for user %s: %v", userID, err)
	}
	defer rows.Close()

	var chatIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning chat id: %v", err)
		}
		chatIDs = append(chatIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat rows: %v", err)
	}

	var chats []models.Chat
	for _, id := range chatIDs {
		chat, err := s.GetChatByID(ctx, id)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, nil
}

func (s *Postgres) SetLatestMessage(ctx context.Context, chatID string, msg models.Message) error {
	payload, err := json.Marshal(SnapshotOf(msg))
	if err != nil {
		return fmt.Errorf("error encoding latest message: %v", err)
	}
	tag, err := s.pool.Exec(ctx,
		"UPDATE chats SET latest_message = $2, updated_at = NOW() WHERE id = $1", chatID, payload)
	if err != nil {
		return fmt.Errorf("error updating latest message for chat %s: %v", chatID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const messageSelect = `
	SELECT m.id, m.chat_id, m.sender_id, m.content, m.content_type, m.prev_message, m.created_at, m.updated_at,
	       u.id, u.name, u.email, u.pic, u.is_admin, u.is_online
	FROM messages AS m
	JOIN users AS u ON u.id = m.sender_id`

func scanMessage(row rowScanner) (models.Message, error) {
	var msg models.Message
	var sender models.User
	err := row.Scan(
		&msg.ID,
		&msg.ChatID,
		&msg.SenderID,
		&msg.Content,
		&msg.ContentType,
		&msg.PrevMessage,
		&msg.CreatedAt,
		&msg.UpdatedAt,
		&sender.ID,
		&sender.Name,
		&sender.Email,
		&sender.Pic,
		&sender.IsAdmin,
		&sender.IsOnline,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Message{}, ErrNotFound
	}
	if err != nil {
		return models.Message{}, fmt.Errorf("error scanning message row: %v", err)
	}
	msg.Sender = &sender
	return msg, nil
}

func (s *Postgres) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	msg.UpdatedAt = msg.CreatedAt

	_, err := s.pool.Exec(ctx, `
	INSERT INTO messages (id, chat_id, sender_id, content, content_type, prev_message, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		msg.ID, msg.ChatID, msg.SenderID, msg.Content, msg.ContentType, msg.PrevMessage, msg.CreatedAt, msg.UpdatedAt)
	if err != nil {
		return models.Message{}, fmt.Errorf("error inserting message: %v", err)
	}
	return s.GetMessage(ctx, msg.ChatID, msg.ID)
}

func (s *Postgres) GetMessage(ctx context.Context, chatID, messageID string) (models.Message, error) {
	row := s.pool.QueryRow(ctx, messageSelect+" WHERE m.chat_id = $1 AND m.id = $2", chatID, messageID)
	msg, err := scanMessage(row)
	if err != nil {
		return models.Message{}, err
	}
	chat, err := s.GetChatByID(ctx, chatID)
	if err != nil {
		return models.Message{}, err
	}
	msg.Chat = &chat
	return msg, nil
}

func (s *Postgres) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	chat, err := s.GetChatByID(ctx, chatID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, messageSelect+" WHERE m.chat_id = $1 ORDER BY m.created_at ASC", chatID)
	if err != nil {
		return nil, fmt.Errorf("error querying messages for chat %s: %v", chatID, err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msg.Chat = &chat
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %v", err)
	}
	return messages, nil
}

func (s *Postgres) UpdateMessageContent(ctx context.Context, chatID, messageID, content string) (models.Message, error) {
	prev, err := s.GetMessage(ctx, chatID, messageID)
	if err != nil {
		return models.Message{}, err
	}
	_, err = s.pool.Exec(ctx,
		"UPDATE messages SET content = $3, updated_at = NOW() WHERE chat_id = $1 AND id = $2",
		chatID, messageID, content)
	if err != nil {
		return models.Message{}, fmt.Errorf("error updating message %s: %v", messageID, err)
	}
	return prev, nil
}

func (s *Postgres) DeleteMessage(ctx context.Context, chatID, messageID string) (models.Message, error) {
	msg, err := s.GetMessage(ctx, chatID, messageID)
	if err != nil {
		return models.Message{}, err
	}
	_, err = s.pool.Exec(ctx,
		"DELETE FROM messages WHERE chat_id = $1 AND id = $2", chatID, messageID)
	if err != nil {
		return models.Message{}, fmt.Errorf("error deleting message %s: %v", messageID, err)
	}
	return msg, nil
}
