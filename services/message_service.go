package services

import (
	"context"
	"log"
	"net/http"
	"time"

	"chat_back_end_go/models"
	"chat_back_end_go/storage"

	"github.com/gin-gonic/gin"
)

// Messages may be edited or deleted for 1800 seconds after creation. The
// boundary is inclusive and measured on whole seconds against the
// immutable creation time.
const editWindowSeconds = 1800

func withinEditWindow(createdAt, now time.Time) bool {
	return now.Unix()-createdAt.Unix() <= editWindowSeconds
}

// createMessage stores a new message for senderID in chatID and rewrites
// the chat's latest-message snapshot. All three message creators (send,
// reply, forward) go through here; the chat must already exist.
func createMessage(ctx context.Context, store storage.Store, senderID, chatID, content, contentType, prevMessage string) (models.Message, error) {
	if _, err := store.GetChatByID(ctx, chatID); err != nil {
		return models.Message{}, err
	}

	msg, err := store.CreateMessage(ctx, models.Message{
		SenderID:    senderID,
		ChatID:      chatID,
		Content:     content,
		ContentType: contentType,
		PrevMessage: prevMessage,
	})
	if err != nil {
		return models.Message{}, err
	}

	if err := store.SetLatestMessage(ctx, chatID, msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// GetMessagesForChat returns the full ordered history of a chat, each
// message carrying its sender profile and chat object. A chat without
// messages yields an empty list, not an error.
func GetMessagesForChat(c *gin.Context, store storage.Store) {
	chatID := c.Param("chatId")

	messages, err := store.ListMessages(c.Request.Context(), chatID)
	if err != nil {
		log.Printf("Failed to retrieve messages for chat %s: %v", chatID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func SendMessage(c *gin.Context, store storage.Store) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Content == "" || req.ChatID == "" || req.ContentType == "" {
		log.Println("Invalid data passed into request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide content, chatId and content_type"})
		return
	}

	senderID := c.GetString("userId")
	msg, err := createMessage(c.Request.Context(), store, senderID, req.ChatID, req.Content, req.ContentType, "")
	if err != nil {
		log.Printf("Failed to store message: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, msg)
}

func DeleteMessage(c *gin.Context, store storage.Store) {
	var req models.DeleteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.ChatID == "" || req.MessageID == "" {
		log.Println("Invalid data passed into request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide chatId and messageId"})
		return
	}

	ctx := c.Request.Context()
	msg, err := store.GetMessage(ctx, req.ChatID, req.MessageID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !withinEditWindow(msg.CreatedAt, time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "Message older than 30 min"})
		return
	}

	removed, err := store.DeleteMessage(ctx, req.ChatID, req.MessageID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": removed, "status": "message deleted"})
}

func UpdateMessage(c *gin.Context, store storage.Store) {
	var req models.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.ChatID == "" || req.MessageID == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide chatId, messageId and content"})
		return
	}

	ctx := c.Request.Context()
	msg, err := store.GetMessage(ctx, req.ChatID, req.MessageID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !withinEditWindow(msg.CreatedAt, time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "Message older than 30 min"})
		return
	}

	prev, err := store.UpdateMessageContent(ctx, req.ChatID, req.MessageID, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"prev_response":        prev,
		"new_response_content": req.Content,
		"status":               "Message updated",
	})
}

// ReplyMessage creates a new message carrying a reference to the message
// being replied to and returns both. The referenced message is never
// mutated. The lookup is scoped to the chat, so a messageId from another
// chat yields a null prevMessage while the reply is still stored.
func ReplyMessage(c *gin.Context, store storage.Store) {
	var req models.ReplyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.ChatID == "" || req.MessageID == "" || req.Content == "" || req.ContentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide valid chatId, messageId, content and content_type"})
		return
	}

	ctx := c.Request.Context()
	var prevMessage *models.Message
	if prev, err := store.GetMessage(ctx, req.ChatID, req.MessageID); err == nil {
		prevMessage = &prev
	}

	senderID := c.GetString("userId")
	newMessage, err := createMessage(ctx, store, senderID, req.ChatID, req.Content, req.ContentType, req.MessageID)
	if err != nil {
		log.Printf("Failed to store reply: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"prevMessage": prevMessage,
		"newMessage":  newMessage,
	})
}

// ForwardMessage copies content into another chat. Only the content and
// its type are carried over; the forwarded copy starts with an empty
// prev_message regardless of what the source carried.
func ForwardMessage(c *gin.Context, store storage.Store) {
	var req models.ForwardMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Content == "" || req.ContentType == "" || req.ForwardChatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide valid content, content_type and forwardChatId"})
		return
	}

	senderID := c.GetString("userId")
	msg, err := createMessage(c.Request.Context(), store, senderID, req.ForwardChatID, req.Content, req.ContentType, "")
	if err != nil {
		log.Printf("Failed to store forwarded message: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, msg)
}
