package services

import (
	"log"
	"net/http"

	"chat_back_end_go/models"
	"chat_back_end_go/storage"

	"github.com/gin-gonic/gin"
)

// AccessChat returns the one-to-one chat between the acting user and the
// user named in the body, creating it if the pair has never talked.
func AccessChat(c *gin.Context, store storage.Store) {
	var req models.AccessChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide userId"})
		return
	}

	ctx := c.Request.Context()
	if _, err := store.GetUserByID(ctx, req.UserID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actingUserID := c.GetString("userId")
	chat, err := store.FindOrCreateChat(ctx, actingUserID, req.UserID)
	if err != nil {
		log.Printf("Failed to find or create chat: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, chat)
}

// FetchChats lists every chat the acting user participates in, with
// participants and the latest-message snapshot.
func FetchChats(c *gin.Context, store storage.Store) {
	actingUserID := c.GetString("userId")

	chats, err := store.ListChatsForUser(c.Request.Context(), actingUserID)
	if err != nil {
		log.Printf("Failed to retrieve chats for user %s: %v", actingUserID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if chats == nil {
		chats = []models.Chat{}
	}
	c.JSON(http.StatusOK, chats)
}
