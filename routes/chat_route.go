package routes

import (
	"chat_back_end_go/auth"
	"chat_back_end_go/services"
	"chat_back_end_go/storage"

	"github.com/gin-gonic/gin"
)

func SetupChatRoutes(r *gin.Engine, store storage.Store) {
	// Endpoint to create or find an existing chat between two users
	r.POST("/api/v1/chats", auth.Protect(store), func(c *gin.Context) {
		services.AccessChat(c, store)
	})

	// Endpoint to list the chats of the acting user
	r.GET("/api/v1/chats", auth.Protect(store), func(c *gin.Context) {
		services.FetchChats(c, store)
	})
}
