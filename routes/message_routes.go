package routes

import (
	"chat_back_end_go/auth"
	"chat_back_end_go/services"
	"chat_back_end_go/storage"

	"github.com/gin-gonic/gin"
)

func SetupMessageRoutes(r *gin.Engine, store storage.Store) {
	// Endpoint to retrieve the full history of a chat
	r.GET("/api/v1/messages/:chatId", auth.Protect(store), func(c *gin.Context) {
		services.GetMessagesForChat(c, store)
	})

	// Endpoint to send a new message
	r.POST("/api/v1/messages", auth.Protect(store), func(c *gin.Context) {
		services.SendMessage(c, store)
	})

	// Endpoint to delete a message within the edit window
	r.DELETE("/api/v1/messages", auth.Protect(store), func(c *gin.Context) {
		services.DeleteMessage(c, store)
	})

	// Endpoint to edit a message within the edit window
	r.PUT("/api/v1/messages", auth.Protect(store), func(c *gin.Context) {
		services.UpdateMessage(c, store)
	})

	// Endpoint to reply to a message
	r.POST("/api/v1/messages/reply", auth.Protect(store), func(c *gin.Context) {
		services.ReplyMessage(c, store)
	})

	// Endpoint to forward content into another chat
	r.POST("/api/v1/messages/forward", auth.Protect(store), func(c *gin.Context) {
		services.ForwardMessage(c, store)
	})
}
