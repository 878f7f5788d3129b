package routes

import (
	"chat_back_end_go/auth"
	"chat_back_end_go/services"
	"chat_back_end_go/storage"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(r *gin.Engine, store storage.Store) {
	// Endpoint to search users by name or email
	r.GET("/api/v1/users", auth.Protect(store), func(c *gin.Context) {
		services.AllUsers(c, store)
	})

	// Endpoint to register a new user
	r.POST("/api/v1/users", func(c *gin.Context) {
		services.RegisterUser(c, store)
	})

	// Endpoint to authenticate a user
	r.POST("/api/v1/users/login", func(c *gin.Context) {
		services.LoginUser(c, store)
	})

	// Presence endpoints. These take the target user from the body and
	// carry no authorization check, matching the clients' wire contract.
	r.POST("/api/v1/users/online", func(c *gin.Context) {
		services.UserOnline(c, store)
	})
	r.POST("/api/v1/users/offline", func(c *gin.Context) {
		services.UserOffline(c, store)
	})
}
