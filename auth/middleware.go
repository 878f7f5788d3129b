package auth

import (
	"net/http"
	"strings"

	"chat_back_end_go/storage"

	"github.com/gin-gonic/gin"
)

// Protect resolves the bearer token on a request to an existing user and
// stores the identity on the context under "userId". Handlers behind it
// read the acting user from there and pass it down explicitly.
func Protect(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, no token"})
			return
		}

		userID, err := ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, token failed"})
			return
		}

		user, err := store.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, token failed"})
			return
		}

		c.Set("userId", user.ID)
		c.Next()
	}
}
