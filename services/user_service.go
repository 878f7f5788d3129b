package services

import (
	"errors"
	"log"
	"net/http"

	"chat_back_end_go/auth"
	"chat_back_end_go/models"
	"chat_back_end_go/storage"
	"chat_back_end_go/validators"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const defaultPic = "https://icon-library.com/images/anonymous-avatar-icon/anonymous-avatar-icon-25.jpg"

func profileResponse(user models.User, token string) gin.H {
	return gin.H{
		"_id":     user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"isAdmin": user.IsAdmin,
		"pic":     user.Pic,
		"token":   token,
	}
}

func RegisterUser(c *gin.Context, store storage.Store) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter all the fields"})
		return
	}
	if req.Pic == "" {
		req.Pic = defaultPic
	}

	ctx := c.Request.Context()
	if _, err := store.GetUserByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, err := store.CreateUser(ctx, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Pic:      req.Pic,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		log.Printf("Failed to create user: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateToken(auth.User{ID: user.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	if err := validators.SendWelcomeEmail(user.Name, user.Email); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusCreated, profileResponse(user, token))
}

func LoginUser(c *gin.Context, store storage.Store) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Email or Password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Email or Password"})
		return
	}

	token, err := auth.GenerateToken(auth.User{ID: user.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(user, token))
}

// AllUsers returns users whose name or email contains the search query,
// case-insensitively, excluding the caller. An empty query matches
// everyone but the caller.
func AllUsers(c *gin.Context, store storage.Store) {
	actingUserID := c.GetString("userId")

	users, err := store.SearchUsers(c.Request.Context(), c.Query("search"), actingUserID)
	if err != nil {
		log.Printf("Failed to search users: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func UserOnline(c *gin.Context, store storage.Store) {
	setPresence(c, store, true)
}

func UserOffline(c *gin.Context, store storage.Store) {
	setPresence(c, store, false)
}

func setPresence(c *gin.Context, store storage.Store, online bool) {
	var req models.PresenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.UsedrID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide usedrId"})
		return
	}

	if err := store.SetUserOnline(c.Request.Context(), req.UsedrID, online); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":  req.UsedrID,
		"isOnline": online,
	})
}
