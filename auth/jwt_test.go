package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"chat_back_end_go/models"
	"chat_back_end_go/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(User{ID: "user-42"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)

	token, err := GenerateToken(User{ID: "user-42"})
	require.NoError(t, err)
	_, err = ParseToken(token + "tampered")
	assert.Error(t, err)
}

func newProtectedRouter(store storage.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Protect(store), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("userId")})
	})
	return r
}

func TestProtect(t *testing.T) {
	store := storage.NewMemory()
	user, err := store.CreateUser(context.Background(), models.User{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "irrelevant",
	})
	require.NoError(t, err)
	r := newProtectedRouter(store)

	token, err := GenerateToken(User{ID: user.ID})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestProtectRejectsMissingOrBadToken(t *testing.T) {
	store := storage.NewMemory()
	r := newProtectedRouter(store)

	// No header at all.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong scheme.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unparseable token.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token for a user the store no longer knows.
	token, err := GenerateToken(User{ID: "deleted-user"})
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
