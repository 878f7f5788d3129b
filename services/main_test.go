package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"chat_back_end_go/models"
	"chat_back_end_go/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestContext builds a gin context carrying a JSON request body and,
// when actingUserID is set, the identity the Protect middleware would
// have resolved.
func newTestContext(t *testing.T, method, target string, body interface{}, actingUserID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if actingUserID != "" {
		c.Set("userId", actingUserID)
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedUser(t *testing.T, store storage.Store, name, email string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := store.CreateUser(context.Background(), models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Pic:      defaultPic,
	})
	require.NoError(t, err)
	return user
}

func seedChat(t *testing.T, store storage.Store, a, b models.User) models.Chat {
	t.Helper()
	chat, err := store.FindOrCreateChat(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	return chat
}
