package services

import (
	"context"
	"net/http"
	"testing"

	"chat_back_end_go/models"
	"chat_back_end_go/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	store := storage.NewMemory()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/users",
		models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret"}, "")
	RegisterUser(c, store)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, defaultPic, body["pic"])
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["_id"])
	_, leaked := body["password"]
	assert.False(t, leaked, "credential hash must never be returned")

	stored, err := store.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.Password, "password must be stored hashed")
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	store := storage.NewMemory()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/users",
		models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret"}, "")
	RegisterUser(c, store)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/users",
		models.RegisterRequest{Name: "Other Alice", Email: "alice@example.com", Password: "secret2"}, "")
	RegisterUser(c, store)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decodeBody(t, w)["error"])
}

func TestRegisterUserValidation(t *testing.T) {
	store := storage.NewMemory()

	cases := []models.RegisterRequest{
		{Email: "a@example.com", Password: "secret"},
		{Name: "A", Password: "secret"},
		{Name: "A", Email: "a@example.com"},
	}
	for _, req := range cases {
		c, w := newTestContext(t, http.MethodPost, "/api/v1/users", req, "")
		RegisterUser(c, store)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestLoginUser(t *testing.T) {
	store := storage.NewMemory()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/users",
		models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret"}, "")
	RegisterUser(c, store)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/users/login",
		models.LoginRequest{Email: "alice@example.com", Password: "secret"}, "")
	LoginUser(c, store)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotEmpty(t, body["token"])

	c, w = newTestContext(t, http.MethodPost, "/api/v1/users/login",
		models.LoginRequest{Email: "alice@example.com", Password: "wrong"}, "")
	LoginUser(c, store)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid Email or Password", decodeBody(t, w)["error"])

	c, w = newTestContext(t, http.MethodPost, "/api/v1/users/login",
		models.LoginRequest{Email: "nobody@example.com", Password: "secret"}, "")
	LoginUser(c, store)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAllUsersSearch(t *testing.T) {
	store := storage.NewMemory()
	seedUser(t, store, "Anna", "anna@example.com")
	seedUser(t, store, "Bob", "annoying@x.com")
	seedUser(t, store, "Carol", "carol@example.com")
	xavier := seedUser(t, store, "Xavier", "xavier@x.com")

	c, w := newTestContext(t, http.MethodGet, "/api/v1/users?search=ann", nil, xavier.ID)
	AllUsers(c, store)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	users, ok := body["users"].([]interface{})
	require.True(t, ok)
	require.Len(t, users, 2, "name and email substring matches, nothing else")

	names := map[string]bool{}
	for _, raw := range users {
		user := raw.(map[string]interface{})
		names[user["name"].(string)] = true
	}
	assert.True(t, names["Anna"])
	assert.True(t, names["Bob"])
}

func TestAllUsersSearchIsCaseInsensitive(t *testing.T) {
	store := storage.NewMemory()
	seedUser(t, store, "Anna", "anna@example.com")
	xavier := seedUser(t, store, "Xavier", "xavier@x.com")

	c, w := newTestContext(t, http.MethodGet, "/api/v1/users?search=ANN", nil, xavier.ID)
	AllUsers(c, store)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	users := body["users"].([]interface{})
	require.Len(t, users, 1)
}

func TestAllUsersExcludesCaller(t *testing.T) {
	store := storage.NewMemory()
	annette := seedUser(t, store, "Annette", "annette@example.com")
	seedUser(t, store, "Anna", "anna@example.com")

	c, w := newTestContext(t, http.MethodGet, "/api/v1/users?search=ann", nil, annette.ID)
	AllUsers(c, store)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	users := body["users"].([]interface{})
	require.Len(t, users, 1)
	user := users[0].(map[string]interface{})
	assert.Equal(t, "Anna", user["name"])
}

func TestAllUsersEmptyQuery(t *testing.T) {
	store := storage.NewMemory()
	seedUser(t, store, "Anna", "anna@example.com")
	seedUser(t, store, "Bob", "bob@example.com")
	xavier := seedUser(t, store, "Xavier", "xavier@x.com")

	c, w := newTestContext(t, http.MethodGet, "/api/v1/users", nil, xavier.ID)
	AllUsers(c, store)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	users := body["users"].([]interface{})
	assert.Len(t, users, 2, "empty query returns everyone but the caller")
}

func TestPresence(t *testing.T) {
	store := storage.NewMemory()
	alice := seedUser(t, store, "Alice", "alice@example.com")
	ctx := context.Background()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/users/online",
		models.PresenceRequest{UsedrID: alice.ID}, "")
	UserOnline(c, store)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, alice.ID, body["user_id"])
	assert.Equal(t, true, body["isOnline"])

	stored, err := store.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOnline)

	// Setting the flag again is idempotent.
	c, w = newTestContext(t, http.MethodPost, "/api/v1/users/online",
		models.PresenceRequest{UsedrID: alice.ID}, "")
	UserOnline(c, store)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/users/offline",
		models.PresenceRequest{UsedrID: alice.ID}, "")
	UserOffline(c, store)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["isOnline"])

	stored, err = store.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsOnline)
}

func TestPresenceValidation(t *testing.T) {
	store := storage.NewMemory()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/users/online",
		models.PresenceRequest{}, "")
	UserOnline(c, store)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/users/online",
		models.PresenceRequest{UsedrID: "no-such-user"}, "")
	UserOnline(c, store)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
