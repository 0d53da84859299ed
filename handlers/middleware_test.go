package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-go-be/auth"
	"fintrack-go-be/models"
)

func TestRequireAuthMissingToken(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["ok"])
	assert.NotEmpty(t, body["message"])
}

func TestRequireAuthInvalidToken(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodGet, "/api/me", "garbage-token", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	_, userID := env.registerUser(t, "alice", "alice@example.com")

	var user models.User
	require.NoError(t, env.db.First(&user, "id = ?", userID).Error)

	expired, err := auth.NewTokenService("test-secret", -time.Minute).Issue(&user)
	require.NoError(t, err)

	status, _ := env.request(t, http.MethodGet, "/api/me", expired, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestOptionalAuthNeverRejects(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")

	// anonymous
	status, body := env.request(t, http.MethodGet, "/api/landing/summary", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["authenticated"])

	// malformed token still passes through anonymously
	status, body = env.request(t, http.MethodGet, "/api/landing/summary", "garbage", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["authenticated"])

	// valid token attaches the identity
	status, body = env.request(t, http.MethodGet, "/api/landing/summary", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "alice", body["username"])
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
}
