package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fintrack-go-be/auth"
	"fintrack-go-be/config"
	"fintrack-go-be/database"
	"fintrack-go-be/middleware"
)

// recorderMailer captures outgoing reset links instead of sending mail.
type recorderMailer struct {
	lastTo   string
	lastLink string
}

func (m *recorderMailer) SendPasswordReset(to, link string) error {
	m.lastTo = to
	m.lastLink = link
	return nil
}

type testEnv struct {
	app    *fiber.App
	h      *Handler
	db     *gorm.DB
	tokens *auth.TokenService
	mail   *recorderMailer
}

// newTestEnv boots the full route table against an in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenService("test-secret", time.Hour)
	mail := &recorderMailer{}
	cfg := &config.Config{AppBaseURL: "http://app.test"}

	h := New(db, tokens, mail, log, cfg)
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		}
		return c.Status(code).JSON(fiber.Map{"ok": false, "message": err.Error()})
	}})
	h.RegisterRoutes(app,
		middleware.RequireAuth(tokens, log),
		middleware.OptionalAuth(tokens, log),
	)

	return &testEnv{app: app, h: h, db: db, tokens: tokens, mail: mail}
}

// request performs one JSON request and decodes the body into a map.
func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// registerUser signs up a fresh account and returns its token and id.
func (env *testEnv) registerUser(t *testing.T, username, email string) (token, userID string) {
	t.Helper()

	status, body := env.request(t, http.MethodPost, "/api/register", "", fiber.Map{
		"username": username,
		"email":    email,
		"password": "sup3r-secret-pw",
	})
	require.Equal(t, http.StatusCreated, status, "register body: %v", body)

	token = body["token"].(string)
	user := body["user"].(map[string]interface{})
	return token, user["id"].(string)
}

// firstCategoryID returns one of the default categories provisioned at signup.
func (env *testEnv) firstCategoryID(t *testing.T, token string) string {
	t.Helper()

	status, body := env.request(t, http.MethodGet, "/api/categories", token, nil)
	require.Equal(t, http.StatusOK, status)
	categories := body["categories"].([]interface{})
	require.NotEmpty(t, categories)
	return categories[0].(map[string]interface{})["id"].(string)
}
