package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationProvisionsDefaultCategories(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")

	status, body := env.request(t, http.MethodGet, "/api/categories", token, nil)
	require.Equal(t, http.StatusOK, status)

	categories := body["categories"].([]interface{})
	assert.Len(t, categories, 5)

	names := make([]string, len(categories))
	for i, raw := range categories {
		names[i] = raw.(map[string]interface{})["name"].(string)
	}
	assert.Contains(t, names, "Food")
	assert.Contains(t, names, "Bills")
}

func TestCreateCategoryAndDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")

	status, body := env.request(t, http.MethodPost, "/api/categories", token, fiber.Map{
		"name": "Travel", "color": "00FF00", "icon": "✈️",
	})
	require.Equal(t, http.StatusCreated, status, "body: %v", body)

	status, _ = env.request(t, http.MethodPost, "/api/categories", token, fiber.Map{
		"name": "Travel", "color": "112233", "icon": "🚂",
	})
	assert.Equal(t, http.StatusConflict, status)

	// a different user is free to reuse the name
	otherToken, _ := env.registerUser(t, "bob", "bob@example.com")
	status, _ = env.request(t, http.MethodPost, "/api/categories", otherToken, fiber.Map{
		"name": "Travel", "color": "00FF00", "icon": "✈️",
	})
	assert.Equal(t, http.StatusCreated, status)
}

func TestCreateCategoryValidatesColor(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")

	for _, color := range []string{"xyz", "12345", "#AABBCC", "AABBCCDD"} {
		status, _ := env.request(t, http.MethodPost, "/api/categories", token, fiber.Map{
			"name": "Bad " + color, "color": color, "icon": "❓",
		})
		assert.Equal(t, http.StatusBadRequest, status, "color %q", color)
	}
}

func TestUpdateCategory(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")
	id := env.firstCategoryID(t, token)

	status, body := env.request(t, http.MethodPut, "/api/categories/"+id, token, fiber.Map{
		"name": "Groceries", "color": "AA00BB", "icon": "🛒",
	})
	require.Equal(t, http.StatusOK, status)
	category := body["category"].(map[string]interface{})
	assert.Equal(t, "Groceries", category["name"])
	assert.Equal(t, "AA00BB", category["color"])
}

func TestDeleteCategoryGuardedByExpenses(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")
	id := env.firstCategoryID(t, token)

	status, _ := env.request(t, http.MethodPost, "/api/expenses", token, fiber.Map{
		"name": "Lunch", "categoryId": id, "date": "2026-08-01", "amount": 12.5,
	})
	require.Equal(t, http.StatusCreated, status)

	// referenced -> guarded
	status, body := env.request(t, http.MethodDelete, "/api/categories/"+id, token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "used by expenses")

	// unreferenced -> allowed
	status, created := env.request(t, http.MethodPost, "/api/categories", token, fiber.Map{
		"name": "Empty", "color": "123456", "icon": "📦",
	})
	require.Equal(t, http.StatusCreated, status)
	emptyID := created["category"].(map[string]interface{})["id"].(string)

	status, _ = env.request(t, http.MethodDelete, "/api/categories/"+emptyID, token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCategoryOwnershipHidesExistence(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, _ := env.registerUser(t, "alice", "alice@example.com")
	bobToken, _ := env.registerUser(t, "bob", "bob@example.com")

	aliceCategory := env.firstCategoryID(t, aliceToken)

	// bob sees a plain 404, not a 403, for alice's category
	status, _ := env.request(t, http.MethodPut, "/api/categories/"+aliceCategory, bobToken, fiber.Map{
		"name": "Hijack", "color": "000000", "icon": "🏴",
	})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = env.request(t, http.MethodDelete, "/api/categories/"+aliceCategory, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
