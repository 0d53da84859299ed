package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-go-be/models"
)

func TestExpenseRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")
	categoryID := env.firstCategoryID(t, token)

	status, body := env.request(t, http.MethodPost, "/api/expenses", token, fiber.Map{
		"name":        "Groceries run",
		"categoryId":  categoryID,
		"date":        "2026-08-03",
		"amount":      84.2,
		"description": "weekly shop",
	})
	require.Equal(t, http.StatusCreated, status, "body: %v", body)
	created := body["expense"].(map[string]interface{})
	id := created["id"].(string)

	status, body = env.request(t, http.MethodGet, "/api/expenses/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	fetched := body["expense"].(map[string]interface{})

	assert.Equal(t, "Groceries run", fetched["name"])
	assert.Equal(t, categoryID, fetched["categoryId"])
	assert.Equal(t, "2026-08-03", fetched["date"])
	assert.Equal(t, 84.2, fetched["amount"])
	assert.Equal(t, "weekly shop", fetched["description"])
}

func TestExpenseValidation(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")
	categoryID := env.firstCategoryID(t, token)

	cases := []fiber.Map{
		{"name": "", "categoryId": categoryID, "date": "2026-08-03", "amount": 10},
		{"name": "x", "categoryId": categoryID, "date": "03/08/2026", "amount": 10},
		{"name": "x", "categoryId": categoryID, "date": "2026-08-03", "amount": -5},
		{"name": "x", "categoryId": categoryID, "date": "2026-08-03", "amount": 0},
		{"name": "x", "categoryId": "not-a-uuid", "date": "2026-08-03", "amount": 10},
	}
	for i, payload := range cases {
		status, _ := env.request(t, http.MethodPost, "/api/expenses", token, payload)
		assert.Equal(t, http.StatusBadRequest, status, "case %d", i)
	}
}

func TestExpenseRejectsForeignCategory(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, _ := env.registerUser(t, "alice", "alice@example.com")
	bobToken, _ := env.registerUser(t, "bob", "bob@example.com")
	bobCategory := env.firstCategoryID(t, bobToken)

	status, _ := env.request(t, http.MethodPost, "/api/expenses", aliceToken, fiber.Map{
		"name": "Sneaky", "categoryId": bobCategory, "date": "2026-08-03", "amount": 10,
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListExpensesMonthFilter(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")
	categoryID := env.firstCategoryID(t, token)

	for _, date := range []string{"2026-07-15", "2026-08-01", "2026-08-20"} {
		status, _ := env.request(t, http.MethodPost, "/api/expenses", token, fiber.Map{
			"name": "On " + date, "categoryId": categoryID, "date": date, "amount": 10,
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := env.request(t, http.MethodGet, "/api/expenses?month=2026-08", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["expenses"], 2)

	status, _ = env.request(t, http.MethodGet, "/api/expenses?month=08-2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")
	categoryID := env.firstCategoryID(t, token)

	status, body := env.request(t, http.MethodPost, "/api/expenses", token, fiber.Map{
		"name": "Taxi", "categoryId": categoryID, "date": "2026-08-03", "amount": 22,
	})
	require.Equal(t, http.StatusCreated, status)
	id := body["expense"].(map[string]interface{})["id"].(string)

	status, body = env.request(t, http.MethodPut, "/api/expenses/"+id, token, fiber.Map{
		"name": "Taxi home", "categoryId": categoryID, "date": "2026-08-04", "amount": 25.5,
	})
	require.Equal(t, http.StatusOK, status)
	updated := body["expense"].(map[string]interface{})
	assert.Equal(t, "Taxi home", updated["name"])
	assert.Equal(t, 25.5, updated["amount"])
	assert.Equal(t, "2026-08-04", updated["date"])

	status, _ = env.request(t, http.MethodDelete, "/api/expenses/"+id, token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = env.request(t, http.MethodGet, "/api/expenses/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBudgetAlertNotification(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.registerUser(t, "alice", "alice@example.com")
	categoryID := env.firstCategoryID(t, token)

	status, _ := env.request(t, http.MethodPut, "/api/user/notifications", token, fiber.Map{
		"budgetAlerts":   true,
		"goalReminders":  true,
		"monthlyBudget":  100.0,
		"alertThreshold": 80,
	})
	require.Equal(t, http.StatusOK, status)

	// 50 spent: under the 80% threshold, no alert
	status, _ = env.request(t, http.MethodPost, "/api/expenses", token, fiber.Map{
		"name": "Half", "categoryId": categoryID, "date": formatDate(env.h.now()), "amount": 50,
	})
	require.Equal(t, http.StatusCreated, status)

	var count int64
	env.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, models.NotificationBudgetAlert).Count(&count)
	assert.EqualValues(t, 0, count)

	// 90 total crosses the threshold exactly once
	status, _ = env.request(t, http.MethodPost, "/api/expenses", token, fiber.Map{
		"name": "Over", "categoryId": categoryID, "date": formatDate(env.h.now()), "amount": 40,
	})
	require.Equal(t, http.StatusCreated, status)

	env.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, models.NotificationBudgetAlert).Count(&count)
	assert.EqualValues(t, 1, count)

	// more spending in the same month does not re-alert
	status, _ = env.request(t, http.MethodPost, "/api/expenses", token, fiber.Map{
		"name": "More", "categoryId": categoryID, "date": formatDate(env.h.now()), "amount": 10,
	})
	require.Equal(t, http.StatusCreated, status)

	env.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, models.NotificationBudgetAlert).Count(&count)
	assert.EqualValues(t, 1, count)
}
