package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-go-be/models"
)

func createGoal(t *testing.T, env *testEnv, token string, target, current float64) string {
	t.Helper()
	status, body := env.request(t, http.MethodPost, "/api/goals", token, fiber.Map{
		"name":          "Emergency fund",
		"targetAmount":  target,
		"currentAmount": current,
		"dueDate":       "2027-06-30",
	})
	require.Equal(t, http.StatusCreated, status, "body: %v", body)
	return body["goal"].(map[string]interface{})["id"].(string)
}

func TestGoalRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")
	id := createGoal(t, env, token, 1000, 100)

	status, body := env.request(t, http.MethodGet, "/api/goals/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	goal := body["goal"].(map[string]interface{})
	assert.Equal(t, "Emergency fund", goal["name"])
	assert.Equal(t, 1000.0, goal["targetAmount"])
	assert.Equal(t, 100.0, goal["currentAmount"])
	assert.Equal(t, "2027-06-30", goal["dueDate"])
}

func TestGoalCurrentCannotExceedTarget(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")

	status, _ := env.request(t, http.MethodPost, "/api/goals", token, fiber.Map{
		"name": "Broken", "targetAmount": 100, "currentAmount": 150, "dueDate": "2027-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	id := createGoal(t, env, token, 1000, 0)
	status, _ = env.request(t, http.MethodPut, "/api/goals/"+id, token, fiber.Map{
		"name": "Emergency fund", "targetAmount": 100, "currentAmount": 150, "dueDate": "2027-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestContributeToGoal(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")
	id := createGoal(t, env, token, 1000, 100)

	status, body := env.request(t, http.MethodPost, "/api/goals/"+id+"/contribute", token, fiber.Map{
		"amount": 250.0,
	})
	require.Equal(t, http.StatusOK, status, "body: %v", body)
	goal := body["goal"].(map[string]interface{})
	assert.Equal(t, 350.0, goal["currentAmount"])

	// a subsequent read agrees and exactly one contribution exists
	status, body = env.request(t, http.MethodGet, "/api/goals/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	goal = body["goal"].(map[string]interface{})
	assert.Equal(t, 350.0, goal["currentAmount"])

	contributions := goal["contributions"].([]interface{})
	require.Len(t, contributions, 1)
	assert.Equal(t, 250.0, contributions[0].(map[string]interface{})["amount"])
}

func TestContributionOvershootRejected(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")
	id := createGoal(t, env, token, 300, 100)

	status, _ := env.request(t, http.MethodPost, "/api/goals/"+id+"/contribute", token, fiber.Map{
		"amount": 250.0,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// nothing was written
	status, body := env.request(t, http.MethodGet, "/api/goals/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	goal := body["goal"].(map[string]interface{})
	assert.Equal(t, 100.0, goal["currentAmount"])
	assert.Empty(t, goal["contributions"])
}

func TestGoalReachedNotification(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.registerUser(t, "alice", "alice@example.com")
	id := createGoal(t, env, token, 500, 400)

	status, _ := env.request(t, http.MethodPost, "/api/goals/"+id+"/contribute", token, fiber.Map{
		"amount": 100.0,
	})
	require.Equal(t, http.StatusOK, status)

	var count int64
	env.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, models.NotificationGoalReached).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteGoalRemovesContributions(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, "alice", "alice@example.com")
	id := createGoal(t, env, token, 1000, 0)

	status, _ := env.request(t, http.MethodPost, "/api/goals/"+id+"/contribute", token, fiber.Map{
		"amount": 50.0,
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = env.request(t, http.MethodDelete, "/api/goals/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)

	var count int64
	env.db.Model(&models.GoalContribution{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
