package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fintrack-go-be/models"
	"fintrack-go-be/validation"
)

// GoalRequest is the create/update payload for a savings goal.
type GoalRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=100"`
	TargetAmount  float64 `json:"targetAmount" validate:"required,gt=0"`
	CurrentAmount float64 `json:"currentAmount" validate:"gte=0"`
	DueDate       string  `json:"dueDate" validate:"required,dateonly"`
	Description   string  `json:"description" validate:"max=500"`
}

type contributeRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func goalJSON(g *models.Goal) fiber.Map {
	out := fiber.Map{
		"id":            g.ID,
		"name":          g.Name,
		"targetAmount":  g.TargetAmount,
		"currentAmount": g.CurrentAmount,
		"dueDate":       formatDate(g.DueDate),
		"description":   g.Description,
		"createdAt":     g.CreatedAt,
		"updatedAt":     g.UpdatedAt,
	}
	if g.Contributions != nil {
		out["contributions"] = g.Contributions
	}
	return out
}

// ListGoals returns the caller's goals.
func (h *Handler) ListGoals(c *fiber.Ctx) error {
	claims := h.claims(c)

	var goals []models.Goal
	if err := h.db.Where("user_id = ?", claims.UserID).Order("due_date asc").Find(&goals).Error; err != nil {
		return h.serverError(c, err, "goals: list failed")
	}

	out := make([]fiber.Map, len(goals))
	for i := range goals {
		out[i] = goalJSON(&goals[i])
	}
	return c.JSON(fiber.Map{"ok": true, "goals": out})
}

// GetGoal fetches one goal with its contribution history.
func (h *Handler) GetGoal(c *fiber.Ctx) error {
	claims := h.claims(c)

	var goal models.Goal
	err := h.db.Preload("Contributions", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at desc")
	}).Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Goal")
		}
		return h.serverError(c, err, "goals: lookup failed")
	}
	return c.JSON(fiber.Map{"ok": true, "goal": goalJSON(&goal)})
}

// CreateGoal adds a goal. CurrentAmount may seed a head start but never
// above the target.
func (h *Handler) CreateGoal(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req GoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}
	if req.CurrentAmount > req.TargetAmount {
		return fail(c, fiber.StatusBadRequest, "Current amount cannot exceed the target amount")
	}

	due, _ := parseDate(req.DueDate)
	goal := models.Goal{
		UserID:        claims.UserID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		DueDate:       due,
		Description:   req.Description,
	}
	if err := h.db.Create(&goal).Error; err != nil {
		return h.serverError(c, err, "goals: create failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":      true,
		"message": "Goal created successfully",
		"goal":    goalJSON(&goal),
	})
}

// UpdateGoal edits a goal, holding the currentAmount <= targetAmount
// invariant.
func (h *Handler) UpdateGoal(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req GoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}
	if req.CurrentAmount > req.TargetAmount {
		return fail(c, fiber.StatusBadRequest, "Current amount cannot exceed the target amount")
	}

	var goal models.Goal
	err := h.db.Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Goal")
		}
		return h.serverError(c, err, "goals: lookup failed")
	}

	due, _ := parseDate(req.DueDate)
	goal.Name = req.Name
	goal.TargetAmount = req.TargetAmount
	goal.CurrentAmount = req.CurrentAmount
	goal.DueDate = due
	goal.Description = req.Description
	if err := h.db.Save(&goal).Error; err != nil {
		return h.serverError(c, err, "goals: update failed")
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Goal updated successfully",
		"goal":    goalJSON(&goal),
	})
}

// DeleteGoal removes a goal and, via cascade, its contributions.
func (h *Handler) DeleteGoal(c *fiber.Ctx) error {
	claims := h.claims(c)

	var goal models.Goal
	err := h.db.Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Goal")
		}
		return h.serverError(c, err, "goals: lookup failed")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.GoalContribution{}).Error; err != nil {
			return err
		}
		return tx.Delete(&goal).Error
	})
	if err != nil {
		return h.serverError(c, err, "goals: delete failed")
	}
	return c.JSON(fiber.Map{"ok": true, "message": "Goal deleted successfully"})
}

// ContributeToGoal records a contribution and bumps the goal's current
// amount in one transaction. The increment runs in the store
// (current_amount = current_amount + ?) so two concurrent contributions
// cannot lose an update.
func (h *Handler) ContributeToGoal(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req contributeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	var goal models.Goal
	err := h.db.Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Goal")
		}
		return h.serverError(c, err, "goals: lookup failed")
	}

	if goal.CurrentAmount+req.Amount > goal.TargetAmount {
		return fail(c, fiber.StatusBadRequest, "Contribution would exceed the goal target")
	}

	contribution := models.GoalContribution{GoalID: goal.ID, Amount: req.Amount}
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&contribution).Error; err != nil {
			return err
		}
		return tx.Model(&models.Goal{}).Where("id = ?", goal.ID).
			Update("current_amount", gorm.Expr("current_amount + ?", req.Amount)).Error
	})
	if err != nil {
		return h.serverError(c, err, "goals: contribution failed")
	}

	// Re-read so the response reflects the serialized store value.
	if err := h.db.First(&goal, "id = ?", goal.ID).Error; err != nil {
		return h.serverError(c, err, "goals: reload failed")
	}

	if goal.CurrentAmount >= goal.TargetAmount {
		note := models.Notification{
			UserID:  claims.UserID,
			Type:    models.NotificationGoalReached,
			Message: fmt.Sprintf("Congratulations! You reached your goal %q", goal.Name),
		}
		if err := h.db.Create(&note).Error; err != nil {
			h.log.Error("goal reached: notification create failed", "error", err, "goal_id", goal.ID)
		}
	}

	return c.JSON(fiber.Map{
		"ok":           true,
		"message":      "Contribution recorded successfully",
		"goal":         goalJSON(&goal),
		"contribution": contribution,
	})
}
