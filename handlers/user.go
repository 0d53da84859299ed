package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack-go-be/auth"
	"fintrack-go-be/models"
	"fintrack-go-be/validation"
)

type updateProfileRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

type settingsRequest struct {
	BudgetAlerts   bool     `json:"budgetAlerts"`
	GoalReminders  bool     `json:"goalReminders"`
	MonthlyBudget  *float64 `json:"monthlyBudget" validate:"omitempty,gt=0"`
	AlertThreshold int      `json:"alertThreshold" validate:"required,gte=1,lte=100"`
}

// Profile returns the caller's account summary.
func (h *Handler) Profile(c *fiber.Ctx) error {
	claims := h.claims(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Account")
		}
		return h.serverError(c, err, "profile: lookup failed")
	}
	return c.JSON(fiber.Map{"ok": true, "user": userJSON(&user)})
}

// UpdateProfile changes username/email with the same uniqueness rules as
// registration.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Account")
		}
		return h.serverError(c, err, "profile: lookup failed")
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", req.Username, user.ID).Count(&count).Error; err != nil {
		return h.serverError(c, err, "profile: username lookup failed")
	}
	if count > 0 {
		return fail(c, fiber.StatusConflict, "Username is already taken")
	}
	if err := h.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", req.Email, user.ID).Count(&count).Error; err != nil {
		return h.serverError(c, err, "profile: email lookup failed")
	}
	if count > 0 {
		return fail(c, fiber.StatusConflict, "Email is already registered")
	}

	user.Username = req.Username
	user.Email = req.Email
	if err := h.db.Save(&user).Error; err != nil {
		return h.serverError(c, err, "profile: update failed")
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Profile updated successfully",
		"user":    userJSON(&user),
	})
}

// ChangePassword re-hashes after verifying the current password.
func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Account")
		}
		return h.serverError(c, err, "change-password: lookup failed")
	}

	match, err := auth.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil || !match {
		return fail(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return h.serverError(c, err, "change-password: hashing failed")
	}
	if err := h.db.Model(&user).Update("password_hash", hash).Error; err != nil {
		return h.serverError(c, err, "change-password: update failed")
	}

	h.log.Info("password changed", "user_id", user.ID)
	return c.JSON(fiber.Map{"ok": true, "message": "Password updated successfully"})
}

// settingsFor loads the caller's settings, creating the default row on
// first touch.
func (h *Handler) settingsFor(userID uuid.UUID) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := h.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserSettings{
			UserID:         userID,
			BudgetAlerts:   true,
			GoalReminders:  true,
			AlertThreshold: 80,
		}
		err = h.db.Create(&settings).Error
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetSettings returns the notification settings, lazily provisioned.
func (h *Handler) GetSettings(c *fiber.Ctx) error {
	claims := h.claims(c)

	settings, err := h.settingsFor(claims.UserID)
	if err != nil {
		return h.serverError(c, err, "settings: load failed")
	}
	return c.JSON(fiber.Map{"ok": true, "settings": settings})
}

// UpdateSettings upserts the notification settings.
func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	settings, err := h.settingsFor(claims.UserID)
	if err != nil {
		return h.serverError(c, err, "settings: load failed")
	}

	settings.BudgetAlerts = req.BudgetAlerts
	settings.GoalReminders = req.GoalReminders
	settings.MonthlyBudget = req.MonthlyBudget
	settings.AlertThreshold = req.AlertThreshold
	if err := h.db.Save(settings).Error; err != nil {
		return h.serverError(c, err, "settings: update failed")
	}

	return c.JSON(fiber.Map{
		"ok":       true,
		"message":  "Settings updated successfully",
		"settings": settings,
	})
}

// ExportData dumps everything the caller owns as one JSON document.
func (h *Handler) ExportData(c *fiber.Ctx) error {
	claims := h.claims(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Account")
		}
		return h.serverError(c, err, "export: account lookup failed")
	}

	var (
		categories []models.Category
		expenses   []models.Expense
		incomes    []models.Income
		goals      []models.Goal
	)
	if err := h.db.Where("user_id = ?", claims.UserID).Find(&categories).Error; err != nil {
		return h.serverError(c, err, "export: categories failed")
	}
	if err := h.db.Preload("Category").Where("user_id = ?", claims.UserID).Find(&expenses).Error; err != nil {
		return h.serverError(c, err, "export: expenses failed")
	}
	if err := h.db.Where("user_id = ?", claims.UserID).Find(&incomes).Error; err != nil {
		return h.serverError(c, err, "export: incomes failed")
	}
	if err := h.db.Preload("Contributions").Where("user_id = ?", claims.UserID).Find(&goals).Error; err != nil {
		return h.serverError(c, err, "export: goals failed")
	}

	incomesOut := make([]fiber.Map, len(incomes))
	for i := range incomes {
		incomesOut[i] = incomeJSON(&incomes[i])
	}
	goalsOut := make([]fiber.Map, len(goals))
	for i := range goals {
		goalsOut[i] = goalJSON(&goals[i])
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="fintrack-export.json"`)
	return c.JSON(fiber.Map{
		"ok":         true,
		"exportedAt": h.now(),
		"user":       userJSON(&user),
		"categories": categories,
		"expenses":   expensesJSON(expenses),
		"incomes":    incomesOut,
		"goals":      goalsOut,
	})
}

// DeleteAccount removes the account and everything it owns.
func (h *Handler) DeleteAccount(c *fiber.Ctx) error {
	claims := h.claims(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Account")
		}
		return h.serverError(c, err, "delete-account: lookup failed")
	}

	// Explicit cascade inside one transaction; we do not lean on FK
	// constraints so the sqlite test driver behaves like postgres.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var goalIDs []uuid.UUID
		if err := tx.Model(&models.Goal{}).Where("user_id = ?", user.ID).
			Pluck("id", &goalIDs).Error; err != nil {
			return err
		}
		if len(goalIDs) > 0 {
			if err := tx.Where("goal_id IN ?", goalIDs).Delete(&models.GoalContribution{}).Error; err != nil {
				return err
			}
		}
		for _, model := range []interface{}{
			&models.Goal{}, &models.Expense{}, &models.Income{},
			&models.Category{}, &models.Notification{}, &models.UserSettings{},
		} {
			if err := tx.Where("user_id = ?", user.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return h.serverError(c, err, "delete-account: cascade failed")
	}

	h.log.Info("account deleted", "user_id", user.ID)
	return c.JSON(fiber.Map{"ok": true, "message": "Account deleted successfully"})
}
