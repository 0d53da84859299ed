package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack-go-be/analytics"
	"fintrack-go-be/models"
	"fintrack-go-be/validation"
)

// ExpenseRequest is the create/update payload for an expense.
type ExpenseRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	CategoryID  string  `json:"categoryId" validate:"required,uuid4"`
	Date        string  `json:"date" validate:"required,dateonly"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"max=500"`
}

type expenseFilter struct {
	Month    string `query:"month" validate:"omitempty,monthstr"`
	Category string `query:"category" validate:"omitempty,uuid4"`
}

func expenseJSON(e *models.Expense) fiber.Map {
	out := fiber.Map{
		"id":          e.ID,
		"name":        e.Name,
		"categoryId":  e.CategoryID,
		"date":        formatDate(e.Date),
		"amount":      e.Amount,
		"description": e.Description,
		"createdAt":   e.CreatedAt,
	}
	if e.Category != nil {
		out["category"] = e.Category
	}
	return out
}

func expensesJSON(expenses []models.Expense) []fiber.Map {
	out := make([]fiber.Map, len(expenses))
	for i := range expenses {
		out[i] = expenseJSON(&expenses[i])
	}
	return out
}

// ownedCategory loads a category by id conjoined with the caller's user id.
func (h *Handler) ownedCategory(userID uuid.UUID, categoryID string) (*models.Category, error) {
	var category models.Category
	err := h.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListExpenses returns the caller's expenses, optionally filtered by month
// (YYYY-MM) and category.
func (h *Handler) ListExpenses(c *fiber.Ctx) error {
	claims := h.claims(c)

	var filter expenseFilter
	if err := c.QueryParser(&filter); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(filter); issues != nil {
		return failValidation(c, issues)
	}

	q := h.db.Preload("Category").Where("user_id = ?", claims.UserID)
	if filter.Month != "" {
		start, end, err := monthRange(filter.Month)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "month must be in YYYY-MM format")
		}
		q = q.Where("date >= ? AND date < ?", start, end)
	}
	if filter.Category != "" {
		q = q.Where("category_id = ?", filter.Category)
	}

	var expenses []models.Expense
	if err := q.Order("date desc, created_at desc").Find(&expenses).Error; err != nil {
		return h.serverError(c, err, "expenses: list failed")
	}
	return c.JSON(fiber.Map{"ok": true, "expenses": expensesJSON(expenses)})
}

// GetExpense fetches one expense by id.
func (h *Handler) GetExpense(c *fiber.Ctx) error {
	claims := h.claims(c)

	var expense models.Expense
	err := h.db.Preload("Category").
		Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Expense")
		}
		return h.serverError(c, err, "expenses: lookup failed")
	}
	return c.JSON(fiber.Map{"ok": true, "expense": expenseJSON(&expense)})
}

// CreateExpense records a spend and kicks the budget-alert check.
func (h *Handler) CreateExpense(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	category, err := h.ownedCategory(claims.UserID, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category")
		}
		return h.serverError(c, err, "expenses: category lookup failed")
	}

	date, _ := parseDate(req.Date)
	expense := models.Expense{
		UserID:      claims.UserID,
		Name:        req.Name,
		CategoryID:  category.ID,
		Date:        date,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := h.db.Create(&expense).Error; err != nil {
		return h.serverError(c, err, "expenses: create failed")
	}
	expense.Category = category

	h.checkBudgetAlert(claims.UserID, date)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":      true,
		"message": "Expense created successfully",
		"expense": expenseJSON(&expense),
	})
}

// UpdateExpense edits an existing record.
func (h *Handler) UpdateExpense(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	var expense models.Expense
	err := h.db.Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Expense")
		}
		return h.serverError(c, err, "expenses: lookup failed")
	}

	category, err := h.ownedCategory(claims.UserID, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category")
		}
		return h.serverError(c, err, "expenses: category lookup failed")
	}

	date, _ := parseDate(req.Date)
	expense.Name = req.Name
	expense.CategoryID = category.ID
	expense.Date = date
	expense.Amount = req.Amount
	expense.Description = req.Description
	if err := h.db.Save(&expense).Error; err != nil {
		return h.serverError(c, err, "expenses: update failed")
	}
	expense.Category = category

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Expense updated successfully",
		"expense": expenseJSON(&expense),
	})
}

// DeleteExpense removes one record.
func (h *Handler) DeleteExpense(c *fiber.Ctx) error {
	claims := h.claims(c)

	res := h.db.Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).Delete(&models.Expense{})
	if res.Error != nil {
		return h.serverError(c, res.Error, "expenses: delete failed")
	}
	if res.RowsAffected == 0 {
		return notFound(c, "Expense")
	}
	return c.JSON(fiber.Map{"ok": true, "message": "Expense deleted successfully"})
}

// checkBudgetAlert raises a budget_alert notification when the month's
// spending crosses the configured threshold. At most one alert per calendar
// month; failures here never fail the expense write.
func (h *Handler) checkBudgetAlert(userID uuid.UUID, when time.Time) {
	var settings models.UserSettings
	err := h.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil || !settings.BudgetAlerts || settings.MonthlyBudget == nil || *settings.MonthlyBudget <= 0 {
		return
	}

	start, end := analytics.CalendarMonth(when)

	var spent float64
	row := h.db.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Select("COALESCE(SUM(amount), 0)")
	if err := row.Scan(&spent).Error; err != nil {
		h.log.Error("budget alert: spend sum failed", "error", err, "user_id", userID)
		return
	}

	threshold := *settings.MonthlyBudget * float64(settings.AlertThreshold) / 100
	if spent < threshold {
		return
	}

	var already int64
	h.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND created_at >= ?", userID, models.NotificationBudgetAlert, start).
		Count(&already)
	if already > 0 {
		return
	}

	note := models.Notification{
		UserID: userID,
		Type:   models.NotificationBudgetAlert,
		Message: fmt.Sprintf("You have spent %.2f of your %.2f monthly budget (%d%% alert threshold)",
			spent, *settings.MonthlyBudget, settings.AlertThreshold),
	}
	if err := h.db.Create(&note).Error; err != nil {
		h.log.Error("budget alert: notification create failed", "error", err, "user_id", userID)
	}
}
