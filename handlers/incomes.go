package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fintrack-go-be/models"
	"fintrack-go-be/validation"
)

// IncomeRequest is the create/update payload for an income record.
type IncomeRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Date        string  `json:"date" validate:"required,dateonly"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"max=500"`
}

type incomeFilter struct {
	Month string `query:"month" validate:"omitempty,monthstr"`
}

func incomeJSON(in *models.Income) fiber.Map {
	return fiber.Map{
		"id":          in.ID,
		"name":        in.Name,
		"date":        formatDate(in.Date),
		"amount":      in.Amount,
		"description": in.Description,
		"createdAt":   in.CreatedAt,
	}
}

// ListIncomes returns the caller's income records, optionally month-filtered.
func (h *Handler) ListIncomes(c *fiber.Ctx) error {
	claims := h.claims(c)

	var filter incomeFilter
	if err := c.QueryParser(&filter); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(filter); issues != nil {
		return failValidation(c, issues)
	}

	q := h.db.Where("user_id = ?", claims.UserID)
	if filter.Month != "" {
		start, end, err := monthRange(filter.Month)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "month must be in YYYY-MM format")
		}
		q = q.Where("date >= ? AND date < ?", start, end)
	}

	var incomes []models.Income
	if err := q.Order("date desc, created_at desc").Find(&incomes).Error; err != nil {
		return h.serverError(c, err, "incomes: list failed")
	}

	out := make([]fiber.Map, len(incomes))
	for i := range incomes {
		out[i] = incomeJSON(&incomes[i])
	}
	return c.JSON(fiber.Map{"ok": true, "incomes": out})
}

// CreateIncome records an earning.
func (h *Handler) CreateIncome(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req IncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	date, _ := parseDate(req.Date)
	income := models.Income{
		UserID:      claims.UserID,
		Name:        req.Name,
		Date:        date,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := h.db.Create(&income).Error; err != nil {
		return h.serverError(c, err, "incomes: create failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":      true,
		"message": "Income created successfully",
		"income":  incomeJSON(&income),
	})
}

// UpdateIncome edits an existing record.
func (h *Handler) UpdateIncome(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req IncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	var income models.Income
	err := h.db.Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).First(&income).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Income")
		}
		return h.serverError(c, err, "incomes: lookup failed")
	}

	date, _ := parseDate(req.Date)
	income.Name = req.Name
	income.Date = date
	income.Amount = req.Amount
	income.Description = req.Description
	if err := h.db.Save(&income).Error; err != nil {
		return h.serverError(c, err, "incomes: update failed")
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Income updated successfully",
		"income":  incomeJSON(&income),
	})
}

// DeleteIncome removes one record.
func (h *Handler) DeleteIncome(c *fiber.Ctx) error {
	claims := h.claims(c)

	res := h.db.Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).Delete(&models.Income{})
	if res.Error != nil {
		return h.serverError(c, res.Error, "incomes: delete failed")
	}
	if res.RowsAffected == 0 {
		return notFound(c, "Income")
	}
	return c.JSON(fiber.Map{"ok": true, "message": "Income deleted successfully"})
}
