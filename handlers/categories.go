package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fintrack-go-be/models"
	"fintrack-go-be/validation"
)

// CategoryRequest is the create/update payload for a category.
type CategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color" validate:"required,hexcolor6"`
	Icon  string `json:"icon" validate:"required,max=10"`
}

// ListCategories returns all of the caller's categories.
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	claims := h.claims(c)

	var categories []models.Category
	if err := h.db.Where("user_id = ?", claims.UserID).Order("created_at asc").Find(&categories).Error; err != nil {
		return h.serverError(c, err, "categories: list failed")
	}
	return c.JSON(fiber.Map{"ok": true, "categories": categories})
}

// CreateCategory adds one, rejecting duplicate names per user.
func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	var count int64
	if err := h.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", claims.UserID, req.Name).
		Count(&count).Error; err != nil {
		return h.serverError(c, err, "categories: name lookup failed")
	}
	if count > 0 {
		return fail(c, fiber.StatusConflict, "A category with that name already exists")
	}

	category := models.Category{UserID: claims.UserID, Name: req.Name, Color: req.Color, Icon: req.Icon}
	if err := h.db.Create(&category).Error; err != nil {
		return h.serverError(c, err, "categories: create failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":       true,
		"message":  "Category created successfully",
		"category": category,
	})
}

// UpdateCategory edits name/color/icon.
func (h *Handler) UpdateCategory(c *fiber.Ctx) error {
	claims := h.claims(c)

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	var category models.Category
	err := h.db.Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category")
		}
		return h.serverError(c, err, "categories: lookup failed")
	}

	var count int64
	if err := h.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND id <> ?", claims.UserID, req.Name, category.ID).
		Count(&count).Error; err != nil {
		return h.serverError(c, err, "categories: name lookup failed")
	}
	if count > 0 {
		return fail(c, fiber.StatusConflict, "A category with that name already exists")
	}

	category.Name = req.Name
	category.Color = req.Color
	category.Icon = req.Icon
	if err := h.db.Save(&category).Error; err != nil {
		return h.serverError(c, err, "categories: update failed")
	}

	return c.JSON(fiber.Map{
		"ok":       true,
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory removes a category. Blocked while any expense still
// references it; this is a guard, not a cascade.
func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	claims := h.claims(c)

	var category models.Category
	err := h.db.Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category")
		}
		return h.serverError(c, err, "categories: lookup failed")
	}

	var inUse int64
	if err := h.db.Model(&models.Expense{}).
		Where("user_id = ? AND category_id = ?", claims.UserID, category.ID).
		Count(&inUse).Error; err != nil {
		return h.serverError(c, err, "categories: usage count failed")
	}
	if inUse > 0 {
		return fail(c, fiber.StatusBadRequest, "Category is still used by expenses and cannot be deleted")
	}

	if err := h.db.Delete(&category).Error; err != nil {
		return h.serverError(c, err, "categories: delete failed")
	}

	return c.JSON(fiber.Map{"ok": true, "message": "Category deleted successfully"})
}
