package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fintrack-go-be/analytics"
	"fintrack-go-be/models"
)

// LandingSummary backs the marketing page. Anonymous callers get the
// generic pitch; a valid bearer token upgrades the response to the caller's
// own headline numbers. Invalid tokens are simply ignored by the optional
// gate, never rejected.
func (h *Handler) LandingSummary(c *fiber.Ctx) error {
	claims := h.claims(c)
	if claims == nil {
		return c.JSON(fiber.Map{
			"ok":            true,
			"authenticated": false,
			"message":       "Track expenses, incomes and goals in one place",
		})
	}

	var expenseCount, goalCount int64
	if err := h.db.Model(&models.Expense{}).Where("user_id = ?", claims.UserID).Count(&expenseCount).Error; err != nil {
		return h.serverError(c, err, "landing: expense count failed")
	}
	if err := h.db.Model(&models.Goal{}).Where("user_id = ?", claims.UserID).Count(&goalCount).Error; err != nil {
		return h.serverError(c, err, "landing: goal count failed")
	}

	start, end := analytics.CalendarMonth(h.now())
	spent, err := h.sumAmount(&models.Expense{}, claims.UserID, start, end)
	if err != nil {
		return h.serverError(c, err, "landing: month spend failed")
	}

	return c.JSON(fiber.Map{
		"ok":            true,
		"authenticated": true,
		"username":      claims.Username,
		"expenseCount":  expenseCount,
		"goalCount":     goalCount,
		"monthSpend":    analytics.Round2(spent),
	})
}
