package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fintrack-go-be/models"
)

// ListNotifications returns the caller's notifications, newest first.
func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	claims := h.claims(c)

	var notifications []models.Notification
	if err := h.db.Where("user_id = ?", claims.UserID).
		Order("created_at desc").Find(&notifications).Error; err != nil {
		return h.serverError(c, err, "notifications: list failed")
	}

	var unread int64
	if err := h.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", claims.UserID, false).
		Count(&unread).Error; err != nil {
		return h.serverError(c, err, "notifications: unread count failed")
	}

	return c.JSON(fiber.Map{
		"ok":            true,
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkNotificationRead flags a single notification as read.
func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	claims := h.claims(c)

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).
		Update("read", true)
	if res.Error != nil {
		return h.serverError(c, res.Error, "notifications: mark read failed")
	}
	if res.RowsAffected == 0 {
		return notFound(c, "Notification")
	}
	return c.JSON(fiber.Map{"ok": true, "message": "Notification marked as read"})
}

// MarkAllNotificationsRead flags everything unread as read.
func (h *Handler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	claims := h.claims(c)

	res := h.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", claims.UserID, false).
		Update("read", true)
	if res.Error != nil {
		return h.serverError(c, res.Error, "notifications: mark all read failed")
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "All notifications marked as read",
		"updated": res.RowsAffected,
	})
}

// DeleteNotification removes one notification.
func (h *Handler) DeleteNotification(c *fiber.Ctx) error {
	claims := h.claims(c)

	res := h.db.Where("id = ? AND user_id = ?", c.Params("id"), claims.UserID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return h.serverError(c, res.Error, "notifications: delete failed")
	}
	if res.RowsAffected == 0 {
		return notFound(c, "Notification")
	}
	return c.JSON(fiber.Map{"ok": true, "message": "Notification deleted successfully"})
}
