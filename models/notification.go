package models

import "github.com/google/uuid"

// Notification types produced by the backend.
const (
	NotificationBudgetAlert = "budget_alert"
	NotificationGoalReached = "goal_reached"
)

// Notification is an in-app message for a user.
type Notification struct {
	Base
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Type    string    `gorm:"not null" json:"type"`
	Message string    `gorm:"not null" json:"message"`
	Read    bool      `gorm:"not null;default:false" json:"read"`
}
