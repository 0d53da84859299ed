package models

import "github.com/google/uuid"

// UserSettings holds per-user notification preferences. Rows are created
// lazily on the first read or write, not at registration.
type UserSettings struct {
	Base
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	BudgetAlerts   bool      `gorm:"not null;default:true" json:"budgetAlerts"`
	GoalReminders  bool      `gorm:"not null;default:true" json:"goalReminders"`
	MonthlyBudget  *float64  `json:"monthlyBudget"`
	AlertThreshold int       `gorm:"not null;default:80" json:"alertThreshold"` // percent, 1-100
}
