package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a savings target. CurrentAmount never exceeds TargetAmount; the
// handlers reject any write that would overshoot before touching the store.
type Goal struct {
	Base
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"userId"`
	Name          string             `gorm:"not null" json:"name"`
	TargetAmount  float64            `gorm:"not null" json:"targetAmount"`
	CurrentAmount float64            `gorm:"not null;default:0" json:"currentAmount"`
	DueDate       time.Time          `gorm:"not null" json:"-"`
	Description   string             `json:"description,omitempty"`
	Contributions []GoalContribution `gorm:"constraint:OnDelete:CASCADE" json:"contributions,omitempty"`
}

// GoalContribution records one payment toward a goal. Creating one also
// increments the goal's CurrentAmount atomically in the same transaction.
type GoalContribution struct {
	Base
	GoalID uuid.UUID `gorm:"type:uuid;not null;index" json:"goalId"`
	Amount float64   `gorm:"not null" json:"amount"`
}
