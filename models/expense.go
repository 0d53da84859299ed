package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single spend record tied to a category.
type Expense struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Name        string    `gorm:"not null" json:"name"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`
	Category    *Category `gorm:"constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Date        time.Time `gorm:"not null;index" json:"-"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `json:"description,omitempty"`
}
