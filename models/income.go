package models

import (
	"time"

	"github.com/google/uuid"
)

// Income is a single earning record.
type Income struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Name        string    `gorm:"not null" json:"name"`
	Date        time.Time `gorm:"not null;index" json:"-"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `json:"description,omitempty"`
}
