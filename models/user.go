package models

// User represents an account holder.
type User struct {
	Base
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	Categories    []Category     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Expenses      []Expense      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Incomes       []Income       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Goals         []Goal         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
