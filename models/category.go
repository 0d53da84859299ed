package models

import "github.com/google/uuid"

// Category is a user-defined expense bucket. Name uniqueness per user is
// enforced in the handlers so we can answer with a clean conflict message.
type Category struct {
	Base
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Name   string    `gorm:"not null" json:"name"`
	Color  string    `gorm:"not null" json:"color"` // 6 hex digits, no leading #
	Icon   string    `gorm:"not null" json:"icon"`
}

// DefaultCategory describes one of the categories provisioned at registration.
type DefaultCategory struct {
	Name  string
	Color string
	Icon  string
}

// DefaultCategories are created for every new account.
var DefaultCategories = []DefaultCategory{
	{Name: "Food", Color: "F59E0B", Icon: "🍔"},
	{Name: "Transport", Color: "3B82F6", Icon: "🚌"},
	{Name: "Shopping", Color: "EC4899", Icon: "🛍️"},
	{Name: "Bills", Color: "10B981", Icon: "🧾"},
	{Name: "Entertainment", Color: "8B5CF6", Icon: "🎬"},
}
