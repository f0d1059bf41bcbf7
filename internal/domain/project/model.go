package project

import "time"

// DefaultColor is assigned when a project is created without a color.
const DefaultColor = "#3B82F6"

// Project groups time entries. Projects are archived (IsActive=false)
// instead of being removed.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
