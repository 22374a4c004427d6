package domain

import "time"

// Category classifies expenses. Default categories are system-provided,
// custom ones are user-created.
type Category struct {
	CategoryID string    `json:"categoryID"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	Color      string    `json:"color"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
}
