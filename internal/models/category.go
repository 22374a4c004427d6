package models

import "time"

// Category represents a row in the categories table.
type Category struct {
	CategoryID string    `db:"category_id"`
	Name       string    `db:"name"`
	Icon       string    `db:"icon"`
	Color      string    `db:"color"`
	IsDefault  bool      `db:"is_default"`
	CreatedAt  time.Time `db:"created_at"`
}
