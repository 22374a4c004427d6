package models

import "time"

// Group represents a row in the groups table.
// Description and InviteCode are nullable in the schema.
type Group struct {
	GroupID     string    `db:"group_id"`
	CreatedBy   string    `db:"created_by"`
	Name        string    `db:"group_name"`
	Description string    `db:"group_description"`
	InviteCode  string    `db:"invite_code"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
