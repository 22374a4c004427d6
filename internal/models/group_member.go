package models

import "time"

// GroupMember represents a row in the group_members table.
type GroupMember struct {
	MemberID string    `db:"member_id"`
	GroupID  string    `db:"group_id"`
	UserID   string    `db:"user_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
	IsActive bool      `db:"is_active"`
}
