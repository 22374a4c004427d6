package domain

import "time"

// MemberRole defines the role a user holds within a group.
type MemberRole string

const (
	RoleMember MemberRole = "member"
	RoleAdmin  MemberRole = "admin"
)

// GroupMember links a user to a group. Removal is a soft delete so that
// past expense shares stay attributable.
type GroupMember struct {
	MemberID string     `json:"memberID"`
	GroupID  string     `json:"groupID"`
	UserID   string     `json:"userID"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
	IsActive bool       `json:"isActive"`
}
