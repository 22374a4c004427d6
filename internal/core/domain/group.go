package domain

import "time"

// Group is a collection of users sharing expenses. Groups are soft-deleted
// via IsActive so historical expenses keep a valid owner.
type Group struct {
	GroupID     string    `json:"groupID"`
	CreatedBy   string    `json:"createdBy"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	InviteCode  string    `json:"inviteCode"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
