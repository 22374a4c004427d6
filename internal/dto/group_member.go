package dto

import (
	"time"

	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// AddMemberRequest defines the data needed to add a user to a group.
type AddMemberRequest struct {
	GroupID string `json:"group_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
	Role    string `json:"role" binding:"omitempty,oneof=member admin"`
}

// UpdateMemberRoleRequest defines the data for a role change.
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member admin"`
}

// GroupMemberResponse defines the data returned for a group membership.
type GroupMemberResponse struct {
	MemberID string            `json:"id"`
	GroupID  string            `json:"group_id"`
	UserID   string            `json:"user_id"`
	Role     domain.MemberRole `json:"role"`
	JoinedAt time.Time         `json:"joined_at"`
	IsActive bool              `json:"is_active"`
}

// MembershipCheckResponse reports whether a user belongs to a group.
type MembershipCheckResponse struct {
	GroupID  string `json:"group_id"`
	UserID   string `json:"user_id"`
	IsMember bool   `json:"is_member"`
}

// ToGroupMemberResponse converts a domain.GroupMember to its DTO.
func ToGroupMemberResponse(m *domain.GroupMember) GroupMemberResponse {
	return GroupMemberResponse{
		MemberID: m.MemberID,
		GroupID:  m.GroupID,
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
		IsActive: m.IsActive,
	}
}

// ToListGroupMemberResponse converts a slice of domain.GroupMember to DTOs.
func ToListGroupMemberResponse(members []domain.GroupMember) []GroupMemberResponse {
	res := make([]GroupMemberResponse, len(members))
	for i, m := range members {
		res[i] = ToGroupMemberResponse(&m)
	}
	return res
}
