package dto

import (
	"time"

	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// CreateGroupRequest defines the data needed to create a new group.
type CreateGroupRequest struct {
	CreatedBy   string `json:"created_by" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateGroupRequest defines the fields allowed for a partial group update.
type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	InviteCode  *string `json:"invite_code"`
	IsActive    *bool   `json:"is_active"`
}

// GroupResponse defines the data returned for a group.
type GroupResponse struct {
	GroupID     string    `json:"id"`
	CreatedBy   string    `json:"created_by"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	InviteCode  string    `json:"invite_code"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToGroupResponse converts a domain.Group to a GroupResponse DTO.
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:     g.GroupID,
		CreatedBy:   g.CreatedBy,
		Name:        g.Name,
		Description: g.Description,
		InviteCode:  g.InviteCode,
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// ToListGroupResponse converts a slice of domain.Group to DTOs.
func ToListGroupResponse(groups []domain.Group) []GroupResponse {
	res := make([]GroupResponse, len(groups))
	for i, g := range groups {
		res[i] = ToGroupResponse(&g)
	}
	return res
}
