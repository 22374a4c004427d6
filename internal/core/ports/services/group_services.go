package services

import (
	"context"

	"github.com/splitflow/splitflow-api/internal/core/domain"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// GroupSvc exposes group management operations.
type GroupSvc interface {
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (*domain.Group, error)
	GetGroupByID(ctx context.Context, groupID string) (*domain.Group, error)
	GetGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error)
	ListGroups(ctx context.Context, limit, offset int) ([]domain.Group, error)
	ListGroupsByCreator(ctx context.Context, userID string, limit, offset int) ([]domain.Group, error)
	SearchGroups(ctx context.Context, term string, limit int) ([]domain.Group, error)
	UpdateGroup(ctx context.Context, groupID string, req dto.UpdateGroupRequest) (*domain.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error
}
