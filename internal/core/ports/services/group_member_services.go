package services

import (
	"context"

	"github.com/splitflow/splitflow-api/internal/core/domain"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// GroupMemberSvc exposes group membership operations.
type GroupMemberSvc interface {
	AddMember(ctx context.Context, req dto.AddMemberRequest) (*domain.GroupMember, error)
	GetMemberByID(ctx context.Context, memberID string) (*domain.GroupMember, error)
	GetMemberByGroupAndUser(ctx context.Context, groupID, userID string) (*domain.GroupMember, error)
	ListGroupMembers(ctx context.Context, groupID string, limit, offset int) ([]domain.GroupMember, error)
	ListUserGroups(ctx context.Context, userID string, limit, offset int) ([]domain.GroupMember, error)
	ListGroupAdmins(ctx context.Context, groupID string) ([]domain.GroupMember, error)
	UpdateMemberRole(ctx context.Context, memberID string, role domain.MemberRole) (*domain.GroupMember, error)
	RemoveMember(ctx context.Context, memberID string) error
	RemoveMemberByGroupAndUser(ctx context.Context, groupID, userID string) error
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}
