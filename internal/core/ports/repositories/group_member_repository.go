package repositories

import (
	"context"

	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// GroupMemberRepository defines persistence operations for group memberships.
// Reads only return active memberships; removal is a soft delete.
type GroupMemberRepository interface {
	SaveMember(ctx context.Context, member domain.GroupMember) error
	FindMemberByID(ctx context.Context, memberID string) (*domain.GroupMember, error)
	FindMemberByGroupAndUser(ctx context.Context, groupID, userID string) (*domain.GroupMember, error)
	ListGroupMembers(ctx context.Context, groupID string, limit, offset int) ([]domain.GroupMember, error)
	ListUserGroups(ctx context.Context, userID string, limit, offset int) ([]domain.GroupMember, error)
	ListGroupAdmins(ctx context.Context, groupID string) ([]domain.GroupMember, error)
	UpdateMemberRole(ctx context.Context, memberID string, role domain.MemberRole) (*domain.GroupMember, error)
	RemoveMember(ctx context.Context, memberID string) error
	RemoveMemberByGroupAndUser(ctx context.Context, groupID, userID string) error
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}
