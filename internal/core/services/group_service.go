package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// GroupService implements group management on top of group and member
// repositories. Creating a group also enrolls the creator as its admin.
type GroupService struct {
	BaseService
	groupRepo  portsrepo.GroupRepository
	memberRepo portsrepo.GroupMemberRepository
}

// NewGroupService creates a new group service.
func NewGroupService(groupRepo portsrepo.GroupRepository, memberRepo portsrepo.GroupMemberRepository) portssvc.GroupSvc {
	return &GroupService{groupRepo: groupRepo, memberRepo: memberRepo}
}

var _ portssvc.GroupSvc = (*GroupService)(nil)

// newInviteCode derives a short shareable code. Uniqueness is enforced by the
// schema; a collision surfaces as a duplicate error on save.
func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// CreateGroup creates a group and adds the creator as an active admin member.
func (s *GroupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (*domain.Group, error) {
	now := time.Now().UTC()

	group := domain.Group{
		GroupID:     uuid.NewString(),
		CreatedBy:   req.CreatedBy,
		Name:        req.Name,
		Description: req.Description,
		InviteCode:  newInviteCode(),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		s.LogError(ctx, err, "failed to create group", "name", req.Name)
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	creator := domain.GroupMember{
		MemberID: uuid.NewString(),
		GroupID:  group.GroupID,
		UserID:   req.CreatedBy,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
		IsActive: true,
	}
	if err := s.memberRepo.SaveMember(ctx, creator); err != nil {
		s.LogError(ctx, err, "failed to enroll group creator", "group_id", group.GroupID, "user_id", req.CreatedBy)
		return nil, fmt.Errorf("failed to enroll creator into group %s: %w", group.GroupID, err)
	}

	s.LogInfo(ctx, "group created", "group_id", group.GroupID)
	return &group, nil
}

// GetGroupByID retrieves an active group.
func (s *GroupService) GetGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group %s: %w", groupID, err)
	}
	return group, nil
}

// GetGroupByInviteCode retrieves an active group by its invite code.
func (s *GroupService) GetGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get group by invite code: %w", err)
	}
	return group, nil
}

// ListGroups retrieves a page of active groups.
func (s *GroupService) ListGroups(ctx context.Context, limit, offset int) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroups(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// ListGroupsByCreator retrieves active groups a user created.
func (s *GroupService) ListGroupsByCreator(ctx context.Context, userID string, limit, offset int) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroupsByCreator(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for creator %s: %w", userID, err)
	}
	return groups, nil
}

// SearchGroups finds active groups by name or description fragment.
func (s *GroupService) SearchGroups(ctx context.Context, term string, limit int) ([]domain.Group, error) {
	groups, err := s.groupRepo.SearchGroups(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search groups: %w", err)
	}
	return groups, nil
}

// UpdateGroup applies a partial update. Only the provided fields change.
func (s *GroupService) UpdateGroup(ctx context.Context, groupID string, req dto.UpdateGroupRequest) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to find group %s for update: %w", groupID, err)
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.InviteCode != nil {
		group.InviteCode = *req.InviteCode
	}
	if req.IsActive != nil {
		group.IsActive = *req.IsActive
	}
	group.UpdatedAt = time.Now().UTC()

	if err := s.groupRepo.UpdateGroup(ctx, *group); err != nil {
		s.LogError(ctx, err, "failed to update group", "group_id", groupID)
		return nil, fmt.Errorf("failed to update group %s: %w", groupID, err)
	}
	return group, nil
}

// DeleteGroup soft-deletes a group. Its history remains queryable by ID for
// other tables, but the group stops appearing in reads.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	if err := s.groupRepo.DeactivateGroup(ctx, groupID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete group %s: %w", groupID, err)
	}

	s.LogInfo(ctx, "group deactivated", "group_id", groupID)
	return nil
}
