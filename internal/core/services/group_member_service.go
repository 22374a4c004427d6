package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// GroupMemberService implements membership management.
type GroupMemberService struct {
	BaseService
	memberRepo portsrepo.GroupMemberRepository
}

// NewGroupMemberService creates a new group member service.
func NewGroupMemberService(memberRepo portsrepo.GroupMemberRepository) portssvc.GroupMemberSvc {
	return &GroupMemberService{memberRepo: memberRepo}
}

var _ portssvc.GroupMemberSvc = (*GroupMemberService)(nil)

// AddMember enrolls a user into a group. The role defaults to member.
func (s *GroupMemberService) AddMember(ctx context.Context, req dto.AddMemberRequest) (*domain.GroupMember, error) {
	role := domain.MemberRole(req.Role)
	if role == "" {
		role = domain.RoleMember
	}

	member := domain.GroupMember{
		MemberID: uuid.NewString(),
		GroupID:  req.GroupID,
		UserID:   req.UserID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
		IsActive: true,
	}

	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "failed to add member", "group_id", req.GroupID, "user_id", req.UserID)
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.LogInfo(ctx, "member added", "member_id", member.MemberID, "group_id", req.GroupID)
	return &member, nil
}

// GetMemberByID retrieves an active membership.
func (s *GroupMemberService) GetMemberByID(ctx context.Context, memberID string) (*domain.GroupMember, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member %s: %w", memberID, err)
	}
	return member, nil
}

// GetMemberByGroupAndUser retrieves an active membership by its pair.
func (s *GroupMemberService) GetMemberByGroupAndUser(ctx context.Context, groupID, userID string) (*domain.GroupMember, error) {
	member, err := s.memberRepo.FindMemberByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member for group %s and user %s: %w", groupID, userID, err)
	}
	return member, nil
}

// ListGroupMembers retrieves a page of a group's active members.
func (s *GroupMemberService) ListGroupMembers(ctx context.Context, groupID string, limit, offset int) ([]domain.GroupMember, error) {
	members, err := s.memberRepo.ListGroupMembers(ctx, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for group %s: %w", groupID, err)
	}
	return members, nil
}

// ListUserGroups retrieves a page of a user's active memberships.
func (s *GroupMemberService) ListUserGroups(ctx context.Context, userID string, limit, offset int) ([]domain.GroupMember, error) {
	members, err := s.memberRepo.ListUserGroups(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for user %s: %w", userID, err)
	}
	return members, nil
}

// ListGroupAdmins retrieves a group's active admins.
func (s *GroupMemberService) ListGroupAdmins(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	admins, err := s.memberRepo.ListGroupAdmins(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins for group %s: %w", groupID, err)
	}
	return admins, nil
}

// UpdateMemberRole changes a member's role.
func (s *GroupMemberService) UpdateMemberRole(ctx context.Context, memberID string, role domain.MemberRole) (*domain.GroupMember, error) {
	member, err := s.memberRepo.UpdateMemberRole(ctx, memberID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update role for member %s: %w", memberID, err)
	}

	s.LogInfo(ctx, "member role updated", "member_id", memberID, "role", string(role))
	return member, nil
}

// RemoveMember soft-deletes a membership by ID.
func (s *GroupMemberService) RemoveMember(ctx context.Context, memberID string) error {
	if err := s.memberRepo.RemoveMember(ctx, memberID); err != nil {
		return fmt.Errorf("failed to remove member %s: %w", memberID, err)
	}

	s.LogInfo(ctx, "member removed", "member_id", memberID)
	return nil
}

// RemoveMemberByGroupAndUser soft-deletes a membership by its pair.
func (s *GroupMemberService) RemoveMemberByGroupAndUser(ctx context.Context, groupID, userID string) error {
	if err := s.memberRepo.RemoveMemberByGroupAndUser(ctx, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove member for group %s and user %s: %w", groupID, userID, err)
	}

	s.LogInfo(ctx, "member removed", "group_id", groupID, "user_id", userID)
	return nil
}

// IsMember reports whether the user is an active member of the group.
func (s *GroupMemberService) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	isMember, err := s.memberRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check membership for group %s and user %s: %w", groupID, userID, err)
	}
	return isMember, nil
}
