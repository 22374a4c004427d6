package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/core/services"
	"github.com/splitflow/splitflow-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock GroupRepository ---
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) FindGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error) {
	args := m.Called(ctx, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListGroups(ctx context.Context, limit, offset int) ([]domain.Group, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByCreator(ctx context.Context, userID string, limit, offset int) ([]domain.Group, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) SearchGroups(ctx context.Context, term string, limit int) ([]domain.Group, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) UpdateGroup(ctx context.Context, group domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) DeactivateGroup(ctx context.Context, groupID string, now time.Time) error {
	args := m.Called(ctx, groupID, now)
	return args.Error(0)
}

// --- Mock GroupMemberRepository ---
type MockGroupMemberRepository struct {
	mock.Mock
}

func (m *MockGroupMemberRepository) SaveMember(ctx context.Context, member domain.GroupMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockGroupMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.GroupMember, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupMember), args.Error(1)
}

func (m *MockGroupMemberRepository) FindMemberByGroupAndUser(ctx context.Context, groupID, userID string) (*domain.GroupMember, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupMember), args.Error(1)
}

func (m *MockGroupMemberRepository) ListGroupMembers(ctx context.Context, groupID string, limit, offset int) ([]domain.GroupMember, error) {
	args := m.Called(ctx, groupID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupMember), args.Error(1)
}

func (m *MockGroupMemberRepository) ListUserGroups(ctx context.Context, userID string, limit, offset int) ([]domain.GroupMember, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupMember), args.Error(1)
}

func (m *MockGroupMemberRepository) ListGroupAdmins(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupMember), args.Error(1)
}

func (m *MockGroupMemberRepository) UpdateMemberRole(ctx context.Context, memberID string, role domain.MemberRole) (*domain.GroupMember, error) {
	args := m.Called(ctx, memberID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupMember), args.Error(1)
}

func (m *MockGroupMemberRepository) RemoveMember(ctx context.Context, memberID string) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

func (m *MockGroupMemberRepository) RemoveMemberByGroupAndUser(ctx context.Context, groupID, userID string) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupMemberRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite ---
type GroupServiceTestSuite struct {
	suite.Suite
	mockGroupRepo  *MockGroupRepository
	mockMemberRepo *MockGroupMemberRepository
	service        portssvc.GroupSvc
}

func (suite *GroupServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockMemberRepo = new(MockGroupMemberRepository)
	suite.service = services.NewGroupService(suite.mockGroupRepo, suite.mockMemberRepo)
}

// --- Test Cases ---

func (suite *GroupServiceTestSuite) TestCreateGroup_EnrollsCreatorAsAdmin() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := dto.CreateGroupRequest{
		CreatedBy:   creatorID,
		Name:        "Flat 4B",
		Description: "Shared flat expenses",
	}

	suite.mockGroupRepo.On("SaveGroup", ctx, mock.MatchedBy(func(g domain.Group) bool {
		return g.Name == req.Name &&
			g.CreatedBy == creatorID &&
			g.IsActive &&
			len(g.InviteCode) == 8
	})).Return(nil).Once()
	suite.mockMemberRepo.On("SaveMember", ctx, mock.MatchedBy(func(gm domain.GroupMember) bool {
		return gm.UserID == creatorID && gm.Role == domain.RoleAdmin && gm.IsActive
	})).Return(nil).Once()

	group, err := suite.service.CreateGroup(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(group)
	suite.Len(group.InviteCode, 8)
	suite.Equal(group.InviteCode, strings.ToUpper(group.InviteCode))
	suite.mockGroupRepo.AssertExpectations(suite.T())
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestCreateGroup_SaveFailureSkipsEnrollment() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockGroupRepo.On("SaveGroup", ctx, mock.AnythingOfType("domain.Group")).Return(expectedErr).Once()

	group, err := suite.service.CreateGroup(ctx, dto.CreateGroupRequest{
		CreatedBy: uuid.NewString(),
		Name:      "Doomed group",
	})

	suite.Require().Error(err)
	suite.Nil(group)
	suite.ErrorIs(err, expectedErr)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "SaveMember")
}

func (suite *GroupServiceTestSuite) TestGetGroupByInviteCode_NotFound() {
	ctx := context.Background()

	suite.mockGroupRepo.On("FindGroupByInviteCode", ctx, "NOPE1234").Return(nil, apperrors.ErrNotFound).Once()

	group, err := suite.service.GetGroupByInviteCode(ctx, "NOPE1234")

	suite.Require().Error(err)
	suite.Nil(group)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestUpdateGroup_PartialUpdate() {
	ctx := context.Background()
	groupID := uuid.NewString()
	stored := &domain.Group{
		GroupID:     groupID,
		Name:        "Flat 4B",
		Description: "Shared flat expenses",
		IsActive:    true,
	}
	newName := "Flat 5C"

	suite.mockGroupRepo.On("FindGroupByID", ctx, groupID).Return(stored, nil).Once()
	suite.mockGroupRepo.On("UpdateGroup", ctx, mock.MatchedBy(func(g domain.Group) bool {
		return g.Name == newName && g.Description == "Shared flat expenses"
	})).Return(nil).Once()

	group, err := suite.service.UpdateGroup(ctx, groupID, dto.UpdateGroupRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, group.Name)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestDeleteGroup_SoftDeletes() {
	ctx := context.Background()
	groupID := uuid.NewString()

	suite.mockGroupRepo.On("DeactivateGroup", ctx, groupID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteGroup(ctx, groupID))
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestGroupService(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}
