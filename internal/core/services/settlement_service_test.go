package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/core/services"
	"github.com/splitflow/splitflow-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SettlementRepository ---
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

func (m *MockSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	args := m.Called(ctx, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsByGroup(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error) {
	args := m.Called(ctx, groupID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Settlement, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsFromUser(ctx context.Context, fromUser string, limit, offset int) ([]domain.Settlement, error) {
	args := m.Called(ctx, fromUser, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsToUser(ctx context.Context, toUser string, limit, offset int) ([]domain.Settlement, error) {
	args := m.Called(ctx, toUser, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListPendingSettlements(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error) {
	args := m.Called(ctx, groupID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListCompletedSettlements(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error) {
	args := m.Called(ctx, groupID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsBetweenUsers(ctx context.Context, user1ID, user2ID, groupID string) ([]domain.Settlement, error) {
	args := m.Called(ctx, user1ID, user2ID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) UpdateSettlement(ctx context.Context, settlement domain.Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

func (m *MockSettlementRepository) DeleteSettlement(ctx context.Context, settlementID string) error {
	args := m.Called(ctx, settlementID)
	return args.Error(0)
}

// --- Test Suite ---
type SettlementServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettlementRepository
	service  portssvc.SettlementSvc
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettlementRepository)
	suite.service = services.NewSettlementService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *SettlementServiceTestSuite) TestCreateSettlement_StartsPendingWithDefaultMethod() {
	ctx := context.Background()
	req := dto.CreateSettlementRequest{
		GroupID:  uuid.NewString(),
		FromUser: uuid.NewString(),
		ToUser:   uuid.NewString(),
		Amount:   decimal.RequireFromString("30.00"),
	}

	suite.mockRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.GroupID == req.GroupID &&
			s.FromUser == req.FromUser &&
			s.ToUser == req.ToUser &&
			s.Amount.Equal(req.Amount) &&
			s.Method == domain.MethodOther &&
			s.SettledAt == nil
	})).Return(nil).Once()

	settlement, err := suite.service.CreateSettlement(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(settlement)
	suite.Equal(domain.MethodOther, settlement.Method)
	suite.Nil(settlement.SettledAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_RejectsSelfPayment() {
	ctx := context.Background()
	userID := uuid.NewString()

	settlement, err := suite.service.CreateSettlement(ctx, dto.CreateSettlementRequest{
		GroupID:  uuid.NewString(),
		FromUser: userID,
		ToUser:   userID,
		Amount:   decimal.RequireFromString("10.00"),
	})

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_RejectsNonPositiveAmount() {
	ctx := context.Background()

	settlement, err := suite.service.CreateSettlement(ctx, dto.CreateSettlementRequest{
		GroupID:  uuid.NewString(),
		FromUser: uuid.NewString(),
		ToUser:   uuid.NewString(),
		Amount:   decimal.Zero,
	})

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettlement")
}

func (suite *SettlementServiceTestSuite) TestMarkSettlementCompleted_StampsSettledAt() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	stored := &domain.Settlement{
		SettlementID: settlementID,
		GroupID:      uuid.NewString(),
		FromUser:     uuid.NewString(),
		ToUser:       uuid.NewString(),
		Amount:       decimal.RequireFromString("15.00"),
		Method:       domain.MethodCash,
		SettledAt:    nil,
	}

	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.SettlementID == settlementID && s.SettledAt != nil
	})).Return(nil).Once()

	settlement, err := suite.service.MarkSettlementCompleted(ctx, settlementID)

	suite.Require().NoError(err)
	suite.Require().NotNil(settlement.SettledAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestMarkSettlementPending_ClearsSettledAt() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	completedAt := time.Now().UTC()
	stored := &domain.Settlement{
		SettlementID: settlementID,
		Amount:       decimal.RequireFromString("15.00"),
		SettledAt:    &completedAt,
	}

	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.SettlementID == settlementID && s.SettledAt == nil
	})).Return(nil).Once()

	settlement, err := suite.service.MarkSettlementPending(ctx, settlementID)

	suite.Require().NoError(err)
	suite.Nil(settlement.SettledAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestUpdateSettlement_PartialUpdate() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	stored := &domain.Settlement{
		SettlementID: settlementID,
		Amount:       decimal.RequireFromString("15.00"),
		Method:       domain.MethodCash,
		Notes:        "original note",
	}
	newAmount := decimal.RequireFromString("20.00")

	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		// Amount changes, untouched fields survive.
		return s.Amount.Equal(newAmount) && s.Method == domain.MethodCash && s.Notes == "original note"
	})).Return(nil).Once()

	settlement, err := suite.service.UpdateSettlement(ctx, settlementID, dto.UpdateSettlementRequest{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.True(settlement.Amount.Equal(newAmount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestUpdateSettlement_NotFound() {
	ctx := context.Background()
	settlementID := uuid.NewString()

	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(nil, apperrors.ErrNotFound).Once()

	settlement, err := suite.service.UpdateSettlement(ctx, settlementID, dto.UpdateSettlementRequest{})

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateSettlement")
}

func (suite *SettlementServiceTestSuite) TestListSettlementsBetweenUsers_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("ListSettlementsBetweenUsers", ctx, "u1", "u2", "").Return(nil, expectedErr).Once()

	settlements, err := suite.service.ListSettlementsBetweenUsers(ctx, "u1", "u2", "")

	suite.Require().Error(err)
	suite.Nil(settlements)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestDeleteSettlement_Success() {
	ctx := context.Background()
	settlementID := uuid.NewString()

	suite.mockRepo.On("DeleteSettlement", ctx, settlementID).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteSettlement(ctx, settlementID))
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
