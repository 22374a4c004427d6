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

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) UpsertDebt(ctx context.Context, balance domain.Balance) (*domain.Balance, error) {
	args := m.Called(ctx, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) FindBalanceByID(ctx context.Context, balanceID string) (*domain.Balance, error) {
	args := m.Called(ctx, balanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) FindBalanceBetweenUsers(ctx context.Context, groupID, userFrom, userTo string) (*domain.Balance, error) {
	args := m.Called(ctx, groupID, userFrom, userTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) ListGroupBalances(ctx context.Context, groupID string, limit, offset int) ([]domain.Balance, error) {
	args := m.Called(ctx, groupID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) ListUserBalancesInGroup(ctx context.Context, groupID, userID string) ([]domain.Balance, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) ListAllUserBalances(ctx context.Context, userID string, limit, offset int) ([]domain.Balance, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) UpdateBalanceAmount(ctx context.Context, balanceID string, amount decimal.Decimal, now time.Time) (*domain.Balance, error) {
	args := m.Called(ctx, balanceID, amount, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) DeleteBalance(ctx context.Context, balanceID string) error {
	args := m.Called(ctx, balanceID)
	return args.Error(0)
}

// --- Test Suite ---
type BalanceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBalanceRepository
	service  portssvc.BalanceSvc
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBalanceRepository)
	suite.service = services.NewBalanceService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestCreateOrMergeDebt_Success() {
	ctx := context.Background()
	req := dto.CreateBalanceRequest{
		GroupID:  uuid.NewString(),
		UserFrom: uuid.NewString(),
		UserTo:   uuid.NewString(),
		Amount:   decimal.RequireFromString("25.50"),
	}
	saved := &domain.Balance{
		BalanceID:   uuid.NewString(),
		GroupID:     req.GroupID,
		UserFrom:    req.UserFrom,
		UserTo:      req.UserTo,
		Amount:      req.Amount,
		LastUpdated: time.Now().UTC(),
	}

	suite.mockRepo.On("UpsertDebt", ctx, mock.MatchedBy(func(b domain.Balance) bool {
		return b.GroupID == req.GroupID &&
			b.UserFrom == req.UserFrom &&
			b.UserTo == req.UserTo &&
			b.Amount.Equal(req.Amount) &&
			b.BalanceID != ""
	})).Return(saved, nil).Once()

	balance, err := suite.service.CreateOrMergeDebt(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.Equal(saved.BalanceID, balance.BalanceID)
	suite.True(balance.Amount.Equal(req.Amount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestCreateOrMergeDebt_MergesIntoExistingEdge() {
	ctx := context.Background()
	groupID := uuid.NewString()
	debtor := uuid.NewString()
	creditor := uuid.NewString()

	// A second debt of 5.50 on top of an existing 20.00 edge comes back merged.
	merged := &domain.Balance{
		BalanceID:   uuid.NewString(),
		GroupID:     groupID,
		UserFrom:    debtor,
		UserTo:      creditor,
		Amount:      decimal.RequireFromString("25.50"),
		LastUpdated: time.Now().UTC(),
	}
	suite.mockRepo.On("UpsertDebt", ctx, mock.AnythingOfType("domain.Balance")).Return(merged, nil).Once()

	balance, err := suite.service.CreateOrMergeDebt(ctx, dto.CreateBalanceRequest{
		GroupID:  groupID,
		UserFrom: debtor,
		UserTo:   creditor,
		Amount:   decimal.RequireFromString("5.50"),
	})

	suite.Require().NoError(err)
	suite.Equal("25.5", balance.Amount.String())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestCreateOrMergeDebt_RejectsNonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []string{"0", "-10.00"} {
		req := dto.CreateBalanceRequest{
			GroupID:  uuid.NewString(),
			UserFrom: uuid.NewString(),
			UserTo:   uuid.NewString(),
			Amount:   decimal.RequireFromString(amount),
		}

		balance, err := suite.service.CreateOrMergeDebt(ctx, req)

		suite.Require().Error(err)
		suite.Nil(balance)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	// Validation rejects before the store is touched.
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertDebt")
}

func (suite *BalanceServiceTestSuite) TestCreateOrMergeDebt_RejectsSelfDebt() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateBalanceRequest{
		GroupID:  uuid.NewString(),
		UserFrom: userID,
		UserTo:   userID,
		Amount:   decimal.RequireFromString("10.00"),
	}

	balance, err := suite.service.CreateOrMergeDebt(ctx, req)

	suite.Require().Error(err)
	suite.Nil(balance)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertDebt")
}

func (suite *BalanceServiceTestSuite) TestCreateOrMergeDebt_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("UpsertDebt", ctx, mock.AnythingOfType("domain.Balance")).Return(nil, expectedErr).Once()

	balance, err := suite.service.CreateOrMergeDebt(ctx, dto.CreateBalanceRequest{
		GroupID:  uuid.NewString(),
		UserFrom: uuid.NewString(),
		UserTo:   uuid.NewString(),
		Amount:   decimal.RequireFromString("1.00"),
	})

	suite.Require().Error(err)
	suite.Nil(balance)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetBalanceBetweenUsers_DirectionMatters() {
	ctx := context.Background()
	groupID := uuid.NewString()
	alice := uuid.NewString()
	bob := uuid.NewString()

	forward := &domain.Balance{
		BalanceID: uuid.NewString(),
		GroupID:   groupID,
		UserFrom:  alice,
		UserTo:    bob,
		Amount:    decimal.RequireFromString("20.00"),
	}
	suite.mockRepo.On("FindBalanceBetweenUsers", ctx, groupID, alice, bob).Return(forward, nil).Once()
	suite.mockRepo.On("FindBalanceBetweenUsers", ctx, groupID, bob, alice).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetBalanceBetweenUsers(ctx, groupID, alice, bob)
	suite.Require().NoError(err)
	suite.Equal(forward.BalanceID, got.BalanceID)

	// The reverse direction is a distinct edge and does not match.
	reverse, err := suite.service.GetBalanceBetweenUsers(ctx, groupID, bob, alice)
	suite.Require().Error(err)
	suite.Nil(reverse)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetUserNetPosition_FoldsBothDirections() {
	ctx := context.Background()
	groupID := uuid.NewString()
	alice := uuid.NewString()
	bob := uuid.NewString()
	carol := uuid.NewString()

	edges := []domain.Balance{
		{BalanceID: uuid.NewString(), GroupID: groupID, UserFrom: alice, UserTo: bob, Amount: decimal.RequireFromString("20.00")},
		{BalanceID: uuid.NewString(), GroupID: groupID, UserFrom: carol, UserTo: alice, Amount: decimal.RequireFromString("10.00")},
	}
	suite.mockRepo.On("ListUserBalancesInGroup", ctx, groupID, alice).Return(edges, nil).Once()

	position, err := suite.service.GetUserNetPosition(ctx, groupID, alice)

	suite.Require().NoError(err)
	suite.Require().NotNil(position)
	// Owed 10, owes 20: net is exactly -10.
	suite.True(position.NetBalance.Equal(decimal.RequireFromString("-10.00")))
	suite.Equal(domain.StatusOwesMoney, position.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetUserNetPosition_NoEdgesIsSettled() {
	ctx := context.Background()
	groupID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockRepo.On("ListUserBalancesInGroup", ctx, groupID, userID).Return([]domain.Balance{}, nil).Once()

	position, err := suite.service.GetUserNetPosition(ctx, groupID, userID)

	suite.Require().NoError(err)
	suite.True(position.NetBalance.IsZero())
	suite.Equal(domain.StatusSettled, position.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetGroupSummary_NetsSumToZero() {
	ctx := context.Background()
	groupID := uuid.NewString()
	alice := "alice"
	bob := "bob"
	carol := "carol"

	// Debt cycle: alice -> bob 20, bob -> carol 15, carol -> alice 10.
	edges := []domain.Balance{
		{BalanceID: uuid.NewString(), GroupID: groupID, UserFrom: alice, UserTo: bob, Amount: decimal.RequireFromString("20.00")},
		{BalanceID: uuid.NewString(), GroupID: groupID, UserFrom: bob, UserTo: carol, Amount: decimal.RequireFromString("15.00")},
		{BalanceID: uuid.NewString(), GroupID: groupID, UserFrom: carol, UserTo: alice, Amount: decimal.RequireFromString("10.00")},
	}
	suite.mockRepo.On("ListGroupBalances", ctx, groupID, mock.AnythingOfType("int"), 0).Return(edges, nil).Once()

	summary, err := suite.service.GetGroupSummary(ctx, groupID)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Equal(3, summary.TotalBalances)
	suite.Len(summary.RawBalances, 3)

	suite.True(summary.UserNetBalances[alice].Equal(decimal.RequireFromString("-10.00")))
	suite.True(summary.UserNetBalances[bob].Equal(decimal.RequireFromString("5.00")))
	suite.True(summary.UserNetBalances[carol].Equal(decimal.RequireFromString("5.00")))

	total := decimal.Zero
	for _, net := range summary.UserNetBalances {
		total = total.Add(net)
	}
	suite.True(total.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetGroupSummary_EmptyGroup() {
	ctx := context.Background()
	groupID := uuid.NewString()

	suite.mockRepo.On("ListGroupBalances", ctx, groupID, mock.AnythingOfType("int"), 0).Return([]domain.Balance{}, nil).Once()

	summary, err := suite.service.GetGroupSummary(ctx, groupID)

	suite.Require().NoError(err)
	suite.Equal(0, summary.TotalBalances)
	suite.Empty(summary.UserNetBalances)
	suite.Empty(summary.RawBalances)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestUpdateBalanceAmount_Success() {
	ctx := context.Background()
	balanceID := uuid.NewString()
	amount := decimal.RequireFromString("42.42")
	updated := &domain.Balance{BalanceID: balanceID, Amount: amount}

	suite.mockRepo.On("UpdateBalanceAmount", ctx, balanceID, amount, mock.AnythingOfType("time.Time")).Return(updated, nil).Once()

	balance, err := suite.service.UpdateBalanceAmount(ctx, balanceID, amount)

	suite.Require().NoError(err)
	suite.True(balance.Amount.Equal(amount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestUpdateBalanceAmount_RejectsNonPositive() {
	ctx := context.Background()

	balance, err := suite.service.UpdateBalanceAmount(ctx, uuid.NewString(), decimal.Zero)

	suite.Require().Error(err)
	suite.Nil(balance)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBalanceAmount")
}

func (suite *BalanceServiceTestSuite) TestSettleBalance_Success() {
	ctx := context.Background()
	balanceID := uuid.NewString()

	suite.mockRepo.On("DeleteBalance", ctx, balanceID).Return(nil).Once()

	err := suite.service.SettleBalance(ctx, balanceID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestSettleBalance_SecondSettleNotFound() {
	ctx := context.Background()
	balanceID := uuid.NewString()

	suite.mockRepo.On("DeleteBalance", ctx, balanceID).Return(nil).Once()
	suite.mockRepo.On("DeleteBalance", ctx, balanceID).Return(apperrors.ErrNotFound).Once()

	suite.Require().NoError(suite.service.SettleBalance(ctx, balanceID))

	err := suite.service.SettleBalance(ctx, balanceID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
