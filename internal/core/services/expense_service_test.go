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

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string, limit, offset int) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Expense, error) {
	args := m.Called(ctx, categoryID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByDateRange(ctx context.Context, groupID string, start, end time.Time) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// --- Mock ExpenseShareRepository ---
type MockExpenseShareRepository struct {
	mock.Mock
}

func (m *MockExpenseShareRepository) SaveShare(ctx context.Context, share domain.ExpenseShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockExpenseShareRepository) FindShareByID(ctx context.Context, shareID string) (*domain.ExpenseShare, error) {
	args := m.Called(ctx, shareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseShare), args.Error(1)
}

func (m *MockExpenseShareRepository) ListSharesByExpense(ctx context.Context, expenseID string) ([]domain.ExpenseShare, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseShare), args.Error(1)
}

func (m *MockExpenseShareRepository) ListSharesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ExpenseShare, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseShare), args.Error(1)
}

func (m *MockExpenseShareRepository) ListUnsettledSharesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ExpenseShare, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseShare), args.Error(1)
}

func (m *MockExpenseShareRepository) UpdateShare(ctx context.Context, share domain.ExpenseShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockExpenseShareRepository) DeleteShare(ctx context.Context, shareID string) error {
	args := m.Called(ctx, shareID)
	return args.Error(0)
}

func (m *MockExpenseShareRepository) DeleteSharesByExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// --- Test Suite ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockShareRepo   *MockExpenseShareRepository
	service         portssvc.ExpenseSvc
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockShareRepo = new(MockExpenseShareRepository)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockShareRepo)
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		GroupID:     uuid.NewString(),
		PaidBy:      uuid.NewString(),
		Amount:      decimal.RequireFromString("120.00"),
		Description: "Dinner",
		SplitMethod: "equal",
		ExpenseDate: "2026-08-20",
	}

	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.GroupID == req.GroupID &&
			e.PaidBy == req.PaidBy &&
			e.Amount.Equal(req.Amount) &&
			e.ExpenseDate.Format("2006-01-02") == req.ExpenseDate &&
			e.ExpenseID != ""
	})).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.Equal(req.Description, expense.Description)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_RejectsBadDate() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		GroupID:     uuid.NewString(),
		PaidBy:      uuid.NewString(),
		Amount:      decimal.RequireFromString("10.00"),
		Description: "Snacks",
		ExpenseDate: "20-08-2026",
	}

	expense, err := suite.service.CreateExpense(ctx, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense")
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		GroupID:     uuid.NewString(),
		PaidBy:      uuid.NewString(),
		Amount:      decimal.RequireFromString("-5.00"),
		Description: "Refund gone wrong",
		ExpenseDate: "2026-08-20",
	}

	expense, err := suite.service.CreateExpense(ctx, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense")
}

func (suite *ExpenseServiceTestSuite) TestListExpensesByDateRange_RejectsInvertedRange() {
	ctx := context.Background()
	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -7)

	expenses, err := suite.service.ListExpensesByDateRange(ctx, uuid.NewString(), start, end)

	suite.Require().Error(err)
	suite.Nil(expenses)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ListExpensesByDateRange")
}

func (suite *ExpenseServiceTestSuite) TestListExpensesByDateRange_InclusiveBounds() {
	ctx := context.Background()
	groupID := uuid.NewString()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	expected := []domain.Expense{{ExpenseID: uuid.NewString(), GroupID: groupID}}

	suite.mockExpenseRepo.On("ListExpensesByDateRange", ctx, groupID, start, end).Return(expected, nil).Once()

	expenses, err := suite.service.ListExpensesByDateRange(ctx, groupID, start, end)

	suite.Require().NoError(err)
	suite.Equal(expected, expenses)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_PartialUpdate() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	stored := &domain.Expense{
		ExpenseID:   expenseID,
		GroupID:     uuid.NewString(),
		Amount:      decimal.RequireFromString("50.00"),
		Description: "Groceries",
		SplitMethod: domain.SplitEqual,
	}
	newDescription := "Weekly groceries"

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(stored, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Description == newDescription && e.Amount.Equal(stored.Amount)
	})).Return(nil).Once()

	expense, err := suite.service.UpdateExpense(ctx, expenseID, dto.UpdateExpenseRequest{
		Description: &newDescription,
	})

	suite.Require().NoError(err)
	suite.Equal(newDescription, expense.Description)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_RemovesSharesFirst() {
	ctx := context.Background()
	expenseID := uuid.NewString()

	suite.mockShareRepo.On("DeleteSharesByExpense", ctx, expenseID).Return(nil).Once()
	suite.mockExpenseRepo.On("DeleteExpense", ctx, expenseID).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteExpense(ctx, expenseID))
	suite.mockShareRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_ShareDeletionFailureAborts() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockShareRepo.On("DeleteSharesByExpense", ctx, expenseID).Return(expectedErr).Once()

	err := suite.service.DeleteExpense(ctx, expenseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "DeleteExpense")
}

// --- Run Suite ---
func TestExpenseService(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
