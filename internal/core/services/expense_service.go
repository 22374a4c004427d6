package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/dto"
)

const expenseDateFormat = "2006-01-02"

// ExpenseService implements expense management.
type ExpenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepository
	shareRepo   portsrepo.ExpenseShareRepository
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepository, shareRepo portsrepo.ExpenseShareRepository) portssvc.ExpenseSvc {
	return &ExpenseService{expenseRepo: expenseRepo, shareRepo: shareRepo}
}

var _ portssvc.ExpenseSvc = (*ExpenseService)(nil)

// CreateExpense records a new expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	expenseDate, err := req.ParseExpenseDate()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expense date: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:       uuid.NewString(),
		GroupID:         req.GroupID,
		PaidBy:          req.PaidBy,
		CategoryID:      req.CategoryID,
		Amount:          req.Amount,
		Description:     req.Description,
		Notes:           req.Notes,
		SplitMethod:     domain.SplitMethod(req.SplitMethod),
		ExpenseDate:     expenseDate,
		IsReimbursement: req.IsReimbursement,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "failed to create expense", "group_id", req.GroupID)
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.LogInfo(ctx, "expense created", "expense_id", expense.ExpenseID, "group_id", expense.GroupID)
	return &expense, nil
}

// GetExpenseByID retrieves an expense.
func (s *ExpenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense %s: %w", expenseID, err)
	}
	return expense, nil
}

// ListExpensesByGroup retrieves a page of a group's expenses.
func (s *ExpenseService) ListExpensesByGroup(ctx context.Context, groupID string, limit, offset int) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpensesByGroup(ctx, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for group %s: %w", groupID, err)
	}
	return expenses, nil
}

// ListExpensesByUser retrieves a page of expenses the user paid for.
func (s *ExpenseService) ListExpensesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpensesByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for user %s: %w", userID, err)
	}
	return expenses, nil
}

// ListExpensesByCategory retrieves a page of expenses tagged with a category.
func (s *ExpenseService) ListExpensesByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpensesByCategory(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for category %s: %w", categoryID, err)
	}
	return expenses, nil
}

// ListExpensesByDateRange retrieves a group's expenses within an inclusive
// date range.
func (s *ExpenseService) ListExpensesByDateRange(ctx context.Context, groupID string, start, end time.Time) ([]domain.Expense, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}

	expenses, err := s.expenseRepo.ListExpensesByDateRange(ctx, groupID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for group %s in date range: %w", groupID, err)
	}
	return expenses, nil
}

// UpdateExpense applies a partial update. Only the provided fields change.
func (s *ExpenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense %s for update: %w", expenseID, err)
	}

	if req.GroupID != nil {
		expense.GroupID = *req.GroupID
	}
	if req.PaidBy != nil {
		expense.PaidBy = *req.PaidBy
	}
	if req.CategoryID != nil {
		expense.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}
	if req.SplitMethod != nil {
		expense.SplitMethod = domain.SplitMethod(*req.SplitMethod)
	}
	if req.ExpenseDate != nil {
		parsed, err := time.Parse(expenseDateFormat, *req.ExpenseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid expense date: %v", apperrors.ErrValidation, err)
		}
		expense.ExpenseDate = parsed
	}
	if req.IsReimbursement != nil {
		expense.IsReimbursement = *req.IsReimbursement
	}
	expense.UpdatedAt = time.Now().UTC()

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "failed to update expense", "expense_id", expenseID)
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}
	return expense, nil
}

// DeleteExpense removes an expense and all its shares.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	if err := s.shareRepo.DeleteSharesByExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete shares for expense %s: %w", expenseID, err)
	}
	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}

	s.LogInfo(ctx, "expense deleted", "expense_id", expenseID)
	return nil
}
