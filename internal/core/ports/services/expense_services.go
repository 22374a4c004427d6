package services

import (
	"context"
	"time"

	"github.com/splitflow/splitflow-api/internal/core/domain"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// ExpenseSvc exposes expense management operations.
type ExpenseSvc interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpensesByGroup(ctx context.Context, groupID string, limit, offset int) ([]domain.Expense, error)
	ListExpensesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Expense, error)
	ListExpensesByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Expense, error)
	ListExpensesByDateRange(ctx context.Context, groupID string, start, end time.Time) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
}
