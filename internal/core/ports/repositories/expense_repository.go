package repositories

import (
	"context"
	"time"

	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// ExpenseRepository defines persistence operations for expenses.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpensesByGroup(ctx context.Context, groupID string, limit, offset int) ([]domain.Expense, error)
	ListExpensesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Expense, error)
	ListExpensesByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Expense, error)
	ListExpensesByDateRange(ctx context.Context, groupID string, start, end time.Time) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}
