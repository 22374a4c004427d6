package repositories

import (
	"context"

	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// ExpenseShareRepository defines persistence operations for expense shares.
type ExpenseShareRepository interface {
	SaveShare(ctx context.Context, share domain.ExpenseShare) error
	FindShareByID(ctx context.Context, shareID string) (*domain.ExpenseShare, error)
	ListSharesByExpense(ctx context.Context, expenseID string) ([]domain.ExpenseShare, error)
	ListSharesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ExpenseShare, error)
	ListUnsettledSharesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ExpenseShare, error)
	UpdateShare(ctx context.Context, share domain.ExpenseShare) error
	DeleteShare(ctx context.Context, shareID string) error
	// DeleteSharesByExpense removes every share of an expense. Deleting an
	// expense with no shares is a no-op success.
	DeleteSharesByExpense(ctx context.Context, expenseID string) error
}
