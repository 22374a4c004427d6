package services

import (
	"context"

	"github.com/splitflow/splitflow-api/internal/core/domain"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// ExpenseShareSvc exposes expense share operations.
type ExpenseShareSvc interface {
	CreateShare(ctx context.Context, req dto.CreateExpenseShareRequest) (*domain.ExpenseShare, error)
	GetShareByID(ctx context.Context, shareID string) (*domain.ExpenseShare, error)
	ListSharesByExpense(ctx context.Context, expenseID string) ([]domain.ExpenseShare, error)
	ListSharesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ExpenseShare, error)
	ListUnsettledSharesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ExpenseShare, error)
	UpdateShare(ctx context.Context, shareID string, req dto.UpdateExpenseShareRequest) (*domain.ExpenseShare, error)
	SettleShare(ctx context.Context, shareID string) (*domain.ExpenseShare, error)
	UnsettleShare(ctx context.Context, shareID string) (*domain.ExpenseShare, error)
	DeleteShare(ctx context.Context, shareID string) error
	DeleteSharesByExpense(ctx context.Context, expenseID string) error
}
