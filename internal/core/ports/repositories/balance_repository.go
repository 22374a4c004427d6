package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// BalanceRepository defines persistence operations for balance edges.
type BalanceRepository interface {
	// UpsertDebt atomically inserts the edge or adds balance.Amount to the
	// existing edge for the same ordered (group, debtor, creditor) triple.
	// The returned balance reflects the post-merge state.
	UpsertDebt(ctx context.Context, balance domain.Balance) (*domain.Balance, error)
	FindBalanceByID(ctx context.Context, balanceID string) (*domain.Balance, error)
	FindBalanceBetweenUsers(ctx context.Context, groupID, userFrom, userTo string) (*domain.Balance, error)
	ListGroupBalances(ctx context.Context, groupID string, limit, offset int) ([]domain.Balance, error)
	// ListUserBalancesInGroup returns edges in both directions for the user.
	ListUserBalancesInGroup(ctx context.Context, groupID, userID string) ([]domain.Balance, error)
	// ListAllUserBalances returns edges in both directions across all groups,
	// ordered by last_updated descending and paginated at the union level.
	ListAllUserBalances(ctx context.Context, userID string, limit, offset int) ([]domain.Balance, error)
	// UpdateBalanceAmount unconditionally replaces the stored amount.
	UpdateBalanceAmount(ctx context.Context, balanceID string, amount decimal.Decimal, now time.Time) (*domain.Balance, error)
	// DeleteBalance hard-deletes the edge. Deleting a missing edge returns
	// apperrors.ErrNotFound, not a no-op success.
	DeleteBalance(ctx context.Context, balanceID string) error
}
