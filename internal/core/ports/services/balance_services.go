package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// BalanceSvc exposes the balance ledger operations.
//
// Write operations propagate errors; read operations do too. Fail-soft
// presentation (zero net, empty lists on store failure) is a handler
// concern, not baked into the ledger.
type BalanceSvc interface {
	CreateOrMergeDebt(ctx context.Context, req dto.CreateBalanceRequest) (*domain.Balance, error)
	GetBalanceByID(ctx context.Context, balanceID string) (*domain.Balance, error)
	GetBalanceBetweenUsers(ctx context.Context, groupID, userFrom, userTo string) (*domain.Balance, error)
	ListGroupBalances(ctx context.Context, groupID string, limit, offset int) ([]domain.Balance, error)
	ListUserBalancesInGroup(ctx context.Context, groupID, userID string) ([]domain.Balance, error)
	GetUserNetPosition(ctx context.Context, groupID, userID string) (*domain.NetPosition, error)
	GetGroupSummary(ctx context.Context, groupID string) (*domain.GroupBalanceSummary, error)
	ListAllUserBalances(ctx context.Context, userID string, limit, offset int) ([]domain.Balance, error)
	UpdateBalanceAmount(ctx context.Context, balanceID string, amount decimal.Decimal) (*domain.Balance, error)
	SettleBalance(ctx context.Context, balanceID string) error
}
