package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// BalanceService implements the balance ledger on top of a balance repository.
type BalanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceRepository
}

// NewBalanceService creates a new balance service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepository) portssvc.BalanceSvc {
	return &BalanceService{balanceRepo: balanceRepo}
}

var _ portssvc.BalanceSvc = (*BalanceService)(nil)

// summaryPageSize bounds each repository fetch while folding a whole group.
const summaryPageSize = 500

// CreateOrMergeDebt records that the debtor owes the creditor an additional
// amount. Validation runs before any store access; an invalid request never
// reaches the repository. When an edge already exists for the same ordered
// triple the amount is merged into it atomically.
func (s *BalanceService) CreateOrMergeDebt(ctx context.Context, req dto.CreateBalanceRequest) (*domain.Balance, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if req.UserFrom == req.UserTo {
		return nil, fmt.Errorf("%w: debtor and creditor must be different users", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	balance := domain.Balance{
		BalanceID:   uuid.NewString(),
		GroupID:     req.GroupID,
		UserFrom:    req.UserFrom,
		UserTo:      req.UserTo,
		Amount:      req.Amount,
		LastUpdated: now,
	}

	saved, err := s.balanceRepo.UpsertDebt(ctx, balance)
	if err != nil {
		s.LogError(ctx, err, "failed to create or merge debt",
			"group_id", req.GroupID, "user_from", req.UserFrom, "user_to", req.UserTo)
		return nil, fmt.Errorf("failed to create or merge debt: %w", err)
	}

	s.LogInfo(ctx, "debt recorded",
		"balance_id", saved.BalanceID, "group_id", saved.GroupID, "amount", saved.Amount.String())
	return saved, nil
}

// GetBalanceByID retrieves a single edge.
func (s *BalanceService) GetBalanceByID(ctx context.Context, balanceID string) (*domain.Balance, error) {
	balance, err := s.balanceRepo.FindBalanceByID(ctx, balanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance %s: %w", balanceID, err)
	}
	return balance, nil
}

// GetBalanceBetweenUsers retrieves the edge for an exact ordered pair. The
// reverse direction is a separate edge and never matches.
func (s *BalanceService) GetBalanceBetweenUsers(ctx context.Context, groupID, userFrom, userTo string) (*domain.Balance, error) {
	balance, err := s.balanceRepo.FindBalanceBetweenUsers(ctx, groupID, userFrom, userTo)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance between users: %w", err)
	}
	return balance, nil
}

// ListGroupBalances retrieves a page of a group's edges.
func (s *BalanceService) ListGroupBalances(ctx context.Context, groupID string, limit, offset int) ([]domain.Balance, error) {
	balances, err := s.balanceRepo.ListGroupBalances(ctx, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances for group %s: %w", groupID, err)
	}
	return balances, nil
}

// ListUserBalancesInGroup retrieves every edge involving the user in a group.
func (s *BalanceService) ListUserBalancesInGroup(ctx context.Context, groupID, userID string) ([]domain.Balance, error) {
	balances, err := s.balanceRepo.ListUserBalancesInGroup(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances for user %s in group %s: %w", userID, groupID, err)
	}
	return balances, nil
}

// GetUserNetPosition folds the user's edges in a group into a signed net:
// amounts owed to the user count positive, amounts the user owes count
// negative. A user with no edges nets to zero and reads as settled.
func (s *BalanceService) GetUserNetPosition(ctx context.Context, groupID, userID string) (*domain.NetPosition, error) {
	balances, err := s.balanceRepo.ListUserBalancesInGroup(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute net position for user %s in group %s: %w", userID, groupID, err)
	}

	net := decimal.Zero
	for _, b := range balances {
		switch userID {
		case b.UserTo:
			net = net.Add(b.Amount)
		case b.UserFrom:
			net = net.Sub(b.Amount)
		}
	}

	return &domain.NetPosition{
		GroupID:    groupID,
		UserID:     userID,
		NetBalance: net,
		Status:     domain.DeriveBalanceStatus(net),
	}, nil
}

// GetGroupSummary aggregates every edge of a group into per-user nets. Both
// endpoints of each edge appear in the map, so a user who only ever borrowed
// still shows up with a negative net. Pages through the repository until the
// whole group is folded.
func (s *BalanceService) GetGroupSummary(ctx context.Context, groupID string) (*domain.GroupBalanceSummary, error) {
	all := []domain.Balance{}
	for offset := 0; ; offset += summaryPageSize {
		page, err := s.balanceRepo.ListGroupBalances(ctx, groupID, summaryPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize group %s: %w", groupID, err)
		}
		all = append(all, page...)
		if len(page) < summaryPageSize {
			break
		}
	}

	nets := map[string]decimal.Decimal{}
	for _, b := range all {
		if _, ok := nets[b.UserFrom]; !ok {
			nets[b.UserFrom] = decimal.Zero
		}
		if _, ok := nets[b.UserTo]; !ok {
			nets[b.UserTo] = decimal.Zero
		}
		nets[b.UserFrom] = nets[b.UserFrom].Sub(b.Amount)
		nets[b.UserTo] = nets[b.UserTo].Add(b.Amount)
	}

	return &domain.GroupBalanceSummary{
		GroupID:         groupID,
		TotalBalances:   len(all),
		UserNetBalances: nets,
		RawBalances:     all,
	}, nil
}

// ListAllUserBalances retrieves a page of the user's edges across all groups,
// ordered by recency over the whole set before the page is cut.
func (s *BalanceService) ListAllUserBalances(ctx context.Context, userID string, limit, offset int) ([]domain.Balance, error) {
	balances, err := s.balanceRepo.ListAllUserBalances(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances for user %s: %w", userID, err)
	}
	return balances, nil
}

// UpdateBalanceAmount replaces an edge's amount outright. This is an
// administrative overwrite, not a merge.
func (s *BalanceService) UpdateBalanceAmount(ctx context.Context, balanceID string, amount decimal.Decimal) (*domain.Balance, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	updated, err := s.balanceRepo.UpdateBalanceAmount(ctx, balanceID, amount, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update amount for balance %s: %w", balanceID, err)
	}

	s.LogInfo(ctx, "balance amount amended", "balance_id", balanceID, "amount", amount.String())
	return updated, nil
}

// SettleBalance removes an edge entirely. Settling is not idempotent: a
// second settle of the same edge reports not found.
func (s *BalanceService) SettleBalance(ctx context.Context, balanceID string) error {
	if err := s.balanceRepo.DeleteBalance(ctx, balanceID); err != nil {
		return fmt.Errorf("failed to settle balance %s: %w", balanceID, err)
	}

	s.LogInfo(ctx, "balance settled", "balance_id", balanceID)
	return nil
}
