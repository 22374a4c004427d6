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

// ExpenseShareService implements per-participant share management.
type ExpenseShareService struct {
	BaseService
	shareRepo portsrepo.ExpenseShareRepository
}

// NewExpenseShareService creates a new expense share service.
func NewExpenseShareService(shareRepo portsrepo.ExpenseShareRepository) portssvc.ExpenseShareSvc {
	return &ExpenseShareService{shareRepo: shareRepo}
}

var _ portssvc.ExpenseShareSvc = (*ExpenseShareService)(nil)

// CreateShare records a participant's share of an expense.
func (s *ExpenseShareService) CreateShare(ctx context.Context, req dto.CreateExpenseShareRequest) (*domain.ExpenseShare, error) {
	if !req.AmountOwed.IsPositive() {
		return nil, fmt.Errorf("%w: amount owed must be greater than zero", apperrors.ErrValidation)
	}

	share := domain.ExpenseShare{
		ShareID:    uuid.NewString(),
		ExpenseID:  req.ExpenseID,
		UserID:     req.UserID,
		AmountOwed: req.AmountOwed,
		IsSettled:  req.IsSettled,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.shareRepo.SaveShare(ctx, share); err != nil {
		s.LogError(ctx, err, "failed to create expense share", "expense_id", req.ExpenseID, "user_id", req.UserID)
		return nil, fmt.Errorf("failed to create expense share: %w", err)
	}

	s.LogInfo(ctx, "expense share created", "share_id", share.ShareID)
	return &share, nil
}

// GetShareByID retrieves a share.
func (s *ExpenseShareService) GetShareByID(ctx context.Context, shareID string) (*domain.ExpenseShare, error) {
	share, err := s.shareRepo.FindShareByID(ctx, shareID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense share %s: %w", shareID, err)
	}
	return share, nil
}

// ListSharesByExpense retrieves every share of an expense.
func (s *ExpenseShareService) ListSharesByExpense(ctx context.Context, expenseID string) ([]domain.ExpenseShare, error) {
	shares, err := s.shareRepo.ListSharesByExpense(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares for expense %s: %w", expenseID, err)
	}
	return shares, nil
}

// ListSharesByUser retrieves a page of a user's shares.
func (s *ExpenseShareService) ListSharesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ExpenseShare, error) {
	shares, err := s.shareRepo.ListSharesByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares for user %s: %w", userID, err)
	}
	return shares, nil
}

// ListUnsettledSharesByUser retrieves a page of a user's outstanding shares.
func (s *ExpenseShareService) ListUnsettledSharesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ExpenseShare, error) {
	shares, err := s.shareRepo.ListUnsettledSharesByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled shares for user %s: %w", userID, err)
	}
	return shares, nil
}

// UpdateShare applies a partial update. Only the provided fields change.
func (s *ExpenseShareService) UpdateShare(ctx context.Context, shareID string, req dto.UpdateExpenseShareRequest) (*domain.ExpenseShare, error) {
	share, err := s.shareRepo.FindShareByID(ctx, shareID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense share %s for update: %w", shareID, err)
	}

	if req.AmountOwed != nil {
		if !req.AmountOwed.IsPositive() {
			return nil, fmt.Errorf("%w: amount owed must be greater than zero", apperrors.ErrValidation)
		}
		share.AmountOwed = *req.AmountOwed
	}
	if req.IsSettled != nil {
		share.IsSettled = *req.IsSettled
	}

	if err := s.shareRepo.UpdateShare(ctx, *share); err != nil {
		s.LogError(ctx, err, "failed to update expense share", "share_id", shareID)
		return nil, fmt.Errorf("failed to update expense share %s: %w", shareID, err)
	}
	return share, nil
}

// SettleShare marks a share as paid.
func (s *ExpenseShareService) SettleShare(ctx context.Context, shareID string) (*domain.ExpenseShare, error) {
	return s.setSettled(ctx, shareID, true)
}

// UnsettleShare reopens a share that was marked paid.
func (s *ExpenseShareService) UnsettleShare(ctx context.Context, shareID string) (*domain.ExpenseShare, error) {
	return s.setSettled(ctx, shareID, false)
}

func (s *ExpenseShareService) setSettled(ctx context.Context, shareID string, settled bool) (*domain.ExpenseShare, error) {
	share, err := s.shareRepo.FindShareByID(ctx, shareID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense share %s: %w", shareID, err)
	}

	share.IsSettled = settled
	if err := s.shareRepo.UpdateShare(ctx, *share); err != nil {
		return nil, fmt.Errorf("failed to update settlement flag for share %s: %w", shareID, err)
	}

	s.LogInfo(ctx, "expense share settlement flag changed", "share_id", shareID, "is_settled", settled)
	return share, nil
}

// DeleteShare removes a share permanently.
func (s *ExpenseShareService) DeleteShare(ctx context.Context, shareID string) error {
	if err := s.shareRepo.DeleteShare(ctx, shareID); err != nil {
		return fmt.Errorf("failed to delete expense share %s: %w", shareID, err)
	}

	s.LogInfo(ctx, "expense share deleted", "share_id", shareID)
	return nil
}

// DeleteSharesByExpense removes every share of an expense.
func (s *ExpenseShareService) DeleteSharesByExpense(ctx context.Context, expenseID string) error {
	if err := s.shareRepo.DeleteSharesByExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete shares for expense %s: %w", expenseID, err)
	}

	s.LogInfo(ctx, "expense shares deleted", "expense_id", expenseID)
	return nil
}
