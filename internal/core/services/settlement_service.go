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

// SettlementService implements repayment tracking between users.
type SettlementService struct {
	BaseService
	settlementRepo portsrepo.SettlementRepository
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(settlementRepo portsrepo.SettlementRepository) portssvc.SettlementSvc {
	return &SettlementService{settlementRepo: settlementRepo}
}

var _ portssvc.SettlementSvc = (*SettlementService)(nil)

// CreateSettlement records a repayment. New settlements start pending; the
// method defaults to other when not given.
func (s *SettlementService) CreateSettlement(ctx context.Context, req dto.CreateSettlementRequest) (*domain.Settlement, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if req.FromUser == req.ToUser {
		return nil, fmt.Errorf("%w: payer and payee must be different users", apperrors.ErrValidation)
	}

	method := domain.SettlementMethod(req.Method)
	if method == "" {
		method = domain.MethodOther
	}

	settlement := domain.Settlement{
		SettlementID: uuid.NewString(),
		GroupID:      req.GroupID,
		FromUser:     req.FromUser,
		ToUser:       req.ToUser,
		Amount:       req.Amount,
		Method:       method,
		ReferenceID:  req.ReferenceID,
		Notes:        req.Notes,
		SettledAt:    nil,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		s.LogError(ctx, err, "failed to create settlement", "group_id", req.GroupID)
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	s.LogInfo(ctx, "settlement created", "settlement_id", settlement.SettlementID)
	return &settlement, nil
}

// GetSettlementByID retrieves a settlement.
func (s *SettlementService) GetSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement %s: %w", settlementID, err)
	}
	return settlement, nil
}

// ListSettlementsByGroup retrieves a page of a group's settlements.
func (s *SettlementService) ListSettlementsByGroup(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error) {
	settlements, err := s.settlementRepo.ListSettlementsByGroup(ctx, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements for group %s: %w", groupID, err)
	}
	return settlements, nil
}

// ListSettlementsByUser retrieves settlements where the user is payer or payee.
func (s *SettlementService) ListSettlementsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Settlement, error) {
	settlements, err := s.settlementRepo.ListSettlementsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements for user %s: %w", userID, err)
	}
	return settlements, nil
}

// ListSettlementsFromUser retrieves settlements the user paid.
func (s *SettlementService) ListSettlementsFromUser(ctx context.Context, fromUser string, limit, offset int) ([]domain.Settlement, error) {
	settlements, err := s.settlementRepo.ListSettlementsFromUser(ctx, fromUser, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements from user %s: %w", fromUser, err)
	}
	return settlements, nil
}

// ListSettlementsToUser retrieves settlements the user received.
func (s *SettlementService) ListSettlementsToUser(ctx context.Context, toUser string, limit, offset int) ([]domain.Settlement, error) {
	settlements, err := s.settlementRepo.ListSettlementsToUser(ctx, toUser, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements to user %s: %w", toUser, err)
	}
	return settlements, nil
}

// ListPendingSettlements retrieves settlements that have not completed.
func (s *SettlementService) ListPendingSettlements(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error) {
	settlements, err := s.settlementRepo.ListPendingSettlements(ctx, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending settlements: %w", err)
	}
	return settlements, nil
}

// ListCompletedSettlements retrieves settlements that have completed.
func (s *SettlementService) ListCompletedSettlements(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error) {
	settlements, err := s.settlementRepo.ListCompletedSettlements(ctx, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed settlements: %w", err)
	}
	return settlements, nil
}

// ListSettlementsBetweenUsers retrieves settlements between two users in
// either direction.
func (s *SettlementService) ListSettlementsBetweenUsers(ctx context.Context, user1ID, user2ID, groupID string) ([]domain.Settlement, error) {
	settlements, err := s.settlementRepo.ListSettlementsBetweenUsers(ctx, user1ID, user2ID, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements between %s and %s: %w", user1ID, user2ID, err)
	}
	return settlements, nil
}

// UpdateSettlement applies a partial update. Only the provided fields change.
func (s *SettlementService) UpdateSettlement(ctx context.Context, settlementID string, req dto.UpdateSettlementRequest) (*domain.Settlement, error) {
	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find settlement %s for update: %w", settlementID, err)
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
		}
		settlement.Amount = *req.Amount
	}
	if req.Method != nil {
		settlement.Method = domain.SettlementMethod(*req.Method)
	}
	if req.ReferenceID != nil {
		settlement.ReferenceID = *req.ReferenceID
	}
	if req.Notes != nil {
		settlement.Notes = *req.Notes
	}

	if err := s.settlementRepo.UpdateSettlement(ctx, *settlement); err != nil {
		s.LogError(ctx, err, "failed to update settlement", "settlement_id", settlementID)
		return nil, fmt.Errorf("failed to update settlement %s: %w", settlementID, err)
	}
	return settlement, nil
}

// MarkSettlementCompleted stamps the settlement as done now.
func (s *SettlementService) MarkSettlementCompleted(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find settlement %s: %w", settlementID, err)
	}

	now := time.Now().UTC()
	settlement.SettledAt = &now
	if err := s.settlementRepo.UpdateSettlement(ctx, *settlement); err != nil {
		return nil, fmt.Errorf("failed to mark settlement %s completed: %w", settlementID, err)
	}

	s.LogInfo(ctx, "settlement completed", "settlement_id", settlementID)
	return settlement, nil
}

// MarkSettlementPending reopens a completed settlement.
func (s *SettlementService) MarkSettlementPending(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find settlement %s: %w", settlementID, err)
	}

	settlement.SettledAt = nil
	if err := s.settlementRepo.UpdateSettlement(ctx, *settlement); err != nil {
		return nil, fmt.Errorf("failed to mark settlement %s pending: %w", settlementID, err)
	}

	s.LogInfo(ctx, "settlement reopened", "settlement_id", settlementID)
	return settlement, nil
}

// DeleteSettlement removes a settlement record permanently.
func (s *SettlementService) DeleteSettlement(ctx context.Context, settlementID string) error {
	if err := s.settlementRepo.DeleteSettlement(ctx, settlementID); err != nil {
		return fmt.Errorf("failed to delete settlement %s: %w", settlementID, err)
	}

	s.LogInfo(ctx, "settlement deleted", "settlement_id", settlementID)
	return nil
}
