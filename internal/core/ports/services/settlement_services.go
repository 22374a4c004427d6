package services

import (
	"context"

	"github.com/splitflow/splitflow-api/internal/core/domain"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// SettlementSvc exposes settlement operations.
type SettlementSvc interface {
	CreateSettlement(ctx context.Context, req dto.CreateSettlementRequest) (*domain.Settlement, error)
	GetSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error)
	ListSettlementsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Settlement, error)
	ListSettlementsFromUser(ctx context.Context, fromUser string, limit, offset int) ([]domain.Settlement, error)
	ListSettlementsToUser(ctx context.Context, toUser string, limit, offset int) ([]domain.Settlement, error)
	ListPendingSettlements(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error)
	ListCompletedSettlements(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error)
	ListSettlementsBetweenUsers(ctx context.Context, user1ID, user2ID, groupID string) ([]domain.Settlement, error)
	UpdateSettlement(ctx context.Context, settlementID string, req dto.UpdateSettlementRequest) (*domain.Settlement, error)
	MarkSettlementCompleted(ctx context.Context, settlementID string) (*domain.Settlement, error)
	MarkSettlementPending(ctx context.Context, settlementID string) (*domain.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID string) error
}
