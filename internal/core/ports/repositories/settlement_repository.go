package repositories

import (
	"context"

	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// SettlementRepository defines persistence operations for settlements.
// Group-scoped list methods accept an empty groupID to mean "all groups".
type SettlementRepository interface {
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error)
	// ListSettlementsByUser returns settlements where the user is payer or payee.
	ListSettlementsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Settlement, error)
	ListSettlementsFromUser(ctx context.Context, fromUser string, limit, offset int) ([]domain.Settlement, error)
	ListSettlementsToUser(ctx context.Context, toUser string, limit, offset int) ([]domain.Settlement, error)
	ListPendingSettlements(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error)
	ListCompletedSettlements(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error)
	ListSettlementsBetweenUsers(ctx context.Context, user1ID, user2ID, groupID string) ([]domain.Settlement, error)
	UpdateSettlement(ctx context.Context, settlement domain.Settlement) error
	DeleteSettlement(ctx context.Context, settlementID string) error
}
