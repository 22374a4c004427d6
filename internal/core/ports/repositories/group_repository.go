package repositories

import (
	"context"
	"time"

	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// GroupRepository defines persistence operations for groups.
// Reads only return active groups; deletion is a soft delete.
type GroupRepository interface {
	SaveGroup(ctx context.Context, group domain.Group) error
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)
	FindGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error)
	ListGroups(ctx context.Context, limit, offset int) ([]domain.Group, error)
	ListGroupsByCreator(ctx context.Context, userID string, limit, offset int) ([]domain.Group, error)
	SearchGroups(ctx context.Context, term string, limit int) ([]domain.Group, error)
	UpdateGroup(ctx context.Context, group domain.Group) error
	DeactivateGroup(ctx context.Context, groupID string, now time.Time) error
}
