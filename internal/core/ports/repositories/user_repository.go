package repositories

import (
	"context"

	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	DeleteUser(ctx context.Context, userID string) error
	// SearchUsers matches the term against full name and email, case-insensitive.
	SearchUsers(ctx context.Context, term string, limit int) ([]domain.User, error)
}
