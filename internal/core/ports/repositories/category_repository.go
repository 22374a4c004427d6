package repositories

import (
	"context"

	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for expense categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context, limit, offset int) ([]domain.Category, error)
	ListDefaultCategories(ctx context.Context) ([]domain.Category, error)
	ListCustomCategories(ctx context.Context) ([]domain.Category, error)
	SearchCategories(ctx context.Context, term string, limit int) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}
