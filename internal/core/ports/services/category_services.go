package services

import (
	"context"

	"github.com/splitflow/splitflow-api/internal/core/domain"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// CategorySvc exposes category management operations.
type CategorySvc interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context, limit, offset int) ([]domain.Category, error)
	ListDefaultCategories(ctx context.Context) ([]domain.Category, error)
	ListCustomCategories(ctx context.Context) ([]domain.Category, error)
	SearchCategories(ctx context.Context, term string, limit int) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}
