package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
	portssvc "github.com/splitflow/splitflow-api/internal/core/ports/services"
	"github.com/splitflow/splitflow-api/internal/dto"
)

// CategoryService implements expense category management.
type CategoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvc {
	return &CategoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvc = (*CategoryService)(nil)

// CreateCategory creates a new category. Names are unique.
func (s *CategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		Icon:       req.Icon,
		Color:      req.Color,
		IsDefault:  req.IsDefault,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "failed to create category", "name", req.Name)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.LogInfo(ctx, "category created", "category_id", category.CategoryID)
	return &category, nil
}

// GetCategoryByID retrieves a category.
func (s *CategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", categoryID, err)
	}
	return category, nil
}

// GetCategoryByName retrieves a category by exact name.
func (s *CategoryService) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get category by name %q: %w", name, err)
	}
	return category, nil
}

// ListCategories retrieves a page of categories.
func (s *CategoryService) ListCategories(ctx context.Context, limit, offset int) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListDefaultCategories retrieves the system-provided categories.
func (s *CategoryService) ListDefaultCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListDefaultCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list default categories: %w", err)
	}
	return categories, nil
}

// ListCustomCategories retrieves the user-created categories.
func (s *CategoryService) ListCustomCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCustomCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom categories: %w", err)
	}
	return categories, nil
}

// SearchCategories finds categories by name fragment.
func (s *CategoryService) SearchCategories(ctx context.Context, term string, limit int) ([]domain.Category, error) {
	categories, err := s.categoryRepo.SearchCategories(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory applies a partial update. Only the provided fields change.
func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s for update: %w", categoryID, err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.IsDefault != nil {
		category.IsDefault = *req.IsDefault
	}

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "failed to update category", "category_id", categoryID)
		return nil, fmt.Errorf("failed to update category %s: %w", categoryID, err)
	}
	return category, nil
}

// DeleteCategory removes a category permanently. Expenses keep working,
// their category reference nulls out at the schema level.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}

	s.LogInfo(ctx, "category deleted", "category_id", categoryID)
	return nil
}
