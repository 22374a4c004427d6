package dto

import (
	"time"

	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon" binding:"required"`
	Color     string `json:"color" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// UpdateCategoryRequest defines the fields allowed for a partial category update.
type UpdateCategoryRequest struct {
	Name      *string `json:"name"`
	Icon      *string `json:"icon"`
	Color     *string `json:"color"`
	IsDefault *bool   `json:"is_default"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string    `json:"id"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	Color      string    `json:"color"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToCategoryResponse converts a domain.Category to a CategoryResponse DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Icon:       c.Icon,
		Color:      c.Color,
		IsDefault:  c.IsDefault,
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToCategoryResponse(&c)
	}
	return res
}
