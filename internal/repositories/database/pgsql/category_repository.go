package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
	"github.com/splitflow/splitflow-api/internal/models"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Icon:       m.Icon,
		Color:      m.Color,
		IsDefault:  m.IsDefault,
		CreatedAt:  m.CreatedAt,
	}
}

const categoryColumns = `category_id, name, icon, color, is_default, created_at`

func scanCategoryRow(row pgx.Row) (*models.Category, error) {
	var m models.Category
	err := row.Scan(&m.CategoryID, &m.Name, &m.Icon, &m.Color, &m.IsDefault, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectCategories(rows pgx.Rows) ([]domain.Category, error) {
	defer rows.Close()
	categories := []domain.Category{}
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.Icon, &m.Color, &m.IsDefault, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, toDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, name, icon, color, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	_, err := r.pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.Icon,
		category.Color,
		category.IsDefault,
		category.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategoryRow(r.pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	d := toDomainCategory(*m)
	return &d, nil
}

// FindCategoryByName retrieves a category by exact name.
func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1;`

	m, err := scanCategoryRow(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by name %q: %w", name, err)
	}

	d := toDomainCategory(*m)
	return &d, nil
}

// ListCategories retrieves a paginated list of categories, alphabetical.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, limit, offset int) ([]domain.Category, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY name ASC
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	return collectCategories(rows)
}

// ListDefaultCategories retrieves the system-provided categories.
func (r *PgxCategoryRepository) ListDefaultCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_default = TRUE ORDER BY name ASC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query default categories: %w", err)
	}
	return collectCategories(rows)
}

// ListCustomCategories retrieves the user-created categories.
func (r *PgxCategoryRepository) ListCustomCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_default = FALSE ORDER BY name ASC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom categories: %w", err)
	}
	return collectCategories(rows)
}

// SearchCategories matches the term against the name, case-insensitive.
func (r *PgxCategoryRepository) SearchCategories(ctx context.Context, term string, limit int) ([]domain.Category, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT $2;
	`

	rows, err := r.pool.Query(ctx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}
	return collectCategories(rows)
}

// UpdateCategory overwrites a category's mutable fields.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories
		SET name = $2, icon = $3, color = $4, is_default = $5
		WHERE category_id = $1;
	`

	tag, err := r.pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.Icon,
		category.Color,
		category.IsDefault,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory hard-deletes a category.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	query := `DELETE FROM categories WHERE category_id = $1;`

	tag, err := r.pool.Exec(ctx, query, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
