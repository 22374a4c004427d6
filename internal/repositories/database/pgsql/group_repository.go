package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
	"github.com/splitflow/splitflow-api/internal/models"
)

type PgxGroupRepository struct {
	pool *pgxpool.Pool
}

// newPgxGroupRepository creates a new repository for group data.
func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepository {
	return &PgxGroupRepository{pool: pool}
}

var _ portsrepo.GroupRepository = (*PgxGroupRepository)(nil)

func toDomainGroup(m models.Group) domain.Group {
	return domain.Group{
		GroupID:     m.GroupID,
		CreatedBy:   m.CreatedBy,
		Name:        m.Name,
		Description: m.Description,
		InviteCode:  m.InviteCode,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

const groupColumns = `group_id, created_by, group_name, group_description, invite_code, is_active, created_at, updated_at`

func scanGroupRow(row pgx.Row) (*models.Group, error) {
	var m models.Group
	var description, inviteCode sql.NullString
	err := row.Scan(&m.GroupID, &m.CreatedBy, &m.Name, &description, &inviteCode, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Description = description.String
	m.InviteCode = inviteCode.String
	return &m, nil
}

func collectGroups(rows pgx.Rows) ([]domain.Group, error) {
	defer rows.Close()
	groups := []domain.Group{}
	for rows.Next() {
		var m models.Group
		var description, inviteCode sql.NullString
		if err := rows.Scan(&m.GroupID, &m.CreatedBy, &m.Name, &description, &inviteCode, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		m.Description = description.String
		m.InviteCode = inviteCode.String
		groups = append(groups, toDomainGroup(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}
	return groups, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// SaveGroup inserts a new group.
func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	query := `
		INSERT INTO groups (group_id, created_by, group_name, group_description, invite_code, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.pool.Exec(ctx, query,
		group.GroupID,
		group.CreatedBy,
		group.Name,
		nullableString(group.Description),
		nullableString(group.InviteCode),
		group.IsActive,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // invite_code unique violation
			return fmt.Errorf("%w: group with this invite code already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save group %s: %w", group.GroupID, err)
	}
	return nil
}

// FindGroupByID retrieves an active group by ID.
func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE group_id = $1 AND is_active = TRUE;`

	m, err := scanGroupRow(r.pool.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group by ID %s: %w", groupID, err)
	}

	d := toDomainGroup(*m)
	return &d, nil
}

// FindGroupByInviteCode retrieves an active group by invite code.
func (r *PgxGroupRepository) FindGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE invite_code = $1 AND is_active = TRUE;`

	m, err := scanGroupRow(r.pool.QueryRow(ctx, query, inviteCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group by invite code: %w", err)
	}

	d := toDomainGroup(*m)
	return &d, nil
}

// ListGroups retrieves a paginated list of active groups, newest first.
func (r *PgxGroupRepository) ListGroups(ctx context.Context, limit, offset int) ([]domain.Group, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + groupColumns + `
		FROM groups
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	return collectGroups(rows)
}

// ListGroupsByCreator retrieves active groups created by a user.
func (r *PgxGroupRepository) ListGroupsByCreator(ctx context.Context, userID string, limit, offset int) ([]domain.Group, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + groupColumns + `
		FROM groups
		WHERE created_by = $1 AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for user %s: %w", userID, err)
	}
	return collectGroups(rows)
}

// SearchGroups matches the term against name and description, case-insensitive.
func (r *PgxGroupRepository) SearchGroups(ctx context.Context, term string, limit int) ([]domain.Group, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + groupColumns + `
		FROM groups
		WHERE is_active = TRUE
		  AND (group_name ILIKE '%' || $1 || '%' OR group_description ILIKE '%' || $1 || '%')
		ORDER BY group_name
		LIMIT $2;
	`

	rows, err := r.pool.Query(ctx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search groups: %w", err)
	}
	return collectGroups(rows)
}

// UpdateGroup overwrites a group's mutable fields.
func (r *PgxGroupRepository) UpdateGroup(ctx context.Context, group domain.Group) error {
	query := `
		UPDATE groups
		SET group_name = $2, group_description = $3, invite_code = $4, is_active = $5, updated_at = $6
		WHERE group_id = $1;
	`

	tag, err := r.pool.Exec(ctx, query,
		group.GroupID,
		group.Name,
		nullableString(group.Description),
		nullableString(group.InviteCode),
		group.IsActive,
		group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update group %s: %w", group.GroupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateGroup soft-deletes a group.
func (r *PgxGroupRepository) DeactivateGroup(ctx context.Context, groupID string, now time.Time) error {
	query := `
		UPDATE groups
		SET is_active = FALSE, updated_at = $2
		WHERE group_id = $1 AND is_active = TRUE;
	`

	tag, err := r.pool.Exec(ctx, query, groupID, now)
	if err != nil {
		return fmt.Errorf("failed to deactivate group %s: %w", groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
