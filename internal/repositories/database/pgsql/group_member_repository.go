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

type PgxGroupMemberRepository struct {
	pool *pgxpool.Pool
}

// newPgxGroupMemberRepository creates a new repository for group memberships.
func newPgxGroupMemberRepository(pool *pgxpool.Pool) portsrepo.GroupMemberRepository {
	return &PgxGroupMemberRepository{pool: pool}
}

var _ portsrepo.GroupMemberRepository = (*PgxGroupMemberRepository)(nil)

func toDomainGroupMember(m models.GroupMember) domain.GroupMember {
	return domain.GroupMember{
		MemberID: m.MemberID,
		GroupID:  m.GroupID,
		UserID:   m.UserID,
		Role:     domain.MemberRole(m.Role),
		JoinedAt: m.JoinedAt,
		IsActive: m.IsActive,
	}
}

const memberColumns = `member_id, group_id, user_id, role, joined_at, is_active`

func scanMemberRow(row pgx.Row) (*models.GroupMember, error) {
	var m models.GroupMember
	err := row.Scan(&m.MemberID, &m.GroupID, &m.UserID, &m.Role, &m.JoinedAt, &m.IsActive)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMembers(rows pgx.Rows) ([]domain.GroupMember, error) {
	defer rows.Close()
	members := []domain.GroupMember{}
	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.MemberID, &m.GroupID, &m.UserID, &m.Role, &m.JoinedAt, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan group member row: %w", err)
		}
		members = append(members, toDomainGroupMember(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group member rows: %w", err)
	}
	return members, nil
}

// SaveMember inserts a new membership.
func (r *PgxGroupMemberRepository) SaveMember(ctx context.Context, member domain.GroupMember) error {
	query := `
		INSERT INTO group_members (member_id, group_id, user_id, role, joined_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	_, err := r.pool.Exec(ctx, query,
		member.MemberID,
		member.GroupID,
		member.UserID,
		string(member.Role),
		member.JoinedAt,
		member.IsActive,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: user %s is already a member of group %s", apperrors.ErrDuplicate, member.UserID, member.GroupID)
		}
		return fmt.Errorf("failed to save group member %s: %w", member.MemberID, err)
	}
	return nil
}

// FindMemberByID retrieves an active membership by ID.
func (r *PgxGroupMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.GroupMember, error) {
	query := `SELECT ` + memberColumns + ` FROM group_members WHERE member_id = $1 AND is_active = TRUE;`

	m, err := scanMemberRow(r.pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group member by ID %s: %w", memberID, err)
	}

	d := toDomainGroupMember(*m)
	return &d, nil
}

// FindMemberByGroupAndUser retrieves an active membership by its pair.
func (r *PgxGroupMemberRepository) FindMemberByGroupAndUser(ctx context.Context, groupID, userID string) (*domain.GroupMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM group_members
		WHERE group_id = $1 AND user_id = $2 AND is_active = TRUE;
	`

	m, err := scanMemberRow(r.pool.QueryRow(ctx, query, groupID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member for group %s and user %s: %w", groupID, userID, err)
	}

	d := toDomainGroupMember(*m)
	return &d, nil
}

// ListGroupMembers retrieves a group's active members, earliest joiner first.
func (r *PgxGroupMemberRepository) ListGroupMembers(ctx context.Context, groupID string, limit, offset int) ([]domain.GroupMember, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + memberColumns + `
		FROM group_members
		WHERE group_id = $1 AND is_active = TRUE
		ORDER BY joined_at ASC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query members for group %s: %w", groupID, err)
	}
	return collectMembers(rows)
}

// ListUserGroups retrieves a user's active memberships, most recent first.
func (r *PgxGroupMemberRepository) ListUserGroups(ctx context.Context, userID string, limit, offset int) ([]domain.GroupMember, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + memberColumns + `
		FROM group_members
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY joined_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for user %s: %w", userID, err)
	}
	return collectMembers(rows)
}

// ListGroupAdmins retrieves the active admins of a group.
func (r *PgxGroupMemberRepository) ListGroupAdmins(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM group_members
		WHERE group_id = $1 AND role = 'admin' AND is_active = TRUE
		ORDER BY joined_at ASC;
	`

	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins for group %s: %w", groupID, err)
	}
	return collectMembers(rows)
}

// UpdateMemberRole changes an active member's role.
func (r *PgxGroupMemberRepository) UpdateMemberRole(ctx context.Context, memberID string, role domain.MemberRole) (*domain.GroupMember, error) {
	query := `
		UPDATE group_members
		SET role = $2
		WHERE member_id = $1 AND is_active = TRUE
		RETURNING ` + memberColumns + `;
	`

	m, err := scanMemberRow(r.pool.QueryRow(ctx, query, memberID, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update role for member %s: %w", memberID, err)
	}

	d := toDomainGroupMember(*m)
	return &d, nil
}

// RemoveMember soft-deletes a membership by ID.
func (r *PgxGroupMemberRepository) RemoveMember(ctx context.Context, memberID string) error {
	query := `
		UPDATE group_members
		SET is_active = FALSE
		WHERE member_id = $1 AND is_active = TRUE;
	`

	tag, err := r.pool.Exec(ctx, query, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member %s: %w", memberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RemoveMemberByGroupAndUser soft-deletes a membership by its pair.
func (r *PgxGroupMemberRepository) RemoveMemberByGroupAndUser(ctx context.Context, groupID, userID string) error {
	query := `
		UPDATE group_members
		SET is_active = FALSE
		WHERE group_id = $1 AND user_id = $2 AND is_active = TRUE;
	`

	tag, err := r.pool.Exec(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member for group %s and user %s: %w", groupID, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IsMember reports whether the user is an active member of the group.
func (r *PgxGroupMemberRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM group_members
			WHERE group_id = $1 AND user_id = $2 AND is_active = TRUE
		);
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership for group %s and user %s: %w", groupID, userID, err)
	}
	return exists, nil
}
