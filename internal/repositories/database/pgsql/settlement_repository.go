package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
	"github.com/splitflow/splitflow-api/internal/models"
)

type PgxSettlementRepository struct {
	pool *pgxpool.Pool
}

// newPgxSettlementRepository creates a new repository for settlement records.
func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepository {
	return &PgxSettlementRepository{pool: pool}
}

var _ portsrepo.SettlementRepository = (*PgxSettlementRepository)(nil)

func toDomainSettlement(m models.Settlement) domain.Settlement {
	return domain.Settlement{
		SettlementID: m.SettlementID,
		GroupID:      m.GroupID,
		FromUser:     m.FromUser,
		ToUser:       m.ToUser,
		Amount:       m.Amount,
		Method:       domain.SettlementMethod(m.Method),
		ReferenceID:  m.ReferenceID,
		Notes:        m.Notes,
		SettledAt:    m.SettledAt,
		CreatedAt:    m.CreatedAt,
	}
}

const settlementColumns = `settlement_id, group_id, from_user, to_user, amount, method, reference_id, notes, settled_at, created_at`

func scanSettlementRow(row pgx.Row) (*models.Settlement, error) {
	var m models.Settlement
	var referenceID, notes sql.NullString
	err := row.Scan(&m.SettlementID, &m.GroupID, &m.FromUser, &m.ToUser, &m.Amount,
		&m.Method, &referenceID, &notes, &m.SettledAt, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.ReferenceID = referenceID.String
	m.Notes = notes.String
	return &m, nil
}

func collectSettlements(rows pgx.Rows) ([]domain.Settlement, error) {
	defer rows.Close()
	settlements := []domain.Settlement{}
	for rows.Next() {
		var m models.Settlement
		var referenceID, notes sql.NullString
		if err := rows.Scan(&m.SettlementID, &m.GroupID, &m.FromUser, &m.ToUser, &m.Amount,
			&m.Method, &referenceID, &notes, &m.SettledAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		m.ReferenceID = referenceID.String
		m.Notes = notes.String
		settlements = append(settlements, toDomainSettlement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}
	return settlements, nil
}

// SaveSettlement inserts a new settlement record.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	query := `
		INSERT INTO settlements (settlement_id, group_id, from_user, to_user, amount, method, reference_id, notes, settled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	_, err := r.pool.Exec(ctx, query,
		settlement.SettlementID,
		settlement.GroupID,
		settlement.FromUser,
		settlement.ToUser,
		settlement.Amount,
		string(settlement.Method),
		nullableString(settlement.ReferenceID),
		nullableString(settlement.Notes),
		settlement.SettledAt,
		settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save settlement %s: %w", settlement.SettlementID, err)
	}
	return nil
}

// FindSettlementByID retrieves a settlement by ID.
func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE settlement_id = $1;`

	m, err := scanSettlementRow(r.pool.QueryRow(ctx, query, settlementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settlement by ID %s: %w", settlementID, err)
	}

	d := toDomainSettlement(*m)
	return &d, nil
}

// ListSettlementsByGroup retrieves a group's settlements, most recent first.
func (r *PgxSettlementRepository) ListSettlementsByGroup(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE group_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements for group %s: %w", groupID, err)
	}
	return collectSettlements(rows)
}

// ListSettlementsByUser retrieves settlements where the user is payer or payee.
func (r *PgxSettlementRepository) ListSettlementsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Settlement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE from_user = $1 OR to_user = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements for user %s: %w", userID, err)
	}
	return collectSettlements(rows)
}

// ListSettlementsFromUser retrieves settlements the user paid.
func (r *PgxSettlementRepository) ListSettlementsFromUser(ctx context.Context, fromUser string, limit, offset int) ([]domain.Settlement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE from_user = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, fromUser, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements from user %s: %w", fromUser, err)
	}
	return collectSettlements(rows)
}

// ListSettlementsToUser retrieves settlements the user received.
func (r *PgxSettlementRepository) ListSettlementsToUser(ctx context.Context, toUser string, limit, offset int) ([]domain.Settlement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE to_user = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, toUser, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements to user %s: %w", toUser, err)
	}
	return collectSettlements(rows)
}

// ListPendingSettlements retrieves settlements that have not completed yet.
// An empty groupID lists across all groups.
func (r *PgxSettlementRepository) ListPendingSettlements(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error) {
	return r.listByCompletion(ctx, groupID, false, limit, offset)
}

// ListCompletedSettlements retrieves settlements that have completed.
// An empty groupID lists across all groups.
func (r *PgxSettlementRepository) ListCompletedSettlements(ctx context.Context, groupID string, limit, offset int) ([]domain.Settlement, error) {
	return r.listByCompletion(ctx, groupID, true, limit, offset)
}

func (r *PgxSettlementRepository) listByCompletion(ctx context.Context, groupID string, completed bool, limit, offset int) ([]domain.Settlement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	settledClause := `settled_at IS NULL`
	if completed {
		settledClause = `settled_at IS NOT NULL`
	}

	var rows pgx.Rows
	var err error
	if groupID == "" {
		query := `
			SELECT ` + settlementColumns + `
			FROM settlements
			WHERE ` + settledClause + `
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2;
		`
		rows, err = r.pool.Query(ctx, query, limit, offset)
	} else {
		query := `
			SELECT ` + settlementColumns + `
			FROM settlements
			WHERE group_id = $1 AND ` + settledClause + `
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3;
		`
		rows, err = r.pool.Query(ctx, query, groupID, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements by completion: %w", err)
	}
	return collectSettlements(rows)
}

// ListSettlementsBetweenUsers retrieves settlements between two users in
// either direction. An empty groupID lists across all groups.
func (r *PgxSettlementRepository) ListSettlementsBetweenUsers(ctx context.Context, user1ID, user2ID, groupID string) ([]domain.Settlement, error) {
	var rows pgx.Rows
	var err error
	if groupID == "" {
		query := `
			SELECT ` + settlementColumns + `
			FROM settlements
			WHERE (from_user = $1 AND to_user = $2) OR (from_user = $2 AND to_user = $1)
			ORDER BY created_at DESC;
		`
		rows, err = r.pool.Query(ctx, query, user1ID, user2ID)
	} else {
		query := `
			SELECT ` + settlementColumns + `
			FROM settlements
			WHERE group_id = $3
			  AND ((from_user = $1 AND to_user = $2) OR (from_user = $2 AND to_user = $1))
			ORDER BY created_at DESC;
		`
		rows, err = r.pool.Query(ctx, query, user1ID, user2ID, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements between %s and %s: %w", user1ID, user2ID, err)
	}
	return collectSettlements(rows)
}

// UpdateSettlement overwrites a settlement's mutable fields.
func (r *PgxSettlementRepository) UpdateSettlement(ctx context.Context, settlement domain.Settlement) error {
	query := `
		UPDATE settlements
		SET amount = $2, method = $3, reference_id = $4, notes = $5, settled_at = $6
		WHERE settlement_id = $1;
	`

	tag, err := r.pool.Exec(ctx, query,
		settlement.SettlementID,
		settlement.Amount,
		string(settlement.Method),
		nullableString(settlement.ReferenceID),
		nullableString(settlement.Notes),
		settlement.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update settlement %s: %w", settlement.SettlementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSettlement hard-deletes a settlement record.
func (r *PgxSettlementRepository) DeleteSettlement(ctx context.Context, settlementID string) error {
	query := `DELETE FROM settlements WHERE settlement_id = $1;`

	tag, err := r.pool.Exec(ctx, query, settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement %s: %w", settlementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
