package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
	"github.com/splitflow/splitflow-api/internal/models"
)

type PgxBalanceRepository struct {
	pool *pgxpool.Pool
}

// newPgxBalanceRepository creates a new repository for balance edges.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepository {
	return &PgxBalanceRepository{pool: pool}
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

func toDomainBalance(m models.Balance) domain.Balance {
	return domain.Balance{
		BalanceID:   m.BalanceID,
		GroupID:     m.GroupID,
		UserFrom:    m.UserFrom,
		UserTo:      m.UserTo,
		Amount:      m.Amount,
		LastUpdated: m.LastUpdated,
	}
}

const balanceColumns = `balance_id, group_id, user_from, user_to, amount, last_updated`

func scanBalanceRow(row pgx.Row) (*models.Balance, error) {
	var m models.Balance
	err := row.Scan(&m.BalanceID, &m.GroupID, &m.UserFrom, &m.UserTo, &m.Amount, &m.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectBalances(rows pgx.Rows) ([]domain.Balance, error) {
	defer rows.Close()
	balances := []domain.Balance{}
	for rows.Next() {
		var m models.Balance
		if err := rows.Scan(&m.BalanceID, &m.GroupID, &m.UserFrom, &m.UserTo, &m.Amount, &m.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balances = append(balances, toDomainBalance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return balances, nil
}

// UpsertDebt inserts a new edge or adds the amount into the existing edge
// for the same ordered (group, debtor, creditor) triple. The increment
// happens inside a single statement, so concurrent merges cannot lose
// updates the way a read-then-write sequence would.
func (r *PgxBalanceRepository) UpsertDebt(ctx context.Context, balance domain.Balance) (*domain.Balance, error) {
	query := `
		INSERT INTO balances (balance_id, group_id, user_from, user_to, amount, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (group_id, user_from, user_to)
		DO UPDATE SET amount = balances.amount + EXCLUDED.amount, last_updated = EXCLUDED.last_updated
		RETURNING ` + balanceColumns + `;
	`
	row := r.pool.QueryRow(ctx, query,
		balance.BalanceID,
		balance.GroupID,
		balance.UserFrom,
		balance.UserTo,
		balance.Amount,
		balance.LastUpdated,
	)

	m, err := scanBalanceRow(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert balance for group %s (%s -> %s): %w",
			balance.GroupID, balance.UserFrom, balance.UserTo, err)
	}

	d := toDomainBalance(*m)
	return &d, nil
}

// FindBalanceByID retrieves a balance edge by its ID.
func (r *PgxBalanceRepository) FindBalanceByID(ctx context.Context, balanceID string) (*domain.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE balance_id = $1;`

	m, err := scanBalanceRow(r.pool.QueryRow(ctx, query, balanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance by ID %s: %w", balanceID, err)
	}

	d := toDomainBalance(*m)
	return &d, nil
}

// FindBalanceBetweenUsers retrieves the edge for an exact ordered pair in a
// group. The reverse direction is a distinct edge and is not considered.
func (r *PgxBalanceRepository) FindBalanceBetweenUsers(ctx context.Context, groupID, userFrom, userTo string) (*domain.Balance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balances
		WHERE group_id = $1 AND user_from = $2 AND user_to = $3;
	`

	m, err := scanBalanceRow(r.pool.QueryRow(ctx, query, groupID, userFrom, userTo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance between %s and %s in group %s: %w", userFrom, userTo, groupID, err)
	}

	d := toDomainBalance(*m)
	return &d, nil
}

// ListGroupBalances retrieves a paginated list of a group's edges, most
// recently updated first.
func (r *PgxBalanceRepository) ListGroupBalances(ctx context.Context, groupID string, limit, offset int) ([]domain.Balance, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + balanceColumns + `
		FROM balances
		WHERE group_id = $1
		ORDER BY last_updated DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for group %s: %w", groupID, err)
	}
	return collectBalances(rows)
}

// ListUserBalancesInGroup retrieves every edge involving the user in a
// group, both as debtor and as creditor.
func (r *PgxBalanceRepository) ListUserBalancesInGroup(ctx context.Context, groupID, userID string) ([]domain.Balance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balances
		WHERE group_id = $1 AND (user_from = $2 OR user_to = $2)
		ORDER BY last_updated DESC;
	`

	rows, err := r.pool.Query(ctx, query, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for user %s in group %s: %w", userID, groupID, err)
	}
	return collectBalances(rows)
}

// ListAllUserBalances retrieves the user's edges across all groups. A single
// OR-filtered query pages at the union level, so the global ordering by
// last_updated holds before the limit is applied; two separately limited
// half-queries merged afterwards could drop rows that rank above included
// ones.
func (r *PgxBalanceRepository) ListAllUserBalances(ctx context.Context, userID string, limit, offset int) ([]domain.Balance, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + balanceColumns + `
		FROM balances
		WHERE user_from = $1 OR user_to = $1
		ORDER BY last_updated DESC, balance_id DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for user %s: %w", userID, err)
	}
	return collectBalances(rows)
}

// UpdateBalanceAmount unconditionally replaces the stored amount for an edge.
func (r *PgxBalanceRepository) UpdateBalanceAmount(ctx context.Context, balanceID string, amount decimal.Decimal, now time.Time) (*domain.Balance, error) {
	query := `
		UPDATE balances
		SET amount = $2, last_updated = $3
		WHERE balance_id = $1
		RETURNING ` + balanceColumns + `;
	`

	m, err := scanBalanceRow(r.pool.QueryRow(ctx, query, balanceID, amount, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update balance amount for %s: %w", balanceID, err)
	}

	d := toDomainBalance(*m)
	return &d, nil
}

// DeleteBalance hard-deletes an edge. The row count comes from the delete
// itself, so settling an already-settled edge reports ErrNotFound without a
// separate existence check.
func (r *PgxBalanceRepository) DeleteBalance(ctx context.Context, balanceID string) error {
	query := `DELETE FROM balances WHERE balance_id = $1;`

	tag, err := r.pool.Exec(ctx, query, balanceID)
	if err != nil {
		return fmt.Errorf("failed to delete balance %s: %w", balanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
