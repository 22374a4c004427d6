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

type PgxExpenseShareRepository struct {
	pool *pgxpool.Pool
}

// newPgxExpenseShareRepository creates a new repository for expense shares.
func newPgxExpenseShareRepository(pool *pgxpool.Pool) portsrepo.ExpenseShareRepository {
	return &PgxExpenseShareRepository{pool: pool}
}

var _ portsrepo.ExpenseShareRepository = (*PgxExpenseShareRepository)(nil)

func toDomainExpenseShare(m models.ExpenseShare) domain.ExpenseShare {
	return domain.ExpenseShare{
		ShareID:    m.ShareID,
		ExpenseID:  m.ExpenseID,
		UserID:     m.UserID,
		AmountOwed: m.AmountOwed,
		IsSettled:  m.IsSettled,
		CreatedAt:  m.CreatedAt,
	}
}

const shareColumns = `share_id, expense_id, user_id, amount_owed, is_settled, created_at`

func scanShareRow(row pgx.Row) (*models.ExpenseShare, error) {
	var m models.ExpenseShare
	err := row.Scan(&m.ShareID, &m.ExpenseID, &m.UserID, &m.AmountOwed, &m.IsSettled, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectShares(rows pgx.Rows) ([]domain.ExpenseShare, error) {
	defer rows.Close()
	shares := []domain.ExpenseShare{}
	for rows.Next() {
		var m models.ExpenseShare
		if err := rows.Scan(&m.ShareID, &m.ExpenseID, &m.UserID, &m.AmountOwed, &m.IsSettled, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense share row: %w", err)
		}
		shares = append(shares, toDomainExpenseShare(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense share rows: %w", err)
	}
	return shares, nil
}

// SaveShare inserts a new share.
func (r *PgxExpenseShareRepository) SaveShare(ctx context.Context, share domain.ExpenseShare) error {
	query := `
		INSERT INTO expense_shares (share_id, expense_id, user_id, amount_owed, is_settled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	_, err := r.pool.Exec(ctx, query,
		share.ShareID,
		share.ExpenseID,
		share.UserID,
		share.AmountOwed,
		share.IsSettled,
		share.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: user %s already has a share of expense %s", apperrors.ErrDuplicate, share.UserID, share.ExpenseID)
		}
		return fmt.Errorf("failed to save expense share %s: %w", share.ShareID, err)
	}
	return nil
}

// FindShareByID retrieves a share by ID.
func (r *PgxExpenseShareRepository) FindShareByID(ctx context.Context, shareID string) (*domain.ExpenseShare, error) {
	query := `SELECT ` + shareColumns + ` FROM expense_shares WHERE share_id = $1;`

	m, err := scanShareRow(r.pool.QueryRow(ctx, query, shareID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense share by ID %s: %w", shareID, err)
	}

	d := toDomainExpenseShare(*m)
	return &d, nil
}

// ListSharesByExpense retrieves every share of an expense.
func (r *PgxExpenseShareRepository) ListSharesByExpense(ctx context.Context, expenseID string) ([]domain.ExpenseShare, error) {
	query := `
		SELECT ` + shareColumns + `
		FROM expense_shares
		WHERE expense_id = $1
		ORDER BY created_at ASC;
	`

	rows, err := r.pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares for expense %s: %w", expenseID, err)
	}
	return collectShares(rows)
}

// ListSharesByUser retrieves a user's shares across expenses, most recent first.
func (r *PgxExpenseShareRepository) ListSharesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ExpenseShare, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + shareColumns + `
		FROM expense_shares
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares for user %s: %w", userID, err)
	}
	return collectShares(rows)
}

// ListUnsettledSharesByUser retrieves a user's outstanding shares.
func (r *PgxExpenseShareRepository) ListUnsettledSharesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ExpenseShare, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + shareColumns + `
		FROM expense_shares
		WHERE user_id = $1 AND is_settled = FALSE
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsettled shares for user %s: %w", userID, err)
	}
	return collectShares(rows)
}

// UpdateShare overwrites a share's mutable fields.
func (r *PgxExpenseShareRepository) UpdateShare(ctx context.Context, share domain.ExpenseShare) error {
	query := `
		UPDATE expense_shares
		SET amount_owed = $2, is_settled = $3
		WHERE share_id = $1;
	`

	tag, err := r.pool.Exec(ctx, query,
		share.ShareID,
		share.AmountOwed,
		share.IsSettled,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense share %s: %w", share.ShareID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteShare hard-deletes a share.
func (r *PgxExpenseShareRepository) DeleteShare(ctx context.Context, shareID string) error {
	query := `DELETE FROM expense_shares WHERE share_id = $1;`

	tag, err := r.pool.Exec(ctx, query, shareID)
	if err != nil {
		return fmt.Errorf("failed to delete expense share %s: %w", shareID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSharesByExpense removes every share of an expense. Zero rows is a
// success, expenses without shares are legal.
func (r *PgxExpenseShareRepository) DeleteSharesByExpense(ctx context.Context, expenseID string) error {
	query := `DELETE FROM expense_shares WHERE expense_id = $1;`

	if _, err := r.pool.Exec(ctx, query, expenseID); err != nil {
		return fmt.Errorf("failed to delete shares for expense %s: %w", expenseID, err)
	}
	return nil
}
