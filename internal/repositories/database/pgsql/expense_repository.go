package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitflow/splitflow-api/internal/apperrors"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	portsrepo "github.com/splitflow/splitflow-api/internal/core/ports/repositories"
	"github.com/splitflow/splitflow-api/internal/models"
)

type PgxExpenseRepository struct {
	pool *pgxpool.Pool
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{pool: pool}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func toDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:       m.ExpenseID,
		GroupID:         m.GroupID,
		PaidBy:          m.PaidBy,
		CategoryID:      m.CategoryID,
		Amount:          m.Amount,
		Description:     m.Description,
		Notes:           m.Notes,
		SplitMethod:     domain.SplitMethod(m.SplitMethod),
		ExpenseDate:     m.ExpenseDate,
		IsReimbursement: m.IsReimbursement,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

const expenseColumns = `expense_id, group_id, paid_by, category_id, amount, description, notes, split_method, expense_date, is_reimbursement, created_at, updated_at`

func scanExpenseRow(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	var categoryID, notes sql.NullString
	err := row.Scan(&m.ExpenseID, &m.GroupID, &m.PaidBy, &categoryID, &m.Amount, &m.Description,
		&notes, &m.SplitMethod, &m.ExpenseDate, &m.IsReimbursement, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.CategoryID = categoryID.String
	m.Notes = notes.String
	return &m, nil
}

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	defer rows.Close()
	expenses := []domain.Expense{}
	for rows.Next() {
		var m models.Expense
		var categoryID, notes sql.NullString
		if err := rows.Scan(&m.ExpenseID, &m.GroupID, &m.PaidBy, &categoryID, &m.Amount, &m.Description,
			&notes, &m.SplitMethod, &m.ExpenseDate, &m.IsReimbursement, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		m.CategoryID = categoryID.String
		m.Notes = notes.String
		expenses = append(expenses, toDomainExpense(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// SaveExpense inserts a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (expense_id, group_id, paid_by, category_id, amount, description, notes, split_method, expense_date, is_reimbursement, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := r.pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.GroupID,
		expense.PaidBy,
		nullableString(expense.CategoryID),
		expense.Amount,
		expense.Description,
		nullableString(expense.Notes),
		string(expense.SplitMethod),
		expense.ExpenseDate,
		expense.IsReimbursement,
		expense.CreatedAt,
		expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`

	m, err := scanExpenseRow(r.pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	d := toDomainExpense(*m)
	return &d, nil
}

// ListExpensesByGroup retrieves a group's expenses, most recent first.
func (r *PgxExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string, limit, offset int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE group_id = $1
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for group %s: %w", groupID, err)
	}
	return collectExpenses(rows)
}

// ListExpensesByUser retrieves the expenses a user paid for, most recent first.
func (r *PgxExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE paid_by = $1
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for user %s: %w", userID, err)
	}
	return collectExpenses(rows)
}

// ListExpensesByCategory retrieves expenses tagged with a category.
func (r *PgxExpenseRepository) ListExpensesByCategory(ctx context.Context, categoryID string, limit, offset int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE category_id = $1
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for category %s: %w", categoryID, err)
	}
	return collectExpenses(rows)
}

// ListExpensesByDateRange retrieves a group's expenses with an expense date
// inside [start, end], inclusive on both ends.
func (r *PgxExpenseRepository) ListExpensesByDateRange(ctx context.Context, groupID string, start, end time.Time) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE group_id = $1 AND expense_date >= $2 AND expense_date <= $3
		ORDER BY expense_date DESC, created_at DESC;
	`

	rows, err := r.pool.Query(ctx, query, groupID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for group %s in date range: %w", groupID, err)
	}
	return collectExpenses(rows)
}

// UpdateExpense overwrites an expense's mutable fields.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		UPDATE expenses
		SET category_id = $2, amount = $3, description = $4, notes = $5, split_method = $6,
		    expense_date = $7, is_reimbursement = $8, updated_at = $9
		WHERE expense_id = $1;
	`

	tag, err := r.pool.Exec(ctx, query,
		expense.ExpenseID,
		nullableString(expense.CategoryID),
		expense.Amount,
		expense.Description,
		nullableString(expense.Notes),
		string(expense.SplitMethod),
		expense.ExpenseDate,
		expense.IsReimbursement,
		expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpense hard-deletes an expense. Shares cascade at the schema level.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	query := `DELETE FROM expenses WHERE expense_id = $1;`

	tag, err := r.pool.Exec(ctx, query, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
