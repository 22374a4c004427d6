package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a row in the expenses table.
// CategoryID and Notes are nullable in the schema.
type Expense struct {
	ExpenseID       string          `db:"expense_id"`
	GroupID         string          `db:"group_id"`
	PaidBy          string          `db:"paid_by"`
	CategoryID      string          `db:"category_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	Notes           string          `db:"notes"`
	SplitMethod     string          `db:"split_method"`
	ExpenseDate     time.Time       `db:"expense_date"`
	IsReimbursement bool            `db:"is_reimbursement"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}
