package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseShare represents a row in the expense_shares table.
type ExpenseShare struct {
	ShareID    string          `db:"share_id"`
	ExpenseID  string          `db:"expense_id"`
	UserID     string          `db:"user_id"`
	AmountOwed decimal.Decimal `db:"amount_owed"`
	IsSettled  bool            `db:"is_settled"`
	CreatedAt  time.Time       `db:"created_at"`
}
