package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance represents a row in the balances table. One row per ordered
// (group_id, user_from, user_to) triple, enforced by a unique constraint.
type Balance struct {
	BalanceID   string          `db:"balance_id"`
	GroupID     string          `db:"group_id"`
	UserFrom    string          `db:"user_from"`
	UserTo      string          `db:"user_to"`
	Amount      decimal.Decimal `db:"amount"`
	LastUpdated time.Time       `db:"last_updated"`
}
