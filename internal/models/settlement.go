package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement represents a row in the settlements table.
// ReferenceID, Notes and SettledAt are nullable in the schema.
type Settlement struct {
	SettlementID string          `db:"settlement_id"`
	GroupID      string          `db:"group_id"`
	FromUser     string          `db:"from_user"`
	ToUser       string          `db:"to_user"`
	Amount       decimal.Decimal `db:"amount"`
	Method       string          `db:"method"`
	ReferenceID  string          `db:"reference_id"`
	Notes        string          `db:"notes"`
	SettledAt    *time.Time      `db:"settled_at"`
	CreatedAt    time.Time       `db:"created_at"`
}
