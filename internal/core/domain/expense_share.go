package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseShare is one participant's portion of an expense. IsSettled is a
// simple flag toggle, unlike balances which are hard-deleted on settlement.
type ExpenseShare struct {
	ShareID    string          `json:"shareID"`
	ExpenseID  string          `json:"expenseID"`
	UserID     string          `json:"userID"`
	AmountOwed decimal.Decimal `json:"amountOwed"`
	IsSettled  bool            `json:"isSettled"`
	CreatedAt  time.Time       `json:"createdAt"`
}
