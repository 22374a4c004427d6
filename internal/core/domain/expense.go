package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitMethod defines how an expense is divided among participants.
type SplitMethod string

const (
	SplitEqual      SplitMethod = "equal"
	SplitExact      SplitMethod = "exact"
	SplitPercentage SplitMethod = "percentage"
)

// Expense is a cost paid by one user on behalf of a group.
type Expense struct {
	ExpenseID       string          `json:"expenseID"`
	GroupID         string          `json:"groupID"`
	PaidBy          string          `json:"paidBy"`
	CategoryID      string          `json:"categoryID"` // empty when uncategorized
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Notes           string          `json:"notes"`
	SplitMethod     SplitMethod     `json:"splitMethod"`
	ExpenseDate     time.Time       `json:"expenseDate"` // date only, stored at midnight UTC
	IsReimbursement bool            `json:"isReimbursement"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
