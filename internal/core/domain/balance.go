package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceStatus describes a user's net position within a scope.
type BalanceStatus string

const (
	// StatusOwedMoney means others owe this user money (net > 0).
	StatusOwedMoney BalanceStatus = "owed_money"
	// StatusOwesMoney means this user owes others money (net < 0).
	StatusOwesMoney BalanceStatus = "owes_money"
	// StatusSettled means credits and debts cancel exactly (net == 0).
	StatusSettled BalanceStatus = "settled"
)

// Balance is a directed debt edge: UserFrom owes UserTo Amount within GroupID.
// At most one edge exists per ordered (GroupID, UserFrom, UserTo) triple;
// the reverse direction is a distinct edge and is only netted on reads.
type Balance struct {
	BalanceID   string          `json:"balanceID"`
	GroupID     string          `json:"groupID"`
	UserFrom    string          `json:"userFrom"` // debtor
	UserTo      string          `json:"userTo"`   // creditor
	Amount      decimal.Decimal `json:"amount"`   // strictly positive
	LastUpdated time.Time       `json:"lastUpdated"`
}

// NetPosition is the derived signed sum of a user's credits minus debts.
// It is computed from stored edges on every read and is never persisted.
type NetPosition struct {
	GroupID    string          `json:"groupID"`
	UserID     string          `json:"userID"`
	NetBalance decimal.Decimal `json:"netBalance"`
	Status     BalanceStatus   `json:"status"`
}

// GroupBalanceSummary aggregates every edge of a group into per-user nets.
type GroupBalanceSummary struct {
	GroupID         string                     `json:"groupID"`
	TotalBalances   int                        `json:"totalBalances"`
	UserNetBalances map[string]decimal.Decimal `json:"userNetBalances"`
	RawBalances     []Balance                  `json:"rawBalances"`
}

// DeriveBalanceStatus maps a net balance onto its status. The three cases
// are exhaustive.
func DeriveBalanceStatus(net decimal.Decimal) BalanceStatus {
	switch net.Sign() {
	case 1:
		return StatusOwedMoney
	case -1:
		return StatusOwesMoney
	default:
		return StatusSettled
	}
}
