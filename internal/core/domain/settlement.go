package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementMethod identifies how a repayment was made.
type SettlementMethod string

const (
	MethodCash         SettlementMethod = "cash"
	MethodBankTransfer SettlementMethod = "bank_transfer"
	MethodUPI          SettlementMethod = "upi"
	MethodOther        SettlementMethod = "other"
)

// Settlement records a repayment from one user to another within a group.
// A nil SettledAt means the settlement is still pending.
type Settlement struct {
	SettlementID string           `json:"settlementID"`
	GroupID      string           `json:"groupID"`
	FromUser     string           `json:"fromUser"`
	ToUser       string           `json:"toUser"`
	Amount       decimal.Decimal  `json:"amount"`
	Method       SettlementMethod `json:"method"`
	ReferenceID  string           `json:"referenceID"`
	Notes        string           `json:"notes"`
	SettledAt    *time.Time       `json:"settledAt"`
	CreatedAt    time.Time        `json:"createdAt"`
}
