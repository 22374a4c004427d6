package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// CreateExpenseShareRequest defines the data needed to create a share.
type CreateExpenseShareRequest struct {
	ExpenseID  string          `json:"expense_id" binding:"required"`
	UserID     string          `json:"user_id" binding:"required"`
	AmountOwed decimal.Decimal `json:"amount_owed" binding:"required,decimalgt0"`
	IsSettled  bool            `json:"is_settled"`
}

// UpdateExpenseShareRequest defines the fields allowed for a partial share update.
type UpdateExpenseShareRequest struct {
	ExpenseID  *string          `json:"expense_id"`
	UserID     *string          `json:"user_id"`
	AmountOwed *decimal.Decimal `json:"amount_owed" binding:"omitempty,decimalgt0"`
	IsSettled  *bool            `json:"is_settled"`
}

// ExpenseShareResponse defines the data returned for an expense share.
type ExpenseShareResponse struct {
	ShareID    string          `json:"id"`
	ExpenseID  string          `json:"expense_id"`
	UserID     string          `json:"user_id"`
	AmountOwed decimal.Decimal `json:"amount_owed"`
	IsSettled  bool            `json:"is_settled"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToExpenseShareResponse converts a domain.ExpenseShare to its DTO.
func ToExpenseShareResponse(s *domain.ExpenseShare) ExpenseShareResponse {
	return ExpenseShareResponse{
		ShareID:    s.ShareID,
		ExpenseID:  s.ExpenseID,
		UserID:     s.UserID,
		AmountOwed: s.AmountOwed,
		IsSettled:  s.IsSettled,
		CreatedAt:  s.CreatedAt,
	}
}

// ToListExpenseShareResponse converts a slice of domain.ExpenseShare to DTOs.
func ToListExpenseShareResponse(shares []domain.ExpenseShare) []ExpenseShareResponse {
	res := make([]ExpenseShareResponse, len(shares))
	for i, s := range shares {
		res[i] = ToExpenseShareResponse(&s)
	}
	return res
}
