package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// CreateSettlementRequest defines the data needed to record a repayment.
type CreateSettlementRequest struct {
	GroupID     string          `json:"group_id" binding:"required"`
	FromUser    string          `json:"from_user" binding:"required"`
	ToUser      string          `json:"to_user" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	Method      string          `json:"method" binding:"omitempty,oneof=cash bank_transfer upi other"`
	ReferenceID string          `json:"reference_id"`
	Notes       string          `json:"notes"`
}

// UpdateSettlementRequest defines the fields allowed for a partial settlement update.
type UpdateSettlementRequest struct {
	GroupID     *string          `json:"group_id"`
	FromUser    *string          `json:"from_user"`
	ToUser      *string          `json:"to_user"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,decimalgt0"`
	Method      *string          `json:"method" binding:"omitempty,oneof=cash bank_transfer upi other"`
	ReferenceID *string          `json:"reference_id"`
	Notes       *string          `json:"notes"`
}

// SettlementResponse defines the data returned for a settlement.
type SettlementResponse struct {
	SettlementID string                  `json:"id"`
	GroupID      string                  `json:"group_id"`
	FromUser     string                  `json:"from_user"`
	ToUser       string                  `json:"to_user"`
	Amount       decimal.Decimal         `json:"amount"`
	Method       domain.SettlementMethod `json:"method"`
	ReferenceID  string                  `json:"reference_id,omitempty"`
	Notes        string                  `json:"notes,omitempty"`
	SettledAt    *time.Time              `json:"settled_at"`
	CreatedAt    time.Time               `json:"created_at"`
}

// ToSettlementResponse converts a domain.Settlement to its DTO.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		SettlementID: s.SettlementID,
		GroupID:      s.GroupID,
		FromUser:     s.FromUser,
		ToUser:       s.ToUser,
		Amount:       s.Amount,
		Method:       s.Method,
		ReferenceID:  s.ReferenceID,
		Notes:        s.Notes,
		SettledAt:    s.SettledAt,
		CreatedAt:    s.CreatedAt,
	}
}

// ToListSettlementResponse converts a slice of domain.Settlement to DTOs.
func ToListSettlementResponse(settlements []domain.Settlement) []SettlementResponse {
	res := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		res[i] = ToSettlementResponse(&s)
	}
	return res
}
