package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// CreateBalanceRequest defines the data needed to create or merge a debt edge.
type CreateBalanceRequest struct {
	GroupID  string          `json:"group_id" binding:"required"`
	UserFrom string          `json:"user_from" binding:"required"`
	UserTo   string          `json:"user_to" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
}

// UpdateBalanceAmountRequest defines the data for an amount amendment.
type UpdateBalanceAmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
}

// BalanceResponse defines the data returned for a balance edge.
// Amounts serialize as decimal strings, never binary floats.
type BalanceResponse struct {
	BalanceID   string          `json:"id"`
	GroupID     string          `json:"group_id"`
	UserFrom    string          `json:"user_from"`
	UserTo      string          `json:"user_to"`
	Amount      decimal.Decimal `json:"amount"`
	LastUpdated time.Time       `json:"last_updated"`
}

// NetPositionResponse defines the data returned for a user's net position.
type NetPositionResponse struct {
	GroupID    string               `json:"group_id"`
	UserID     string               `json:"user_id"`
	NetBalance decimal.Decimal      `json:"net_balance"`
	Status     domain.BalanceStatus `json:"status"`
}

// GroupBalanceSummaryResponse defines the data returned for a group summary.
type GroupBalanceSummaryResponse struct {
	GroupID         string                     `json:"group_id"`
	TotalBalances   int                        `json:"total_balances"`
	UserNetBalances map[string]decimal.Decimal `json:"user_net_balances"`
	RawBalances     []BalanceResponse          `json:"raw_balances"`
}

// ToBalanceResponse converts a domain.Balance to a BalanceResponse DTO.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		BalanceID:   b.BalanceID,
		GroupID:     b.GroupID,
		UserFrom:    b.UserFrom,
		UserTo:      b.UserTo,
		Amount:      b.Amount,
		LastUpdated: b.LastUpdated,
	}
}

// ToListBalanceResponse converts a slice of domain.Balance to DTOs.
func ToListBalanceResponse(balances []domain.Balance) []BalanceResponse {
	res := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = ToBalanceResponse(&b)
	}
	return res
}

// ToNetPositionResponse converts a domain.NetPosition to its DTO.
func ToNetPositionResponse(np *domain.NetPosition) NetPositionResponse {
	return NetPositionResponse{
		GroupID:    np.GroupID,
		UserID:     np.UserID,
		NetBalance: np.NetBalance,
		Status:     np.Status,
	}
}

// ToGroupBalanceSummaryResponse converts a domain.GroupBalanceSummary to its DTO.
func ToGroupBalanceSummaryResponse(s *domain.GroupBalanceSummary) GroupBalanceSummaryResponse {
	return GroupBalanceSummaryResponse{
		GroupID:         s.GroupID,
		TotalBalances:   s.TotalBalances,
		UserNetBalances: s.UserNetBalances,
		RawBalances:     ToListBalanceResponse(s.RawBalances),
	}
}
