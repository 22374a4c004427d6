package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/core/domain"
)

// expenseDateFormat is the wire format for expense dates (date only).
const expenseDateFormat = "2006-01-02"

// CreateExpenseRequest defines the data needed to create a new expense.
type CreateExpenseRequest struct {
	GroupID         string          `json:"group_id" binding:"required"`
	PaidBy          string          `json:"paid_by" binding:"required"`
	CategoryID      string          `json:"category_id"`
	Amount          decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	Description     string          `json:"description" binding:"required"`
	Notes           string          `json:"notes"`
	SplitMethod     string          `json:"split_method" binding:"required,oneof=equal exact percentage"`
	ExpenseDate     string          `json:"expense_date" binding:"required,datetime=2006-01-02"`
	IsReimbursement bool            `json:"is_reimbursement"`
}

// ParseExpenseDate returns the request's expense date as a time at midnight UTC.
func (r CreateExpenseRequest) ParseExpenseDate() (time.Time, error) {
	return time.Parse(expenseDateFormat, r.ExpenseDate)
}

// UpdateExpenseRequest defines the fields allowed for a partial expense update.
type UpdateExpenseRequest struct {
	GroupID         *string          `json:"group_id"`
	PaidBy          *string          `json:"paid_by"`
	CategoryID      *string          `json:"category_id"`
	Amount          *decimal.Decimal `json:"amount" binding:"omitempty,decimalgt0"`
	Description     *string          `json:"description"`
	Notes           *string          `json:"notes"`
	SplitMethod     *string          `json:"split_method" binding:"omitempty,oneof=equal exact percentage"`
	ExpenseDate     *string          `json:"expense_date" binding:"omitempty,datetime=2006-01-02"`
	IsReimbursement *bool            `json:"is_reimbursement"`
}

// DateRangeParams defines query parameters for date-bounded expense queries.
type DateRangeParams struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"required,datetime=2006-01-02"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID       string          `json:"id"`
	GroupID         string          `json:"group_id"`
	PaidBy          string          `json:"paid_by"`
	CategoryID      string          `json:"category_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Notes           string          `json:"notes,omitempty"`
	SplitMethod     string          `json:"split_method"`
	ExpenseDate     string          `json:"expense_date"`
	IsReimbursement bool            `json:"is_reimbursement"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToExpenseResponse converts a domain.Expense to an ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		GroupID:         e.GroupID,
		PaidBy:          e.PaidBy,
		CategoryID:      e.CategoryID,
		Amount:          e.Amount,
		Description:     e.Description,
		Notes:           e.Notes,
		SplitMethod:     string(e.SplitMethod),
		ExpenseDate:     e.ExpenseDate.Format(expenseDateFormat),
		IsReimbursement: e.IsReimbursement,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain.Expense to DTOs.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		res[i] = ToExpenseResponse(&e)
	}
	return res
}
