package dto

import (
	"time"

	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data for recording a manual ledger entry.
type CreateTransactionRequest struct {
	Description string                   `json:"description" binding:"required"`
	Amount      decimal.Decimal          `json:"amount" binding:"required"`
	Type        domain.TransactionType   `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Status      domain.TransactionStatus `json:"status" binding:"omitempty,oneof=PENDING PAID"`
	DueDate     time.Time                `json:"dueDate" binding:"required"`
}

// ListTransactionsParams defines query parameters for listing ledger transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	Description   string                   `json:"description"`
	Amount        decimal.Decimal          `json:"amount"`
	Type          domain.TransactionType   `json:"type"`
	Status        domain.TransactionStatus `json:"status"`
	DueDate       time.Time                `json:"dueDate"`
	PaidDate      *time.Time               `json:"paidDate,omitempty"`
	SaleID        *string                  `json:"saleID,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// ListTransactionsResponse wraps a page of transactions with the pagination token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Description:   txn.Description,
		Amount:        txn.Amount,
		Type:          txn.Type,
		Status:        txn.Status,
		DueDate:       txn.DueDate,
		PaidDate:      txn.PaidDate,
		SaleID:        txn.SaleID,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
