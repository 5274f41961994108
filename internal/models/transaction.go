package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger transaction is money in or money out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// TransactionStatus indicates whether a ledger transaction has been settled.
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "PENDING"
	TransactionPaid    TransactionStatus = "PAID"
)

// Transaction represents a row in the transactions table.
type Transaction struct {
	TransactionID string            `json:"transactionID" db:"transaction_id"`
	Description   string            `json:"description" db:"description"`
	Amount        decimal.Decimal   `json:"amount" db:"amount"`
	Type          TransactionType   `json:"type" db:"type"`
	Status        TransactionStatus `json:"status" db:"status"`
	DueDate       time.Time         `json:"dueDate" db:"due_date"`
	PaidDate      *time.Time        `json:"paidDate" db:"paid_date"` // Nullable
	SaleID        *string           `json:"saleID" db:"sale_id"`     // Nullable
	AuditFields
}
