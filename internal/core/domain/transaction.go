package domain

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

// Transaction is a financial ledger entry. It may optionally link back to
// the sale that generated it; finalization creates one INCOME/PAID entry
// per completed sale, and deleting that sale removes the entry again.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (e.g., UUID)
	Description   string            `json:"description"`
	Amount        decimal.Decimal   `json:"amount"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"` // Default: PENDING
	DueDate       time.Time         `json:"dueDate"`
	PaidDate      *time.Time        `json:"paidDate,omitempty"` // Nullable
	SaleID        *string           `json:"saleID,omitempty"`   // Nullable FK -> sales.sale_id
	AuditFields
}
