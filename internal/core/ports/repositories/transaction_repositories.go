package repositories

import (
	"context"
	"time"

	"github.com/officio/business_mgmt_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific ledger transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsBySaleID retrieves all ledger transactions linked to a sale.
	FindTransactionsBySaleID(ctx context.Context, saleID string) ([]domain.Transaction, error)

	// ListTransactions retrieves a paginated list of ledger transactions
	// using token-based pagination.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for ledger transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new ledger transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// MarkTransactionPaid sets a transaction's status to PAID with the given paid date.
	MarkTransactionPaid(ctx context.Context, transactionID string, paidDate time.Time, updatedBy string, updatedAt time.Time) error
}

// TransactionRepositoryFacade combines all ledger-transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
