package services

import (
	"context"

	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/officio/business_mgmt_app/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger transactions
type LedgerReaderSvc interface {
	// GetTransactionByID retrieves a ledger transaction by ID.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListSaleTransactions retrieves the ledger transactions linked to a sale.
	ListSaleTransactions(ctx context.Context, saleID string) ([]domain.Transaction, error)

	// ListTransactions retrieves a paginated list of ledger transactions.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// LedgerWriterSvc defines write operations for ledger transactions.
// Finalization-generated entries do not pass through here; they are written
// inside the sale finalization unit of work.
type LedgerWriterSvc interface {
	// CreateTransaction records a manual income or expense entry.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// MarkTransactionPaid settles a PENDING transaction.
	MarkTransactionPaid(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
