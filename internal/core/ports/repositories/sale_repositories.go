package repositories

import (
	"context"
	"time"

	"github.com/officio/business_mgmt_app/internal/core/domain"
)

// SaleReader defines read operations for sale data
type SaleReader interface {
	// FindSaleByID retrieves a specific sale by its ID, without items.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindItemsBySaleID retrieves all line items of a sale in insertion order.
	FindItemsBySaleID(ctx context.Context, saleID string) ([]domain.SaleItem, error)

	// ListSales retrieves a paginated list of sales using token-based pagination.
	// It returns the sales, a token for the next page, and an error.
	ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error)
}

// SaleWriter defines write operations for sale data
type SaleWriter interface {
	// SaveSale persists a new sale.
	SaveSale(ctx context.Context, sale domain.Sale) error

	// AddItem persists a new line item together with the sale's recomputed
	// total, atomically.
	AddItem(ctx context.Context, sale domain.Sale, item domain.SaleItem) error

	// RemoveItem deletes a line item and persists the sale's recomputed
	// total, atomically. Returns apperrors.ErrNotFound if the item does not
	// belong to the sale.
	RemoveItem(ctx context.Context, sale domain.Sale, itemID string) error

	// UpdateSaleStatus transitions a sale's status (used for cancellation).
	UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, updatedBy string, updatedAt time.Time) error
}

// SaleUnitOfWork defines the two multi-entity atomic operations. Either
// everything inside the call commits, or nothing does.
type SaleUnitOfWork interface {
	// FinalizeSale atomically re-checks stock under row locks for every
	// product-backed item, deducts stock, inserts the ledger transaction,
	// and marks the sale COMPLETED. On insufficient stock it returns a
	// *domain.InsufficientStockError and leaves every record untouched.
	FinalizeSale(ctx context.Context, sale domain.Sale, ledgerTxn domain.Transaction) error

	// DeleteSale atomically deletes the sale and its items. For a COMPLETED
	// sale it first restores product stock and deletes the sale's ledger
	// transactions inside the same database transaction.
	DeleteSale(ctx context.Context, sale domain.Sale) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
	SaleUnitOfWork
}

// SaleRepositoryWithTx extends SaleRepositoryFacade with transaction capabilities
type SaleRepositoryWithTx interface {
	SaleRepositoryFacade
	TransactionManager
}
