package services

import (
	"context"

	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/officio/business_mgmt_app/internal/dto"
)

// SaleReaderSvc defines read operations for sale data
type SaleReaderSvc interface {
	// GetSaleByID retrieves a sale and its line items.
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves a paginated list of sales.
	ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error)
}

// SaleWriterSvc defines creation and lifecycle operations for sales
type SaleWriterSvc interface {
	// CreateSale creates a new PENDING sale with no items for a customer.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, sellerUserID string) (*domain.Sale, error)

	// CancelSale transitions a PENDING sale to CANCELED.
	CancelSale(ctx context.Context, saleID string, requestingUserID string) (*domain.Sale, error)

	// DeleteSale deletes a sale. For a COMPLETED sale this atomically
	// restores product stock and removes the sale's ledger transactions
	// before deleting the sale and its items.
	DeleteSale(ctx context.Context, saleID string, requestingUserID string) error
}

// LineItemEditorSvc defines add/remove of line items against a PENDING sale
type LineItemEditorSvc interface {
	// AddItem validates and appends a line item, snapshotting the catalog
	// price and recomputing the sale total. Stock is checked against the
	// currently persisted value but not deducted.
	AddItem(ctx context.Context, saleID string, req dto.AddItemRequest, requestingUserID string) (*domain.Sale, error)

	// RemoveItem deletes a line item from a PENDING sale and recomputes the total.
	RemoveItem(ctx context.Context, saleID string, itemID string, requestingUserID string) (*domain.Sale, error)
}

// FinalizationSvc defines the transactional commit of a sale
type FinalizationSvc interface {
	// Finalize converts a PENDING sale into a COMPLETED one: re-checks and
	// deducts stock, records the income ledger transaction and flips the
	// status, all-or-nothing. Re-invocation on a COMPLETED sale returns the
	// sale together with domain.ErrAlreadyFinalized and performs no work.
	Finalize(ctx context.Context, saleID string, requestingUserID string) (*domain.Sale, error)
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
	LineItemEditorSvc
	FinalizationSvc
}
