package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/officio/business_mgmt_app/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a specific product by its ID.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of products.
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)

	// ListLowStockProducts retrieves products at or below their minimum stock threshold.
	ListLowStockProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates an existing product's details.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductStockManager defines the in-transaction stock operations used by the
// finalization and compensating-deletion units of work. Both methods must be
// called with the transaction that owns the unit of work.
type ProductStockManager interface {
	// FindProductsByIDsForUpdate retrieves products by IDs, locking the rows
	// for the duration of the transaction (SELECT ... FOR UPDATE).
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error)

	// ApplyStockDeltasInTx adjusts product stock levels by the given deltas
	// (negative = deduction, positive = restoration) within the transaction.
	ApplyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]int, updatedBy string, updatedAt time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductStockManager
}

// ServiceReader defines read operations for service catalog data
type ServiceReader interface {
	// FindServiceByID retrieves a specific service by its ID.
	FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error)

	// ListServices retrieves a paginated list of services.
	ListServices(ctx context.Context, limit int, offset int) ([]domain.Service, error)
}

// ServiceWriter defines write operations for service catalog data
type ServiceWriter interface {
	// SaveService persists a new service.
	SaveService(ctx context.Context, service domain.Service) error

	// UpdateService updates an existing service's details.
	UpdateService(ctx context.Context, service domain.Service) error

	// DeleteService removes a service.
	DeleteService(ctx context.Context, serviceID string) error
}

// ServiceRepositoryFacade combines all service-related repository interfaces
type ServiceRepositoryFacade interface {
	ServiceReader
	ServiceWriter
}
