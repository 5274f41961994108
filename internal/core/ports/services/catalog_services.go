package services

import (
	"context"

	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/officio/business_mgmt_app/internal/dto"
)

// CatalogReaderSvc defines read operations over the product/service catalog
type CatalogReaderSvc interface {
	// GetProductByID retrieves a product by ID.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of products.
	ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)

	// ListLowStockProducts retrieves products at or below their minimum stock threshold.
	ListLowStockProducts(ctx context.Context) ([]domain.Product, error)

	// GetServiceByID retrieves a service by ID.
	GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error)

	// ListServices retrieves a paginated list of services.
	ListServices(ctx context.Context, limit, offset int) ([]domain.Service, error)
}

// CatalogWriterSvc defines write operations over the product/service catalog
type CatalogWriterSvc interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string, requestingUserID string) error

	CreateService(ctx context.Context, req dto.CreateServiceRequest, creatorUserID string) (*domain.Service, error)
	UpdateService(ctx context.Context, serviceID string, req dto.UpdateServiceRequest, requestingUserID string) (*domain.Service, error)
	DeleteService(ctx context.Context, serviceID string, requestingUserID string) error
}

// CatalogSvcFacade combines all catalog-related service interfaces
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogWriterSvc
}
