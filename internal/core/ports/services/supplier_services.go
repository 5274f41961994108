package services

import (
	"context"

	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/officio/business_mgmt_app/internal/dto"
)

// SupplierSvcFacade defines operations for managing suppliers.
type SupplierSvcFacade interface {
	// GetSupplierByID retrieves a supplier by ID.
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// ListSuppliers retrieves a paginated list of suppliers.
	ListSuppliers(ctx context.Context, limit, offset int) ([]domain.Supplier, error)

	// CreateSupplier creates a new supplier.
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)

	// UpdateSupplier updates an existing supplier.
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, requestingUserID string) (*domain.Supplier, error)

	// DeleteSupplier removes a supplier.
	DeleteSupplier(ctx context.Context, supplierID string, requestingUserID string) error
}
