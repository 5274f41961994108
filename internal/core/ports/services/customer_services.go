package services

import (
	"context"

	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/officio/business_mgmt_app/internal/dto"
)

// CustomerSvcFacade defines operations for managing customers.
type CustomerSvcFacade interface {
	// GetCustomerByID retrieves a customer by ID.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error)

	// CreateCustomer creates a new customer.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	// UpdateCustomer updates an existing customer.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error)

	// DeleteCustomer removes a customer. Fails with apperrors.ErrConflict
	// while sales referencing the customer exist.
	DeleteCustomer(ctx context.Context, customerID string, requestingUserID string) error
}
