package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/officio/business_mgmt_app/internal/apperrors"
	"github.com/officio/business_mgmt_app/internal/core/domain"
	portsrepo "github.com/officio/business_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/officio/business_mgmt_app/internal/core/ports/services"
	"github.com/officio/business_mgmt_app/internal/dto"
	"github.com/officio/business_mgmt_app/internal/middleware"
)

// customerService manages customers referenced by sales.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	authorizer   portssvc.AdminAuthorizerSvc
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, authorizer portssvc.AdminAuthorizerSvc) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		authorizer:   authorizer,
	}
}

// Ensure customerService implements the portssvc.CustomerSvcFacade interface
var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// GetCustomerByID retrieves a customer by ID.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find customer by ID", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return customer, nil
}

// ListCustomers retrieves a paginated list of customers.
func (s *customerService) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	customers, err := s.customerRepo.ListCustomers(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list customers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve customers: %w", err)
	}
	return customers, nil
}

// CreateCustomer creates a new customer.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// UpdateCustomer updates an existing customer.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}

	updated := false
	if req.Name != nil {
		customer.Name = *req.Name
		updated = true
	}
	if req.Email != nil {
		customer.Email = *req.Email
		updated = true
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
		updated = true
	}

	if !updated {
		return customer, nil
	}

	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

// DeleteCustomer removes a customer. The database restricts deletion while
// sales reference the customer; that surfaces as apperrors.ErrConflict.
// Admin only.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.authorizer != nil {
		if err := s.authorizer.AuthorizeAdmin(ctx, requestingUserID); err != nil {
			logger.Warn("Authorization failed for DeleteCustomer", slog.String("user_id", requestingUserID), slog.String("error", err.Error()))
			return err
		}
	}

	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Customer deletion blocked by existing sales", slog.String("customer_id", customerID))
			return fmt.Errorf("%w: customer %s has sales on record", apperrors.ErrConflict, customerID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}

	logger.Info("Customer deleted", slog.String("customer_id", customerID))
	return nil
}
