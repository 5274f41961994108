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

// supplierService manages suppliers referenced by catalog entries.
type supplierService struct {
	supplierRepo portsrepo.SupplierRepositoryFacade
	authorizer   portssvc.AdminAuthorizerSvc
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryFacade, authorizer portssvc.AdminAuthorizerSvc) portssvc.SupplierSvcFacade {
	return &supplierService{
		supplierRepo: supplierRepo,
		authorizer:   authorizer,
	}
}

// Ensure supplierService implements the portssvc.SupplierSvcFacade interface
var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

// GetSupplierByID retrieves a supplier by ID.
func (s *supplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find supplier by ID", slog.String("error", err.Error()), slog.String("supplier_id", supplierID))
		}
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}
	return supplier, nil
}

// ListSuppliers retrieves a paginated list of suppliers.
func (s *supplierService) ListSuppliers(ctx context.Context, limit, offset int) ([]domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	suppliers, err := s.supplierRepo.ListSuppliers(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list suppliers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve suppliers: %w", err)
	}
	return suppliers, nil
}

// CreateSupplier creates a new supplier.
func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	supplier := domain.Supplier{
		SupplierID: uuid.NewString(),
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

	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		logger.Error("Failed to save supplier", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}

	logger.Info("Supplier created", slog.String("supplier_id", supplier.SupplierID))
	return &supplier, nil
}

// UpdateSupplier updates an existing supplier.
func (s *supplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, requestingUserID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}

	updated := false
	if req.Name != nil {
		supplier.Name = *req.Name
		updated = true
	}
	if req.Email != nil {
		supplier.Email = *req.Email
		updated = true
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
		updated = true
	}

	if !updated {
		return supplier, nil
	}

	supplier.LastUpdatedAt = time.Now().UTC()
	supplier.LastUpdatedBy = requestingUserID

	if err := s.supplierRepo.UpdateSupplier(ctx, *supplier); err != nil {
		logger.Error("Failed to update supplier", slog.String("error", err.Error()), slog.String("supplier_id", supplierID))
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	logger.Info("Supplier updated", slog.String("supplier_id", supplierID))
	return supplier, nil
}

// DeleteSupplier removes a supplier. Catalog entries referencing it keep a
// null supplier afterwards. Admin only.
func (s *supplierService) DeleteSupplier(ctx context.Context, supplierID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.authorizer != nil {
		if err := s.authorizer.AuthorizeAdmin(ctx, requestingUserID); err != nil {
			logger.Warn("Authorization failed for DeleteSupplier", slog.String("user_id", requestingUserID), slog.String("error", err.Error()))
			return err
		}
	}

	if err := s.supplierRepo.DeleteSupplier(ctx, supplierID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete supplier", slog.String("error", err.Error()), slog.String("supplier_id", supplierID))
		}
		return fmt.Errorf("failed to delete supplier %s: %w", supplierID, err)
	}

	logger.Info("Supplier deleted", slog.String("supplier_id", supplierID))
	return nil
}
