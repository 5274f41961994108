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

// catalogService manages the sellable catalog: stocked products and
// non-stocked services.
type catalogService struct {
	productRepo  portsrepo.ProductRepositoryFacade
	serviceRepo  portsrepo.ServiceRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
	authorizer   portssvc.AdminAuthorizerSvc
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	productRepo portsrepo.ProductRepositoryFacade,
	serviceRepo portsrepo.ServiceRepositoryFacade,
	supplierRepo portsrepo.SupplierRepositoryFacade,
	authorizer portssvc.AdminAuthorizerSvc,
) portssvc.CatalogSvcFacade {
	return &catalogService{
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
		supplierRepo: supplierRepo,
		authorizer:   authorizer,
	}
}

// Ensure catalogService implements the portssvc.CatalogSvcFacade interface
var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

// validateSupplierRef checks that a supplier reference, if given, resolves.
func (s *catalogService) validateSupplierRef(ctx context.Context, supplierID *string) error {
	if supplierID == nil {
		return nil
	}
	if _, err := s.supplierRepo.FindSupplierByID(ctx, *supplierID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: supplier %s does not exist", apperrors.ErrValidation, *supplierID)
		}
		return fmt.Errorf("failed to fetch supplier %s: %w", *supplierID, err)
	}
	return nil
}

// GetProductByID retrieves a product by ID.
func (s *catalogService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find product by ID", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts retrieves a paginated list of products.
func (s *catalogService) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.ListProducts(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// ListLowStockProducts retrieves products at or below their minimum stock threshold.
func (s *catalogService) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	products, err := s.productRepo.ListLowStockProducts(ctx)
	if err != nil {
		logger.Error("Failed to list low stock products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve low stock products: %w", err)
	}
	return products, nil
}

// CreateProduct creates a new product.
func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateSupplierRef(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:  uuid.NewString(),
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      req.Price,
		Stock:      req.Stock,
		MinStock:   req.MinStock,
		SupplierID: req.SupplierID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate SKU on product creation", slog.String("sku", req.SKU))
			return nil, fmt.Errorf("%w: SKU %s already exists", apperrors.ErrDuplicate, req.SKU)
		}
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	return &product, nil
}

// UpdateProduct updates an existing product's details.
func (s *catalogService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	updated := false
	if req.Name != nil {
		product.Name = *req.Name
		updated = true
	}
	if req.Price != nil {
		product.Price = *req.Price
		updated = true
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
		updated = true
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
		updated = true
	}
	if req.SupplierID != nil {
		if err := s.validateSupplierRef(ctx, req.SupplierID); err != nil {
			return nil, err
		}
		product.SupplierID = req.SupplierID
		updated = true
	}

	if !updated {
		return product, nil
	}

	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = requestingUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	logger.Info("Product updated", slog.String("product_id", productID))
	return product, nil
}

// DeleteProduct removes a product. Admin only.
func (s *catalogService) DeleteProduct(ctx context.Context, productID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.authorizer != nil {
		if err := s.authorizer.AuthorizeAdmin(ctx, requestingUserID); err != nil {
			logger.Warn("Authorization failed for DeleteProduct", slog.String("user_id", requestingUserID), slog.String("error", err.Error()))
			return err
		}
	}

	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete product", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}

	logger.Info("Product deleted", slog.String("product_id", productID))
	return nil
}

// GetServiceByID retrieves a service by ID.
func (s *catalogService) GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	service, err := s.serviceRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find service by ID", slog.String("error", err.Error()), slog.String("service_id", serviceID))
		}
		return nil, fmt.Errorf("failed to find service %s: %w", serviceID, err)
	}
	return service, nil
}

// ListServices retrieves a paginated list of services.
func (s *catalogService) ListServices(ctx context.Context, limit, offset int) ([]domain.Service, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	services, err := s.serviceRepo.ListServices(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list services", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	return services, nil
}

// CreateService creates a new service.
func (s *catalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest, creatorUserID string) (*domain.Service, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateSupplierRef(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	service := domain.Service{
		ServiceID:        uuid.NewString(),
		Name:             req.Name,
		Price:            req.Price,
		EstimatedMinutes: req.EstimatedMinutes,
		SupplierID:       req.SupplierID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.serviceRepo.SaveService(ctx, service); err != nil {
		logger.Error("Failed to save service", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save service: %w", err)
	}

	logger.Info("Service created", slog.String("service_id", service.ServiceID))
	return &service, nil
}

// UpdateService updates an existing service's details.
func (s *catalogService) UpdateService(ctx context.Context, serviceID string, req dto.UpdateServiceRequest, requestingUserID string) (*domain.Service, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	service, err := s.serviceRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find service %s: %w", serviceID, err)
	}

	updated := false
	if req.Name != nil {
		service.Name = *req.Name
		updated = true
	}
	if req.Price != nil {
		service.Price = *req.Price
		updated = true
	}
	if req.EstimatedMinutes != nil {
		service.EstimatedMinutes = *req.EstimatedMinutes
		updated = true
	}
	if req.SupplierID != nil {
		if err := s.validateSupplierRef(ctx, req.SupplierID); err != nil {
			return nil, err
		}
		service.SupplierID = req.SupplierID
		updated = true
	}

	if !updated {
		return service, nil
	}

	service.LastUpdatedAt = time.Now().UTC()
	service.LastUpdatedBy = requestingUserID

	if err := s.serviceRepo.UpdateService(ctx, *service); err != nil {
		logger.Error("Failed to update service", slog.String("error", err.Error()), slog.String("service_id", serviceID))
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	logger.Info("Service updated", slog.String("service_id", serviceID))
	return service, nil
}

// DeleteService removes a service. Admin only.
func (s *catalogService) DeleteService(ctx context.Context, serviceID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.authorizer != nil {
		if err := s.authorizer.AuthorizeAdmin(ctx, requestingUserID); err != nil {
			logger.Warn("Authorization failed for DeleteService", slog.String("user_id", requestingUserID), slog.String("error", err.Error()))
			return err
		}
	}

	if err := s.serviceRepo.DeleteService(ctx, serviceID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete service", slog.String("error", err.Error()), slog.String("service_id", serviceID))
		}
		return fmt.Errorf("failed to delete service %s: %w", serviceID, err)
	}

	logger.Info("Service deleted", slog.String("service_id", serviceID))
	return nil
}
