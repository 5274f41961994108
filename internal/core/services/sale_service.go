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

// saleService provides the sale lifecycle: opening a sale, editing its line
// items while it is PENDING, finalizing it atomically and deleting it with
// compensation.
type saleService struct {
	saleRepo     portsrepo.SaleRepositoryWithTx
	productRepo  portsrepo.ProductRepositoryFacade
	serviceRepo  portsrepo.ServiceRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	authorizer   portssvc.AdminAuthorizerSvc
	notifier     portssvc.Notifier
}

// NewSaleService creates a new SaleService.
func NewSaleService(
	saleRepo portsrepo.SaleRepositoryWithTx,
	productRepo portsrepo.ProductRepositoryFacade,
	serviceRepo portsrepo.ServiceRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	authorizer portssvc.AdminAuthorizerSvc,
	notifier portssvc.Notifier,
) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		authorizer:   authorizer,
		notifier:     notifier,
	}
}

// Ensure saleService implements the portssvc.SaleSvcFacade interface
var _ portssvc.SaleSvcFacade = (*saleService)(nil)

func (s *saleService) notify(ctx context.Context, level portssvc.NotificationLevel, message string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, level, message)
	}
}

// CreateSale opens a new PENDING sale with no items for the given customer.
// Implements portssvc.SaleWriterSvc
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, sellerUserID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// The customer must exist; a sale is never created against a dangling reference.
	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Customer not found for sale creation", slog.String("customer_id", req.CustomerID))
			return nil, fmt.Errorf("customer %s: %w", req.CustomerID, apperrors.ErrNotFound)
		}
		logger.Error("Failed to fetch customer for sale creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	now := time.Now().UTC()
	sale := domain.Sale{
		SaleID:     uuid.NewString(),
		CustomerID: req.CustomerID,
		SellerID:   sellerUserID,
		Status:     domain.SalePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     sellerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: sellerUserID,
		},
	}
	sale.RecomputeTotal() // zero total, no items yet

	if err := s.saleRepo.SaveSale(ctx, sale); err != nil {
		logger.Error("Failed to save sale", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	logger.Info("Sale created", slog.String("sale_id", sale.SaleID), slog.String("customer_id", sale.CustomerID))
	return &sale, nil
}

// GetSaleByID retrieves a sale together with its line items.
// Implements portssvc.SaleReaderSvc
func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find sale by ID", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}

	items, err := s.saleRepo.FindItemsBySaleID(ctx, saleID)
	if err != nil {
		logger.Error("Failed to fetch items for sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to retrieve items for sale %s: %w", saleID, apperrors.ErrInternal)
	}
	sale.Items = items

	return sale, nil
}

// ListSales retrieves a paginated list of sales (without items).
// Implements portssvc.SaleReaderSvc
func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	sales, nextToken, err := s.saleRepo.ListSales(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list sales from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	saleResponses := make([]dto.SaleResponse, len(sales))
	for i := range sales {
		saleResponses[i] = dto.ToSaleResponse(&sales[i])
	}

	resp := &dto.ListSalesResponse{
		Sales:     saleResponses,
		NextToken: nextToken,
	}

	logger.Debug("Sales listed successfully", "count", len(sales))
	return resp, nil
}

// AddItem appends a line item to a PENDING sale. The catalog entry is
// resolved fresh, the unit price snapshotted from it, stock checked against
// the currently persisted value and the sale total recomputed. Stock is NOT
// deducted here; that happens at finalization.
// Implements portssvc.LineItemEditorSvc
func (s *saleService) AddItem(ctx context.Context, saleID string, req dto.AddItemRequest, requestingUserID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.GetSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if !sale.CanModifyItems() {
		logger.Warn("Attempted to add item to closed sale", slog.String("sale_id", saleID), slog.String("status", string(sale.Status)))
		s.notify(ctx, portssvc.NotifyError, "This sale can no longer be modified.")
		return nil, domain.ErrSaleClosed
	}

	ref, err := req.CatalogRef()
	if err != nil {
		s.notify(ctx, portssvc.NotifyError, "An item must reference exactly one product or service.")
		return nil, err
	}

	var (
		item domain.SaleItem
		name string
	)
	switch ref.Type {
	case domain.CatalogProduct:
		product, err := s.productRepo.FindProductByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Product not found for sale item", slog.String("product_id", ref.ID))
				s.notify(ctx, portssvc.NotifyError, "The selected product no longer exists.")
				return nil, fmt.Errorf("product %s: %w", ref.ID, domain.ErrInvalidCatalogRef)
			}
			return nil, fmt.Errorf("failed to fetch product %s: %w", ref.ID, err)
		}
		// Informational stock gate against the current value. The
		// authoritative re-check happens under row locks at finalization.
		if product.Stock < req.Quantity {
			logger.Warn("Insufficient stock for sale item",
				slog.String("product_id", product.ProductID),
				slog.Int("requested", req.Quantity),
				slog.Int("available", product.Stock))
			stockErr := &domain.InsufficientStockError{ProductName: product.Name, Available: product.Stock}
			s.notify(ctx, portssvc.NotifyError, fmt.Sprintf("Insufficient stock for %s. Only %d available.", product.Name, product.Stock))
			return nil, stockErr
		}
		item, err = domain.NewSaleItem(uuid.NewString(), sale.SaleID, &product.ProductID, nil, req.Quantity, product.Price)
		if err != nil {
			return nil, err
		}
		name = product.Name
	case domain.CatalogService:
		service, err := s.serviceRepo.FindServiceByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Service not found for sale item", slog.String("service_id", ref.ID))
				s.notify(ctx, portssvc.NotifyError, "The selected service no longer exists.")
				return nil, fmt.Errorf("service %s: %w", ref.ID, domain.ErrInvalidCatalogRef)
			}
			return nil, fmt.Errorf("failed to fetch service %s: %w", ref.ID, err)
		}
		item, err = domain.NewSaleItem(uuid.NewString(), sale.SaleID, nil, &service.ServiceID, req.Quantity, service.Price)
		if err != nil {
			return nil, err
		}
		name = service.Name
	default:
		return nil, domain.ErrInvalidCatalogRef
	}

	now := time.Now().UTC()
	item.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     requestingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: requestingUserID,
	}

	sale.Items = append(sale.Items, item)
	sale.RecomputeTotal()
	sale.LastUpdatedAt = now
	sale.LastUpdatedBy = requestingUserID

	if err := s.saleRepo.AddItem(ctx, *sale, item); err != nil {
		logger.Error("Failed to persist sale item", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to add item to sale: %w", err)
	}

	logger.Info("Item added to sale",
		slog.String("sale_id", sale.SaleID),
		slog.String("sale_item_id", item.SaleItemID),
		slog.Int("quantity", item.Quantity))
	s.notify(ctx, portssvc.NotifySuccess, fmt.Sprintf("Added %d x %s to the sale.", item.Quantity, name))
	return sale, nil
}

// RemoveItem deletes a line item from a PENDING sale and recomputes the total.
// Implements portssvc.LineItemEditorSvc
func (s *saleService) RemoveItem(ctx context.Context, saleID string, itemID string, requestingUserID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.GetSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if !sale.CanModifyItems() {
		logger.Warn("Attempted to remove item from closed sale", slog.String("sale_id", saleID), slog.String("status", string(sale.Status)))
		s.notify(ctx, portssvc.NotifyError, "This sale can no longer be modified.")
		return nil, domain.ErrSaleClosed
	}

	found := false
	remaining := make([]domain.SaleItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		if item.SaleItemID == itemID {
			found = true
			continue
		}
		remaining = append(remaining, item)
	}
	if !found {
		logger.Warn("Sale item not found for removal", slog.String("sale_id", saleID), slog.String("sale_item_id", itemID))
		return nil, fmt.Errorf("sale item %s: %w", itemID, apperrors.ErrNotFound)
	}

	now := time.Now().UTC()
	sale.Items = remaining
	sale.RecomputeTotal()
	sale.LastUpdatedAt = now
	sale.LastUpdatedBy = requestingUserID

	if err := s.saleRepo.RemoveItem(ctx, *sale, itemID); err != nil {
		logger.Error("Failed to remove sale item", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to remove item from sale: %w", err)
	}

	logger.Info("Item removed from sale", slog.String("sale_id", sale.SaleID), slog.String("sale_item_id", itemID))
	s.notify(ctx, portssvc.NotifySuccess, "Item removed from the sale.")
	return sale, nil
}

// Finalize converts a PENDING sale into a COMPLETED one. The repository
// performs the whole commit as a single database transaction: stock is
// re-read under row locks and deducted, the income ledger entry inserted
// and the status flipped; any failure leaves every record untouched.
// Re-invoking on a COMPLETED sale performs no work and returns the sale
// with domain.ErrAlreadyFinalized so callers can surface a warning.
// Implements portssvc.FinalizationSvc
func (s *saleService) Finalize(ctx context.Context, saleID string, requestingUserID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.GetSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	switch sale.Status {
	case domain.SaleCompleted:
		logger.Warn("Finalize re-invoked on completed sale", slog.String("sale_id", saleID))
		s.notify(ctx, portssvc.NotifyWarning, "This sale has already been finalized.")
		return sale, domain.ErrAlreadyFinalized
	case domain.SaleCanceled:
		s.notify(ctx, portssvc.NotifyError, "A canceled sale cannot be finalized.")
		return nil, domain.ErrSaleClosed
	}

	if len(sale.Items) == 0 {
		logger.Warn("Finalize attempted on empty sale", slog.String("sale_id", saleID))
		s.notify(ctx, portssvc.NotifyError, "Cannot finalize a sale with no items.")
		return nil, domain.ErrEmptySale
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, sale.CustomerID)
	if err != nil {
		logger.Error("Failed to fetch customer for finalization", slog.String("error", err.Error()), slog.String("customer_id", sale.CustomerID))
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	// The total is re-derived from the items before it is recorded.
	sale.RecomputeTotal()

	now := time.Now().UTC()
	paidDate := now
	ledgerTxn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   fmt.Sprintf("Sale #%s - %s", sale.SaleID, customer.Name),
		Amount:        sale.Total,
		Type:          domain.Income,
		Status:        domain.TransactionPaid,
		DueDate:       now,
		PaidDate:      &paidDate,
		SaleID:        &sale.SaleID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	sale.Status = domain.SaleCompleted
	sale.LastUpdatedAt = now
	sale.LastUpdatedBy = requestingUserID

	if err := s.saleRepo.FinalizeSale(ctx, *sale, ledgerTxn); err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			logger.Warn("Finalization blocked by insufficient stock",
				slog.String("sale_id", saleID),
				slog.String("product", stockErr.ProductName),
				slog.Int("available", stockErr.Available))
			s.notify(ctx, portssvc.NotifyError, fmt.Sprintf("Insufficient stock for %s. Only %d available.", stockErr.ProductName, stockErr.Available))
			return nil, err
		}
		if errors.Is(err, domain.ErrAlreadyFinalized) {
			// A concurrent finalize won the race after our status read. The
			// repository rolled back without touching stock, so this call is
			// the same no-op as re-invoking on a completed sale.
			logger.Warn("Finalize lost a concurrent race", slog.String("sale_id", saleID))
			s.notify(ctx, portssvc.NotifyWarning, "This sale has already been finalized.")
			current, readErr := s.GetSaleByID(ctx, saleID)
			if readErr != nil {
				return nil, readErr
			}
			return current, domain.ErrAlreadyFinalized
		}
		logger.Error("Failed to finalize sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to finalize sale: %w", err)
	}

	logger.Info("Sale finalized",
		slog.String("sale_id", sale.SaleID),
		slog.String("transaction_id", ledgerTxn.TransactionID),
		slog.String("total", sale.Total.String()))
	s.notify(ctx, portssvc.NotifySuccess, "Sale finalized successfully.")
	return sale, nil
}

// CancelSale transitions a PENDING sale to CANCELED. Canceled sales never
// touched stock and carry no ledger entries, so nothing is compensated.
// Implements portssvc.SaleWriterSvc
func (s *saleService) CancelSale(ctx context.Context, saleID string, requestingUserID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}

	if sale.Status != domain.SalePending {
		logger.Warn("Attempted to cancel non-pending sale", slog.String("sale_id", saleID), slog.String("status", string(sale.Status)))
		return nil, domain.ErrSaleClosed
	}

	now := time.Now().UTC()
	if err := s.saleRepo.UpdateSaleStatus(ctx, saleID, domain.SaleCanceled, requestingUserID, now); err != nil {
		logger.Error("Failed to cancel sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to cancel sale: %w", err)
	}

	sale.Status = domain.SaleCanceled
	sale.LastUpdatedAt = now
	sale.LastUpdatedBy = requestingUserID

	logger.Info("Sale canceled", slog.String("sale_id", saleID))
	s.notify(ctx, portssvc.NotifySuccess, "Sale canceled.")
	return sale, nil
}

// DeleteSale removes a sale entirely. For a COMPLETED sale the repository
// first restores the deducted stock and deletes the linked ledger
// transactions within the same database transaction, so the books end up
// as if the sale had never been finalized. Admin only.
// Implements portssvc.SaleWriterSvc
func (s *saleService) DeleteSale(ctx context.Context, saleID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.authorizer != nil {
		if err := s.authorizer.AuthorizeAdmin(ctx, requestingUserID); err != nil {
			logger.Warn("Authorization failed for DeleteSale", slog.String("user_id", requestingUserID), slog.String("error", err.Error()))
			return err
		}
	} else {
		logger.Warn("Authorizer not available for admin check in DeleteSale")
	}

	sale, err := s.GetSaleByID(ctx, saleID)
	if err != nil {
		return err
	}

	if err := s.saleRepo.DeleteSale(ctx, *sale); err != nil {
		logger.Error("Failed to delete sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	logger.Info("Sale deleted", slog.String("sale_id", saleID), slog.String("status", string(sale.Status)))
	s.notify(ctx, portssvc.NotifySuccess, "Sale deleted.")
	return nil
}
