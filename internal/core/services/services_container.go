package services

import (
	portsrepo "github.com/officio/business_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/officio/business_mgmt_app/internal/core/ports/services"
	"github.com/officio/business_mgmt_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// User service first: it doubles as the admin authorizer the other
	// services gate their destructive operations on.
	container.User = NewUserService(repos.UserRepo)
	authorizer := container.User.(portssvc.AdminAuthorizerSvc)

	notifier := NewLogNotifier()

	container.Catalog = NewCatalogService(
		repos.ProductRepo,
		repos.ServiceRepo,
		repos.SupplierRepo,
		authorizer,
	)
	container.Customer = NewCustomerService(repos.CustomerRepo, authorizer)
	container.Supplier = NewSupplierService(repos.SupplierRepo, authorizer)
	container.Ledger = NewLedgerService(repos.TransactionRepo)
	container.Sale = NewSaleService(
		repos.SaleRepo,
		repos.ProductRepo,
		repos.ServiceRepo,
		repos.CustomerRepo,
		authorizer,
		notifier,
	)

	container.Token = NewTokenService(cfg)

	return container
}
