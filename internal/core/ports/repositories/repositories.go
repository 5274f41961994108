package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ProductRepo     ProductRepositoryFacade
	ServiceRepo     ServiceRepositoryFacade
	SupplierRepo    SupplierRepositoryFacade
	CustomerRepo    CustomerRepositoryFacade
	UserRepo        UserRepositoryFacade
	SaleRepo        SaleRepositoryWithTx
	TransactionRepo TransactionRepositoryFacade
}
