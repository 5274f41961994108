package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/officio/business_mgmt_app/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgsql-backed repositories and bundles them
// for the service container. The sale repository borrows the product
// repository's stock operations so finalization and deletion can lock and
// adjust stock inside their own transactions.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(pool)
	return portsrepo.RepositoryProvider{
		ProductRepo:     productRepo,
		ServiceRepo:     newPgxServiceRepository(pool),
		SupplierRepo:    newPgxSupplierRepository(pool),
		CustomerRepo:    newPgxCustomerRepository(pool),
		UserRepo:        newPgxUserRepository(pool),
		SaleRepo:        newPgxSaleRepository(pool, productRepo),
		TransactionRepo: newPgxTransactionRepository(pool),
	}
}
