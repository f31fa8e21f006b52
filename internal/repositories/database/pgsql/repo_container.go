package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository around one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		InventoryRepo:   newPgxInventoryRepository(dbPool),
		PurchaseRepo:    newPgxPurchaseRepository(dbPool),
		SaleRepo:        newPgxSaleRepository(dbPool),
		SupplierRepo:    newPgxSupplierRepository(dbPool),
		CustomerRepo:    newPgxCustomerRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		ProductRepo:     newPgxProductRepository(dbPool),
	}
}
