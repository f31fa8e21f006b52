package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// SupplierRepositoryFacade defines storage operations for supplier aggregates.
type SupplierRepositoryFacade interface {
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	ListSuppliers(ctx context.Context, limit int, offset int) ([]domain.Supplier, error)
	ListSupplierHistory(ctx context.Context, supplierID string) ([]domain.CounterpartyEvent, error)

	// FindSupplierForUpdate locks the supplier row within the given
	// transaction.
	FindSupplierForUpdate(ctx context.Context, tx pgx.Tx, supplierID string) (*domain.Supplier, error)

	// ApplyAggregatesInTx shifts total_purchase/total_due by the given
	// deltas, merges product names into the supplied set, and bumps the
	// relevant date columns.
	ApplyAggregatesInTx(ctx context.Context, tx pgx.Tx, supplierID string, purchaseDelta, dueDelta decimal.Decimal, productNames []string, purchaseDate, paymentDate *time.Time, userID string, now time.Time) error

	// AppendHistoryInTx appends an audit entry to the supplier history.
	AppendHistoryInTx(ctx context.Context, tx pgx.Tx, event domain.CounterpartyEvent) error

	// DeleteHistoryByReferenceInTx removes history entries tied to a rolled
	// back purchase.
	DeleteHistoryByReferenceInTx(ctx context.Context, tx pgx.Tx, supplierID, referenceID string) error
}

// SupplierRepositoryWithTx extends the facade with transaction capabilities.
type SupplierRepositoryWithTx interface {
	SupplierRepositoryFacade
	TransactionManager
}

// CustomerRepositoryFacade mirrors SupplierRepositoryFacade for customers.
type CustomerRepositoryFacade interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
	ListCustomerHistory(ctx context.Context, customerID string) ([]domain.CounterpartyEvent, error)

	FindCustomerForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error)

	// ApplyAggregatesInTx shifts total_sales/total_due by the given deltas,
	// merges product names into the purchased set, and bumps the relevant
	// date columns.
	ApplyAggregatesInTx(ctx context.Context, tx pgx.Tx, customerID string, salesDelta, dueDelta decimal.Decimal, productNames []string, saleDate, paymentDate *time.Time, userID string, now time.Time) error

	AppendHistoryInTx(ctx context.Context, tx pgx.Tx, event domain.CounterpartyEvent) error
	DeleteHistoryByReferenceInTx(ctx context.Context, tx pgx.Tx, customerID, referenceID string) error
}

// CustomerRepositoryWithTx extends the facade with transaction capabilities.
type CustomerRepositoryWithTx interface {
	CustomerRepositoryFacade
	TransactionManager
}
