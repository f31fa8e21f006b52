package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// SaleRepositoryFacade defines storage operations for customer memos.
type SaleRepositoryFacade interface {
	// SaveSaleInTx inserts a sale header and its lines.
	SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error

	// FindSaleByID retrieves a sale with its lines.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindSaleByIDForUpdate retrieves a sale with its lines, locking the
	// header row within the given transaction.
	FindSaleByIDForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error)

	// ReplaceSaleInTx overwrites a sale header and replaces its lines.
	ReplaceSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error

	// UpdateSalePaymentInTx updates paid_amount/payment_due after a due
	// receipt.
	UpdateSalePaymentInTx(ctx context.Context, tx pgx.Tx, saleID string, paidAmount, paymentDue decimal.Decimal, userID string, now time.Time) error

	// DeleteSaleInTx removes a sale and its lines.
	DeleteSaleInTx(ctx context.Context, tx pgx.Tx, saleID string) error

	// ListSales retrieves a paginated list of sale headers, newest first.
	ListSales(ctx context.Context, limit int, offset int) ([]domain.Sale, error)
}

// SaleRepositoryWithTx extends the facade with transaction capabilities.
type SaleRepositoryWithTx interface {
	SaleRepositoryFacade
	TransactionManager
}
