package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// PurchaseRepositoryFacade defines storage operations for supplier invoices.
type PurchaseRepositoryFacade interface {
	// SavePurchaseInTx inserts a purchase header and its lines.
	SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error

	// FindPurchaseByID retrieves a purchase with its lines.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// FindPurchaseByIDForUpdate retrieves a purchase with its lines, locking
	// the header row within the given transaction.
	FindPurchaseByIDForUpdate(ctx context.Context, tx pgx.Tx, purchaseID string) (*domain.Purchase, error)

	// ReplacePurchaseInTx overwrites a purchase header and replaces its lines.
	ReplacePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error

	// UpdatePurchasePaymentInTx updates paid_amount/payment_due after a due
	// payment.
	UpdatePurchasePaymentInTx(ctx context.Context, tx pgx.Tx, purchaseID string, paidAmount, paymentDue decimal.Decimal, userID string, now time.Time) error

	// DeletePurchaseInTx removes a purchase and its lines.
	DeletePurchaseInTx(ctx context.Context, tx pgx.Tx, purchaseID string) error

	// ListPurchases retrieves a paginated list of purchase headers, newest
	// first.
	ListPurchases(ctx context.Context, limit int, offset int) ([]domain.Purchase, error)
}

// PurchaseRepositoryWithTx extends the facade with transaction capabilities.
type PurchaseRepositoryWithTx interface {
	PurchaseRepositoryFacade
	TransactionManager
}
