package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// InventoryReader defines read operations for inventory state.
type InventoryReader interface {
	// FindItemByProductID retrieves an item without its history slices.
	FindItemByProductID(ctx context.Context, productID string) (*domain.InventoryItem, error)

	// ListItems retrieves a paginated list of items.
	ListItems(ctx context.Context, limit int, offset int) ([]domain.InventoryItem, error)

	// ListReceipts retrieves the full purchase history for a product ordered
	// by date ascending.
	ListReceipts(ctx context.Context, productID string) ([]domain.StockReceipt, error)

	// ListIssues retrieves the full sale history for a product ordered by
	// date ascending.
	ListIssues(ctx context.Context, productID string) ([]domain.StockIssue, error)
}

// InventoryTransactionSupport defines in-transaction operations used by the
// inventory adjuster. Stock writes only happen through these.
type InventoryTransactionSupport interface {
	// FindItemForUpdate selects an item and locks its row within the given
	// transaction. Returns apperrors.ErrNotFound when the product has no
	// inventory record yet.
	FindItemForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.InventoryItem, error)

	// CreateItemInTx inserts a fresh inventory record.
	CreateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error

	// UpdateItemInTx writes stock_qty, prices and audit fields for an item.
	UpdateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error

	// AppendReceiptInTx appends a purchase-history record.
	AppendReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.StockReceipt) error

	// AppendIssueInTx appends a sale-history record.
	AppendIssueInTx(ctx context.Context, tx pgx.Tx, issue domain.StockIssue) error

	// DeleteReceiptsByInvoiceInTx removes the purchase-history records tied
	// to one invoice and returns them.
	DeleteReceiptsByInvoiceInTx(ctx context.Context, tx pgx.Tx, productID, invoiceID string) ([]domain.StockReceipt, error)

	// DeleteIssuesByMemoInTx removes the sale-history records tied to one
	// memo and returns them.
	DeleteIssuesByMemoInTx(ctx context.Context, tx pgx.Tx, productID, memoID string) ([]domain.StockIssue, error)

	// ListReceiptsInTx retrieves the purchase history within the given
	// transaction, for average-cost recompute after a reversal.
	ListReceiptsInTx(ctx context.Context, tx pgx.Tx, productID string) ([]domain.StockReceipt, error)
}

// InventoryRepositoryFacade combines all inventory repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryTransactionSupport
}

// InventoryRepositoryWithTx extends the facade with transaction capabilities.
type InventoryRepositoryWithTx interface {
	InventoryRepositoryFacade
	TransactionManager
}
