package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

// ReceiveStockParams describes one purchase line landing in inventory.
type ReceiveStockParams struct {
	ProductID     string
	ItemName      string
	InvoiceID     string
	Qty           int64
	PurchasePrice decimal.Decimal
	Date          time.Time
}

// IssueStockParams describes one sale line leaving inventory. AllowNegative
// is reserved for data-repair flows; normal sales fail with
// apperrors.ErrInsufficientStock instead of driving stock below zero.
type IssueStockParams struct {
	ProductID     string
	MemoID        string
	Qty           int64
	Price         decimal.Decimal
	Date          time.Time
	AllowNegative bool
}

// InventoryReaderSvc defines read operations for inventory state.
type InventoryReaderSvc interface {
	// GetItem retrieves an item with its full purchase and sale history.
	GetItem(ctx context.Context, productID string) (*domain.InventoryItem, error)

	// GetStockQty returns the current quantity for a product, served from
	// cache when fresh.
	GetStockQty(ctx context.Context, productID string) (int64, error)

	// ListItems retrieves a paginated list of items without history.
	ListItems(ctx context.Context, params dto.ListInventoryParams) ([]domain.InventoryItem, error)
}

// InventoryWriterSvc defines the direct edits an operator may make.
type InventoryWriterSvc interface {
	// UpdateItem edits sale price and reorder level. Stock and cost figures
	// only move through purchase/sale workflows.
	UpdateItem(ctx context.Context, productID string, req dto.UpdateInventoryItemRequest, userID string) (*domain.InventoryItem, error)
}

// InventoryAdjusterSvc defines the in-transaction stock movements used by
// the purchase and sale workflows.
type InventoryAdjusterSvc interface {
	// ReceiveStockInTx adds quantity for a purchase line, creating the item
	// record on first purchase, and refreshes last/average purchase price.
	ReceiveStockInTx(ctx context.Context, tx pgx.Tx, params ReceiveStockParams, userID string) error

	// IssueStockInTx removes quantity for a sale line.
	IssueStockInTx(ctx context.Context, tx pgx.Tx, params IssueStockParams, userID string) error

	// ReverseReceiveInTx undoes the receipts an invoice created for one
	// product and recomputes the average purchase price from the remaining
	// history.
	ReverseReceiveInTx(ctx context.Context, tx pgx.Tx, productID, invoiceID string, userID string) error

	// ReverseIssueInTx restores the quantity a memo issued for one product.
	ReverseIssueInTx(ctx context.Context, tx pgx.Tx, productID, memoID string, userID string) error
}

// InventorySvcFacade combines all inventory-related service interfaces.
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
	InventoryAdjusterSvc
}
