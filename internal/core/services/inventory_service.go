package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
	"github.com/projuktisheba/stockledger-backend/internal/platform/cache"
)

// inventoryService owns per-product stock state. Quantity and cost figures
// only move through the adjuster methods, which the purchase and sale
// workflows call inside their transactions.
type inventoryService struct {
	invRepo    portsrepo.InventoryRepositoryWithTx
	stockCache *cache.StockCache
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(invRepo portsrepo.InventoryRepositoryWithTx, stockCache *cache.StockCache) portssvc.InventorySvcFacade {
	return &inventoryService{invRepo: invRepo, stockCache: stockCache}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// GetItem retrieves an item with its full purchase and sale history.
func (s *inventoryService) GetItem(ctx context.Context, productID string) (*domain.InventoryItem, error) {
	item, err := s.invRepo.FindItemByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	receipts, err := s.invRepo.ListReceipts(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase history for %s: %w", productID, err)
	}
	issues, err := s.invRepo.ListIssues(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale history for %s: %w", productID, err)
	}

	item.PurchaseHistory = receipts
	item.SaleHistory = issues
	return item, nil
}

// GetStockQty returns the current quantity for a product, served from cache
// when fresh.
func (s *inventoryService) GetStockQty(ctx context.Context, productID string) (int64, error) {
	if qty, ok := s.stockCache.GetStockQty(ctx, productID); ok {
		return qty, nil
	}

	item, err := s.invRepo.FindItemByProductID(ctx, productID)
	if err != nil {
		return 0, err
	}

	s.stockCache.SetStockQty(ctx, productID, item.StockQty)
	return item.StockQty, nil
}

// ListItems retrieves a paginated list of items without history.
func (s *inventoryService) ListItems(ctx context.Context, params dto.ListInventoryParams) ([]domain.InventoryItem, error) {
	return s.invRepo.ListItems(ctx, params.Limit, params.Offset)
}

// UpdateItem edits the operator-facing fields of an item.
func (s *inventoryService) UpdateItem(ctx context.Context, productID string, req dto.UpdateInventoryItemRequest, userID string) (*domain.InventoryItem, error) {
	tx, err := s.invRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.invRepo.Rollback(ctx, tx)

	item, err := s.invRepo.FindItemForUpdate(ctx, tx, productID)
	if err != nil {
		return nil, err
	}

	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: sale price cannot be negative", apperrors.ErrValidation)
		}
		item.SalePrice = *req.SalePrice
	}
	if req.ReorderLevel != nil {
		if *req.ReorderLevel < 0 {
			return nil, fmt.Errorf("%w: reorder level cannot be negative", apperrors.ErrValidation)
		}
		item.ReorderLevel = *req.ReorderLevel
	}

	now := time.Now().UTC()
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.invRepo.UpdateItemInTx(ctx, tx, *item); err != nil {
		return nil, fmt.Errorf("failed to update item %s: %w", productID, err)
	}
	if err := s.invRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return item, nil
}

// ReceiveStockInTx adds quantity for a purchase line. The item record is
// created lazily on the product's first purchase. Average purchase price is
// recomputed from the full receipt history after the new receipt lands.
func (s *inventoryService) ReceiveStockInTx(ctx context.Context, tx pgx.Tx, params portssvc.ReceiveStockParams, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if params.Qty <= 0 {
		return fmt.Errorf("%w: receive quantity must be positive", apperrors.ErrValidation)
	}
	if !params.PurchasePrice.IsPositive() {
		return fmt.Errorf("%w: purchase price must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item, err := s.invRepo.FindItemForUpdate(ctx, tx, params.ProductID)
	if errors.Is(err, apperrors.ErrNotFound) {
		item = &domain.InventoryItem{
			ProductID: params.ProductID,
			ItemName:  params.ItemName,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				CreatedBy: userID,
			},
		}
		if err := s.invRepo.CreateItemInTx(ctx, tx, *item); err != nil {
			return fmt.Errorf("failed to create inventory item %s: %w", params.ProductID, err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to lock inventory item %s: %w", params.ProductID, err)
	}

	receipt := domain.StockReceipt{
		ReceiptID:     uuid.NewString(),
		ProductID:     params.ProductID,
		InvoiceID:     params.InvoiceID,
		Qty:           params.Qty,
		PurchasePrice: params.PurchasePrice,
		Subtotal:      params.PurchasePrice.Mul(decimal.NewFromInt(params.Qty)),
		Date:          params.Date,
	}
	if err := s.invRepo.AppendReceiptInTx(ctx, tx, receipt); err != nil {
		return fmt.Errorf("failed to append stock receipt: %w", err)
	}

	receipts, err := s.invRepo.ListReceiptsInTx(ctx, tx, params.ProductID)
	if err != nil {
		return fmt.Errorf("failed to reload receipt history: %w", err)
	}

	item.StockQty += params.Qty
	item.LastPurchasePrice = params.PurchasePrice
	item.AveragePurchasePrice = domain.WeightedAverageCost(receipts)
	if params.ItemName != "" {
		item.ItemName = params.ItemName
	}
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.invRepo.UpdateItemInTx(ctx, tx, *item); err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", params.ProductID, err)
	}

	logger.Info("Stock received",
		slog.String("product_id", params.ProductID),
		slog.Int64("qty", params.Qty),
		slog.Int64("stock_qty", item.StockQty),
	)
	return nil
}

// IssueStockInTx removes quantity for a sale line.
func (s *inventoryService) IssueStockInTx(ctx context.Context, tx pgx.Tx, params portssvc.IssueStockParams, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if params.Qty <= 0 {
		return fmt.Errorf("%w: issue quantity must be positive", apperrors.ErrValidation)
	}

	item, err := s.invRepo.FindItemForUpdate(ctx, tx, params.ProductID)
	if err != nil {
		return fmt.Errorf("failed to lock inventory item %s: %w", params.ProductID, err)
	}

	newQty := item.StockQty - params.Qty
	if newQty < 0 && !params.AllowNegative {
		return fmt.Errorf("%w: product %s has %d in stock, requested %d", apperrors.ErrInsufficientStock, params.ProductID, item.StockQty, params.Qty)
	}

	issue := domain.StockIssue{
		IssueID:   uuid.NewString(),
		ProductID: params.ProductID,
		MemoID:    params.MemoID,
		Qty:       params.Qty,
		Price:     params.Price,
		Subtotal:  params.Price.Mul(decimal.NewFromInt(params.Qty)),
		Date:      params.Date,
	}
	if err := s.invRepo.AppendIssueInTx(ctx, tx, issue); err != nil {
		return fmt.Errorf("failed to append stock issue: %w", err)
	}

	now := time.Now().UTC()
	item.StockQty = newQty
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.invRepo.UpdateItemInTx(ctx, tx, *item); err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", params.ProductID, err)
	}

	logger.Info("Stock issued",
		slog.String("product_id", params.ProductID),
		slog.Int64("qty", params.Qty),
		slog.Int64("stock_qty", item.StockQty),
	)
	return nil
}

// ReverseReceiveInTx undoes the receipts an invoice created for one product.
// The reversal may drive stock negative when intervening sales consumed the
// received quantity; the ledger of receipts stays consistent either way.
func (s *inventoryService) ReverseReceiveInTx(ctx context.Context, tx pgx.Tx, productID, invoiceID string, userID string) error {
	item, err := s.invRepo.FindItemForUpdate(ctx, tx, productID)
	if err != nil {
		return fmt.Errorf("failed to lock inventory item %s: %w", productID, err)
	}

	removed, err := s.invRepo.DeleteReceiptsByInvoiceInTx(ctx, tx, productID, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to remove receipts for invoice %s: %w", invoiceID, err)
	}
	if len(removed) == 0 {
		return nil
	}

	var removedQty int64
	for _, r := range removed {
		removedQty += r.Qty
	}

	remaining, err := s.invRepo.ListReceiptsInTx(ctx, tx, productID)
	if err != nil {
		return fmt.Errorf("failed to reload receipt history: %w", err)
	}

	now := time.Now().UTC()
	item.StockQty -= removedQty
	item.AveragePurchasePrice = domain.WeightedAverageCost(remaining)
	if len(remaining) > 0 {
		item.LastPurchasePrice = remaining[len(remaining)-1].PurchasePrice
	} else {
		item.LastPurchasePrice = decimal.Zero
	}
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.invRepo.UpdateItemInTx(ctx, tx, *item); err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", productID, err)
	}
	return nil
}

// ReverseIssueInTx restores the quantity a memo issued for one product.
func (s *inventoryService) ReverseIssueInTx(ctx context.Context, tx pgx.Tx, productID, memoID string, userID string) error {
	item, err := s.invRepo.FindItemForUpdate(ctx, tx, productID)
	if err != nil {
		return fmt.Errorf("failed to lock inventory item %s: %w", productID, err)
	}

	removed, err := s.invRepo.DeleteIssuesByMemoInTx(ctx, tx, productID, memoID)
	if err != nil {
		return fmt.Errorf("failed to remove issues for memo %s: %w", memoID, err)
	}
	if len(removed) == 0 {
		return nil
	}

	var removedQty int64
	for _, iss := range removed {
		removedQty += iss.Qty
	}

	now := time.Now().UTC()
	item.StockQty += removedQty
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.invRepo.UpdateItemInTx(ctx, tx, *item); err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", productID, err)
	}
	return nil
}
