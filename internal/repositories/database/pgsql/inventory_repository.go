package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	"github.com/projuktisheba/stockledger-backend/internal/models"
	"github.com/projuktisheba/stockledger-backend/internal/utils/mapping"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory state.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryWithTx {
	return &PgxInventoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryWithTx = (*PgxInventoryRepository)(nil)

const inventoryItemColumns = `product_id, item_name, stock_qty, sale_price, last_purchase_price, average_purchase_price, reorder_level, created_at, created_by, last_updated_at, last_updated_by`

const stockReceiptColumns = `receipt_id, product_id, invoice_id, qty, purchase_price, subtotal, date`

const stockIssueColumns = `issue_id, product_id, memo_id, qty, price, subtotal, date`

func scanInventoryItem(row pgx.Row) (*models.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.ProductID,
		&m.ItemName,
		&m.StockQty,
		&m.SalePrice,
		&m.LastPurchasePrice,
		&m.AveragePurchasePrice,
		&m.ReorderLevel,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanStockReceipt(row pgx.Row) (*models.StockReceipt, error) {
	var m models.StockReceipt
	err := row.Scan(&m.ReceiptID, &m.ProductID, &m.InvoiceID, &m.Qty, &m.PurchasePrice, &m.Subtotal, &m.Date)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanStockIssue(row pgx.Row) (*models.StockIssue, error) {
	var m models.StockIssue
	err := row.Scan(&m.IssueID, &m.ProductID, &m.MemoID, &m.Qty, &m.Price, &m.Subtotal, &m.Date)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindItemByProductID retrieves an item without its history slices.
func (r *PgxInventoryRepository) FindItemByProductID(ctx context.Context, productID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE product_id = $1;`

	m, err := scanInventoryItem(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: inventory item for product %s", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find inventory item for product %s: %w", productID, err)
	}

	item := mapping.ToDomainInventoryItem(*m)
	return &item, nil
}

// ListItems retrieves a paginated list of items.
func (r *PgxInventoryRepository) ListItems(ctx context.Context, limit int, offset int) ([]domain.InventoryItem, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items ORDER BY item_name ASC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		m, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item row: %w", err)
		}
		items = append(items, mapping.ToDomainInventoryItem(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating inventory item rows: %w", rows.Err())
	}
	return items, nil
}

// ListReceipts retrieves the full purchase history for a product.
func (r *PgxInventoryRepository) ListReceipts(ctx context.Context, productID string) ([]domain.StockReceipt, error) {
	query := `SELECT ` + stockReceiptColumns + ` FROM stock_receipts WHERE product_id = $1 ORDER BY date ASC, receipt_id ASC;`

	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock receipts for product %s: %w", productID, err)
	}
	defer rows.Close()

	return collectStockReceipts(rows)
}

// ListIssues retrieves the full sale history for a product.
func (r *PgxInventoryRepository) ListIssues(ctx context.Context, productID string) ([]domain.StockIssue, error) {
	query := `SELECT ` + stockIssueColumns + ` FROM stock_issues WHERE product_id = $1 ORDER BY date ASC, issue_id ASC;`

	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock issues for product %s: %w", productID, err)
	}
	defer rows.Close()

	issues := []domain.StockIssue{}
	for rows.Next() {
		m, err := scanStockIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock issue row: %w", err)
		}
		issues = append(issues, mapping.ToDomainStockIssue(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating stock issue rows: %w", rows.Err())
	}
	return issues, nil
}

// FindItemForUpdate selects an item and locks its row within the given
// transaction.
func (r *PgxInventoryRepository) FindItemForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE product_id = $1 FOR UPDATE;`

	m, err := scanInventoryItem(tx.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: inventory item for product %s", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to lock inventory item for product %s: %w", productID, err)
	}

	item := mapping.ToDomainInventoryItem(*m)
	return &item, nil
}

// CreateItemInTx inserts a fresh inventory record.
func (r *PgxInventoryRepository) CreateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)

	query := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.ProductID,
		m.ItemName,
		m.StockQty,
		m.SalePrice,
		m.LastPurchasePrice,
		m.AveragePurchasePrice,
		m.ReorderLevel,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: inventory item for product %s already exists", apperrors.ErrDuplicate, m.ProductID)
		}
		return fmt.Errorf("failed to create inventory item for product %s: %w", m.ProductID, err)
	}
	return nil
}

// UpdateItemInTx writes stock quantity, prices and audit fields for an item.
func (r *PgxInventoryRepository) UpdateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)

	query := `
		UPDATE inventory_items
		SET item_name = $1, stock_qty = $2, sale_price = $3, last_purchase_price = $4,
		    average_purchase_price = $5, reorder_level = $6, last_updated_at = $7, last_updated_by = $8
		WHERE product_id = $9;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.ItemName,
		m.StockQty,
		m.SalePrice,
		m.LastPurchasePrice,
		m.AveragePurchasePrice,
		m.ReorderLevel,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item for product %s: %w", m.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: inventory item for product %s", apperrors.ErrNotFound, m.ProductID)
	}
	return nil
}

// AppendReceiptInTx appends a purchase-history record.
func (r *PgxInventoryRepository) AppendReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.StockReceipt) error {
	query := `
		INSERT INTO stock_receipts (` + stockReceiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		receipt.ReceiptID,
		receipt.ProductID,
		receipt.InvoiceID,
		receipt.Qty,
		receipt.PurchasePrice,
		receipt.Subtotal,
		receipt.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to append stock receipt %s: %w", receipt.ReceiptID, err)
	}
	return nil
}

// AppendIssueInTx appends a sale-history record.
func (r *PgxInventoryRepository) AppendIssueInTx(ctx context.Context, tx pgx.Tx, issue domain.StockIssue) error {
	query := `
		INSERT INTO stock_issues (` + stockIssueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		issue.IssueID,
		issue.ProductID,
		issue.MemoID,
		issue.Qty,
		issue.Price,
		issue.Subtotal,
		issue.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to append stock issue %s: %w", issue.IssueID, err)
	}
	return nil
}

// DeleteReceiptsByInvoiceInTx removes the purchase-history records tied to
// one invoice and returns them.
func (r *PgxInventoryRepository) DeleteReceiptsByInvoiceInTx(ctx context.Context, tx pgx.Tx, productID, invoiceID string) ([]domain.StockReceipt, error) {
	query := `
		DELETE FROM stock_receipts
		WHERE product_id = $1 AND invoice_id = $2
		RETURNING ` + stockReceiptColumns + `;
	`
	rows, err := tx.Query(ctx, query, productID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete stock receipts for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	return collectStockReceipts(rows)
}

// DeleteIssuesByMemoInTx removes the sale-history records tied to one memo
// and returns them.
func (r *PgxInventoryRepository) DeleteIssuesByMemoInTx(ctx context.Context, tx pgx.Tx, productID, memoID string) ([]domain.StockIssue, error) {
	query := `
		DELETE FROM stock_issues
		WHERE product_id = $1 AND memo_id = $2
		RETURNING ` + stockIssueColumns + `;
	`
	rows, err := tx.Query(ctx, query, productID, memoID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete stock issues for memo %s: %w", memoID, err)
	}
	defer rows.Close()

	issues := []domain.StockIssue{}
	for rows.Next() {
		m, err := scanStockIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock issue row: %w", err)
		}
		issues = append(issues, mapping.ToDomainStockIssue(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating stock issue rows: %w", rows.Err())
	}
	return issues, nil
}

// ListReceiptsInTx retrieves the purchase history within the given
// transaction.
func (r *PgxInventoryRepository) ListReceiptsInTx(ctx context.Context, tx pgx.Tx, productID string) ([]domain.StockReceipt, error) {
	query := `SELECT ` + stockReceiptColumns + ` FROM stock_receipts WHERE product_id = $1 ORDER BY date ASC, receipt_id ASC;`

	rows, err := tx.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock receipts for product %s: %w", productID, err)
	}
	defer rows.Close()

	return collectStockReceipts(rows)
}

func collectStockReceipts(rows pgx.Rows) ([]domain.StockReceipt, error) {
	receipts := []domain.StockReceipt{}
	for rows.Next() {
		m, err := scanStockReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock receipt row: %w", err)
		}
		receipts = append(receipts, mapping.ToDomainStockReceipt(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating stock receipt rows: %w", rows.Err())
	}
	return receipts, nil
}
