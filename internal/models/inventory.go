package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem mirrors the inventory_items table.
type InventoryItem struct {
	ProductID            string          `db:"product_id"`
	ItemName             string          `db:"item_name"`
	StockQty             int64           `db:"stock_qty"`
	SalePrice            decimal.Decimal `db:"sale_price"`
	LastPurchasePrice    decimal.Decimal `db:"last_purchase_price"`
	AveragePurchasePrice decimal.Decimal `db:"average_purchase_price"`
	ReorderLevel         int64           `db:"reorder_level"`
	AuditFields
}

// StockReceipt mirrors the stock_receipts table (inventory purchase history).
type StockReceipt struct {
	ReceiptID     string          `db:"receipt_id"`
	ProductID     string          `db:"product_id"`
	InvoiceID     string          `db:"invoice_id"`
	Qty           int64           `db:"qty"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	Date          time.Time       `db:"date"`
}

// StockIssue mirrors the stock_issues table (inventory sale history).
type StockIssue struct {
	IssueID   string          `db:"issue_id"`
	ProductID string          `db:"product_id"`
	MemoID    string          `db:"memo_id"`
	Qty       int64           `db:"qty"`
	Price     decimal.Decimal `db:"price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
	Date      time.Time       `db:"date"`
}
