package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReceipt records one purchase line landing in inventory.
type StockReceipt struct {
	ReceiptID     string          `json:"receiptID"`
	ProductID     string          `json:"productID"`
	InvoiceID     string          `json:"invoiceID"`
	Qty           int64           `json:"qty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Date          time.Time       `json:"date"`
}

// StockIssue records one sale line leaving inventory.
type StockIssue struct {
	IssueID   string          `json:"issueID"`
	ProductID string          `json:"productID"`
	MemoID    string          `json:"memoID"`
	Qty       int64           `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Date      time.Time       `json:"date"`
}

// InventoryItem is per-product stock state. Created lazily on first purchase
// of a product; never deleted while history is non-empty.
type InventoryItem struct {
	ProductID         string          `json:"productID"`
	ItemName          string          `json:"itemName"`
	StockQty          int64           `json:"stockQty"`
	SalePrice         decimal.Decimal `json:"salePrice"`
	LastPurchasePrice decimal.Decimal `json:"lastPurchasePrice"`
	// AveragePurchasePrice is the quantity-weighted mean over all purchase
	// history entries, rounded to 4 decimal places.
	AveragePurchasePrice decimal.Decimal `json:"averagePurchasePrice"`
	ReorderLevel         int64           `json:"reorderLevel"`
	PurchaseHistory      []StockReceipt  `json:"purchaseHistory,omitempty"`
	SaleHistory          []StockIssue    `json:"saleHistory,omitempty"`
	AuditFields
}

// WeightedAverageCost computes the quantity-weighted mean purchase price over
// the given receipts, rounded to 4 decimal places. Returns zero when the
// receipts hold no quantity.
func WeightedAverageCost(receipts []StockReceipt) decimal.Decimal {
	totalQty := decimal.Zero
	totalValue := decimal.Zero
	for _, r := range receipts {
		qty := decimal.NewFromInt(r.Qty)
		totalQty = totalQty.Add(qty)
		totalValue = totalValue.Add(r.PurchasePrice.Mul(qty))
	}
	if totalQty.IsZero() {
		return decimal.Zero
	}
	return totalValue.Div(totalQty).Round(4)
}
