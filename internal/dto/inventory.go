package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// StockReceiptResponse is one purchase-history record of an inventory item.
type StockReceiptResponse struct {
	ReceiptID     string          `json:"receiptID"`
	InvoiceID     string          `json:"invoiceID"`
	Qty           int64           `json:"qty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Date          time.Time       `json:"date"`
}

// StockIssueResponse is one sale-history record of an inventory item.
type StockIssueResponse struct {
	IssueID  string          `json:"issueID"`
	MemoID   string          `json:"memoID"`
	Qty      int64           `json:"qty"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Date     time.Time       `json:"date"`
}

// InventoryItemResponse defines the data returned for an inventory item.
// History slices are populated only on the single-item endpoint.
type InventoryItemResponse struct {
	ProductID            string                 `json:"productID"`
	ItemName             string                 `json:"itemName"`
	StockQty             int64                  `json:"stockQty"`
	SalePrice            decimal.Decimal        `json:"salePrice"`
	LastPurchasePrice    decimal.Decimal        `json:"lastPurchasePrice"`
	AveragePurchasePrice decimal.Decimal        `json:"averagePurchasePrice"`
	ReorderLevel         int64                  `json:"reorderLevel"`
	PurchaseHistory      []StockReceiptResponse `json:"purchaseHistory,omitempty"`
	SaleHistory          []StockIssueResponse   `json:"saleHistory,omitempty"`
	LastUpdatedAt        time.Time              `json:"lastUpdatedAt"`
}

// ToInventoryItemResponse converts a domain.InventoryItem to its DTO.
func ToInventoryItemResponse(item *domain.InventoryItem) InventoryItemResponse {
	resp := InventoryItemResponse{
		ProductID:            item.ProductID,
		ItemName:             item.ItemName,
		StockQty:             item.StockQty,
		SalePrice:            item.SalePrice,
		LastPurchasePrice:    item.LastPurchasePrice,
		AveragePurchasePrice: item.AveragePurchasePrice,
		ReorderLevel:         item.ReorderLevel,
		LastUpdatedAt:        item.LastUpdatedAt,
	}
	for _, r := range item.PurchaseHistory {
		resp.PurchaseHistory = append(resp.PurchaseHistory, StockReceiptResponse{
			ReceiptID:     r.ReceiptID,
			InvoiceID:     r.InvoiceID,
			Qty:           r.Qty,
			PurchasePrice: r.PurchasePrice,
			Subtotal:      r.Subtotal,
			Date:          r.Date,
		})
	}
	for _, s := range item.SaleHistory {
		resp.SaleHistory = append(resp.SaleHistory, StockIssueResponse{
			IssueID:  s.IssueID,
			MemoID:   s.MemoID,
			Qty:      s.Qty,
			Price:    s.Price,
			Subtotal: s.Subtotal,
			Date:     s.Date,
		})
	}
	return resp
}

// ToListInventoryItemResponse converts a slice of domain.InventoryItem.
func ToListInventoryItemResponse(items []domain.InventoryItem) []InventoryItemResponse {
	res := make([]InventoryItemResponse, len(items))
	for i, item := range items {
		res[i] = ToInventoryItemResponse(&item)
	}
	return res
}

// ListInventoryParams defines query parameters for listing inventory items.
type ListInventoryParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UpdateInventoryItemRequest defines the fields an operator may edit
// directly. Stock quantity and cost figures only move through purchases and
// sales. Pointers distinguish omitted fields from zero values.
type UpdateInventoryItemRequest struct {
	SalePrice    *decimal.Decimal `json:"salePrice"`
	ReorderLevel *int64           `json:"reorderLevel"`
}
