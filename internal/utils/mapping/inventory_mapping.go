package mapping

import (
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/models"
)

// ToModelInventoryItem converts a domain.InventoryItem for DB storage.
// History slices are persisted separately.
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ProductID:            d.ProductID,
		ItemName:             d.ItemName,
		StockQty:             d.StockQty,
		SalePrice:            d.SalePrice,
		LastPurchasePrice:    d.LastPurchasePrice,
		AveragePurchasePrice: d.AveragePurchasePrice,
		ReorderLevel:         d.ReorderLevel,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryItem converts a models.InventoryItem read from the DB.
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ProductID:            m.ProductID,
		ItemName:             m.ItemName,
		StockQty:             m.StockQty,
		SalePrice:            m.SalePrice,
		LastPurchasePrice:    m.LastPurchasePrice,
		AveragePurchasePrice: m.AveragePurchasePrice,
		ReorderLevel:         m.ReorderLevel,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockReceipt converts a models.StockReceipt read from the DB.
func ToDomainStockReceipt(m models.StockReceipt) domain.StockReceipt {
	return domain.StockReceipt{
		ReceiptID:     m.ReceiptID,
		ProductID:     m.ProductID,
		InvoiceID:     m.InvoiceID,
		Qty:           m.Qty,
		PurchasePrice: m.PurchasePrice,
		Subtotal:      m.Subtotal,
		Date:          m.Date,
	}
}

// ToDomainStockIssue converts a models.StockIssue read from the DB.
func ToDomainStockIssue(m models.StockIssue) domain.StockIssue {
	return domain.StockIssue{
		IssueID:   m.IssueID,
		ProductID: m.ProductID,
		MemoID:    m.MemoID,
		Qty:       m.Qty,
		Price:     m.Price,
		Subtotal:  m.Subtotal,
		Date:      m.Date,
	}
}
