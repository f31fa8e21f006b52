package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLine is a single product line on a supplier invoice.
type PurchaseLine struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Qty           int64           `json:"qty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// Purchase is a supplier invoice. PaymentDue always equals
// TotalAmount - PaidAmount; editing a purchase must reverse its prior effects
// (inventory, account balance, supplier totals) before applying new ones.
type Purchase struct {
	PurchaseID string         `json:"purchaseID"`
	SupplierID string         `json:"supplierID"` // empty when no counterparty is tracked
	Lines      []PurchaseLine `json:"lines"`

	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	PaymentDue  decimal.Decimal `json:"paymentDue"`

	AccountID         string    `json:"accountID"`
	LegacyPaymentType string    `json:"legacyPaymentType"`
	PurchaseDate      time.Time `json:"purchaseDate"`
	AuditFields
}

// AccountRef returns the payment account reference for this purchase.
func (p Purchase) AccountRef() AccountRef {
	return AccountRef{AccountID: p.AccountID, LegacyType: p.LegacyPaymentType}
}
