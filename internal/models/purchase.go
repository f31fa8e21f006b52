package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase mirrors the purchases table.
type Purchase struct {
	PurchaseID        string          `db:"purchase_id"`
	SupplierID        string          `db:"supplier_id"` // nullable in DB
	TotalAmount       decimal.Decimal `db:"total_amount"`
	PaidAmount        decimal.Decimal `db:"paid_amount"`
	PaymentDue        decimal.Decimal `db:"payment_due"`
	AccountID         string          `db:"account_id"` // nullable in DB
	LegacyPaymentType string          `db:"legacy_payment_type"`
	PurchaseDate      time.Time       `db:"purchase_date"`
	AuditFields
}

// PurchaseLine mirrors the purchase_lines table.
type PurchaseLine struct {
	PurchaseID    string          `db:"purchase_id"`
	LineNo        int             `db:"line_no"`
	ProductID     string          `db:"product_id"`
	Name          string          `db:"name"`
	Qty           int64           `db:"qty"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	Subtotal      decimal.Decimal `db:"subtotal"`
}
