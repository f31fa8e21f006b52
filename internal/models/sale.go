package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale mirrors the sales table.
type Sale struct {
	SaleID            string          `db:"sale_id"`
	MemoNo            string          `db:"memo_no"`
	CustomerID        string          `db:"customer_id"` // nullable in DB
	CustomerName      string          `db:"customer_name"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	PaidAmount        decimal.Decimal `db:"paid_amount"`
	PaymentDue        decimal.Decimal `db:"payment_due"`
	AccountID         string          `db:"account_id"` // nullable in DB
	LegacyPaymentType string          `db:"legacy_payment_type"`
	SaleDate          time.Time       `db:"sale_date"`
	AuditFields
}

// SaleLine mirrors the sale_lines table.
type SaleLine struct {
	SaleID    string          `db:"sale_id"`
	LineNo    int             `db:"line_no"`
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Qty       int64           `db:"qty"`
	Price     decimal.Decimal `db:"price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
}
