package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine is a single product line on a customer memo.
type SaleLine struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Qty       int64           `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Sale is a customer memo, the mirror of Purchase with roles reversed.
type Sale struct {
	SaleID       string     `json:"saleID"`
	MemoNo       string     `json:"memoNo"`
	CustomerID   string     `json:"customerID"`
	CustomerName string     `json:"customerName"`
	Lines        []SaleLine `json:"lines"`

	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	PaymentDue  decimal.Decimal `json:"paymentDue"`

	AccountID         string    `json:"accountID"`
	LegacyPaymentType string    `json:"legacyPaymentType"`
	SaleDate          time.Time `json:"saleDate"`
	AuditFields
}

// AccountRef returns the payment account reference for this sale.
func (s Sale) AccountRef() AccountRef {
	return AccountRef{AccountID: s.AccountID, LegacyType: s.LegacyPaymentType}
}
