package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier mirrors the suppliers table.
type Supplier struct {
	SupplierID       string          `db:"supplier_id"`
	Name             string          `db:"name"`
	Phone            string          `db:"phone"`
	Email            string          `db:"email"`
	Address          string          `db:"address"`
	TotalPurchase    decimal.Decimal `db:"total_purchase"`
	TotalDue         decimal.Decimal `db:"total_due"`
	LastPurchaseDate *time.Time      `db:"last_purchase_date"`
	LastPaymentDate  *time.Time      `db:"last_payment_date"`
	SuppliedProducts []string        `db:"supplied_products"`
	AuditFields
}

// Customer mirrors the customers table.
type Customer struct {
	CustomerID        string          `db:"customer_id"`
	Name              string          `db:"name"`
	Phone             string          `db:"phone"`
	Email             string          `db:"email"`
	Address           string          `db:"address"`
	TotalSales        decimal.Decimal `db:"total_sales"`
	TotalDue          decimal.Decimal `db:"total_due"`
	LastSaleDate      *time.Time      `db:"last_sale_date"`
	LastPaymentDate   *time.Time      `db:"last_payment_date"`
	PurchasedProducts []string        `db:"purchased_products"`
	AuditFields
}

// CounterpartyEvent mirrors the counterparty_events table (supplier/customer
// history).
type CounterpartyEvent struct {
	EventID        string          `db:"event_id"`
	CounterpartyID string          `db:"counterparty_id"`
	Date           time.Time       `db:"date"`
	Type           string          `db:"type"`
	ReferenceID    string          `db:"reference_id"`
	Amount         decimal.Decimal `db:"amount"`
	PaidAmount     decimal.Decimal `db:"paid_amount"`
	DueAmount      decimal.Decimal `db:"due_amount"`
	Remarks        string          `db:"remarks"`
}
