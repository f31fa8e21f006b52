package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CounterpartyEventType classifies a supplier/customer history entry.
type CounterpartyEventType string

const (
	EventPurchase        CounterpartyEventType = "purchase"
	EventUpdatedPurchase CounterpartyEventType = "updated_purchase"
	EventSale            CounterpartyEventType = "sale"
	EventUpdatedSale     CounterpartyEventType = "updated_sale"
	EventDuePayment      CounterpartyEventType = "due_payment"
	EventDueReceipt      CounterpartyEventType = "due_receipt"
)

// CounterpartyEvent is an append-only audit record on a supplier or customer.
// The history only grows, except that entries are removed when their
// referenced purchase/sale is fully rolled back.
type CounterpartyEvent struct {
	EventID        string                `json:"eventID"`
	CounterpartyID string                `json:"counterpartyID"`
	Date           time.Time             `json:"date"`
	Type           CounterpartyEventType `json:"type"`
	ReferenceID    string                `json:"referenceID"`
	Amount         decimal.Decimal       `json:"amount"`
	PaidAmount     decimal.Decimal       `json:"paidAmount"`
	DueAmount      decimal.Decimal       `json:"dueAmount"`
	Remarks        string                `json:"remarks"`
}

// Supplier aggregates lifetime totals across all purchases from one vendor.
// TotalDue reflects the sum of payment_due across the supplier's non-deleted
// purchases.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`

	TotalPurchase    decimal.Decimal `json:"totalPurchase"`
	TotalDue         decimal.Decimal `json:"totalDue"`
	LastPurchaseDate *time.Time      `json:"lastPurchaseDate,omitempty"`
	LastPaymentDate  *time.Time      `json:"lastPaymentDate,omitempty"`
	SuppliedProducts []string        `json:"suppliedProducts"`
	AuditFields
}

// Customer mirrors Supplier for the sales side.
type Customer struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`

	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalDue          decimal.Decimal `json:"totalDue"`
	LastSaleDate      *time.Time      `json:"lastSaleDate,omitempty"`
	LastPaymentDate   *time.Time      `json:"lastPaymentDate,omitempty"`
	PurchasedProducts []string        `json:"purchasedProducts"`
	AuditFields
}
