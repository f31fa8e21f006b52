package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates credit or debit.
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// Transaction mirrors the transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountID       string          `db:"account_id"` // nullable in DB
	EntrySource     string          `db:"entry_source"`
	TransactionType TransactionType `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	Particulars     string          `db:"particulars"`
	ReferenceID     string          `db:"reference_id"`
	PaymentDetails  string          `db:"payment_details"`
	OccurredAt      time.Time       `db:"occurred_at"`
	AuditFields
}
