package models

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a money-holding account.
type AccountType string

const (
	AccountCash   AccountType = "cash"
	AccountBank   AccountType = "bank"
	AccountMobile AccountType = "mobile"
)

// Account mirrors the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	AccountType   AccountType     `db:"account_type"`
	Name          string          `db:"name"`
	BankName      string          `db:"bank_name"`
	AccountNumber string          `db:"account_number"`
	Method        string          `db:"method"`
	OwnerName     string          `db:"owner_name"`
	Balance       decimal.Decimal `db:"balance"`
	AuditFields
}
