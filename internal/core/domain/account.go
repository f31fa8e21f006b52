package domain

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

// Account represents a balance-holding entity (cash drawer, bank account, or
// mobile-wallet account). Balance is the authoritative current value and is
// mutated only through the ledger service.
type Account struct {
	AccountID   string      `json:"accountID"`
	AccountType AccountType `json:"accountType"`
	// Name labels a cash account (e.g. "Main Cash").
	Name string `json:"name"`
	// Bank discriminator fields.
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	// Mobile-wallet discriminator fields.
	Method    string `json:"method"`
	OwnerName string `json:"ownerName"`

	Balance decimal.Decimal `json:"balance"`
	AuditFields
}

// AccountRef identifies an account either by explicit ID or by a legacy
// payment-type string carried by older purchase/sale documents.
type AccountRef struct {
	AccountID string `json:"accountID"`
	// LegacyType is "cash", "bank", or a mobile-wallet method name.
	LegacyType string `json:"legacyType"`
}

// IsZero reports whether the reference carries no account information.
func (r AccountRef) IsZero() bool {
	return r.AccountID == "" && r.LegacyType == ""
}
