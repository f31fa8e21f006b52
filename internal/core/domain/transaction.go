package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry credits or debits an account.
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// EntrySource tags why a transaction was created.
type EntrySource string

const (
	SourceInvoice            EntrySource = "invoice"
	SourceSaleMemo           EntrySource = "sale_memo"
	SourceSupplierDuePayment EntrySource = "supplier_due_payment"
	SourceCustomerDueReceipt EntrySource = "customer_due_receipt"
	SourceManualDeposit      EntrySource = "manual_deposit"
	SourceManualWithdraw     EntrySource = "manual_withdraw"
	SourceBalanceCorrection  EntrySource = "balance_correction"
)

// Transaction is a ledger entry. Entries are append-only; an edited
// purchase/sale is corrected either by a balance_correction entry or by
// deleting the entries that reference it and re-applying, followed by a full
// ledger recompute of the affected account(s).
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"` // empty for legacy untagged entries
	EntrySource     EntrySource     `json:"entrySource"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"` // always positive
	// BalanceAfter is the account balance snapshot immediately after this
	// entry, recomputable from history.
	BalanceAfter   decimal.Decimal `json:"balanceAfter"`
	Particulars    string          `json:"particulars"`
	ReferenceID    string          `json:"referenceID"` // purchase or sale id
	PaymentDetails string          `json:"paymentDetails"`
	OccurredAt     time.Time       `json:"occurredAt"`
	AuditFields
}

// SignedAmount returns the entry's effect on the account balance:
// positive for credits, negative for debits.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}
