package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	EntrySource     string          `json:"entrySource"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	Particulars     string          `json:"particulars"`
	ReferenceID     string          `json:"referenceID,omitempty"`
	PaymentDetails  string          `json:"paymentDetails,omitempty"`
	OccurredAt      time.Time       `json:"occurredAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		EntrySource:     string(txn.EntrySource),
		TransactionType: string(txn.TransactionType),
		Amount:          txn.Amount,
		BalanceAfter:    txn.BalanceAfter,
		Particulars:     txn.Particulars,
		ReferenceID:     txn.ReferenceID,
		PaymentDetails:  txn.PaymentDetails,
		OccurredAt:      txn.OccurredAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for the account statement.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of ledger entries with the cursor
// for the next page. NextToken is nil on the last page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
