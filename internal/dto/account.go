package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
// The discriminator fields that matter depend on AccountType: cash accounts
// use Name, bank accounts use BankName/AccountNumber, mobile accounts use
// Method/OwnerName.
type CreateAccountRequest struct {
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=cash bank mobile"`
	Name           string             `json:"name"`
	BankName       string             `json:"bankName"`
	AccountNumber  string             `json:"accountNumber"`
	Method         string             `json:"method"`
	OwnerName      string             `json:"ownerName"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	AccountType   domain.AccountType `json:"accountType"`
	Name          string             `json:"name,omitempty"`
	BankName      string             `json:"bankName,omitempty"`
	AccountNumber string             `json:"accountNumber,omitempty"`
	Method        string             `json:"method,omitempty"`
	OwnerName     string             `json:"ownerName,omitempty"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountType:   acc.AccountType,
		Name:          acc.Name,
		BankName:      acc.BankName,
		AccountNumber: acc.AccountNumber,
		Method:        acc.Method,
		OwnerName:     acc.OwnerName,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ManualEntryRequest defines the data for a manual deposit or withdrawal.
// The target account may be named by ID or by a legacy payment-type string;
// exactly one resolution path must succeed.
type ManualEntryRequest struct {
	AccountID      string          `json:"accountID"`
	PaymentType    string          `json:"paymentType"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Particulars    string          `json:"particulars"`
	PaymentDetails string          `json:"paymentDetails"`
	OccurredAt     *time.Time      `json:"occurredAt"`
}

// AccountRef builds the domain account reference from the request fields.
func (r ManualEntryRequest) AccountRef() domain.AccountRef {
	return domain.AccountRef{AccountID: r.AccountID, LegacyType: r.PaymentType}
}
