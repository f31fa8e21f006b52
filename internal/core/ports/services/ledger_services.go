package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

// ApplyTransactionParams carries everything needed to append one ledger
// entry. AllowNegative permits the resulting balance to go below zero; it is
// set only when reversing a prior credit during an invoice/memo rollback.
type ApplyTransactionParams struct {
	Account        domain.AccountRef
	EntrySource    domain.EntrySource
	Type           domain.TransactionType
	Amount         decimal.Decimal
	Particulars    string
	ReferenceID    string
	PaymentDetails string
	OccurredAt     time.Time
	AllowNegative  bool
}

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// ListTransactionsByAccount retrieves the keyset-paginated statement of
	// an account, newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount persists a new account, recording any opening balance as
	// a balance-correction ledger entry.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// ManualDeposit credits an account outside any purchase/sale workflow.
	ManualDeposit(ctx context.Context, req dto.ManualEntryRequest, userID string) (*domain.Transaction, error)

	// ManualWithdraw debits an account outside any purchase/sale workflow.
	// Fails with apperrors.ErrInsufficientBalance when the balance would go
	// negative.
	ManualWithdraw(ctx context.Context, req dto.ManualEntryRequest, userID string) (*domain.Transaction, error)
}

// LedgerCoreSvc defines the internal ledger primitives other workflows build
// on. All balance movement in the system funnels through these.
type LedgerCoreSvc interface {
	// ResolveAccount maps an account reference to a concrete account.
	// Legacy-type resolution fails with apperrors.ErrNotFound when no
	// account matches and apperrors.ErrAmbiguousAccount when several do.
	ResolveAccount(ctx context.Context, ref domain.AccountRef) (*domain.Account, error)

	// ApplyTransaction runs ApplyTransactionInTx in its own transaction.
	ApplyTransaction(ctx context.Context, params ApplyTransactionParams, userID string) (*domain.Transaction, error)

	// ApplyTransactionInTx locks the account row, appends a ledger entry
	// with its balance snapshot, and writes the new balance, all within the
	// caller's transaction.
	ApplyTransactionInTx(ctx context.Context, tx pgx.Tx, params ApplyTransactionParams, userID string) (*domain.Transaction, error)

	// AdjustByDeltaInTx appends a correction entry for an edit that changed
	// how much moved through an account. delta is debit-positive: positive
	// debits the account, negative credits it, zero writes nothing and
	// returns (nil, nil). The account ledger is recomputed afterwards so the
	// correction settles into date order.
	AdjustByDeltaInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, source domain.EntrySource, referenceID string, particulars string, occurredAt time.Time, userID string) (*domain.Transaction, error)

	// RecomputeAccountLedger replays an account's full entry history,
	// rewriting every balance_after and the account balance. The stored
	// entries are the source of truth; this repairs any drift.
	RecomputeAccountLedger(ctx context.Context, accountID string, userID string) error

	// RecomputeAccountLedgerInTx is RecomputeAccountLedger within the
	// caller's transaction.
	RecomputeAccountLedgerInTx(ctx context.Context, tx pgx.Tx, accountID string, userID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces.
type LedgerSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	LedgerCoreSvc
}
