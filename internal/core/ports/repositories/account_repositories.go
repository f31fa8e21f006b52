package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByType retrieves all accounts of a given type. For mobile
	// accounts, a non-empty method narrows the match to that wallet provider.
	FindAccountsByType(ctx context.Context, accountType domain.AccountType, method string) ([]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations used inside workflow
// transactions. Balance writes only happen through these.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an account and locks its row for
	// update within the given transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// UpdateAccountBalanceInTx writes a new balance for an account within the
	// given transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction
// capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
