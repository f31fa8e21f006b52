package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// TransactionRepositoryFacade defines storage operations for ledger entries.
type TransactionRepositoryFacade interface {
	// InsertTransactionInTx appends a ledger entry within the given
	// transaction.
	InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// FindTransactionsByAccountInTx retrieves all entries for an account
	// ordered by (occurred_at, transaction_id) ascending, locked for update.
	// Used by the full ledger recompute.
	FindTransactionsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) ([]domain.Transaction, error)

	// RewriteBalancesInTx overwrites balance_after for the given entries.
	RewriteBalancesInTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction) error

	// FindTransactionByReferenceInTx locates the single entry tied to a
	// purchase/sale by reference id and entry source. Returns
	// apperrors.ErrNotFound when absent.
	FindTransactionByReferenceInTx(ctx context.Context, tx pgx.Tx, referenceID string, source domain.EntrySource) (*domain.Transaction, error)

	// DeleteTransactionsByReferenceInTx removes all entries referencing a
	// purchase/sale id and returns the distinct account ids that were
	// touched, so callers can recompute their ledgers.
	DeleteTransactionsByReferenceInTx(ctx context.Context, tx pgx.Tx, referenceID string) ([]string, error)

	// ListTransactionsByAccount retrieves a keyset-paginated list of entries
	// for an account, newest first. Returns the entries and a cursor for the
	// next page.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}
