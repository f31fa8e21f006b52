package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	"github.com/projuktisheba/stockledger-backend/internal/models"
	"github.com/projuktisheba/stockledger-backend/internal/utils/mapping"
	"github.com/projuktisheba/stockledger-backend/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, account_id, entry_source, transaction_type, amount, balance_after, particulars, reference_id, payment_details, occurred_at, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.EntrySource,
		&m.TransactionType,
		&m.Amount,
		&m.BalanceAfter,
		&m.Particulars,
		&m.ReferenceID,
		&m.PaymentDetails,
		&m.OccurredAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// InsertTransactionInTx appends a ledger entry within the given transaction.
func (r *PgxTransactionRepository) InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.EntrySource,
		m.TransactionType,
		m.Amount,
		m.BalanceAfter,
		m.Particulars,
		m.ReferenceID,
		m.PaymentDetails,
		m.OccurredAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionsByAccountInTx retrieves every entry for an account in
// chronological order, locking the rows for the duration of the transaction.
func (r *PgxTransactionRepository) FindTransactionsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY occurred_at ASC, transaction_id ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// RewriteBalancesInTx overwrites balance_after for the given entries in a
// single batch.
func (r *PgxTransactionRepository) RewriteBalancesInTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	query := `UPDATE transactions SET balance_after = $1 WHERE transaction_id = $2;`

	batch := &pgx.Batch{}
	for _, txn := range txns {
		batch.Queue(query, txn.BalanceAfter, txn.TransactionID)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range txns {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to rewrite transaction balances: %w", err)
		}
	}
	return nil
}

// FindTransactionByReferenceInTx locates the single entry tied to a
// purchase or sale by reference id and entry source.
func (r *PgxTransactionRepository) FindTransactionByReferenceInTx(ctx context.Context, tx pgx.Tx, referenceID string, source domain.EntrySource) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference_id = $1 AND entry_source = $2
		LIMIT 1;
	`
	m, err := scanTransaction(tx.QueryRow(ctx, query, referenceID, string(source)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction for reference %s source %s", apperrors.ErrNotFound, referenceID, source)
		}
		return nil, fmt.Errorf("failed to find transaction by reference %s: %w", referenceID, err)
	}

	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// DeleteTransactionsByReferenceInTx removes all entries referencing a
// purchase or sale id, returning the distinct account ids that were touched.
func (r *PgxTransactionRepository) DeleteTransactionsByReferenceInTx(ctx context.Context, tx pgx.Tx, referenceID string) ([]string, error) {
	query := `DELETE FROM transactions WHERE reference_id = $1 RETURNING account_id;`

	rows, err := tx.Query(ctx, query, referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete transactions for reference %s: %w", referenceID, err)
	}
	defer rows.Close()

	seen := map[string]struct{}{}
	var accountIDs []string
	for rows.Next() {
		var accountID string
		if err := rows.Scan(&accountID); err != nil {
			return nil, fmt.Errorf("failed to scan deleted transaction row: %w", err)
		}
		if _, ok := seen[accountID]; ok {
			continue
		}
		seen[accountID] = struct{}{}
		accountIDs = append(accountIDs, accountID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating deleted transaction rows: %w", rows.Err())
	}
	return accountIDs, nil
}

// ListTransactionsByAccount retrieves a keyset-paginated page of entries for
// an account, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
	`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		occurredAt, rowID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (occurred_at, transaction_id) < ($2, $3)`
		args = append(args, occurredAt, rowID)
	}

	// Fetch one extra row to decide whether another page exists.
	query += fmt.Sprintf(` ORDER BY occurred_at DESC, transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, *m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.OccurredAt, last.TransactionID)
		newNextToken = &token
	}

	return mapping.ToDomainTransactionSlice(ms), newNextToken, nil
}
