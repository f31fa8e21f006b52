package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	"github.com/projuktisheba/stockledger-backend/internal/models"
	"github.com/projuktisheba/stockledger-backend/internal/utils/mapping"
)

type PgxSupplierRepository struct {
	BaseRepository
}

// newPgxSupplierRepository creates a new repository for supplier aggregates.
func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryWithTx {
	return &PgxSupplierRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SupplierRepositoryWithTx = (*PgxSupplierRepository)(nil)

const supplierColumns = `supplier_id, name, phone, email, address, total_purchase, total_due, last_purchase_date, last_payment_date, supplied_products, created_at, created_by, last_updated_at, last_updated_by`

const counterpartyEventColumns = `event_id, counterparty_id, date, type, reference_id, amount, paid_amount, due_amount, remarks`

func scanSupplier(row pgx.Row) (*models.Supplier, error) {
	var m models.Supplier
	err := row.Scan(
		&m.SupplierID,
		&m.Name,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.TotalPurchase,
		&m.TotalDue,
		&m.LastPurchaseDate,
		&m.LastPaymentDate,
		&m.SuppliedProducts,
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

func scanCounterpartyEvent(row pgx.Row) (*models.CounterpartyEvent, error) {
	var m models.CounterpartyEvent
	err := row.Scan(
		&m.EventID,
		&m.CounterpartyID,
		&m.Date,
		&m.Type,
		&m.ReferenceID,
		&m.Amount,
		&m.PaidAmount,
		&m.DueAmount,
		&m.Remarks,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func appendCounterpartyEvent(ctx context.Context, tx pgx.Tx, event domain.CounterpartyEvent) error {
	m := mapping.ToModelCounterpartyEvent(event)

	query := `
		INSERT INTO counterparty_events (` + counterpartyEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.EventID,
		m.CounterpartyID,
		m.Date,
		m.Type,
		m.ReferenceID,
		m.Amount,
		m.PaidAmount,
		m.DueAmount,
		m.Remarks,
	)
	if err != nil {
		return fmt.Errorf("failed to append history event %s: %w", m.EventID, err)
	}
	return nil
}

func listCounterpartyEvents(ctx context.Context, q queryer, counterpartyID string) ([]domain.CounterpartyEvent, error) {
	query := `SELECT ` + counterpartyEventColumns + ` FROM counterparty_events WHERE counterparty_id = $1 ORDER BY date DESC, event_id DESC;`

	rows, err := q.Query(ctx, query, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for counterparty %s: %w", counterpartyID, err)
	}
	defer rows.Close()

	events := []domain.CounterpartyEvent{}
	for rows.Next() {
		m, err := scanCounterpartyEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history event row: %w", err)
		}
		events = append(events, mapping.ToDomainCounterpartyEvent(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating history event rows: %w", rows.Err())
	}
	return events, nil
}

// FindSupplierByID retrieves a supplier by its ID.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1;`

	m, err := scanSupplier(r.Pool.QueryRow(ctx, query, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
		}
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}

	supplier := mapping.ToDomainSupplier(*m)
	return &supplier, nil
}

// SaveSupplier inserts or updates a supplier's profile and aggregates.
func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)

	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (supplier_id) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone, email = EXCLUDED.email,
		    address = EXCLUDED.address, total_purchase = EXCLUDED.total_purchase,
		    total_due = EXCLUDED.total_due, last_purchase_date = EXCLUDED.last_purchase_date,
		    last_payment_date = EXCLUDED.last_payment_date, supplied_products = EXCLUDED.supplied_products,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SupplierID,
		m.Name,
		m.Phone,
		m.Email,
		m.Address,
		m.TotalPurchase,
		m.TotalDue,
		m.LastPurchaseDate,
		m.LastPaymentDate,
		m.SuppliedProducts,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save supplier %s: %w", m.SupplierID, err)
	}
	return nil
}

// ListSuppliers retrieves a paginated list of suppliers.
func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, limit int, offset int) ([]domain.Supplier, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY name ASC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		m, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		suppliers = append(suppliers, mapping.ToDomainSupplier(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating supplier rows: %w", rows.Err())
	}
	return suppliers, nil
}

// ListSupplierHistory retrieves a supplier's audit history, newest first.
func (r *PgxSupplierRepository) ListSupplierHistory(ctx context.Context, supplierID string) ([]domain.CounterpartyEvent, error) {
	return listCounterpartyEvents(ctx, r.Pool, supplierID)
}

// FindSupplierForUpdate locks the supplier row within the given transaction.
func (r *PgxSupplierRepository) FindSupplierForUpdate(ctx context.Context, tx pgx.Tx, supplierID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1 FOR UPDATE;`

	m, err := scanSupplier(tx.QueryRow(ctx, query, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
		}
		return nil, fmt.Errorf("failed to lock supplier %s: %w", supplierID, err)
	}

	supplier := mapping.ToDomainSupplier(*m)
	return &supplier, nil
}

// ApplyAggregatesInTx shifts total_purchase/total_due by the given deltas,
// merges product names into the supplied set, and bumps the relevant date
// columns.
func (r *PgxSupplierRepository) ApplyAggregatesInTx(ctx context.Context, tx pgx.Tx, supplierID string, purchaseDelta, dueDelta decimal.Decimal, productNames []string, purchaseDate, paymentDate *time.Time, userID string, now time.Time) error {
	query := `
		UPDATE suppliers
		SET total_purchase = total_purchase + $1,
		    total_due = total_due + $2,
		    supplied_products = ARRAY(SELECT DISTINCT p FROM unnest(supplied_products || COALESCE($3::text[], '{}')) AS p ORDER BY p),
		    last_purchase_date = COALESCE($4, last_purchase_date),
		    last_payment_date = COALESCE($5, last_payment_date),
		    last_updated_at = $6, last_updated_by = $7
		WHERE supplier_id = $8;
	`
	cmdTag, err := tx.Exec(ctx, query, purchaseDelta, dueDelta, productNames, purchaseDate, paymentDate, now, userID, supplierID)
	if err != nil {
		return fmt.Errorf("failed to apply aggregates for supplier %s: %w", supplierID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
	}
	return nil
}

// AppendHistoryInTx appends an audit entry to the supplier history.
func (r *PgxSupplierRepository) AppendHistoryInTx(ctx context.Context, tx pgx.Tx, event domain.CounterpartyEvent) error {
	return appendCounterpartyEvent(ctx, tx, event)
}

// DeleteHistoryByReferenceInTx removes history entries tied to a rolled back
// purchase.
func (r *PgxSupplierRepository) DeleteHistoryByReferenceInTx(ctx context.Context, tx pgx.Tx, supplierID, referenceID string) error {
	query := `DELETE FROM counterparty_events WHERE counterparty_id = $1 AND reference_id = $2;`

	if _, err := tx.Exec(ctx, query, supplierID, referenceID); err != nil {
		return fmt.Errorf("failed to delete history for supplier %s reference %s: %w", supplierID, referenceID, err)
	}
	return nil
}
