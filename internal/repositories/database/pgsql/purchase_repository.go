package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	"github.com/projuktisheba/stockledger-backend/internal/models"
	"github.com/projuktisheba/stockledger-backend/internal/utils/mapping"
)

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for supplier invoices.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryWithTx {
	return &PgxPurchaseRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseRepositoryWithTx = (*PgxPurchaseRepository)(nil)

// supplier_id and account_id are nullable FKs, stored NULL for empty strings
// and read back as ''.
const purchaseSelectColumns = `purchase_id, COALESCE(supplier_id, ''), total_amount, paid_amount, payment_due, COALESCE(account_id, ''), legacy_payment_type, purchase_date, created_at, created_by, last_updated_at, last_updated_by`

const purchaseLineColumns = `purchase_id, line_no, product_id, name, qty, purchase_price, subtotal`

func scanPurchase(row pgx.Row) (*models.Purchase, error) {
	var m models.Purchase
	err := row.Scan(
		&m.PurchaseID,
		&m.SupplierID,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.PaymentDue,
		&m.AccountID,
		&m.LegacyPaymentType,
		&m.PurchaseDate,
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

func insertPurchaseLines(ctx context.Context, tx pgx.Tx, purchaseID string, lines []domain.PurchaseLine) error {
	query := `
		INSERT INTO purchase_lines (` + purchaseLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, l := range mapping.ToModelPurchaseLines(purchaseID, lines) {
		batch.Queue(query, l.PurchaseID, l.LineNo, l.ProductID, l.Name, l.Qty, l.PurchasePrice, l.Subtotal)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert purchase lines for %s: %w", purchaseID, err)
		}
	}
	return nil
}

func (r *PgxPurchaseRepository) loadPurchaseLines(ctx context.Context, q queryer, purchaseID string) ([]domain.PurchaseLine, error) {
	query := `SELECT ` + purchaseLineColumns + ` FROM purchase_lines WHERE purchase_id = $1 ORDER BY line_no ASC;`

	rows, err := q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase lines for %s: %w", purchaseID, err)
	}
	defer rows.Close()

	var ms []models.PurchaseLine
	for rows.Next() {
		var m models.PurchaseLine
		if err := rows.Scan(&m.PurchaseID, &m.LineNo, &m.ProductID, &m.Name, &m.Qty, &m.PurchasePrice, &m.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan purchase line row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating purchase line rows: %w", rows.Err())
	}
	return mapping.ToDomainPurchaseLines(ms), nil
}

// SavePurchaseInTx inserts a purchase header and its lines.
func (r *PgxPurchaseRepository) SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error {
	m := mapping.ToModelPurchase(purchase)

	query := `
		INSERT INTO purchases (purchase_id, supplier_id, total_amount, paid_amount, payment_due, account_id, legacy_payment_type, purchase_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.PurchaseID,
		m.SupplierID,
		m.TotalAmount,
		m.PaidAmount,
		m.PaymentDue,
		m.AccountID,
		m.LegacyPaymentType,
		m.PurchaseDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: purchase %s already exists", apperrors.ErrDuplicate, m.PurchaseID)
		}
		return fmt.Errorf("failed to save purchase %s: %w", m.PurchaseID, err)
	}

	return insertPurchaseLines(ctx, tx, purchase.PurchaseID, purchase.Lines)
}

// FindPurchaseByID retrieves a purchase with its lines.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseSelectColumns + ` FROM purchases WHERE purchase_id = $1;`

	m, err := scanPurchase(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
		}
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}

	purchase := mapping.ToDomainPurchase(*m)
	purchase.Lines, err = r.loadPurchaseLines(ctx, r.Pool, purchaseID)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// FindPurchaseByIDForUpdate retrieves a purchase with its lines, locking the
// header row within the given transaction.
func (r *PgxPurchaseRepository) FindPurchaseByIDForUpdate(ctx context.Context, tx pgx.Tx, purchaseID string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseSelectColumns + ` FROM purchases WHERE purchase_id = $1 FOR UPDATE;`

	m, err := scanPurchase(tx.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
		}
		return nil, fmt.Errorf("failed to lock purchase %s: %w", purchaseID, err)
	}

	purchase := mapping.ToDomainPurchase(*m)
	purchase.Lines, err = r.loadPurchaseLines(ctx, tx, purchaseID)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ReplacePurchaseInTx overwrites a purchase header and replaces its lines.
func (r *PgxPurchaseRepository) ReplacePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error {
	m := mapping.ToModelPurchase(purchase)

	query := `
		UPDATE purchases
		SET supplier_id = NULLIF($1, ''), total_amount = $2, paid_amount = $3, payment_due = $4,
		    account_id = NULLIF($5, ''), legacy_payment_type = $6, purchase_date = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE purchase_id = $10;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.SupplierID,
		m.TotalAmount,
		m.PaidAmount,
		m.PaymentDue,
		m.AccountID,
		m.LegacyPaymentType,
		m.PurchaseDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.PurchaseID,
	)
	if err != nil {
		return fmt.Errorf("failed to replace purchase %s: %w", m.PurchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, m.PurchaseID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_lines WHERE purchase_id = $1;`, m.PurchaseID); err != nil {
		return fmt.Errorf("failed to clear purchase lines for %s: %w", m.PurchaseID, err)
	}
	return insertPurchaseLines(ctx, tx, purchase.PurchaseID, purchase.Lines)
}

// UpdatePurchasePaymentInTx updates paid_amount and payment_due after a due
// payment.
func (r *PgxPurchaseRepository) UpdatePurchasePaymentInTx(ctx context.Context, tx pgx.Tx, purchaseID string, paidAmount, paymentDue decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE purchases
		SET paid_amount = $1, payment_due = $2, last_updated_at = $3, last_updated_by = $4
		WHERE purchase_id = $5;
	`
	cmdTag, err := tx.Exec(ctx, query, paidAmount, paymentDue, now, userID, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to update payment for purchase %s: %w", purchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
	}
	return nil
}

// DeletePurchaseInTx removes a purchase and its lines.
func (r *PgxPurchaseRepository) DeletePurchaseInTx(ctx context.Context, tx pgx.Tx, purchaseID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM purchase_lines WHERE purchase_id = $1;`, purchaseID); err != nil {
		return fmt.Errorf("failed to delete purchase lines for %s: %w", purchaseID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM purchases WHERE purchase_id = $1;`, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to delete purchase %s: %w", purchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
	}
	return nil
}

// ListPurchases retrieves a paginated list of purchase headers, newest first.
// Lines are not loaded for list views.
func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, limit int, offset int) ([]domain.Purchase, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + purchaseSelectColumns + ` FROM purchases ORDER BY purchase_date DESC, purchase_id DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	purchases := []domain.Purchase{}
	for rows.Next() {
		m, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		purchases = append(purchases, mapping.ToDomainPurchase(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating purchase rows: %w", rows.Err())
	}
	return purchases, nil
}
