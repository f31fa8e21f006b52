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

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for customer memos.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryWithTx {
	return &PgxSaleRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepositoryWithTx = (*PgxSaleRepository)(nil)

const saleSelectColumns = `sale_id, memo_no, COALESCE(customer_id, ''), customer_name, total_amount, paid_amount, payment_due, COALESCE(account_id, ''), legacy_payment_type, sale_date, created_at, created_by, last_updated_at, last_updated_by`

const saleLineColumns = `sale_id, line_no, product_id, name, qty, price, subtotal`

func scanSale(row pgx.Row) (*models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.MemoNo,
		&m.CustomerID,
		&m.CustomerName,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.PaymentDue,
		&m.AccountID,
		&m.LegacyPaymentType,
		&m.SaleDate,
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

func insertSaleLines(ctx context.Context, tx pgx.Tx, saleID string, lines []domain.SaleLine) error {
	query := `
		INSERT INTO sale_lines (` + saleLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, l := range mapping.ToModelSaleLines(saleID, lines) {
		batch.Queue(query, l.SaleID, l.LineNo, l.ProductID, l.Name, l.Qty, l.Price, l.Subtotal)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert sale lines for %s: %w", saleID, err)
		}
	}
	return nil
}

func (r *PgxSaleRepository) loadSaleLines(ctx context.Context, q queryer, saleID string) ([]domain.SaleLine, error) {
	query := `SELECT ` + saleLineColumns + ` FROM sale_lines WHERE sale_id = $1 ORDER BY line_no ASC;`

	rows, err := q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale lines for %s: %w", saleID, err)
	}
	defer rows.Close()

	var ms []models.SaleLine
	for rows.Next() {
		var m models.SaleLine
		if err := rows.Scan(&m.SaleID, &m.LineNo, &m.ProductID, &m.Name, &m.Qty, &m.Price, &m.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan sale line row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating sale line rows: %w", rows.Err())
	}
	return mapping.ToDomainSaleLines(ms), nil
}

// SaveSaleInTx inserts a sale header and its lines.
func (r *PgxSaleRepository) SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)

	query := `
		INSERT INTO sales (sale_id, memo_no, customer_id, customer_name, total_amount, paid_amount, payment_due, account_id, legacy_payment_type, sale_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.SaleID,
		m.MemoNo,
		m.CustomerID,
		m.CustomerName,
		m.TotalAmount,
		m.PaidAmount,
		m.PaymentDue,
		m.AccountID,
		m.LegacyPaymentType,
		m.SaleDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: sale %s already exists", apperrors.ErrDuplicate, m.SaleID)
		}
		return fmt.Errorf("failed to save sale %s: %w", m.SaleID, err)
	}

	return insertSaleLines(ctx, tx, sale.SaleID, sale.Lines)
}

// FindSaleByID retrieves a sale with its lines.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleSelectColumns + ` FROM sales WHERE sale_id = $1;`

	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}

	sale := mapping.ToDomainSale(*m)
	sale.Lines, err = r.loadSaleLines(ctx, r.Pool, saleID)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindSaleByIDForUpdate retrieves a sale with its lines, locking the header
// row within the given transaction.
func (r *PgxSaleRepository) FindSaleByIDForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleSelectColumns + ` FROM sales WHERE sale_id = $1 FOR UPDATE;`

	m, err := scanSale(tx.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		return nil, fmt.Errorf("failed to lock sale %s: %w", saleID, err)
	}

	sale := mapping.ToDomainSale(*m)
	sale.Lines, err = r.loadSaleLines(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// ReplaceSaleInTx overwrites a sale header and replaces its lines.
func (r *PgxSaleRepository) ReplaceSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)

	query := `
		UPDATE sales
		SET memo_no = $1, customer_id = NULLIF($2, ''), customer_name = $3, total_amount = $4,
		    paid_amount = $5, payment_due = $6, account_id = NULLIF($7, ''), legacy_payment_type = $8,
		    sale_date = $9, last_updated_at = $10, last_updated_by = $11
		WHERE sale_id = $12;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.MemoNo,
		m.CustomerID,
		m.CustomerName,
		m.TotalAmount,
		m.PaidAmount,
		m.PaymentDue,
		m.AccountID,
		m.LegacyPaymentType,
		m.SaleDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SaleID,
	)
	if err != nil {
		return fmt.Errorf("failed to replace sale %s: %w", m.SaleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, m.SaleID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_lines WHERE sale_id = $1;`, m.SaleID); err != nil {
		return fmt.Errorf("failed to clear sale lines for %s: %w", m.SaleID, err)
	}
	return insertSaleLines(ctx, tx, sale.SaleID, sale.Lines)
}

// UpdateSalePaymentInTx updates paid_amount and payment_due after a due
// receipt.
func (r *PgxSaleRepository) UpdateSalePaymentInTx(ctx context.Context, tx pgx.Tx, saleID string, paidAmount, paymentDue decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE sales
		SET paid_amount = $1, payment_due = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $5;
	`
	cmdTag, err := tx.Exec(ctx, query, paidAmount, paymentDue, now, userID, saleID)
	if err != nil {
		return fmt.Errorf("failed to update payment for sale %s: %w", saleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	return nil
}

// DeleteSaleInTx removes a sale and its lines.
func (r *PgxSaleRepository) DeleteSaleInTx(ctx context.Context, tx pgx.Tx, saleID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM sale_lines WHERE sale_id = $1;`, saleID); err != nil {
		return fmt.Errorf("failed to delete sale lines for %s: %w", saleID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		return fmt.Errorf("failed to delete sale %s: %w", saleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	return nil
}

// ListSales retrieves a paginated list of sale headers, newest first. Lines
// are not loaded for list views.
func (r *PgxSaleRepository) ListSales(ctx context.Context, limit int, offset int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + saleSelectColumns + ` FROM sales ORDER BY sale_date DESC, sale_id DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, mapping.ToDomainSale(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", rows.Err())
	}
	return sales, nil
}
