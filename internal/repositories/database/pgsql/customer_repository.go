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

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer aggregates.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryWithTx {
	return &PgxCustomerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryWithTx = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, phone, email, address, total_sales, total_due, last_sale_date, last_payment_date, purchased_products, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.TotalSales,
		&m.TotalDue,
		&m.LastSaleDate,
		&m.LastPaymentDate,
		&m.PurchasedProducts,
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

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}

	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// SaveCustomer inserts or updates a customer's profile and aggregates.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (customer_id) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone, email = EXCLUDED.email,
		    address = EXCLUDED.address, total_sales = EXCLUDED.total_sales,
		    total_due = EXCLUDED.total_due, last_sale_date = EXCLUDED.last_sale_date,
		    last_payment_date = EXCLUDED.last_payment_date, purchased_products = EXCLUDED.purchased_products,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.Phone,
		m.Email,
		m.Address,
		m.TotalSales,
		m.TotalDue,
		m.LastSaleDate,
		m.LastPaymentDate,
		m.PurchasedProducts,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer %s: %w", m.CustomerID, err)
	}
	return nil
}

// ListCustomers retrieves a paginated list of customers.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name ASC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}
	return customers, nil
}

// ListCustomerHistory retrieves a customer's audit history, newest first.
func (r *PgxCustomerRepository) ListCustomerHistory(ctx context.Context, customerID string) ([]domain.CounterpartyEvent, error) {
	return listCounterpartyEvents(ctx, r.Pool, customerID)
}

// FindCustomerForUpdate locks the customer row within the given transaction.
func (r *PgxCustomerRepository) FindCustomerForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 FOR UPDATE;`

	m, err := scanCustomer(tx.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		return nil, fmt.Errorf("failed to lock customer %s: %w", customerID, err)
	}

	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// ApplyAggregatesInTx shifts total_sales/total_due by the given deltas,
// merges product names into the purchased set, and bumps the relevant date
// columns.
func (r *PgxCustomerRepository) ApplyAggregatesInTx(ctx context.Context, tx pgx.Tx, customerID string, salesDelta, dueDelta decimal.Decimal, productNames []string, saleDate, paymentDate *time.Time, userID string, now time.Time) error {
	query := `
		UPDATE customers
		SET total_sales = total_sales + $1,
		    total_due = total_due + $2,
		    purchased_products = ARRAY(SELECT DISTINCT p FROM unnest(purchased_products || COALESCE($3::text[], '{}')) AS p ORDER BY p),
		    last_sale_date = COALESCE($4, last_sale_date),
		    last_payment_date = COALESCE($5, last_payment_date),
		    last_updated_at = $6, last_updated_by = $7
		WHERE customer_id = $8;
	`
	cmdTag, err := tx.Exec(ctx, query, salesDelta, dueDelta, productNames, saleDate, paymentDate, now, userID, customerID)
	if err != nil {
		return fmt.Errorf("failed to apply aggregates for customer %s: %w", customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}
	return nil
}

// AppendHistoryInTx appends an audit entry to the customer history.
func (r *PgxCustomerRepository) AppendHistoryInTx(ctx context.Context, tx pgx.Tx, event domain.CounterpartyEvent) error {
	return appendCounterpartyEvent(ctx, tx, event)
}

// DeleteHistoryByReferenceInTx removes history entries tied to a rolled back
// sale.
func (r *PgxCustomerRepository) DeleteHistoryByReferenceInTx(ctx context.Context, tx pgx.Tx, customerID, referenceID string) error {
	query := `DELETE FROM counterparty_events WHERE counterparty_id = $1 AND reference_id = $2;`

	if _, err := tx.Exec(ctx, query, customerID, referenceID); err != nil {
		return fmt.Errorf("failed to delete history for customer %s reference %s: %w", customerID, referenceID, err)
	}
	return nil
}
