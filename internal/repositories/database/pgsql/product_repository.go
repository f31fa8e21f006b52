package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	"github.com/projuktisheba/stockledger-backend/internal/models"
	"github.com/projuktisheba/stockledger-backend/internal/utils/mapping"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for catalogue data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, name, COALESCE(category_id, ''), sale_price, created_at, created_by, last_updated_at, last_updated_by`

const categoryColumns = `category_id, name, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.CategoryID,
		&m.SalePrice,
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

func scanCategory(row pgx.Row) (*models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
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

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	product := mapping.ToDomainProduct(*m)
	return &product, nil
}

// SaveProduct inserts or updates a product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (product_id, name, category_id, sale_price, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
		ON CONFLICT (product_id) DO UPDATE
		SET name = EXCLUDED.name, category_id = EXCLUDED.category_id, sale_price = EXCLUDED.sale_price,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.CategoryID,
		m.SalePrice,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save product %s: %w", m.ProductID, err)
	}
	return nil
}

// ListProducts retrieves a paginated list of products.
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, mapping.ToDomainProduct(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}
	return products, nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxProductRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}

	category := domain.Category{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	return &category, nil
}

// SaveCategory inserts a new category.
func (r *PgxProductRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %s already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

// ListCategories retrieves a paginated list of categories.
func (r *PgxProductRepository) ListCategories(ctx context.Context, limit int, offset int) ([]domain.Category, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name ASC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, domain.Category{
			CategoryID: m.CategoryID,
			Name:       m.Name,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}
	return categories, nil
}
