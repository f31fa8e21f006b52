package repositories

import (
	"context"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// ProductRepositoryFacade defines storage operations for catalogue data.
type ProductRepositoryFacade interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	SaveProduct(ctx context.Context, product domain.Product) error
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)

	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
	ListCategories(ctx context.Context, limit int, offset int) ([]domain.Category, error)
}
