package services

import (
	"context"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

// ProductSvcFacade defines catalogue operations for products and categories.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)

	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	ListCategories(ctx context.Context, limit int, offset int) ([]domain.Category, error)
}
