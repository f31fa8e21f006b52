package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

// productService manages catalogue data.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	if req.CategoryID != "" {
		if _, err := s.productRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: category %s does not exist", apperrors.ErrValidation, req.CategoryID)
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:  uuid.NewString(),
		Name:       req.Name,
		CategoryID: req.CategoryID,
		SalePrice:  req.SalePrice,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return &product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.CategoryID != nil {
		if *req.CategoryID != "" {
			if _, err := s.productRepo.FindCategoryByID(ctx, *req.CategoryID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: category %s does not exist", apperrors.ErrValidation, *req.CategoryID)
				}
				return nil, err
			}
		}
		product.CategoryID = *req.CategoryID
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: sale price cannot be negative", apperrors.ErrValidation)
		}
		product.SalePrice = *req.SalePrice
	}
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = userID

	if err := s.productRepo.SaveProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}
	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	return s.productRepo.ListProducts(ctx, params.Limit, params.Offset)
}

func (s *productService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return &category, nil
}

func (s *productService) ListCategories(ctx context.Context, limit int, offset int) ([]domain.Category, error) {
	return s.productRepo.ListCategories(ctx, limit, offset)
}
