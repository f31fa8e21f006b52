package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a product category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string    `json:"categoryID"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCategoryResponse converts a domain.Category to its DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, CreatedAt: c.CreatedAt}
}

// ToListCategoryResponse converts a slice of domain.Category.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToCategoryResponse(&c)
	}
	return res
}

// CreateProductRequest defines the data needed to create a catalogue product.
type CreateProductRequest struct {
	Name       string          `json:"name" binding:"required"`
	CategoryID string          `json:"categoryID"`
	SalePrice  decimal.Decimal `json:"salePrice"`
}

// UpdateProductRequest defines the editable fields of a product.
type UpdateProductRequest struct {
	Name       *string          `json:"name"`
	CategoryID *string          `json:"categoryID"`
	SalePrice  *decimal.Decimal `json:"salePrice"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID  string          `json:"productID"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryID,omitempty"`
	SalePrice  decimal.Decimal `json:"salePrice"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToProductResponse converts a domain.Product to its DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:  p.ProductID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		SalePrice:  p.SalePrice,
		CreatedAt:  p.CreatedAt,
	}
}

// ToListProductResponse converts a slice of domain.Product.
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = ToProductResponse(&p)
	}
	return res
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
