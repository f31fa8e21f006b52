package domain

import "github.com/shopspring/decimal"

// Category groups products for lookup endpoints.
type Category struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	AuditFields
}

// Product is catalogue data; stock state lives on InventoryItem.
type Product struct {
	ProductID  string          `json:"productID"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryID"`
	SalePrice  decimal.Decimal `json:"salePrice"`
	AuditFields
}
