package models

import "github.com/shopspring/decimal"

// Category mirrors the categories table.
type Category struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	AuditFields
}

// Product mirrors the products table.
type Product struct {
	ProductID  string          `db:"product_id"`
	Name       string          `db:"name"`
	CategoryID string          `db:"category_id"` // nullable in DB
	SalePrice  decimal.Decimal `db:"sale_price"`
	AuditFields
}
