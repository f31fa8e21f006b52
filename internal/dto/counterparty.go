package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// CreateSupplierRequest defines the data needed to register a supplier.
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// UpdateSupplierRequest defines the editable contact fields of a supplier.
// Aggregate totals only move through purchases and due payments.
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
}

// SupplierResponse defines the data returned for a supplier.
type SupplierResponse struct {
	SupplierID       string          `json:"supplierID"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone,omitempty"`
	Email            string          `json:"email,omitempty"`
	Address          string          `json:"address,omitempty"`
	TotalPurchase    decimal.Decimal `json:"totalPurchase"`
	TotalDue         decimal.Decimal `json:"totalDue"`
	LastPurchaseDate *time.Time      `json:"lastPurchaseDate,omitempty"`
	LastPaymentDate  *time.Time      `json:"lastPaymentDate,omitempty"`
	SuppliedProducts []string        `json:"suppliedProducts"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToSupplierResponse converts a domain.Supplier to its DTO.
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:       s.SupplierID,
		Name:             s.Name,
		Phone:            s.Phone,
		Email:            s.Email,
		Address:          s.Address,
		TotalPurchase:    s.TotalPurchase,
		TotalDue:         s.TotalDue,
		LastPurchaseDate: s.LastPurchaseDate,
		LastPaymentDate:  s.LastPaymentDate,
		SuppliedProducts: s.SuppliedProducts,
		CreatedAt:        s.CreatedAt,
	}
}

// ToListSupplierResponse converts a slice of domain.Supplier.
func ToListSupplierResponse(suppliers []domain.Supplier) []SupplierResponse {
	res := make([]SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		res[i] = ToSupplierResponse(&s)
	}
	return res
}

// CreateCustomerRequest defines the data needed to register a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// UpdateCustomerRequest defines the editable contact fields of a customer.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID        string          `json:"customerID"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone,omitempty"`
	Email             string          `json:"email,omitempty"`
	Address           string          `json:"address,omitempty"`
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalDue          decimal.Decimal `json:"totalDue"`
	LastSaleDate      *time.Time      `json:"lastSaleDate,omitempty"`
	LastPaymentDate   *time.Time      `json:"lastPaymentDate,omitempty"`
	PurchasedProducts []string        `json:"purchasedProducts"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to its DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:        c.CustomerID,
		Name:              c.Name,
		Phone:             c.Phone,
		Email:             c.Email,
		Address:           c.Address,
		TotalSales:        c.TotalSales,
		TotalDue:          c.TotalDue,
		LastSaleDate:      c.LastSaleDate,
		LastPaymentDate:   c.LastPaymentDate,
		PurchasedProducts: c.PurchasedProducts,
		CreatedAt:         c.CreatedAt,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer.
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return res
}

// CounterpartyEventResponse is one supplier/customer history record.
type CounterpartyEventResponse struct {
	EventID     string          `json:"eventID"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	ReferenceID string          `json:"referenceID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	DueAmount   decimal.Decimal `json:"dueAmount"`
	Remarks     string          `json:"remarks,omitempty"`
}

// ToCounterpartyEventResponses converts a slice of domain.CounterpartyEvent.
func ToCounterpartyEventResponses(events []domain.CounterpartyEvent) []CounterpartyEventResponse {
	res := make([]CounterpartyEventResponse, len(events))
	for i, e := range events {
		res[i] = CounterpartyEventResponse{
			EventID:     e.EventID,
			Date:        e.Date,
			Type:        string(e.Type),
			ReferenceID: e.ReferenceID,
			Amount:      e.Amount,
			PaidAmount:  e.PaidAmount,
			DueAmount:   e.DueAmount,
			Remarks:     e.Remarks,
		}
	}
	return res
}

// ListCounterpartiesParams defines query parameters for supplier/customer
// listings.
type ListCounterpartiesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
