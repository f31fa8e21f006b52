package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// SaleLineRequest is one product line on an outgoing memo.
type SaleLineRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Qty       int64           `json:"qty" binding:"required,gt=0"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

// CreateSaleRequest defines the data needed to record a customer memo.
type CreateSaleRequest struct {
	MemoNo       string            `json:"memoNo"`
	CustomerID   string            `json:"customerID"`
	CustomerName string            `json:"customerName"`
	Lines        []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaidAmount   decimal.Decimal   `json:"paidAmount"`
	AccountID    string            `json:"accountID"`
	PaymentType  string            `json:"paymentType"`
	SaleDate     time.Time         `json:"saleDate" binding:"required"`
}

// AccountRef builds the domain account reference from the request fields.
func (r CreateSaleRequest) AccountRef() domain.AccountRef {
	return domain.AccountRef{AccountID: r.AccountID, LegacyType: r.PaymentType}
}

// UpdateSaleRequest carries the full replacement state for a memo edit.
type UpdateSaleRequest struct {
	MemoNo       string            `json:"memoNo"`
	CustomerID   string            `json:"customerID"`
	CustomerName string            `json:"customerName"`
	Lines        []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaidAmount   decimal.Decimal   `json:"paidAmount"`
	AccountID    string            `json:"accountID"`
	PaymentType  string            `json:"paymentType"`
	SaleDate     time.Time         `json:"saleDate" binding:"required"`
}

// AccountRef builds the domain account reference from the request fields.
func (r UpdateSaleRequest) AccountRef() domain.AccountRef {
	return domain.AccountRef{AccountID: r.AccountID, LegacyType: r.PaymentType}
}

// ReceiveDueRequest defines a collection against a memo's outstanding due.
type ReceiveDueRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	AccountID   string          `json:"accountID"`
	PaymentType string          `json:"paymentType"`
	Date        *time.Time      `json:"date"`
	Remarks     string          `json:"remarks"`
}

// AccountRef builds the domain account reference from the request fields.
func (r ReceiveDueRequest) AccountRef() domain.AccountRef {
	return domain.AccountRef{AccountID: r.AccountID, LegacyType: r.PaymentType}
}

// SaleLineResponse is one product line on a stored memo.
type SaleLineResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Qty       int64           `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse defines the data returned for a customer memo.
type SaleResponse struct {
	SaleID       string             `json:"saleID"`
	MemoNo       string             `json:"memoNo,omitempty"`
	CustomerID   string             `json:"customerID,omitempty"`
	CustomerName string             `json:"customerName,omitempty"`
	Lines        []SaleLineResponse `json:"lines"`
	TotalAmount  decimal.Decimal    `json:"totalAmount"`
	PaidAmount   decimal.Decimal    `json:"paidAmount"`
	PaymentDue   decimal.Decimal    `json:"paymentDue"`
	AccountID    string             `json:"accountID,omitempty"`
	PaymentType  string             `json:"paymentType,omitempty"`
	SaleDate     time.Time          `json:"saleDate"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// ToSaleResponse converts a domain.Sale to its DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	resp := SaleResponse{
		SaleID:       s.SaleID,
		MemoNo:       s.MemoNo,
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		Lines:        make([]SaleLineResponse, len(s.Lines)),
		TotalAmount:  s.TotalAmount,
		PaidAmount:   s.PaidAmount,
		PaymentDue:   s.PaymentDue,
		AccountID:    s.AccountID,
		PaymentType:  s.LegacyPaymentType,
		SaleDate:     s.SaleDate,
		CreatedAt:    s.CreatedAt,
	}
	for i, l := range s.Lines {
		resp.Lines[i] = SaleLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Qty:       l.Qty,
			Price:     l.Price,
			Subtotal:  l.Subtotal,
		}
	}
	return resp
}

// ToListSaleResponse converts a slice of domain.Sale.
func ToListSaleResponse(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i, s := range sales {
		res[i] = ToSaleResponse(&s)
	}
	return res
}

// ListSalesParams defines query parameters for listing memos.
type ListSalesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
