package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// PurchaseLineRequest is one product line on an incoming invoice.
type PurchaseLineRequest struct {
	ProductID     string          `json:"productID" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Qty           int64           `json:"qty" binding:"required,gt=0"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" binding:"required"`
}

// CreatePurchaseRequest defines the data needed to record a supplier invoice.
// The payment account may be named by AccountID or by the legacy PaymentType
// string. TotalAmount is computed from the lines server-side.
type CreatePurchaseRequest struct {
	SupplierID   string                `json:"supplierID"`
	Lines        []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaidAmount   decimal.Decimal       `json:"paidAmount"`
	AccountID    string                `json:"accountID"`
	PaymentType  string                `json:"paymentType"`
	PurchaseDate time.Time             `json:"purchaseDate" binding:"required"`
}

// AccountRef builds the domain account reference from the request fields.
func (r CreatePurchaseRequest) AccountRef() domain.AccountRef {
	return domain.AccountRef{AccountID: r.AccountID, LegacyType: r.PaymentType}
}

// UpdatePurchaseRequest carries the full replacement state for an invoice
// edit. The prior invoice's effects are reversed before these are applied.
type UpdatePurchaseRequest struct {
	SupplierID   string                `json:"supplierID"`
	Lines        []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaidAmount   decimal.Decimal       `json:"paidAmount"`
	AccountID    string                `json:"accountID"`
	PaymentType  string                `json:"paymentType"`
	PurchaseDate time.Time             `json:"purchaseDate" binding:"required"`
}

// AccountRef builds the domain account reference from the request fields.
func (r UpdatePurchaseRequest) AccountRef() domain.AccountRef {
	return domain.AccountRef{AccountID: r.AccountID, LegacyType: r.PaymentType}
}

// PayDueRequest defines a payment against an invoice's outstanding due.
type PayDueRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	AccountID   string          `json:"accountID"`
	PaymentType string          `json:"paymentType"`
	Date        *time.Time      `json:"date"`
	Remarks     string          `json:"remarks"`
}

// AccountRef builds the domain account reference from the request fields.
func (r PayDueRequest) AccountRef() domain.AccountRef {
	return domain.AccountRef{AccountID: r.AccountID, LegacyType: r.PaymentType}
}

// PurchaseLineResponse is one product line on a stored invoice.
type PurchaseLineResponse struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Qty           int64           `json:"qty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse defines the data returned for a supplier invoice.
type PurchaseResponse struct {
	PurchaseID   string                 `json:"purchaseID"`
	SupplierID   string                 `json:"supplierID,omitempty"`
	Lines        []PurchaseLineResponse `json:"lines"`
	TotalAmount  decimal.Decimal        `json:"totalAmount"`
	PaidAmount   decimal.Decimal        `json:"paidAmount"`
	PaymentDue   decimal.Decimal        `json:"paymentDue"`
	AccountID    string                 `json:"accountID,omitempty"`
	PaymentType  string                 `json:"paymentType,omitempty"`
	PurchaseDate time.Time              `json:"purchaseDate"`
	CreatedAt    time.Time              `json:"createdAt"`
}

// ToPurchaseResponse converts a domain.Purchase to its DTO.
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		PurchaseID:   p.PurchaseID,
		SupplierID:   p.SupplierID,
		Lines:        make([]PurchaseLineResponse, len(p.Lines)),
		TotalAmount:  p.TotalAmount,
		PaidAmount:   p.PaidAmount,
		PaymentDue:   p.PaymentDue,
		AccountID:    p.AccountID,
		PaymentType:  p.LegacyPaymentType,
		PurchaseDate: p.PurchaseDate,
		CreatedAt:    p.CreatedAt,
	}
	for i, l := range p.Lines {
		resp.Lines[i] = PurchaseLineResponse{
			ProductID:     l.ProductID,
			Name:          l.Name,
			Qty:           l.Qty,
			PurchasePrice: l.PurchasePrice,
			Subtotal:      l.Subtotal,
		}
	}
	return resp
}

// ToListPurchaseResponse converts a slice of domain.Purchase.
func ToListPurchaseResponse(purchases []domain.Purchase) []PurchaseResponse {
	res := make([]PurchaseResponse, len(purchases))
	for i, p := range purchases {
		res[i] = ToPurchaseResponse(&p)
	}
	return res
}

// ListPurchasesParams defines query parameters for listing invoices.
type ListPurchasesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
