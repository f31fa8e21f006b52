package services

import (
	"context"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

// PurchaseReaderSvc defines read operations for supplier invoices.
type PurchaseReaderSvc interface {
	// GetPurchaseByID retrieves an invoice with its lines.
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListPurchases retrieves a paginated list of invoices, newest first.
	ListPurchases(ctx context.Context, params dto.ListPurchasesParams) ([]domain.Purchase, error)
}

// PurchaseWriterSvc defines the invoice workflows.
type PurchaseWriterSvc interface {
	// CreatePurchase records an invoice: stock in, payment out, supplier
	// totals up. Completed steps are undone in reverse order if a later
	// step fails.
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.Purchase, error)

	// UpdatePurchase reverses the invoice's prior effects and applies the
	// replacement state atomically.
	UpdatePurchase(ctx context.Context, purchaseID string, req dto.UpdatePurchaseRequest, userID string) (*domain.Purchase, error)

	// PaySupplierDue records a payment against the invoice's outstanding
	// due. Fails with apperrors.ErrExceedsDue when the amount is larger
	// than the remaining due.
	PaySupplierDue(ctx context.Context, purchaseID string, req dto.PayDueRequest, userID string) (*domain.Purchase, error)

	// DeletePurchase rolls back all of the invoice's effects and removes it.
	DeletePurchase(ctx context.Context, purchaseID string, userID string) error
}

// PurchaseSvcFacade combines all purchase-related service interfaces.
type PurchaseSvcFacade interface {
	PurchaseReaderSvc
	PurchaseWriterSvc
}
