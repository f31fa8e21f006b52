package services

import (
	"context"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

// SaleReaderSvc defines read operations for customer memos.
type SaleReaderSvc interface {
	// GetSaleByID retrieves a memo with its lines.
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves a paginated list of memos, newest first.
	ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, error)
}

// SaleWriterSvc defines the memo workflows.
type SaleWriterSvc interface {
	// CreateSale records a memo: stock out, payment in, customer totals up.
	// Completed steps are undone in reverse order if a later step fails.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error)

	// UpdateSale reverses the memo's prior effects and applies the
	// replacement state atomically.
	UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, userID string) (*domain.Sale, error)

	// ReceiveCustomerDue records a collection against the memo's
	// outstanding due. Fails with apperrors.ErrExceedsDue when the amount
	// is larger than the remaining due.
	ReceiveCustomerDue(ctx context.Context, saleID string, req dto.ReceiveDueRequest, userID string) (*domain.Sale, error)

	// DeleteSale rolls back all of the memo's effects and removes it.
	DeleteSale(ctx context.Context, saleID string, userID string) error
}

// SaleSvcFacade combines all sale-related service interfaces.
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}
