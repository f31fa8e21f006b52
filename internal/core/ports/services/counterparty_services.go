package services

import (
	"context"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

// SupplierSvcFacade defines operations on supplier records. Aggregate totals
// are owned by the purchase workflows; this facade only edits contact data.
type SupplierSvcFacade interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, userID string) (*domain.Supplier, error)
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, params dto.ListCounterpartiesParams) ([]domain.Supplier, error)

	// GetSupplierHistory retrieves the supplier's audit trail, newest first.
	GetSupplierHistory(ctx context.Context, supplierID string) ([]domain.CounterpartyEvent, error)
}

// CustomerSvcFacade mirrors SupplierSvcFacade for the sales side.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListCounterpartiesParams) ([]domain.Customer, error)

	GetCustomerHistory(ctx context.Context, customerID string) ([]domain.CounterpartyEvent, error)
}
