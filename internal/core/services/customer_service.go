package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// customerService manages customer contact records, mirroring
// supplierService. Aggregate totals are written by the sale workflows.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryWithTx
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryWithTx) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:        uuid.NewString(),
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		TotalSales:        decimal.Zero,
		TotalDue:          decimal.Zero,
		PurchasedProducts: []string{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = userID

	if err := s.customerRepo.SaveCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCounterpartiesParams) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomers(ctx, params.Limit, params.Offset)
}

func (s *customerService) GetCustomerHistory(ctx context.Context, customerID string) ([]domain.CounterpartyEvent, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.customerRepo.ListCustomerHistory(ctx, customerID)
}
