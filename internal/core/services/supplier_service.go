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

// supplierService manages supplier contact records. The aggregate totals on
// a supplier are written by the purchase workflows, not here.
type supplierService struct {
	supplierRepo portsrepo.SupplierRepositoryWithTx
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryWithTx) portssvc.SupplierSvcFacade {
	return &supplierService{supplierRepo: supplierRepo}
}

var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	supplier := domain.Supplier{
		SupplierID:       uuid.NewString(),
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		TotalPurchase:    decimal.Zero,
		TotalDue:         decimal.Zero,
		SuppliedProducts: []string{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		logger.Error("Failed to save supplier", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}

	logger.Info("Supplier created", slog.String("supplier_id", supplier.SupplierID))
	return &supplier, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, userID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	supplier.LastUpdatedAt = time.Now().UTC()
	supplier.LastUpdatedBy = userID

	if err := s.supplierRepo.SaveSupplier(ctx, *supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier %s: %w", supplierID, err)
	}
	return supplier, nil
}

func (s *supplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	return s.supplierRepo.FindSupplierByID(ctx, supplierID)
}

func (s *supplierService) ListSuppliers(ctx context.Context, params dto.ListCounterpartiesParams) ([]domain.Supplier, error) {
	return s.supplierRepo.ListSuppliers(ctx, params.Limit, params.Offset)
}

func (s *supplierService) GetSupplierHistory(ctx context.Context, supplierID string) ([]domain.CounterpartyEvent, error) {
	if _, err := s.supplierRepo.FindSupplierByID(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.supplierRepo.ListSupplierHistory(ctx, supplierID)
}
