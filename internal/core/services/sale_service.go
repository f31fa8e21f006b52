package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
	"github.com/projuktisheba/stockledger-backend/internal/platform/cache"
)

// saleService orchestrates the customer memo workflows. It is the mirror of
// purchaseService: stock leaves instead of arriving, payments credit the
// account instead of debiting it, and customer aggregates move instead of
// supplier ones.
type saleService struct {
	saleRepo     portsrepo.SaleRepositoryWithTx
	customerRepo portsrepo.CustomerRepositoryWithTx
	txnRepo      portsrepo.TransactionRepositoryFacade
	ledger       portssvc.LedgerSvcFacade
	inventory    portssvc.InventorySvcFacade
	stockCache   *cache.StockCache
}

// NewSaleService creates a new SaleService.
func NewSaleService(
	saleRepo portsrepo.SaleRepositoryWithTx,
	customerRepo portsrepo.CustomerRepositoryWithTx,
	txnRepo portsrepo.TransactionRepositoryFacade,
	ledger portssvc.LedgerSvcFacade,
	inventory portssvc.InventorySvcFacade,
	stockCache *cache.StockCache,
) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		txnRepo:      txnRepo,
		ledger:       ledger,
		inventory:    inventory,
		stockCache:   stockCache,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

func buildSale(saleID string, memoNo, customerID, customerName string, lines []dto.SaleLineRequest, paidAmount decimal.Decimal, accountRef domain.AccountRef, saleDate time.Time, userID string, now time.Time) (domain.Sale, error) {
	sale := domain.Sale{
		SaleID:            saleID,
		MemoNo:            memoNo,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Lines:             make([]domain.SaleLine, len(lines)),
		PaidAmount:        paidAmount,
		AccountID:         accountRef.AccountID,
		LegacyPaymentType: accountRef.LegacyType,
		SaleDate:          saleDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	total := decimal.Zero
	for i, l := range lines {
		if l.Price.IsNegative() {
			return domain.Sale{}, fmt.Errorf("%w: sale price cannot be negative for product %s", apperrors.ErrValidation, l.ProductID)
		}
		subtotal := l.Price.Mul(decimal.NewFromInt(l.Qty))
		sale.Lines[i] = domain.SaleLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Qty:       l.Qty,
			Price:     l.Price,
			Subtotal:  subtotal,
		}
		total = total.Add(subtotal)
	}

	if paidAmount.IsNegative() {
		return domain.Sale{}, fmt.Errorf("%w: paid amount cannot be negative", apperrors.ErrValidation)
	}
	if paidAmount.GreaterThan(total) {
		return domain.Sale{}, fmt.Errorf("%w: paid amount %s exceeds memo total %s", apperrors.ErrValidation, paidAmount.String(), total.String())
	}
	if paidAmount.IsPositive() && accountRef.IsZero() {
		return domain.Sale{}, fmt.Errorf("%w: paid memos require a payment account", apperrors.ErrValidation)
	}

	sale.TotalAmount = total
	sale.PaymentDue = total.Sub(paidAmount)
	return sale, nil
}

func saleProductIDs(s domain.Sale) []string {
	ids := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		ids[i] = l.ProductID
	}
	return ids
}

func saleProductNames(s domain.Sale) []string {
	names := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		names[i] = l.Name
	}
	return names
}

// CreateSale records a customer memo with the same step-and-undo discipline
// as purchase creation.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	saleID := uuid.NewString()

	sale, err := buildSale(saleID, req.MemoNo, req.CustomerID, req.CustomerName, req.Lines, req.PaidAmount, req.AccountRef(), req.SaleDate, userID, now)
	if err != nil {
		return nil, err
	}

	if sale.CustomerID != "" {
		if _, err := s.customerRepo.FindCustomerByID(ctx, sale.CustomerID); err != nil {
			return nil, fmt.Errorf("failed to load customer %s: %w", sale.CustomerID, err)
		}
	}
	if sale.PaidAmount.IsPositive() {
		if _, err := s.ledger.ResolveAccount(ctx, sale.AccountRef()); err != nil {
			return nil, err
		}
	}

	var undo compensationStack
	fail := func(step string, err error) (*domain.Sale, error) {
		logger.Error("Sale creation failed, rolling back",
			slog.String("sale_id", saleID),
			slog.String("step", step),
			slog.String("error", err.Error()),
		)
		undo.unwind(ctx)
		return nil, err
	}

	// Step 1: the memo document.
	if err := s.inTx(ctx, func(tx pgx.Tx) error {
		return s.saleRepo.SaveSaleInTx(ctx, tx, sale)
	}); err != nil {
		return fail("save_memo", fmt.Errorf("failed to save sale: %w", err))
	}
	undo.push("delete_memo", func(ctx context.Context) error {
		return s.inTx(ctx, func(tx pgx.Tx) error {
			return s.saleRepo.DeleteSaleInTx(ctx, tx, saleID)
		})
	})

	// Step 2: stock out. Insufficient stock aborts here and only the memo
	// document needs undoing.
	if err := s.inTx(ctx, func(tx pgx.Tx) error {
		for _, line := range sale.Lines {
			params := portssvc.IssueStockParams{
				ProductID: line.ProductID,
				MemoID:    saleID,
				Qty:       line.Qty,
				Price:     line.Price,
				Date:      sale.SaleDate,
			}
			if err := s.inventory.IssueStockInTx(ctx, tx, params, userID); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fail("issue_stock", err)
	}
	undo.push("restore_stock", func(ctx context.Context) error {
		return s.inTx(ctx, func(tx pgx.Tx) error {
			for _, line := range sale.Lines {
				if err := s.inventory.ReverseIssueInTx(ctx, tx, line.ProductID, saleID, userID); err != nil {
					return err
				}
			}
			return nil
		})
	})

	// Step 3: the payment leg.
	if sale.PaidAmount.IsPositive() {
		if _, err := s.ledger.ApplyTransaction(ctx, portssvc.ApplyTransactionParams{
			Account:     sale.AccountRef(),
			EntrySource: domain.SourceSaleMemo,
			Type:        domain.Credit,
			Amount:      sale.PaidAmount,
			Particulars: fmt.Sprintf("Payment for sale %s", saleID),
			ReferenceID: saleID,
			OccurredAt:  sale.SaleDate,
		}, userID); err != nil {
			return fail("apply_payment", err)
		}
		undo.push("remove_payment", func(ctx context.Context) error {
			return s.removeReferencedEntries(ctx, saleID, userID)
		})
	}

	// Step 4: customer aggregates.
	if sale.CustomerID != "" {
		if err := s.inTx(ctx, func(tx pgx.Tx) error {
			return s.applyCustomerSale(ctx, tx, sale, domain.EventSale, userID, now)
		}); err != nil {
			return fail("customer_totals", err)
		}
	}

	s.stockCache.Invalidate(ctx, saleProductIDs(sale)...)
	logger.Info("Sale created",
		slog.String("sale_id", saleID),
		slog.String("total", sale.TotalAmount.String()),
		slog.String("due", sale.PaymentDue.String()),
	)
	return &sale, nil
}

// UpdateSale reverses the memo's prior effects and applies the replacement
// state in one transaction.
func (s *saleService) UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	updated, err := buildSale(saleID, req.MemoNo, req.CustomerID, req.CustomerName, req.Lines, req.PaidAmount, req.AccountRef(), req.SaleDate, userID, now)
	if err != nil {
		return nil, err
	}
	if updated.CustomerID != "" {
		if _, err := s.customerRepo.FindCustomerByID(ctx, updated.CustomerID); err != nil {
			return nil, fmt.Errorf("failed to load customer %s: %w", updated.CustomerID, err)
		}
	}

	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.saleRepo.Rollback(ctx, tx)

	existing, err := s.saleRepo.FindSaleByIDForUpdate(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedBy = existing.CreatedBy

	// Inventory: restore the old issues, then issue the new lines.
	for _, line := range existing.Lines {
		if err := s.inventory.ReverseIssueInTx(ctx, tx, line.ProductID, saleID, userID); err != nil {
			return nil, err
		}
	}
	for _, line := range updated.Lines {
		params := portssvc.IssueStockParams{
			ProductID: line.ProductID,
			MemoID:    saleID,
			Qty:       line.Qty,
			Price:     line.Price,
			Date:      updated.SaleDate,
		}
		if err := s.inventory.IssueStockInTx(ctx, tx, params, userID); err != nil {
			return nil, err
		}
	}

	if err := s.reconcileMemoPayment(ctx, tx, existing, updated, userID); err != nil {
		return nil, err
	}

	if existing.CustomerID != "" {
		if err := s.reverseCustomerSale(ctx, tx, *existing, userID, now); err != nil {
			return nil, err
		}
	}
	if updated.CustomerID != "" {
		if err := s.applyCustomerSale(ctx, tx, updated, domain.EventUpdatedSale, userID, now); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.ReplaceSaleInTx(ctx, tx, updated); err != nil {
		return nil, fmt.Errorf("failed to replace sale %s: %w", saleID, err)
	}
	if err := s.saleRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	touched := append(saleProductIDs(*existing), saleProductIDs(updated)...)
	s.stockCache.Invalidate(ctx, touched...)
	logger.Info("Sale updated", slog.String("sale_id", saleID))
	return &updated, nil
}

// ReceiveCustomerDue records a collection against the memo's outstanding due.
func (s *saleService) ReceiveCustomerDue(ctx context.Context, saleID string, req dto.ReceiveDueRequest, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: receipt amount must be positive", apperrors.ErrValidation)
	}

	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.saleRepo.Rollback(ctx, tx)

	sale, err := s.saleRepo.FindSaleByIDForUpdate(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}

	if req.Amount.GreaterThan(sale.PaymentDue) {
		return nil, fmt.Errorf("%w: receipt %s exceeds outstanding due %s", apperrors.ErrExceedsDue, req.Amount.String(), sale.PaymentDue.String())
	}

	receiptDate := now
	if req.Date != nil {
		receiptDate = *req.Date
	}

	if _, err := s.ledger.ApplyTransactionInTx(ctx, tx, portssvc.ApplyTransactionParams{
		Account:     req.AccountRef(),
		EntrySource: domain.SourceCustomerDueReceipt,
		Type:        domain.Credit,
		Amount:      req.Amount,
		Particulars: fmt.Sprintf("Due receipt for sale %s", saleID),
		ReferenceID: saleID,
		OccurredAt:  receiptDate,
	}, userID); err != nil {
		return nil, err
	}

	sale.PaidAmount = sale.PaidAmount.Add(req.Amount)
	sale.PaymentDue = sale.PaymentDue.Sub(req.Amount)
	if err := s.saleRepo.UpdateSalePaymentInTx(ctx, tx, saleID, sale.PaidAmount, sale.PaymentDue, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update sale payment: %w", err)
	}

	if sale.CustomerID != "" {
		if _, err := s.customerRepo.FindCustomerForUpdate(ctx, tx, sale.CustomerID); err != nil {
			return nil, err
		}
		if err := s.customerRepo.ApplyAggregatesInTx(ctx, tx, sale.CustomerID, decimal.Zero, req.Amount.Neg(), nil, nil, &receiptDate, userID, now); err != nil {
			return nil, fmt.Errorf("failed to update customer totals: %w", err)
		}
		event := domain.CounterpartyEvent{
			EventID:        uuid.NewString(),
			CounterpartyID: sale.CustomerID,
			Date:           receiptDate,
			Type:           domain.EventDueReceipt,
			ReferenceID:    saleID,
			Amount:         req.Amount,
			PaidAmount:     sale.PaidAmount,
			DueAmount:      sale.PaymentDue,
			Remarks:        req.Remarks,
		}
		if err := s.customerRepo.AppendHistoryInTx(ctx, tx, event); err != nil {
			return nil, fmt.Errorf("failed to append customer history: %w", err)
		}
	}

	if err := s.saleRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Customer due received",
		slog.String("sale_id", saleID),
		slog.String("amount", req.Amount.String()),
		slog.String("remaining_due", sale.PaymentDue.String()),
	)
	return sale, nil
}

// DeleteSale rolls back all of the memo's effects and removes it. Deleting
// the payment entries may legitimately leave the account history summing
// below zero at intermediate points; the recompute records whatever the
// surviving entries say.
func (s *saleService) DeleteSale(ctx context.Context, saleID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.saleRepo.Rollback(ctx, tx)

	sale, err := s.saleRepo.FindSaleByIDForUpdate(ctx, tx, saleID)
	if err != nil {
		return err
	}

	for _, line := range sale.Lines {
		if err := s.inventory.ReverseIssueInTx(ctx, tx, line.ProductID, saleID, userID); err != nil {
			return err
		}
	}

	accountIDs, err := s.txnRepo.DeleteTransactionsByReferenceInTx(ctx, tx, saleID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entries for sale %s: %w", saleID, err)
	}
	for _, accountID := range accountIDs {
		if err := s.ledger.RecomputeAccountLedgerInTx(ctx, tx, accountID, userID); err != nil {
			return err
		}
	}

	if sale.CustomerID != "" {
		if err := s.reverseCustomerSale(ctx, tx, *sale, userID, now); err != nil {
			return err
		}
	}

	if err := s.saleRepo.DeleteSaleInTx(ctx, tx, saleID); err != nil {
		return fmt.Errorf("failed to delete sale %s: %w", saleID, err)
	}
	if err := s.saleRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.stockCache.Invalidate(ctx, saleProductIDs(*sale)...)
	logger.Info("Sale deleted", slog.String("sale_id", saleID))
	return nil
}

// GetSaleByID retrieves a memo with its lines.
func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find sale", slog.String("sale_id", saleID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return sale, nil
}

// ListSales retrieves a paginated list of memos, newest first.
func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, error) {
	return s.saleRepo.ListSales(ctx, params.Limit, params.Offset)
}

func (s *saleService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.saleRepo.Rollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return s.saleRepo.Commit(ctx, tx)
}

func (s *saleService) removeReferencedEntries(ctx context.Context, saleID string, userID string) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		accountIDs, err := s.txnRepo.DeleteTransactionsByReferenceInTx(ctx, tx, saleID)
		if err != nil {
			return err
		}
		for _, accountID := range accountIDs {
			if err := s.ledger.RecomputeAccountLedgerInTx(ctx, tx, accountID, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *saleService) applyCustomerSale(ctx context.Context, tx pgx.Tx, sale domain.Sale, eventType domain.CounterpartyEventType, userID string, now time.Time) error {
	if _, err := s.customerRepo.FindCustomerForUpdate(ctx, tx, sale.CustomerID); err != nil {
		return err
	}

	var paymentDate *time.Time
	if sale.PaidAmount.IsPositive() {
		paymentDate = &sale.SaleDate
	}
	if err := s.customerRepo.ApplyAggregatesInTx(ctx, tx, sale.CustomerID, sale.TotalAmount, sale.PaymentDue, saleProductNames(sale), &sale.SaleDate, paymentDate, userID, now); err != nil {
		return fmt.Errorf("failed to update customer totals: %w", err)
	}

	event := domain.CounterpartyEvent{
		EventID:        uuid.NewString(),
		CounterpartyID: sale.CustomerID,
		Date:           sale.SaleDate,
		Type:           eventType,
		ReferenceID:    sale.SaleID,
		Amount:         sale.TotalAmount,
		PaidAmount:     sale.PaidAmount,
		DueAmount:      sale.PaymentDue,
	}
	if err := s.customerRepo.AppendHistoryInTx(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to append customer history: %w", err)
	}
	return nil
}

func (s *saleService) reverseCustomerSale(ctx context.Context, tx pgx.Tx, sale domain.Sale, userID string, now time.Time) error {
	if _, err := s.customerRepo.FindCustomerForUpdate(ctx, tx, sale.CustomerID); err != nil {
		return err
	}
	if err := s.customerRepo.ApplyAggregatesInTx(ctx, tx, sale.CustomerID, sale.TotalAmount.Neg(), sale.PaymentDue.Neg(), nil, nil, nil, userID, now); err != nil {
		return fmt.Errorf("failed to reverse customer totals: %w", err)
	}
	if err := s.customerRepo.DeleteHistoryByReferenceInTx(ctx, tx, sale.CustomerID, sale.SaleID); err != nil {
		return fmt.Errorf("failed to remove customer history: %w", err)
	}
	return nil
}

// reconcileMemoPayment corrects the ledger entries tied to an edited memo,
// mirroring the invoice reconciliation on the credit side.
func (s *saleService) reconcileMemoPayment(ctx context.Context, tx pgx.Tx, existing *domain.Sale, updated domain.Sale, userID string) error {
	oldPaid := existing.PaidAmount.IsPositive()
	newPaid := updated.PaidAmount.IsPositive()

	switch {
	case oldPaid && newPaid:
		entry, err := s.txnRepo.FindTransactionByReferenceInTx(ctx, tx, existing.SaleID, domain.SourceSaleMemo)
		if err != nil {
			return fmt.Errorf("failed to find payment entry for %s: %w", existing.SaleID, err)
		}
		newAccount, err := s.ledger.ResolveAccount(ctx, updated.AccountRef())
		if err != nil {
			return err
		}

		if entry.AccountID == newAccount.AccountID {
			// Same account: record the received-amount change as a correction
			// entry. Receipts are credits, so the debit-positive delta is the
			// old amount minus the new one.
			delta := existing.PaidAmount.Sub(updated.PaidAmount)
			if _, err := s.ledger.AdjustByDeltaInTx(ctx, tx, newAccount.AccountID, delta, domain.SourceBalanceCorrection, updated.SaleID, fmt.Sprintf("Payment correction for sale %s", updated.SaleID), updated.SaleDate, userID); err != nil {
				return err
			}
			return nil
		}

		// Cross account: the entries referencing this memo (initial receipt,
		// due receipts, corrections) together sum to the old received
		// amount, so the whole set moves. Delete them, recompute the
		// accounts they credited, and record one fresh entry for the new
		// received amount on the new account.
		accountIDs, err := s.txnRepo.DeleteTransactionsByReferenceInTx(ctx, tx, existing.SaleID)
		if err != nil {
			return fmt.Errorf("failed to delete payment entries: %w", err)
		}
		for _, accountID := range accountIDs {
			if err := s.ledger.RecomputeAccountLedgerInTx(ctx, tx, accountID, userID); err != nil {
				return err
			}
		}
		if _, err := s.ledger.ApplyTransactionInTx(ctx, tx, portssvc.ApplyTransactionParams{
			Account:     updated.AccountRef(),
			EntrySource: domain.SourceSaleMemo,
			Type:        domain.Credit,
			Amount:      updated.PaidAmount,
			Particulars: fmt.Sprintf("Payment for sale %s", updated.SaleID),
			ReferenceID: updated.SaleID,
			OccurredAt:  updated.SaleDate,
		}, userID); err != nil {
			return err
		}

	case oldPaid && !newPaid:
		accountIDs, err := s.txnRepo.DeleteTransactionsByReferenceInTx(ctx, tx, existing.SaleID)
		if err != nil {
			return fmt.Errorf("failed to delete payment entries: %w", err)
		}
		for _, accountID := range accountIDs {
			if err := s.ledger.RecomputeAccountLedgerInTx(ctx, tx, accountID, userID); err != nil {
				return err
			}
		}

	case !oldPaid && newPaid:
		if _, err := s.ledger.ApplyTransactionInTx(ctx, tx, portssvc.ApplyTransactionParams{
			Account:     updated.AccountRef(),
			EntrySource: domain.SourceSaleMemo,
			Type:        domain.Credit,
			Amount:      updated.PaidAmount,
			Particulars: fmt.Sprintf("Payment for sale %s", updated.SaleID),
			ReferenceID: updated.SaleID,
			OccurredAt:  updated.SaleDate,
		}, userID); err != nil {
			return err
		}
	}
	return nil
}
