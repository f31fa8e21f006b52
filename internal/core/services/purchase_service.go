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

// purchaseService orchestrates the supplier invoice workflows across
// inventory, the ledger and supplier aggregates.
//
// Creation commits each subsystem step separately and keeps an undo stack,
// so a failure midway rolls back the steps already committed in reverse
// order. Edits, due payments and deletion run in a single database
// transaction instead, since they must atomically reconcile prior state.
type purchaseService struct {
	purchaseRepo portsrepo.PurchaseRepositoryWithTx
	supplierRepo portsrepo.SupplierRepositoryWithTx
	txnRepo      portsrepo.TransactionRepositoryFacade
	ledger       portssvc.LedgerSvcFacade
	inventory    portssvc.InventorySvcFacade
	stockCache   *cache.StockCache
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(
	purchaseRepo portsrepo.PurchaseRepositoryWithTx,
	supplierRepo portsrepo.SupplierRepositoryWithTx,
	txnRepo portsrepo.TransactionRepositoryFacade,
	ledger portssvc.LedgerSvcFacade,
	inventory portssvc.InventorySvcFacade,
	stockCache *cache.StockCache,
) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		txnRepo:      txnRepo,
		ledger:       ledger,
		inventory:    inventory,
		stockCache:   stockCache,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// buildPurchase computes line subtotals and invoice totals from the request.
func buildPurchase(purchaseID string, supplierID string, lines []dto.PurchaseLineRequest, paidAmount decimal.Decimal, accountRef domain.AccountRef, purchaseDate time.Time, userID string, now time.Time) (domain.Purchase, error) {
	purchase := domain.Purchase{
		PurchaseID:        purchaseID,
		SupplierID:        supplierID,
		Lines:             make([]domain.PurchaseLine, len(lines)),
		PaidAmount:        paidAmount,
		AccountID:         accountRef.AccountID,
		LegacyPaymentType: accountRef.LegacyType,
		PurchaseDate:      purchaseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	total := decimal.Zero
	for i, l := range lines {
		if !l.PurchasePrice.IsPositive() {
			return domain.Purchase{}, fmt.Errorf("%w: purchase price must be positive for product %s", apperrors.ErrValidation, l.ProductID)
		}
		subtotal := l.PurchasePrice.Mul(decimal.NewFromInt(l.Qty))
		purchase.Lines[i] = domain.PurchaseLine{
			ProductID:     l.ProductID,
			Name:          l.Name,
			Qty:           l.Qty,
			PurchasePrice: l.PurchasePrice,
			Subtotal:      subtotal,
		}
		total = total.Add(subtotal)
	}

	if paidAmount.IsNegative() {
		return domain.Purchase{}, fmt.Errorf("%w: paid amount cannot be negative", apperrors.ErrValidation)
	}
	if paidAmount.GreaterThan(total) {
		return domain.Purchase{}, fmt.Errorf("%w: paid amount %s exceeds invoice total %s", apperrors.ErrValidation, paidAmount.String(), total.String())
	}
	if paidAmount.IsPositive() && accountRef.IsZero() {
		return domain.Purchase{}, fmt.Errorf("%w: paid invoices require a payment account", apperrors.ErrValidation)
	}

	purchase.TotalAmount = total
	purchase.PaymentDue = total.Sub(paidAmount)
	return purchase, nil
}

func purchaseProductIDs(p domain.Purchase) []string {
	ids := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		ids[i] = l.ProductID
	}
	return ids
}

func purchaseProductNames(p domain.Purchase) []string {
	names := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		names[i] = l.Name
	}
	return names
}

// CreatePurchase records a supplier invoice. The three subsystem steps
// (invoice document, inventory, payment, supplier totals) each commit on
// their own; an undo stack rolls back the committed steps when a later one
// fails.
func (s *purchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	purchaseID := uuid.NewString()

	purchase, err := buildPurchase(purchaseID, req.SupplierID, req.Lines, req.PaidAmount, req.AccountRef(), req.PurchaseDate, userID, now)
	if err != nil {
		return nil, err
	}

	if purchase.SupplierID != "" {
		if _, err := s.supplierRepo.FindSupplierByID(ctx, purchase.SupplierID); err != nil {
			return nil, fmt.Errorf("failed to load supplier %s: %w", purchase.SupplierID, err)
		}
	}
	if purchase.PaidAmount.IsPositive() {
		// Resolve up front so an unknown or ambiguous payment account fails
		// the workflow before anything is committed.
		if _, err := s.ledger.ResolveAccount(ctx, purchase.AccountRef()); err != nil {
			return nil, err
		}
	}

	var undo compensationStack
	fail := func(step string, err error) (*domain.Purchase, error) {
		logger.Error("Purchase creation failed, rolling back",
			slog.String("purchase_id", purchaseID),
			slog.String("step", step),
			slog.String("error", err.Error()),
		)
		undo.unwind(ctx)
		return nil, err
	}

	// Step 1: the invoice document.
	if err := s.inTx(ctx, func(tx pgx.Tx) error {
		return s.purchaseRepo.SavePurchaseInTx(ctx, tx, purchase)
	}); err != nil {
		return fail("save_invoice", fmt.Errorf("failed to save purchase: %w", err))
	}
	undo.push("delete_invoice", func(ctx context.Context) error {
		return s.inTx(ctx, func(tx pgx.Tx) error {
			return s.purchaseRepo.DeletePurchaseInTx(ctx, tx, purchaseID)
		})
	})

	// Step 2: stock in.
	if err := s.inTx(ctx, func(tx pgx.Tx) error {
		for _, line := range purchase.Lines {
			params := portssvc.ReceiveStockParams{
				ProductID:     line.ProductID,
				ItemName:      line.Name,
				InvoiceID:     purchaseID,
				Qty:           line.Qty,
				PurchasePrice: line.PurchasePrice,
				Date:          purchase.PurchaseDate,
			}
			if err := s.inventory.ReceiveStockInTx(ctx, tx, params, userID); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fail("receive_stock", err)
	}
	undo.push("reverse_stock", func(ctx context.Context) error {
		return s.inTx(ctx, func(tx pgx.Tx) error {
			for _, line := range purchase.Lines {
				if err := s.inventory.ReverseReceiveInTx(ctx, tx, line.ProductID, purchaseID, userID); err != nil {
					return err
				}
			}
			return nil
		})
	})

	// Step 3: the payment leg.
	if purchase.PaidAmount.IsPositive() {
		if _, err := s.ledger.ApplyTransaction(ctx, portssvc.ApplyTransactionParams{
			Account:     purchase.AccountRef(),
			EntrySource: domain.SourceInvoice,
			Type:        domain.Debit,
			Amount:      purchase.PaidAmount,
			Particulars: fmt.Sprintf("Payment for purchase %s", purchaseID),
			ReferenceID: purchaseID,
			OccurredAt:  purchase.PurchaseDate,
		}, userID); err != nil {
			return fail("apply_payment", err)
		}
		undo.push("remove_payment", func(ctx context.Context) error {
			return s.removeReferencedEntries(ctx, purchaseID, userID)
		})
	}

	// Step 4: supplier aggregates.
	if purchase.SupplierID != "" {
		if err := s.inTx(ctx, func(tx pgx.Tx) error {
			return s.applySupplierPurchase(ctx, tx, purchase, domain.EventPurchase, userID, now)
		}); err != nil {
			return fail("supplier_totals", err)
		}
	}

	s.stockCache.Invalidate(ctx, purchaseProductIDs(purchase)...)
	logger.Info("Purchase created",
		slog.String("purchase_id", purchaseID),
		slog.String("total", purchase.TotalAmount.String()),
		slog.String("due", purchase.PaymentDue.String()),
	)
	return &purchase, nil
}

// UpdatePurchase reverses the invoice's prior effects and applies the
// replacement state in one transaction.
func (s *purchaseService) UpdatePurchase(ctx context.Context, purchaseID string, req dto.UpdatePurchaseRequest, userID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	updated, err := buildPurchase(purchaseID, req.SupplierID, req.Lines, req.PaidAmount, req.AccountRef(), req.PurchaseDate, userID, now)
	if err != nil {
		return nil, err
	}
	if updated.SupplierID != "" {
		if _, err := s.supplierRepo.FindSupplierByID(ctx, updated.SupplierID); err != nil {
			return nil, fmt.Errorf("failed to load supplier %s: %w", updated.SupplierID, err)
		}
	}

	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.purchaseRepo.Rollback(ctx, tx)

	existing, err := s.purchaseRepo.FindPurchaseByIDForUpdate(ctx, tx, purchaseID)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedBy = existing.CreatedBy

	// Inventory: out with the old receipts, in with the new.
	for _, line := range existing.Lines {
		if err := s.inventory.ReverseReceiveInTx(ctx, tx, line.ProductID, purchaseID, userID); err != nil {
			return nil, err
		}
	}
	for _, line := range updated.Lines {
		params := portssvc.ReceiveStockParams{
			ProductID:     line.ProductID,
			ItemName:      line.Name,
			InvoiceID:     purchaseID,
			Qty:           line.Qty,
			PurchasePrice: line.PurchasePrice,
			Date:          updated.PurchaseDate,
		}
		if err := s.inventory.ReceiveStockInTx(ctx, tx, params, userID); err != nil {
			return nil, err
		}
	}

	// Payment leg: correct the entry tied 1:1 to this invoice.
	if err := s.reconcileInvoicePayment(ctx, tx, existing, updated, domain.SourceInvoice, userID); err != nil {
		return nil, err
	}

	// Supplier aggregates.
	if existing.SupplierID != "" {
		if err := s.reverseSupplierPurchase(ctx, tx, *existing, userID, now); err != nil {
			return nil, err
		}
	}
	if updated.SupplierID != "" {
		if err := s.applySupplierPurchase(ctx, tx, updated, domain.EventUpdatedPurchase, userID, now); err != nil {
			return nil, err
		}
	}

	if err := s.purchaseRepo.ReplacePurchaseInTx(ctx, tx, updated); err != nil {
		return nil, fmt.Errorf("failed to replace purchase %s: %w", purchaseID, err)
	}
	if err := s.purchaseRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	touched := append(purchaseProductIDs(*existing), purchaseProductIDs(updated)...)
	s.stockCache.Invalidate(ctx, touched...)
	logger.Info("Purchase updated", slog.String("purchase_id", purchaseID))
	return &updated, nil
}

// PaySupplierDue records a payment against the invoice's outstanding due.
func (s *purchaseService) PaySupplierDue(ctx context.Context, purchaseID string, req dto.PayDueRequest, userID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.purchaseRepo.Rollback(ctx, tx)

	purchase, err := s.purchaseRepo.FindPurchaseByIDForUpdate(ctx, tx, purchaseID)
	if err != nil {
		return nil, err
	}

	if req.Amount.GreaterThan(purchase.PaymentDue) {
		return nil, fmt.Errorf("%w: payment %s exceeds outstanding due %s", apperrors.ErrExceedsDue, req.Amount.String(), purchase.PaymentDue.String())
	}

	payDate := now
	if req.Date != nil {
		payDate = *req.Date
	}

	if _, err := s.ledger.ApplyTransactionInTx(ctx, tx, portssvc.ApplyTransactionParams{
		Account:     req.AccountRef(),
		EntrySource: domain.SourceSupplierDuePayment,
		Type:        domain.Debit,
		Amount:      req.Amount,
		Particulars: fmt.Sprintf("Due payment for purchase %s", purchaseID),
		ReferenceID: purchaseID,
		OccurredAt:  payDate,
	}, userID); err != nil {
		return nil, err
	}

	purchase.PaidAmount = purchase.PaidAmount.Add(req.Amount)
	purchase.PaymentDue = purchase.PaymentDue.Sub(req.Amount)
	if err := s.purchaseRepo.UpdatePurchasePaymentInTx(ctx, tx, purchaseID, purchase.PaidAmount, purchase.PaymentDue, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update purchase payment: %w", err)
	}

	if purchase.SupplierID != "" {
		if _, err := s.supplierRepo.FindSupplierForUpdate(ctx, tx, purchase.SupplierID); err != nil {
			return nil, err
		}
		if err := s.supplierRepo.ApplyAggregatesInTx(ctx, tx, purchase.SupplierID, decimal.Zero, req.Amount.Neg(), nil, nil, &payDate, userID, now); err != nil {
			return nil, fmt.Errorf("failed to update supplier totals: %w", err)
		}
		event := domain.CounterpartyEvent{
			EventID:        uuid.NewString(),
			CounterpartyID: purchase.SupplierID,
			Date:           payDate,
			Type:           domain.EventDuePayment,
			ReferenceID:    purchaseID,
			Amount:         req.Amount,
			PaidAmount:     purchase.PaidAmount,
			DueAmount:      purchase.PaymentDue,
			Remarks:        req.Remarks,
		}
		if err := s.supplierRepo.AppendHistoryInTx(ctx, tx, event); err != nil {
			return nil, fmt.Errorf("failed to append supplier history: %w", err)
		}
	}

	if err := s.purchaseRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Supplier due paid",
		slog.String("purchase_id", purchaseID),
		slog.String("amount", req.Amount.String()),
		slog.String("remaining_due", purchase.PaymentDue.String()),
	)
	return purchase, nil
}

// DeletePurchase rolls back all of the invoice's effects and removes it.
func (s *purchaseService) DeletePurchase(ctx context.Context, purchaseID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.purchaseRepo.Rollback(ctx, tx)

	purchase, err := s.purchaseRepo.FindPurchaseByIDForUpdate(ctx, tx, purchaseID)
	if err != nil {
		return err
	}

	for _, line := range purchase.Lines {
		if err := s.inventory.ReverseReceiveInTx(ctx, tx, line.ProductID, purchaseID, userID); err != nil {
			return err
		}
	}

	// Drop every ledger entry tied to this invoice (the payment leg and any
	// due payments), then recompute the accounts they touched.
	accountIDs, err := s.txnRepo.DeleteTransactionsByReferenceInTx(ctx, tx, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entries for purchase %s: %w", purchaseID, err)
	}
	for _, accountID := range accountIDs {
		if err := s.ledger.RecomputeAccountLedgerInTx(ctx, tx, accountID, userID); err != nil {
			return err
		}
	}

	if purchase.SupplierID != "" {
		if err := s.reverseSupplierPurchase(ctx, tx, *purchase, userID, now); err != nil {
			return err
		}
	}

	if err := s.purchaseRepo.DeletePurchaseInTx(ctx, tx, purchaseID); err != nil {
		return fmt.Errorf("failed to delete purchase %s: %w", purchaseID, err)
	}
	if err := s.purchaseRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.stockCache.Invalidate(ctx, purchaseProductIDs(*purchase)...)
	logger.Info("Purchase deleted", slog.String("purchase_id", purchaseID))
	return nil
}

// GetPurchaseByID retrieves an invoice with its lines.
func (s *purchaseService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find purchase", slog.String("purchase_id", purchaseID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return purchase, nil
}

// ListPurchases retrieves a paginated list of invoices, newest first.
func (s *purchaseService) ListPurchases(ctx context.Context, params dto.ListPurchasesParams) ([]domain.Purchase, error) {
	return s.purchaseRepo.ListPurchases(ctx, params.Limit, params.Offset)
}

// inTx runs fn within a fresh transaction, committing on success.
func (s *purchaseService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.purchaseRepo.Rollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return s.purchaseRepo.Commit(ctx, tx)
}

// removeReferencedEntries deletes the ledger entries referencing an invoice
// and recomputes the touched accounts. Used by the creation undo stack.
func (s *purchaseService) removeReferencedEntries(ctx context.Context, purchaseID string, userID string) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		accountIDs, err := s.txnRepo.DeleteTransactionsByReferenceInTx(ctx, tx, purchaseID)
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

// applySupplierPurchase bumps the supplier aggregates for an invoice and
// appends the matching history event.
func (s *purchaseService) applySupplierPurchase(ctx context.Context, tx pgx.Tx, purchase domain.Purchase, eventType domain.CounterpartyEventType, userID string, now time.Time) error {
	if _, err := s.supplierRepo.FindSupplierForUpdate(ctx, tx, purchase.SupplierID); err != nil {
		return err
	}

	var paymentDate *time.Time
	if purchase.PaidAmount.IsPositive() {
		paymentDate = &purchase.PurchaseDate
	}
	if err := s.supplierRepo.ApplyAggregatesInTx(ctx, tx, purchase.SupplierID, purchase.TotalAmount, purchase.PaymentDue, purchaseProductNames(purchase), &purchase.PurchaseDate, paymentDate, userID, now); err != nil {
		return fmt.Errorf("failed to update supplier totals: %w", err)
	}

	event := domain.CounterpartyEvent{
		EventID:        uuid.NewString(),
		CounterpartyID: purchase.SupplierID,
		Date:           purchase.PurchaseDate,
		Type:           eventType,
		ReferenceID:    purchase.PurchaseID,
		Amount:         purchase.TotalAmount,
		PaidAmount:     purchase.PaidAmount,
		DueAmount:      purchase.PaymentDue,
	}
	if err := s.supplierRepo.AppendHistoryInTx(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to append supplier history: %w", err)
	}
	return nil
}

// reverseSupplierPurchase backs the invoice's contribution out of the
// supplier aggregates and drops its history entries.
func (s *purchaseService) reverseSupplierPurchase(ctx context.Context, tx pgx.Tx, purchase domain.Purchase, userID string, now time.Time) error {
	if _, err := s.supplierRepo.FindSupplierForUpdate(ctx, tx, purchase.SupplierID); err != nil {
		return err
	}
	if err := s.supplierRepo.ApplyAggregatesInTx(ctx, tx, purchase.SupplierID, purchase.TotalAmount.Neg(), purchase.PaymentDue.Neg(), nil, nil, nil, userID, now); err != nil {
		return fmt.Errorf("failed to reverse supplier totals: %w", err)
	}
	if err := s.supplierRepo.DeleteHistoryByReferenceInTx(ctx, tx, purchase.SupplierID, purchase.PurchaseID); err != nil {
		return fmt.Errorf("failed to remove supplier history: %w", err)
	}
	return nil
}

// reconcileInvoicePayment corrects the ledger entries tied to an edited
// invoice. Same-account amount changes get a correction entry for the
// difference; an account change deletes every entry referencing the invoice
// and re-applies the new paid amount on the new account; a dropped or added
// payment deletes or creates accordingly. Affected account ledgers are
// recomputed so every balance snapshot stays truthful.
func (s *purchaseService) reconcileInvoicePayment(ctx context.Context, tx pgx.Tx, existing *domain.Purchase, updated domain.Purchase, source domain.EntrySource, userID string) error {
	oldPaid := existing.PaidAmount.IsPositive()
	newPaid := updated.PaidAmount.IsPositive()

	switch {
	case oldPaid && newPaid:
		entry, err := s.txnRepo.FindTransactionByReferenceInTx(ctx, tx, existing.PurchaseID, source)
		if err != nil {
			return fmt.Errorf("failed to find payment entry for %s: %w", existing.PurchaseID, err)
		}
		newAccount, err := s.ledger.ResolveAccount(ctx, updated.AccountRef())
		if err != nil {
			return err
		}

		if entry.AccountID == newAccount.AccountID {
			// Same account: record the paid-amount change as a correction
			// entry. Payments out are debits, so the delta is debit-positive
			// as is.
			delta := updated.PaidAmount.Sub(existing.PaidAmount)
			if _, err := s.ledger.AdjustByDeltaInTx(ctx, tx, newAccount.AccountID, delta, domain.SourceBalanceCorrection, updated.PurchaseID, fmt.Sprintf("Payment correction for purchase %s", updated.PurchaseID), updated.PurchaseDate, userID); err != nil {
				return err
			}
			return nil
		}

		// Cross account: the entries referencing this invoice (initial
		// payment, due payments, corrections) together sum to the old paid
		// amount, so the whole set moves. Delete them, recompute the
		// accounts they debited, and record one fresh entry for the new
		// paid amount on the new account.
		accountIDs, err := s.txnRepo.DeleteTransactionsByReferenceInTx(ctx, tx, existing.PurchaseID)
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
			EntrySource: source,
			Type:        domain.Debit,
			Amount:      updated.PaidAmount,
			Particulars: fmt.Sprintf("Payment for purchase %s", updated.PurchaseID),
			ReferenceID: updated.PurchaseID,
			OccurredAt:  updated.PurchaseDate,
		}, userID); err != nil {
			return err
		}

	case oldPaid && !newPaid:
		accountIDs, err := s.txnRepo.DeleteTransactionsByReferenceInTx(ctx, tx, existing.PurchaseID)
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
			EntrySource: source,
			Type:        domain.Debit,
			Amount:      updated.PaidAmount,
			Particulars: fmt.Sprintf("Payment for purchase %s", updated.PurchaseID),
			ReferenceID: updated.PurchaseID,
			OccurredAt:  updated.PurchaseDate,
		}, userID); err != nil {
			return err
		}
	}
	return nil
}
