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
)

// ledgerService owns all account balance movement. Every credit and debit in
// the system, whether from an invoice, a memo, a due settlement or a manual
// entry, funnels through ApplyTransactionInTx so the ledger invariants hold
// in one place.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	txnRepo     portsrepo.TransactionRepositoryFacade

	// defaultCashAccountID disambiguates legacy "cash" references when a
	// deployment runs several cash drawers.
	defaultCashAccountID string
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryWithTx, txnRepo portsrepo.TransactionRepositoryFacade, defaultCashAccountID string) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo:          accountRepo,
		txnRepo:              txnRepo,
		defaultCashAccountID: defaultCashAccountID,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ResolveAccount maps an account reference to a concrete account. Explicit
// IDs win; legacy payment-type strings are matched against the account set.
func (s *ledgerService) ResolveAccount(ctx context.Context, ref domain.AccountRef) (*domain.Account, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: account reference is empty", apperrors.ErrValidation)
	}

	if ref.AccountID != "" {
		return s.accountRepo.FindAccountByID(ctx, ref.AccountID)
	}

	var (
		candidates []domain.Account
		err        error
	)
	switch ref.LegacyType {
	case "cash":
		candidates, err = s.accountRepo.FindAccountsByType(ctx, domain.AccountCash, "")
	case "bank":
		candidates, err = s.accountRepo.FindAccountsByType(ctx, domain.AccountBank, "")
	default:
		// Anything else is a mobile-wallet method name (bkash, nagad, ...).
		candidates, err = s.accountRepo.FindAccountsByType(ctx, domain.AccountMobile, ref.LegacyType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account for type %q: %w", ref.LegacyType, err)
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: no account matches payment type %q", apperrors.ErrNotFound, ref.LegacyType)
	case 1:
		return &candidates[0], nil
	default:
		if ref.LegacyType == "cash" && s.defaultCashAccountID != "" {
			for i := range candidates {
				if candidates[i].AccountID == s.defaultCashAccountID {
					return &candidates[i], nil
				}
			}
		}
		return nil, fmt.Errorf("%w: payment type %q matches %d accounts, pass an explicit accountID", apperrors.ErrAmbiguousAccount, ref.LegacyType, len(candidates))
	}
}

// ApplyTransaction runs ApplyTransactionInTx within its own transaction.
func (s *ledgerService) ApplyTransaction(ctx context.Context, params portssvc.ApplyTransactionParams, userID string) (*domain.Transaction, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	txn, err := s.ApplyTransactionInTx(ctx, tx, params, userID)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return txn, nil
}

// ApplyTransactionInTx appends one ledger entry and writes the new balance,
// holding a row lock on the account for the duration of the caller's
// transaction.
func (s *ledgerService) ApplyTransactionInTx(ctx context.Context, tx pgx.Tx, params portssvc.ApplyTransactionParams, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if params.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}

	resolved, err := s.ResolveAccount(ctx, params.Account)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, resolved.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %s: %w", resolved.AccountID, err)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       account.AccountID,
		EntrySource:     params.EntrySource,
		TransactionType: params.Type,
		Amount:          params.Amount,
		Particulars:     params.Particulars,
		ReferenceID:     params.ReferenceID,
		PaymentDetails:  params.PaymentDetails,
		OccurredAt:      params.OccurredAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if txn.OccurredAt.IsZero() {
		txn.OccurredAt = now
	}

	newBalance := account.Balance.Add(txn.SignedAmount())
	if newBalance.IsNegative() && !params.AllowNegative {
		return nil, fmt.Errorf("%w: account %s balance %s cannot cover %s", apperrors.ErrInsufficientBalance, account.AccountID, account.Balance.String(), params.Amount.String())
	}
	txn.BalanceAfter = newBalance

	if err := s.txnRepo.InsertTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, newBalance, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update account balance: %w", err)
	}

	logger.Info("Ledger entry applied",
		slog.String("account_id", account.AccountID),
		slog.String("entry_source", string(txn.EntrySource)),
		slog.String("type", string(txn.TransactionType)),
		slog.String("amount", txn.Amount.String()),
	)
	return &txn, nil
}

// AdjustByDeltaInTx appends a correction entry when an edit changed how much
// moved through an account. delta is debit-positive: positive debits,
// negative credits, zero is a no-op returning (nil, nil). The ledger is then
// recomputed so the entry settles into date order.
func (s *ledgerService) AdjustByDeltaInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, source domain.EntrySource, referenceID string, particulars string, occurredAt time.Time, userID string) (*domain.Transaction, error) {
	if delta.IsZero() {
		return nil, nil
	}

	txnType := domain.Debit
	if delta.IsNegative() {
		txnType = domain.Credit
	}
	txn, err := s.ApplyTransactionInTx(ctx, tx, portssvc.ApplyTransactionParams{
		Account:     domain.AccountRef{AccountID: accountID},
		EntrySource: source,
		Type:        txnType,
		Amount:      delta.Abs(),
		Particulars: particulars,
		ReferenceID: referenceID,
		OccurredAt:  occurredAt,
	}, userID)
	if err != nil {
		return nil, err
	}

	if err := s.RecomputeAccountLedgerInTx(ctx, tx, accountID, userID); err != nil {
		return nil, err
	}
	return txn, nil
}

// RecomputeAccountLedger runs RecomputeAccountLedgerInTx in its own
// transaction.
func (s *ledgerService) RecomputeAccountLedger(ctx context.Context, accountID string, userID string) error {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	if err := s.RecomputeAccountLedgerInTx(ctx, tx, accountID, userID); err != nil {
		return err
	}
	return s.accountRepo.Commit(ctx, tx)
}

// RecomputeAccountLedgerInTx replays the account's entire entry history in
// (occurred_at, id) order, rewriting every balance snapshot and the account
// balance. The entries themselves are the source of truth.
func (s *ledgerService) RecomputeAccountLedgerInTx(ctx context.Context, tx pgx.Tx, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID); err != nil {
		return fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}

	txns, err := s.txnRepo.FindTransactionsByAccountInTx(ctx, tx, accountID)
	if err != nil {
		return fmt.Errorf("failed to load entries for account %s: %w", accountID, err)
	}

	running := decimal.Zero
	for i := range txns {
		running = running.Add(txns[i].SignedAmount())
		txns[i].BalanceAfter = running
	}

	if err := s.txnRepo.RewriteBalancesInTx(ctx, tx, txns); err != nil {
		return fmt.Errorf("failed to rewrite balance snapshots: %w", err)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, accountID, running, userID, now); err != nil {
		return fmt.Errorf("failed to write recomputed balance: %w", err)
	}

	logger.Info("Account ledger recomputed",
		slog.String("account_id", accountID),
		slog.Int("entries", len(txns)),
		slog.String("balance", running.String()),
	)
	return nil
}

// CreateAccount persists a new account. A non-zero opening balance is
// recorded as a balance-correction entry so the ledger explains the figure.
func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAccountDiscriminators(req); err != nil {
		return nil, err
	}
	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		AccountType:   req.AccountType,
		Name:          req.Name,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		Method:        req.Method,
		OwnerName:     req.OwnerName,
		Balance:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	if req.OpeningBalance.IsPositive() {
		txn, err := s.ApplyTransaction(ctx, portssvc.ApplyTransactionParams{
			Account:     domain.AccountRef{AccountID: account.AccountID},
			EntrySource: domain.SourceBalanceCorrection,
			Type:        domain.Credit,
			Amount:      req.OpeningBalance,
			Particulars: "Opening balance",
		}, creatorUserID)
		if err != nil {
			logger.Error("Failed to record opening balance", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to record opening balance: %w", err)
		}
		account.Balance = txn.BalanceAfter
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func validateAccountDiscriminators(req dto.CreateAccountRequest) error {
	switch req.AccountType {
	case domain.AccountCash:
		if req.Name == "" {
			return fmt.Errorf("%w: cash account requires a name", apperrors.ErrValidation)
		}
	case domain.AccountBank:
		if req.BankName == "" || req.AccountNumber == "" {
			return fmt.Errorf("%w: bank account requires bankName and accountNumber", apperrors.ErrValidation)
		}
	case domain.AccountMobile:
		if req.Method == "" || req.OwnerName == "" {
			return fmt.Errorf("%w: mobile account requires method and ownerName", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	return nil
}

// GetAccountByID retrieves a specific account.
func (s *ledgerService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *ledgerService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, params.Limit, params.Offset)
}

// ListTransactionsByAccount retrieves a page of the account statement.
func (s *ledgerService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for account %s: %w", accountID, err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// ManualDeposit credits an account outside any purchase/sale workflow.
func (s *ledgerService) ManualDeposit(ctx context.Context, req dto.ManualEntryRequest, userID string) (*domain.Transaction, error) {
	return s.manualEntry(ctx, req, domain.Credit, domain.SourceManualDeposit, userID)
}

// ManualWithdraw debits an account outside any purchase/sale workflow.
func (s *ledgerService) ManualWithdraw(ctx context.Context, req dto.ManualEntryRequest, userID string) (*domain.Transaction, error) {
	return s.manualEntry(ctx, req, domain.Debit, domain.SourceManualWithdraw, userID)
}

func (s *ledgerService) manualEntry(ctx context.Context, req dto.ManualEntryRequest, txnType domain.TransactionType, source domain.EntrySource, userID string) (*domain.Transaction, error) {
	params := portssvc.ApplyTransactionParams{
		Account:        req.AccountRef(),
		EntrySource:    source,
		Type:           txnType,
		Amount:         req.Amount,
		Particulars:    req.Particulars,
		PaymentDetails: req.PaymentDetails,
	}
	if req.OccurredAt != nil {
		params.OccurredAt = *req.OccurredAt
	}
	return s.ApplyTransaction(ctx, params, userID)
}
