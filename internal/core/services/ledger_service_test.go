package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/core/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

const defaultCashID = "acc-cash-default"

type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.LedgerSvcFacade
	ctx             context.Context
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockTxnRepo, defaultCashID)
	suite.ctx = context.Background()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func cashAccount(id string, balance int64) domain.Account {
	return domain.Account{
		AccountID:   id,
		AccountType: domain.AccountCash,
		Name:        "Main Cash",
		Balance:     decimal.NewFromInt(balance),
	}
}

// --- ResolveAccount ---

func (suite *LedgerServiceTestSuite) TestResolveAccount_ExplicitID() {
	account := cashAccount("acc-1", 100)
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(&account, nil).Once()

	resolved, err := suite.service.ResolveAccount(suite.ctx, domain.AccountRef{AccountID: "acc-1"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "acc-1", resolved.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestResolveAccount_EmptyRef() {
	_, err := suite.service.ResolveAccount(suite.ctx, domain.AccountRef{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestResolveAccount_LegacyCashSingleMatch() {
	account := cashAccount("acc-1", 100)
	suite.mockAccountRepo.On("FindAccountsByType", suite.ctx, domain.AccountCash, "").
		Return([]domain.Account{account}, nil).Once()

	resolved, err := suite.service.ResolveAccount(suite.ctx, domain.AccountRef{LegacyType: "cash"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "acc-1", resolved.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestResolveAccount_LegacyMobileMethod() {
	account := domain.Account{AccountID: "acc-bkash", AccountType: domain.AccountMobile, Method: "bkash"}
	suite.mockAccountRepo.On("FindAccountsByType", suite.ctx, domain.AccountMobile, "bkash").
		Return([]domain.Account{account}, nil).Once()

	resolved, err := suite.service.ResolveAccount(suite.ctx, domain.AccountRef{LegacyType: "bkash"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "acc-bkash", resolved.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestResolveAccount_NoMatch() {
	suite.mockAccountRepo.On("FindAccountsByType", suite.ctx, domain.AccountBank, "").
		Return([]domain.Account{}, nil).Once()

	_, err := suite.service.ResolveAccount(suite.ctx, domain.AccountRef{LegacyType: "bank"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestResolveAccount_AmbiguousBank() {
	accounts := []domain.Account{
		{AccountID: "acc-b1", AccountType: domain.AccountBank},
		{AccountID: "acc-b2", AccountType: domain.AccountBank},
	}
	suite.mockAccountRepo.On("FindAccountsByType", suite.ctx, domain.AccountBank, "").
		Return(accounts, nil).Once()

	_, err := suite.service.ResolveAccount(suite.ctx, domain.AccountRef{LegacyType: "bank"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrAmbiguousAccount)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestResolveAccount_AmbiguousCashFallsBackToDefault() {
	accounts := []domain.Account{
		cashAccount("acc-other", 10),
		cashAccount(defaultCashID, 20),
	}
	suite.mockAccountRepo.On("FindAccountsByType", suite.ctx, domain.AccountCash, "").
		Return(accounts, nil).Once()

	resolved, err := suite.service.ResolveAccount(suite.ctx, domain.AccountRef{LegacyType: "cash"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), defaultCashID, resolved.AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestResolveAccount_AmbiguousCashWithoutDefaultMatch() {
	accounts := []domain.Account{
		cashAccount("acc-a", 10),
		cashAccount("acc-b", 20),
	}
	suite.mockAccountRepo.On("FindAccountsByType", suite.ctx, domain.AccountCash, "").
		Return(accounts, nil).Once()

	_, err := suite.service.ResolveAccount(suite.ctx, domain.AccountRef{LegacyType: "cash"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrAmbiguousAccount)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- ApplyTransaction ---

func (suite *LedgerServiceTestSuite) TestApplyTransaction_CreditUpdatesBalance() {
	tx := newFakeTx()
	account := cashAccount("acc-1", 100)

	suite.mockAccountRepo.On("Begin", suite.ctx).Return(tx, nil).Once()
	suite.mockAccountRepo.On("Rollback", suite.ctx, tx).Return(nil)
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(&account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", suite.ctx, tx, "acc-1").Return(&account, nil).Once()
	suite.mockTxnRepo.On("InsertTransactionInTx", suite.ctx, tx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == "acc-1" &&
			txn.TransactionType == domain.Credit &&
			txn.EntrySource == domain.SourceManualDeposit &&
			txn.Amount.Equal(decimal.NewFromInt(50)) &&
			txn.BalanceAfter.Equal(decimal.NewFromInt(150))
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalanceInTx", suite.ctx, tx, "acc-1", decEq(decimal.NewFromInt(150)), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", suite.ctx, tx).Return(nil).Once()

	txn, err := suite.service.ApplyTransaction(suite.ctx, portssvc.ApplyTransactionParams{
		Account:     domain.AccountRef{AccountID: "acc-1"},
		EntrySource: domain.SourceManualDeposit,
		Type:        domain.Credit,
		Amount:      decimal.NewFromInt(50),
		Particulars: "Cash deposit",
	}, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), txn.BalanceAfter.Equal(decimal.NewFromInt(150)))
	assert.NotEmpty(suite.T(), txn.TransactionID)
	assert.False(suite.T(), txn.OccurredAt.IsZero())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestApplyTransactionInTx_RejectsNonPositiveAmount() {
	tx := newFakeTx()

	_, err := suite.service.ApplyTransactionInTx(suite.ctx, tx, portssvc.ApplyTransactionParams{
		Account: domain.AccountRef{AccountID: "acc-1"},
		Type:    domain.Credit,
		Amount:  decimal.Zero,
	}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "InsertTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestApplyTransactionInTx_InsufficientBalance() {
	tx := newFakeTx()
	account := cashAccount("acc-1", 30)

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(&account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", suite.ctx, tx, "acc-1").Return(&account, nil).Once()

	_, err := suite.service.ApplyTransactionInTx(suite.ctx, tx, portssvc.ApplyTransactionParams{
		Account: domain.AccountRef{AccountID: "acc-1"},
		Type:    domain.Debit,
		Amount:  decimal.NewFromInt(50),
	}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientBalance)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "InsertTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestApplyTransactionInTx_AllowNegativePermitsOverdraw() {
	tx := newFakeTx()
	account := cashAccount("acc-1", 30)

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(&account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", suite.ctx, tx, "acc-1").Return(&account, nil).Once()
	suite.mockTxnRepo.On("InsertTransactionInTx", suite.ctx, tx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.BalanceAfter.Equal(decimal.NewFromInt(-20))
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalanceInTx", suite.ctx, tx, "acc-1", decEq(decimal.NewFromInt(-20)), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	txn, err := suite.service.ApplyTransactionInTx(suite.ctx, tx, portssvc.ApplyTransactionParams{
		Account:       domain.AccountRef{AccountID: "acc-1"},
		Type:          domain.Debit,
		Amount:        decimal.NewFromInt(50),
		AllowNegative: true,
	}, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), txn.BalanceAfter.IsNegative())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- RecomputeAccountLedger ---

func (suite *LedgerServiceTestSuite) TestRecomputeAccountLedgerInTx_ReplaysHistory() {
	tx := newFakeTx()
	account := cashAccount("acc-1", 999) // stale balance, history is the source of truth
	history := []domain.Transaction{
		{TransactionID: "t1", AccountID: "acc-1", TransactionType: domain.Credit, Amount: decimal.NewFromInt(100)},
		{TransactionID: "t2", AccountID: "acc-1", TransactionType: domain.Debit, Amount: decimal.NewFromInt(40)},
		{TransactionID: "t3", AccountID: "acc-1", TransactionType: domain.Credit, Amount: decimal.NewFromInt(10)},
	}

	suite.mockAccountRepo.On("FindAccountByIDForUpdate", suite.ctx, tx, "acc-1").Return(&account, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountInTx", suite.ctx, tx, "acc-1").Return(history, nil).Once()
	suite.mockTxnRepo.On("RewriteBalancesInTx", suite.ctx, tx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 3 &&
			txns[0].BalanceAfter.Equal(decimal.NewFromInt(100)) &&
			txns[1].BalanceAfter.Equal(decimal.NewFromInt(60)) &&
			txns[2].BalanceAfter.Equal(decimal.NewFromInt(70))
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalanceInTx", suite.ctx, tx, "acc-1", decEq(decimal.NewFromInt(70)), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.RecomputeAccountLedgerInTx(suite.ctx, tx, "acc-1", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// Replaying an already-consistent history must reproduce the same snapshots
// and final balance.
func (suite *LedgerServiceTestSuite) TestRecomputeAccountLedgerInTx_SecondPassIsIdentical() {
	tx := newFakeTx()
	account := cashAccount("acc-1", 0)
	history := []domain.Transaction{
		{TransactionID: "t1", AccountID: "acc-1", TransactionType: domain.Credit, Amount: decimal.NewFromInt(100)},
		{TransactionID: "t2", AccountID: "acc-1", TransactionType: domain.Debit, Amount: decimal.NewFromInt(40)},
		{TransactionID: "t3", AccountID: "acc-1", TransactionType: domain.Credit, Amount: decimal.NewFromInt(10)},
	}

	var passes [][]domain.Transaction
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", suite.ctx, tx, "acc-1").Return(&account, nil).Twice()
	suite.mockTxnRepo.On("RewriteBalancesInTx", suite.ctx, tx, mock.AnythingOfType("[]domain.Transaction")).
		Run(func(args mock.Arguments) {
			rewritten := args.Get(2).([]domain.Transaction)
			passes = append(passes, append([]domain.Transaction(nil), rewritten...))
		}).Return(nil).Twice()
	suite.mockAccountRepo.On("UpdateAccountBalanceInTx", suite.ctx, tx, "acc-1", decEq(decimal.NewFromInt(70)), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Twice()

	suite.mockTxnRepo.On("FindTransactionsByAccountInTx", suite.ctx, tx, "acc-1").Return(history, nil).Once()
	assert.NoError(suite.T(), suite.service.RecomputeAccountLedgerInTx(suite.ctx, tx, "acc-1", "user-1"))

	// Feed the rewritten history back in for the second pass.
	suite.mockTxnRepo.On("FindTransactionsByAccountInTx", suite.ctx, tx, "acc-1").Return(passes[0], nil).Once()
	assert.NoError(suite.T(), suite.service.RecomputeAccountLedgerInTx(suite.ctx, tx, "acc-1", "user-1"))

	assert.Len(suite.T(), passes, 2)
	for i := range passes[0] {
		assert.True(suite.T(), passes[0][i].BalanceAfter.Equal(passes[1][i].BalanceAfter))
	}
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- AdjustByDeltaInTx ---

func (suite *LedgerServiceTestSuite) TestAdjustByDeltaInTx_ZeroDeltaWritesNothing() {
	tx := newFakeTx()

	txn, err := suite.service.AdjustByDeltaInTx(suite.ctx, tx, "acc-1", decimal.Zero, domain.SourceBalanceCorrection, "pur-9", "Payment correction", time.Now(), "user-1")

	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "InsertTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAdjustByDeltaInTx_PositiveDeltaDebitsAndRecomputes() {
	tx := newFakeTx()
	account := cashAccount("acc-1", 100)
	history := []domain.Transaction{
		{TransactionID: "t1", AccountID: "acc-1", TransactionType: domain.Credit, Amount: decimal.NewFromInt(100)},
		{TransactionID: "t2", AccountID: "acc-1", TransactionType: domain.Debit, Amount: decimal.NewFromInt(25)},
	}

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(&account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", suite.ctx, tx, "acc-1").Return(&account, nil).Twice()
	suite.mockTxnRepo.On("InsertTransactionInTx", suite.ctx, tx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.EntrySource == domain.SourceBalanceCorrection &&
			txn.TransactionType == domain.Debit &&
			txn.Amount.Equal(decimal.NewFromInt(25)) &&
			txn.ReferenceID == "pur-9"
	})).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountInTx", suite.ctx, tx, "acc-1").Return(history, nil).Once()
	suite.mockTxnRepo.On("RewriteBalancesInTx", suite.ctx, tx, mock.AnythingOfType("[]domain.Transaction")).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalanceInTx", suite.ctx, tx, "acc-1", decEq(decimal.NewFromInt(75)), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Twice()

	txn, err := suite.service.AdjustByDeltaInTx(suite.ctx, tx, "acc-1", decimal.NewFromInt(25), domain.SourceBalanceCorrection, "pur-9", "Payment correction", time.Now(), "user-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.Debit, txn.TransactionType)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAdjustByDeltaInTx_NegativeDeltaCredits() {
	tx := newFakeTx()
	account := cashAccount("acc-1", 100)
	history := []domain.Transaction{
		{TransactionID: "t1", AccountID: "acc-1", TransactionType: domain.Credit, Amount: decimal.NewFromInt(100)},
		{TransactionID: "t2", AccountID: "acc-1", TransactionType: domain.Credit, Amount: decimal.NewFromInt(25)},
	}

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(&account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", suite.ctx, tx, "acc-1").Return(&account, nil).Twice()
	suite.mockTxnRepo.On("InsertTransactionInTx", suite.ctx, tx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionType == domain.Credit && txn.Amount.Equal(decimal.NewFromInt(25))
	})).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountInTx", suite.ctx, tx, "acc-1").Return(history, nil).Once()
	suite.mockTxnRepo.On("RewriteBalancesInTx", suite.ctx, tx, mock.AnythingOfType("[]domain.Transaction")).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalanceInTx", suite.ctx, tx, "acc-1", decEq(decimal.NewFromInt(125)), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Twice()

	txn, err := suite.service.AdjustByDeltaInTx(suite.ctx, tx, "acc-1", decimal.NewFromInt(-25), domain.SourceBalanceCorrection, "sale-9", "Payment correction", time.Now(), "user-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.Credit, txn.TransactionType)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecomputeAccountLedgerInTx_EmptyHistoryZeroesBalance() {
	tx := newFakeTx()
	account := cashAccount("acc-1", 55)

	suite.mockAccountRepo.On("FindAccountByIDForUpdate", suite.ctx, tx, "acc-1").Return(&account, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountInTx", suite.ctx, tx, "acc-1").Return([]domain.Transaction{}, nil).Once()
	suite.mockTxnRepo.On("RewriteBalancesInTx", suite.ctx, tx, mock.AnythingOfType("[]domain.Transaction")).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalanceInTx", suite.ctx, tx, "acc-1", decEq(decimal.Zero), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.RecomputeAccountLedgerInTx(suite.ctx, tx, "acc-1", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- CreateAccount ---

func (suite *LedgerServiceTestSuite) TestCreateAccount_CashRequiresName() {
	_, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		AccountType: domain.AccountCash,
	}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_BankRequiresNumber() {
	_, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		AccountType: domain.AccountBank,
		BankName:    "City Bank",
	}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_MobileRequiresMethodAndOwner() {
	_, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		AccountType: domain.AccountMobile,
		Method:      "bkash",
	}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_NegativeOpeningBalance() {
	_, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		AccountType:    domain.AccountCash,
		Name:           "Drawer",
		OpeningBalance: decimal.NewFromInt(-5),
	}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_ZeroOpeningBalanceSkipsLedger() {
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountType == domain.AccountCash && acc.Name == "Drawer" && acc.Balance.IsZero()
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		AccountType: domain.AccountCash,
		Name:        "Drawer",
	}, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), account.Balance.IsZero())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "InsertTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_OpeningBalanceRecordedAsCorrection() {
	tx := newFakeTx()
	var savedID string

	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			savedID = args.Get(1).(domain.Account).AccountID
		}).Return(nil).Once()
	suite.mockAccountRepo.On("Begin", suite.ctx).Return(tx, nil).Once()
	suite.mockAccountRepo.On("Rollback", suite.ctx, tx).Return(nil)
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, mock.AnythingOfType("string")).
		Return(&domain.Account{AccountID: "pending", AccountType: domain.AccountCash, Balance: decimal.Zero}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", suite.ctx, tx, mock.AnythingOfType("string")).
		Return(&domain.Account{AccountID: "pending", AccountType: domain.AccountCash, Balance: decimal.Zero}, nil).Once()
	suite.mockTxnRepo.On("InsertTransactionInTx", suite.ctx, tx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.EntrySource == domain.SourceBalanceCorrection &&
			txn.TransactionType == domain.Credit &&
			txn.Particulars == "Opening balance" &&
			txn.Amount.Equal(decimal.NewFromInt(500)) &&
			txn.BalanceAfter.Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalanceInTx", suite.ctx, tx, mock.AnythingOfType("string"), decEq(decimal.NewFromInt(500)), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", suite.ctx, tx).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		AccountType:    domain.AccountCash,
		Name:           "Drawer",
		OpeningBalance: decimal.NewFromInt(500),
	}, "user-1")

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), savedID)
	assert.True(suite.T(), account.Balance.Equal(decimal.NewFromInt(500)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Manual entries ---

func (suite *LedgerServiceTestSuite) TestManualWithdraw_DebitsAccount() {
	tx := newFakeTx()
	account := cashAccount("acc-1", 200)
	occurred := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("Begin", suite.ctx).Return(tx, nil).Once()
	suite.mockAccountRepo.On("Rollback", suite.ctx, tx).Return(nil)
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(&account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", suite.ctx, tx, "acc-1").Return(&account, nil).Once()
	suite.mockTxnRepo.On("InsertTransactionInTx", suite.ctx, tx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.EntrySource == domain.SourceManualWithdraw &&
			txn.TransactionType == domain.Debit &&
			txn.OccurredAt.Equal(occurred) &&
			txn.BalanceAfter.Equal(decimal.NewFromInt(120))
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalanceInTx", suite.ctx, tx, "acc-1", decEq(decimal.NewFromInt(120)), "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", suite.ctx, tx).Return(nil).Once()

	txn, err := suite.service.ManualWithdraw(suite.ctx, dto.ManualEntryRequest{
		AccountID:   "acc-1",
		Amount:      decimal.NewFromInt(80),
		Particulars: "Rent",
		OccurredAt:  &occurred,
	}, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), txn.BalanceAfter.Equal(decimal.NewFromInt(120)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Reads ---

func (suite *LedgerServiceTestSuite) TestGetAccountByID_NotFound() {
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByID(suite.ctx, "missing")

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListTransactionsByAccount_PassesCursor() {
	account := cashAccount("acc-1", 100)
	token := "cursor-1"
	next := "cursor-2"
	txns := []domain.Transaction{{TransactionID: "t1", AccountID: "acc-1", TransactionType: domain.Credit, Amount: decimal.NewFromInt(10)}}

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(&account, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByAccount", suite.ctx, "acc-1", 50, &token).Return(txns, &next, nil).Once()

	resp, err := suite.service.ListTransactionsByAccount(suite.ctx, "acc-1", dto.ListTransactionsParams{Limit: 50, NextToken: &token})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Transactions, 1)
	assert.Equal(suite.T(), &next, resp.NextToken)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListTransactionsByAccount_UnknownAccount() {
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListTransactionsByAccount(suite.ctx, "missing", dto.ListTransactionsParams{Limit: 50})

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactionsByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
