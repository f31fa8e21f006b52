package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

// fakeTx satisfies pgx.Tx for tests that pass transactions through mocks.
// None of its methods are expected to be called.
type fakeTx struct {
	pgx.Tx
}

func newFakeTx() pgx.Tx { return &fakeTx{} }

// decEq matches a decimal argument by value rather than by internal
// representation.
func decEq(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(want) })
}

// MockAccountRepository is a mock type for the AccountRepositoryWithTx
// interface.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByType(ctx context.Context, accountType domain.AccountType, method string) ([]domain.Account, error) {
	args := m.Called(ctx, accountType, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, newBalance, userID, now)
	return args.Error(0)
}

// MockTransactionRepository is a mock type for the
// TransactionRepositoryFacade interface.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) RewriteBalancesInTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction) error {
	args := m.Called(ctx, tx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByReferenceInTx(ctx context.Context, tx pgx.Tx, referenceID string, source domain.EntrySource) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, referenceID, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransactionsByReferenceInTx(ctx context.Context, tx pgx.Tx, referenceID string) ([]string, error) {
	args := m.Called(ctx, tx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

// MockInventoryRepository is a mock type for the InventoryRepositoryWithTx
// interface.
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInventoryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInventoryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindItemByProductID(ctx context.Context, productID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListItems(ctx context.Context, limit int, offset int) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListReceipts(ctx context.Context, productID string) ([]domain.StockReceipt, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockReceipt), args.Error(1)
}

func (m *MockInventoryRepository) ListIssues(ctx context.Context, productID string) ([]domain.StockIssue, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockIssue), args.Error(1)
}

func (m *MockInventoryRepository) FindItemForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) CreateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) AppendReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.StockReceipt) error {
	args := m.Called(ctx, tx, receipt)
	return args.Error(0)
}

func (m *MockInventoryRepository) AppendIssueInTx(ctx context.Context, tx pgx.Tx, issue domain.StockIssue) error {
	args := m.Called(ctx, tx, issue)
	return args.Error(0)
}

func (m *MockInventoryRepository) DeleteReceiptsByInvoiceInTx(ctx context.Context, tx pgx.Tx, productID, invoiceID string) ([]domain.StockReceipt, error) {
	args := m.Called(ctx, tx, productID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockReceipt), args.Error(1)
}

func (m *MockInventoryRepository) DeleteIssuesByMemoInTx(ctx context.Context, tx pgx.Tx, productID, memoID string) ([]domain.StockIssue, error) {
	args := m.Called(ctx, tx, productID, memoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockIssue), args.Error(1)
}

func (m *MockInventoryRepository) ListReceiptsInTx(ctx context.Context, tx pgx.Tx, productID string) ([]domain.StockReceipt, error) {
	args := m.Called(ctx, tx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockReceipt), args.Error(1)
}

// MockPurchaseRepository is a mock type for the PurchaseRepositoryWithTx
// interface.
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPurchaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPurchaseRepository) SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error {
	args := m.Called(ctx, tx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindPurchaseByIDForUpdate(ctx context.Context, tx pgx.Tx, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, tx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ReplacePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error {
	args := m.Called(ctx, tx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) UpdatePurchasePaymentInTx(ctx context.Context, tx pgx.Tx, purchaseID string, paidAmount, paymentDue decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, purchaseID, paidAmount, paymentDue, userID, now)
	return args.Error(0)
}

func (m *MockPurchaseRepository) DeletePurchaseInTx(ctx context.Context, tx pgx.Tx, purchaseID string) error {
	args := m.Called(ctx, tx, purchaseID)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context, limit int, offset int) ([]domain.Purchase, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

// MockSaleRepository is a mock type for the SaleRepositoryWithTx interface.
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSaleRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSaleRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	args := m.Called(ctx, tx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindSaleByIDForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, tx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ReplaceSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	args := m.Called(ctx, tx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSalePaymentInTx(ctx context.Context, tx pgx.Tx, saleID string, paidAmount, paymentDue decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, saleID, paidAmount, paymentDue, userID, now)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSaleInTx(ctx context.Context, tx pgx.Tx, saleID string) error {
	args := m.Called(ctx, tx, saleID)
	return args.Error(0)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, limit int, offset int) ([]domain.Sale, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

// MockSupplierRepository is a mock type for the SupplierRepositoryWithTx
// interface.
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSupplierRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSupplierRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context, limit int, offset int) ([]domain.Supplier, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ListSupplierHistory(ctx context.Context, supplierID string) ([]domain.CounterpartyEvent, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CounterpartyEvent), args.Error(1)
}

func (m *MockSupplierRepository) FindSupplierForUpdate(ctx context.Context, tx pgx.Tx, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, tx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ApplyAggregatesInTx(ctx context.Context, tx pgx.Tx, supplierID string, purchaseDelta, dueDelta decimal.Decimal, productNames []string, purchaseDate, paymentDate *time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, tx, supplierID, purchaseDelta, dueDelta, productNames, purchaseDate, paymentDate, userID, now)
	return args.Error(0)
}

func (m *MockSupplierRepository) AppendHistoryInTx(ctx context.Context, tx pgx.Tx, event domain.CounterpartyEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockSupplierRepository) DeleteHistoryByReferenceInTx(ctx context.Context, tx pgx.Tx, supplierID, referenceID string) error {
	args := m.Called(ctx, tx, supplierID, referenceID)
	return args.Error(0)
}

// MockCustomerRepository is a mock type for the CustomerRepositoryWithTx
// interface.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCustomerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCustomerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomerHistory(ctx context.Context, customerID string) ([]domain.CounterpartyEvent, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CounterpartyEvent), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, tx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ApplyAggregatesInTx(ctx context.Context, tx pgx.Tx, customerID string, salesDelta, dueDelta decimal.Decimal, productNames []string, saleDate, paymentDate *time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, tx, customerID, salesDelta, dueDelta, productNames, saleDate, paymentDate, userID, now)
	return args.Error(0)
}

func (m *MockCustomerRepository) AppendHistoryInTx(ctx context.Context, tx pgx.Tx, event domain.CounterpartyEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteHistoryByReferenceInTx(ctx context.Context, tx pgx.Tx, customerID, referenceID string) error {
	args := m.Called(ctx, tx, customerID, referenceID)
	return args.Error(0)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockLedgerService is a mock type for the LedgerSvcFacade interface, used
// by the purchase and sale workflow tests.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockLedgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) ManualDeposit(ctx context.Context, req dto.ManualEntryRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ManualWithdraw(ctx context.Context, req dto.ManualEntryRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ResolveAccount(ctx context.Context, ref domain.AccountRef) (*domain.Account, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) ApplyTransaction(ctx context.Context, params portssvc.ApplyTransactionParams, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, params, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ApplyTransactionInTx(ctx context.Context, tx pgx.Tx, params portssvc.ApplyTransactionParams, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, params, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) AdjustByDeltaInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, source domain.EntrySource, referenceID string, particulars string, occurredAt time.Time, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, accountID, delta, source, referenceID, particulars, occurredAt, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) RecomputeAccountLedger(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockLedgerService) RecomputeAccountLedgerInTx(ctx context.Context, tx pgx.Tx, accountID string, userID string) error {
	args := m.Called(ctx, tx, accountID, userID)
	return args.Error(0)
}

// MockInventoryService is a mock type for the InventorySvcFacade interface,
// used by the purchase and sale workflow tests.
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetItem(ctx context.Context, productID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) GetStockQty(ctx context.Context, productID string) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryService) ListItems(ctx context.Context, params dto.ListInventoryParams) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) UpdateItem(ctx context.Context, productID string, req dto.UpdateInventoryItemRequest, userID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, productID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) ReceiveStockInTx(ctx context.Context, tx pgx.Tx, params portssvc.ReceiveStockParams, userID string) error {
	args := m.Called(ctx, tx, params, userID)
	return args.Error(0)
}

func (m *MockInventoryService) IssueStockInTx(ctx context.Context, tx pgx.Tx, params portssvc.IssueStockParams, userID string) error {
	args := m.Called(ctx, tx, params, userID)
	return args.Error(0)
}

func (m *MockInventoryService) ReverseReceiveInTx(ctx context.Context, tx pgx.Tx, productID, invoiceID string, userID string) error {
	args := m.Called(ctx, tx, productID, invoiceID, userID)
	return args.Error(0)
}

func (m *MockInventoryService) ReverseIssueInTx(ctx context.Context, tx pgx.Tx, productID, memoID string, userID string) error {
	args := m.Called(ctx, tx, productID, memoID, userID)
	return args.Error(0)
}
