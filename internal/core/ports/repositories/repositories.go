package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor
// cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryWithTx
	TransactionRepo TransactionRepositoryFacade
	InventoryRepo   InventoryRepositoryWithTx
	PurchaseRepo    PurchaseRepositoryWithTx
	SaleRepo        SaleRepositoryWithTx
	SupplierRepo    SupplierRepositoryWithTx
	CustomerRepo    CustomerRepositoryWithTx
	UserRepo        UserRepositoryFacade
	ProductRepo     ProductRepositoryFacade
}
