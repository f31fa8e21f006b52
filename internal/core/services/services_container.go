package services

import (
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/platform/cache"
	"github.com/projuktisheba/stockledger-backend/internal/platform/config"
)

// NewServiceContainer wires every service with its dependencies. The ledger
// and inventory services sit underneath the purchase and sale workflows, so
// they are constructed first and shared.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config, stockCache *cache.StockCache) *portssvc.ServiceContainer {
	ledgerSvc := NewLedgerService(repos.AccountRepo, repos.TransactionRepo, cfg.DefaultCashAccountID)
	inventorySvc := NewInventoryService(repos.InventoryRepo, stockCache)

	return &portssvc.ServiceContainer{
		Ledger:    ledgerSvc,
		Inventory: inventorySvc,
		Purchase:  NewPurchaseService(repos.PurchaseRepo, repos.SupplierRepo, repos.TransactionRepo, ledgerSvc, inventorySvc, stockCache),
		Sale:      NewSaleService(repos.SaleRepo, repos.CustomerRepo, repos.TransactionRepo, ledgerSvc, inventorySvc, stockCache),
		Supplier:  NewSupplierService(repos.SupplierRepo),
		Customer:  NewCustomerService(repos.CustomerRepo),
		User:      NewUserService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
		Product:   NewProductService(repos.ProductRepo),
	}
}
