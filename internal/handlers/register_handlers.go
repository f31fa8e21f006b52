package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
	"github.com/projuktisheba/stockledger-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Public authentication routes
	registerAuthRoutes(r, services)

	// Everything under /api/v1 requires a valid token
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerAccountRoutes(v1, services.Ledger)
	registerInventoryRoutes(v1, services.Inventory)
	registerPurchaseRoutes(v1, services.Purchase)
	registerSaleRoutes(v1, services.Sale)
	registerSupplierRoutes(v1, services.Supplier)
	registerCustomerRoutes(v1, services.Customer)
	registerProductRoutes(v1, services.Product)
}
