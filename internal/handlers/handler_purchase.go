package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// purchaseHandler handles HTTP requests related to supplier invoices.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: ps}
}

// registerPurchaseRoutes registers routes related to purchases.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:id", h.getPurchase)
		purchases.PUT("/:id", h.updatePurchase)
		purchases.DELETE("/:id", h.deletePurchase)
		purchases.POST("/:id/pay-due", h.paySupplierDue)
	}
}

func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "failed to create purchase")
		return
	}

	logger.Info("Purchase created", slog.String("purchase_id", purchase.PurchaseID), slog.String("supplier_id", purchase.SupplierID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToPurchaseResponse(purchase)))
}

func (h *purchaseHandler) getPurchase(c *gin.Context) {
	purchaseID := c.Param("id")

	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), purchaseID)
	if err != nil {
		respondError(c, err, "failed to retrieve purchase")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToPurchaseResponse(purchase)))
}

func (h *purchaseHandler) listPurchases(c *gin.Context) {
	var params dto.ListPurchasesParams
	if !bindQuery(c, &params) {
		return
	}

	purchases, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to list purchases")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToListPurchaseResponse(purchases)))
}

func (h *purchaseHandler) updatePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	var req dto.UpdatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.UpdatePurchase(c.Request.Context(), purchaseID, req, userID)
	if err != nil {
		respondError(c, err, "failed to update purchase")
		return
	}

	logger.Info("Purchase updated", slog.String("purchase_id", purchaseID))
	c.JSON(http.StatusOK, dto.OK(dto.ToPurchaseResponse(purchase)))
}

func (h *purchaseHandler) deletePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), purchaseID, userID); err != nil {
		respondError(c, err, "failed to delete purchase")
		return
	}

	logger.Info("Purchase deleted", slog.String("purchase_id", purchaseID))
	c.JSON(http.StatusOK, dto.OKMessage("purchase deleted", nil))
}

func (h *purchaseHandler) paySupplierDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	var req dto.PayDueRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.PaySupplierDue(c.Request.Context(), purchaseID, req, userID)
	if err != nil {
		respondError(c, err, "failed to record due payment")
		return
	}

	logger.Info("Supplier due payment recorded", slog.String("purchase_id", purchaseID))
	c.JSON(http.StatusOK, dto.OK(dto.ToPurchaseResponse(purchase)))
}
