package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// inventoryHandler handles HTTP requests related to inventory state.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers routes related to inventory.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.GET("", h.listItems)
		inventory.GET("/:productID", h.getItem)
		inventory.GET("/:productID/stock", h.getStockQty)
		inventory.PUT("/:productID", h.updateItem)
	}
}

func (h *inventoryHandler) listItems(c *gin.Context) {
	var params dto.ListInventoryParams
	if !bindQuery(c, &params) {
		return
	}

	items, err := h.inventoryService.ListItems(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to list inventory items")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToListInventoryItemResponse(items)))
}

// getItem returns an item with its full receipt and issue history.
func (h *inventoryHandler) getItem(c *gin.Context) {
	productID := c.Param("productID")

	item, err := h.inventoryService.GetItem(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err, "failed to retrieve inventory item")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToInventoryItemResponse(item)))
}

// getStockQty returns the current quantity only, served from cache when
// fresh.
func (h *inventoryHandler) getStockQty(c *gin.Context) {
	productID := c.Param("productID")

	qty, err := h.inventoryService.GetStockQty(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err, "failed to retrieve stock quantity")
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{"productID": productID, "stockQty": qty}))
}

func (h *inventoryHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	var req dto.UpdateInventoryItemRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), productID, req, userID)
	if err != nil {
		respondError(c, err, "failed to update inventory item")
		return
	}

	logger.Info("Inventory item updated", slog.String("product_id", productID))
	c.JSON(http.StatusOK, dto.OK(dto.ToInventoryItemResponse(item)))
}
