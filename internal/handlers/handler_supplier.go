package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// supplierHandler handles HTTP requests related to suppliers.
type supplierHandler struct {
	supplierService portssvc.SupplierSvcFacade
}

func newSupplierHandler(ss portssvc.SupplierSvcFacade) *supplierHandler {
	return &supplierHandler{supplierService: ss}
}

// registerSupplierRoutes registers routes related to suppliers.
func registerSupplierRoutes(rg *gin.RouterGroup, supplierService portssvc.SupplierSvcFacade) {
	h := newSupplierHandler(supplierService)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:id", h.getSupplier)
		suppliers.PUT("/:id", h.updateSupplier)
		suppliers.GET("/:id/history", h.getSupplierHistory)
	}
}

func (h *supplierHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "failed to create supplier")
		return
	}

	logger.Info("Supplier created", slog.String("supplier_id", supplier.SupplierID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToSupplierResponse(supplier)))
}

func (h *supplierHandler) getSupplier(c *gin.Context) {
	supplierID := c.Param("id")

	supplier, err := h.supplierService.GetSupplierByID(c.Request.Context(), supplierID)
	if err != nil {
		respondError(c, err, "failed to retrieve supplier")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToSupplierResponse(supplier)))
}

func (h *supplierHandler) listSuppliers(c *gin.Context) {
	var params dto.ListCounterpartiesParams
	if !bindQuery(c, &params) {
		return
	}

	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to list suppliers")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToListSupplierResponse(suppliers)))
}

func (h *supplierHandler) updateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("id")

	var req dto.UpdateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), supplierID, req, userID)
	if err != nil {
		respondError(c, err, "failed to update supplier")
		return
	}

	logger.Info("Supplier updated", slog.String("supplier_id", supplierID))
	c.JSON(http.StatusOK, dto.OK(dto.ToSupplierResponse(supplier)))
}

func (h *supplierHandler) getSupplierHistory(c *gin.Context) {
	supplierID := c.Param("id")

	events, err := h.supplierService.GetSupplierHistory(c.Request.Context(), supplierID)
	if err != nil {
		respondError(c, err, "failed to retrieve supplier history")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToCounterpartyEventResponses(events)))
}
